// Package fixtures generates synthetic grade exports: a course-total
// workbook, numbered assignment workbooks with rubric preambles, and sibling
// rubric CSVs. Useful for exercising the pipeline without real student data.
package fixtures

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Config controls the shape of the generated input directory.
type Config struct {
	// Dir is the output directory; created when missing.
	Dir string
	// Students is the roster size.
	Students int
	// Assignments is the number of assignment workbooks.
	Assignments int
	// Criteria is the rubric criterion count per assignment.
	Criteria int
	// Seed makes generation reproducible.
	Seed int64
	// CourseName lands in the top-left preamble cell of every assignment.
	CourseName string
}

var (
	firstNames = []string{"Ada", "Alan", "Grace", "Edsger", "Barbara", "Donald", "Radia", "Ken", "Frances", "Tony"}
	lastNames  = []string{"Lovelace", "Turing", "Hopper", "Dijkstra", "Liskov", "Knuth", "Perlman", "Thompson", "Allen", "Hoare"}

	assignmentNames = []string{"Problem Set", "Essay", "Lab Report", "Presentation", "Final Project"}
	criterionNames  = []string{"Rigor", "Clarity", "Correctness", "Evidence", "Style", "Depth"}
)

const maxMark = 5

// Generate writes the whole synthetic input set under cfg.Dir.
func Generate(cfg Config) error {
	if cfg.Students <= 0 || cfg.Assignments <= 0 || cfg.Criteria <= 0 {
		return fmt.Errorf("students, assignments and criteria must be positive")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("creating fixture directory: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	students := pickStudents(rng, cfg.Students)
	weights := splitWeights(rng, cfg.Assignments)

	titles := make([]string, cfg.Assignments)
	stems := make([]string, cfg.Assignments)
	for i := 0; i < cfg.Assignments; i++ {
		base := assignmentNames[i%len(assignmentNames)]
		stem := fmt.Sprintf("%s %d", base, i/len(assignmentNames)+1)
		stems[i] = stem
		titles[i] = fmt.Sprintf("Assignment: %s - %d%%", stem, weights[i])
	}

	if err := writeCourseWorkbook(cfg, rng, students, titles); err != nil {
		return err
	}
	for i := 0; i < cfg.Assignments; i++ {
		if err := writeAssignmentWorkbook(cfg, rng, students, i+1, stems[i], titles[i]); err != nil {
			return err
		}
		if err := writeRubricCSV(cfg, stems[i]); err != nil {
			return err
		}
	}
	return nil
}

type student struct {
	first, last string
}

func pickStudents(rng *rand.Rand, n int) []student {
	seen := make(map[student]bool, n)
	out := make([]student, 0, n)
	for len(out) < n {
		s := student{
			first: firstNames[rng.Intn(len(firstNames))],
			last:  lastNames[rng.Intn(len(lastNames))],
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// splitWeights divides 100 into n integer weights.
func splitWeights(rng *rand.Rand, n int) []int {
	weights := make([]int, n)
	remaining := 100
	for i := 0; i < n; i++ {
		if i == n-1 {
			weights[i] = remaining
			break
		}
		avail := remaining - (n - 1 - i)
		w := 1 + rng.Intn(avail/(n-i)+1)
		weights[i] = w
		remaining -= w
	}
	return weights
}

func letterFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

func writeCourseWorkbook(cfg Config, rng *rand.Rand, students []student, titles []string) error {
	f := excelize.NewFile()
	defer f.Close()

	header := []any{"First name", "Last name"}
	for _, title := range titles {
		header = append(header, title+" (Percentage)", title+" (Letter)")
	}
	header = append(header, "Course total (Percentage)", "Course total (Letter)")
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, s := range students {
		row := []any{s.first, s.last}
		sum := 0.0
		for range titles {
			p := 50 + rng.Float64()*50
			sum += p
			row = append(row, round1(p), letterFor(p))
		}
		total := round1(sum / float64(len(titles)))
		row = append(row, total, letterFor(total))
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	return f.SaveAs(filepath.Join(cfg.Dir, "00-Course Total.xlsx"))
}

func writeAssignmentWorkbook(cfg Config, rng *rand.Rand, students []student, ordinal int, stem, title string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, 1, []any{cfg.CourseName}); err != nil {
		return err
	}
	if err := setRow(f, 2, []any{title}); err != nil {
		return err
	}

	header := []any{"First name", "Last name", "Username"}
	for c := 0; c < cfg.Criteria; c++ {
		header = append(header, "Definition")
	}
	header = append(header, "Score", "Feedback")
	if err := setRow(f, 4, header); err != nil {
		return err
	}

	for i, s := range students {
		row := []any{s.first, s.last, username(s)}
		for c := 0; c < cfg.Criteria; c++ {
			// roughly one mark in twelve is left blank
			if rng.Intn(12) == 0 {
				row = append(row, "-")
				continue
			}
			row = append(row, rng.Intn(maxMark+1))
		}
		row = append(row, "", "See rubric")
		if err := setRow(f, i+5, row); err != nil {
			return err
		}
	}

	name := fmt.Sprintf("%02d-%s.xlsx", ordinal, stem)
	return f.SaveAs(filepath.Join(cfg.Dir, name))
}

func writeRubricCSV(cfg Config, stem string) error {
	labels := make([]string, cfg.Criteria)
	for i := 0; i < cfg.Criteria; i++ {
		labels[i] = criterionNames[i%len(criterionNames)]
		if i >= len(criterionNames) {
			labels[i] = fmt.Sprintf("%s %d", labels[i], i/len(criterionNames)+1)
		}
	}
	name := fmt.Sprintf("%s - Rubric Percentage.csv", stem)
	content := strings.Join(labels, ",") + "\n"
	return os.WriteFile(filepath.Join(cfg.Dir, name), []byte(content), 0o600)
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		ref, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue("Sheet1", ref, v); err != nil {
			return err
		}
	}
	return nil
}

func username(s student) string {
	return strings.ToLower(s.first[:1] + s.last)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

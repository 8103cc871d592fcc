// Command make-fixtures writes a synthetic set of grade exports for manual
// runs and demos.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/gradefold/gradefold/internal/fixtures"
)

const (
	defaultStudents    = 25
	defaultAssignments = 5
	defaultCriteria    = 4
)

func main() {
	var (
		dir         = flag.String("dir", "testdata/exports", "Output directory for the generated files")
		students    = flag.Int("students", defaultStudents, "Number of students on the roster")
		assignments = flag.Int("assignments", defaultAssignments, "Number of assignment workbooks")
		criteria    = flag.Int("criteria", defaultCriteria, "Rubric criteria per assignment")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "Random seed (fixed seed gives reproducible output)")
		courseName  = flag.String("course", "Synthetic Course 101", "Course name stamped into each export")
	)
	flag.Parse()

	cfg := fixtures.Config{
		Dir:         *dir,
		Students:    *students,
		Assignments: *assignments,
		Criteria:    *criteria,
		Seed:        *seed,
		CourseName:  *courseName,
	}
	if err := fixtures.Generate(cfg); err != nil {
		os.Stderr.WriteString("make-fixtures: " + err.Error() + "\n")
		os.Exit(1)
	}
}

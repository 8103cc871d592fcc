// Package rubric recovers human-readable criterion names for the otherwise
// anonymous "Definition" columns of a rubric export. Labels live in a sibling
// CSV whose filename loosely matches the assignment file; both location and
// parsing are best effort, because missing labels only degrade naming.
package rubric

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gradefold/gradefold/internal/domain/table"
)

// Loader reads an auxiliary label source into a table. The first CSV record
// is expected as the header row.
type Loader func(path string) (*table.Table, error)

// Resolve finds and flattens the label source for the given assignment file.
// Any failure along the way (no candidate file, unreadable source) yields nil
// so the caller can pad with synthetic names. Never returns an error.
func Resolve(assignmentPath string, expected int, load Loader) []string {
	if expected <= 0 || load == nil {
		return nil
	}
	src, ok := Locate(assignmentPath)
	if !ok {
		return nil
	}
	t, err := load(src)
	if err != nil {
		return nil
	}
	return Flatten(t, expected)
}

// Locate derives the label-source path for an assignment file: strip the
// numeric prefix from the filename, try the conventional "<base> - Rubric
// Percentage.csv" name, then "<base>.csv", then fall back to the first
// sibling CSV whose stem contains the base as a substring.
func Locate(assignmentPath string) (string, bool) {
	dir := filepath.Dir(assignmentPath)
	name := filepath.Base(assignmentPath)

	base := name
	if i := strings.Index(name, "-"); i >= 0 {
		base = name[i+1:]
	}
	base = strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if base == "" {
		return "", false
	}

	direct := filepath.Join(dir, base+" - Rubric Percentage.csv")
	if fileExists(direct) {
		return direct, true
	}
	alt := filepath.Join(dir, base+".csv")
	if fileExists(alt) {
		return alt, true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if strings.Contains(stem, base) {
			return filepath.Join(dir, e.Name()), true
		}
	}
	return "", false
}

// Flatten walks the source column by column, taking each column's own label
// first and then its non-empty cell values top to bottom, stopping as soon as
// expected labels are collected. The order mirrors how labels are laid out in
// rubric exports and must not change.
func Flatten(t *table.Table, expected int) []string {
	if t == nil || expected <= 0 {
		return nil
	}
	labels := make([]string, 0, expected)
	for col, header := range t.Headers {
		if len(labels) >= expected {
			break
		}
		if h := strings.TrimSpace(header); h != "" {
			labels = append(labels, h)
		}
		for row := range t.Rows {
			if len(labels) >= expected {
				break
			}
			if v := strings.TrimSpace(t.Cell(row, col).String()); v != "" {
				labels = append(labels, v)
			}
		}
	}
	if len(labels) > expected {
		labels = labels[:expected]
	}
	return labels
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

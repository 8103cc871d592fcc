package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// inputSet is the outcome of scanning the input directory: exactly one
// course-total workbook plus the assignment workbooks in prefix order.
type inputSet struct {
	coursePath      string
	assignmentPaths []string
}

type discoveredFile struct {
	path   string
	prefix int
}

// discoverInputs scans dir for workbooks following the "NN-<name>.xlsx"
// convention. The "00" prefix marks the course-total file; every other
// numeric prefix marks an assignment. Office lock files ("~$" prefix) and
// files without a numeric prefix are ignored. Assignments come back sorted
// by numeric prefix, name-order breaking ties, so run order is stable
// regardless of directory listing order.
func discoverInputs(dir string) (*inputSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %q: %w", dir, err)
	}

	set := &inputSet{}
	var found []discoveredFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}
		prefix, _, ok := strings.Cut(name, "-")
		if !ok {
			continue
		}
		if prefix == "00" {
			if set.coursePath == "" {
				set.coursePath = filepath.Join(dir, name)
			}
			continue
		}
		n, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		found = append(found, discoveredFile{path: filepath.Join(dir, name), prefix: n})
	}

	if set.coursePath == "" {
		return nil, fmt.Errorf("directory %q: %w", dir, ErrNoCourseTotalFile)
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].prefix < found[j].prefix
	})
	for _, f := range found {
		set.assignmentPaths = append(set.assignmentPaths, f.path)
	}
	return set, nil
}

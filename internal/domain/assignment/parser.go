// Package assignment turns one raw rubric export into a cleaned,
// roster-aligned table: administrative columns stripped, excluded rows
// dropped, "Definition" columns renamed to criterion labels, per-student
// totals computed, and course percentage/letter grades joined in.
package assignment

import (
	"fmt"
	"strings"

	"github.com/gradefold/gradefold/internal/domain/coursetotal"
	"github.com/gradefold/gradefold/internal/domain/roster"
	"github.com/gradefold/gradefold/internal/domain/table"
)

// administrativeColumns carry rubric metadata, not grade signal. Any column
// whose header contains one of these (case-insensitively) is dropped.
var administrativeColumns = []string{"username", "score", "feedback", "graded by", "time graded"}

const (
	titleRow = 1 // second row, first column holds the assignment title

	percentageColumn = "Total - 100"
	letterColumn     = "Total - Letter"
)

// Parsed is the roster-aligned result for one assignment.
type Parsed struct {
	// Title is the raw title cell, trimmed.
	Title string
	// DisplayName is the title with a leading "Assignment" word stripped.
	DisplayName string
	// Weight is the percentage extracted from the title, "" when absent.
	Weight string
	// CriterionColumns are the renamed rubric columns, in discovery order.
	CriterionColumns []string
	// TotalColumn is the computed-total label, carrying the weight if known.
	TotalColumn string
	// Columns is the full output order: names, criteria, total, percentage, letter.
	Columns []string
	// WriteColumns is Columns without the two name columns.
	WriteColumns []string
	// Table holds one row per roster student, in roster order. Students absent
	// from this assignment have all non-name cells missing.
	Table *table.Table
}

type parser struct {
	headerMarker string
	exclude      func(table.Row) bool
	labels       []string
	labelsFor    func(expected int) []string
	overrideStem string
	strict       bool
}

// Parse transforms one raw assignment table. The raw table is the untouched
// export: headerless, with preamble and title rows above the real header.
// Fails only on structural problems (missing header row); every per-cell
// irregularity degrades to a missing value.
func Parse(raw *table.Table, resolver *coursetotal.Resolver, ros *roster.Roster, opts ...Option) (*Parsed, error) {
	p := &parser{
		headerMarker: defaultHeaderMarker,
		exclude:      func(table.Row) bool { return false },
	}
	for _, opt := range opts {
		opt(p)
	}

	title := strings.TrimSpace(raw.Cell(titleRow, 0).String())
	weight := ExtractWeight(title)

	headerRow, err := table.FindHeaderRow(raw, p.headerMarker)
	if err != nil {
		return nil, fmt.Errorf("assignment %q: %w", title, err)
	}
	header := raw.Rows[headerRow]

	body := make([]table.Row, 0, len(raw.Rows)-headerRow-1)
	for _, row := range raw.Rows[headerRow+1:] {
		if row.IsEmpty() || p.exclude(row) {
			continue
		}
		body = append(body, row)
	}

	keep := keptColumns(header)
	if p.labelsFor != nil {
		expected := 0
		for _, col := range keep {
			if strings.EqualFold(strings.TrimSpace(header[col].String()), "definition") {
				expected++
			}
		}
		p.labels = p.labelsFor(expected)
	}
	firstIdx, lastIdx := -1, -1
	var criterionCols []string
	var criterionIdx []int
	labelCursor := 0
	names := make([]string, len(keep))
	for i, col := range keep {
		label := strings.TrimSpace(header[col].String())
		switch {
		case strings.EqualFold(label, "definition"):
			name := fmt.Sprintf("Criterion %d", len(criterionCols)+1)
			if labelCursor < len(p.labels) {
				name = p.labels[labelCursor]
			}
			labelCursor++
			criterionIdx = append(criterionIdx, i)
			criterionCols = append(criterionCols, name)
			names[i] = name
		case strings.EqualFold(label, "first name"):
			firstIdx = i
			names[i] = "First name"
		case strings.EqualFold(label, "last name"):
			lastIdx = i
			names[i] = "Last name"
		default:
			names[i] = label
		}
	}
	if firstIdx < 0 || lastIdx < 0 {
		return nil, fmt.Errorf("assignment %q: name columns missing: %w", title, table.ErrHeaderRowNotFound)
	}

	totalColumn := "Total"
	if weight != "" {
		totalColumn = "Total - " + weight
	}

	percCol, letterCol := gradeColumns(p, resolver, title)

	// One output row per cleaned body row, keyed by trimmed names.
	type record struct {
		criteria []table.Cell
		total    table.Cell
		perc     table.Cell
		letter   table.Cell
	}
	records := make(map[roster.StudentKey]record, len(body))
	for _, row := range body {
		key := roster.StudentKey{
			First: strings.TrimSpace(cellAt(row, keep, firstIdx).String()),
			Last:  strings.TrimSpace(cellAt(row, keep, lastIdx).String()),
		}
		rec := record{criteria: make([]table.Cell, len(criterionIdx))}
		sum := 0.0
		for i, ci := range criterionIdx {
			c := cellAt(row, keep, ci).AsNumber()
			rec.criteria[i] = c
			if v, ok := c.Float(); ok {
				sum += v
			}
		}
		rec.total = table.Number(sum)
		rec.perc = coursetotal.ParsePercentage(resolver.Lookup(key, percCol))
		rec.letter = resolver.Lookup(key, letterCol)
		records[key] = rec
	}

	columns := append([]string{"First name", "Last name"}, criterionCols...)
	columns = append(columns, totalColumn, percentageColumn, letterColumn)

	aligned := &table.Table{Headers: columns}
	for _, key := range ros.Keys() {
		row := make(table.Row, 0, len(columns))
		row = append(row, table.Text(key.First), table.Text(key.Last))
		rec, present := records[key]
		if present {
			row = append(row, rec.criteria...)
			row = append(row, rec.total, rec.perc, rec.letter)
		} else {
			for k := 0; k < len(columns)-2; k++ {
				row = append(row, table.Missing())
			}
		}
		aligned.Rows = append(aligned.Rows, row)
	}

	return &Parsed{
		Title:            title,
		DisplayName:      DisplayName(title),
		Weight:           weight,
		CriterionColumns: criterionCols,
		TotalColumn:      totalColumn,
		Columns:          columns,
		WriteColumns:     columns[2:],
		Table:            aligned,
	}, nil
}

// keptColumns returns the header positions that survive the administrative
// column filter, in original order.
func keptColumns(header table.Row) []int {
	keep := make([]int, 0, len(header))
	for i, c := range header {
		label := strings.ToLower(c.String())
		banned := false
		for _, bad := range administrativeColumns {
			if label != "" && strings.Contains(label, bad) {
				banned = true
				break
			}
		}
		if !banned {
			keep = append(keep, i)
		}
	}
	return keep
}

// gradeColumns resolves the course-table percentage/letter columns. An
// explicit override stem wins over strict mode, which wins over fuzzy
// containment.
func gradeColumns(p *parser, resolver *coursetotal.Resolver, title string) (percCol, letterCol int) {
	if p.overrideStem != "" {
		return resolver.ExactGradeColumns(p.overrideStem)
	}
	if p.strict {
		return resolver.ExactGradeColumns(DisplayName(title))
	}
	return resolver.GradeColumns(title, DisplayName(title))
}

// cellAt reads a body cell through the kept-column mapping, tolerating ragged
// rows.
func cellAt(row table.Row, keep []int, keptIdx int) table.Cell {
	if keptIdx < 0 || keptIdx >= len(keep) {
		return table.Missing()
	}
	col := keep[keptIdx]
	if col >= len(row) {
		return table.Missing()
	}
	return row[col]
}

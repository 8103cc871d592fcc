// Package table holds the tabular value model shared by every stage of the
// consolidation pipeline. Spreadsheet columns mix numbers, free text, and
// blanks, so each cell is a tagged union rather than a single primitive.
package table

import (
	"strconv"
	"strings"
)

type cellKind uint8

const (
	kindMissing cellKind = iota
	kindNumber
	kindText
)

// Cell is one tabular value: a number, a piece of text, or missing.
type Cell struct {
	kind cellKind
	num  float64
	text string
}

// Missing returns the absent value.
func Missing() Cell {
	return Cell{kind: kindMissing}
}

// Number returns a numeric cell.
func Number(v float64) Cell {
	return Cell{kind: kindNumber, num: v}
}

// Text returns a textual cell. Empty or all-whitespace input yields Missing.
func Text(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Missing()
	}
	return Cell{kind: kindText, text: s}
}

// FromString interprets a raw spreadsheet string: numeric text becomes a
// Number, blank becomes Missing, anything else stays Text.
func FromString(s string) Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Missing()
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(v)
	}
	return Cell{kind: kindText, text: s}
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool {
	return c.kind == kindMissing
}

// Float returns the numeric value and whether the cell is numeric.
func (c Cell) Float() (float64, bool) {
	if c.kind != kindNumber {
		return 0, false
	}
	return c.num, true
}

// String renders the cell for joins and comparisons. Missing renders empty.
func (c Cell) String() string {
	switch c.kind {
	case kindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case kindText:
		return c.text
	default:
		return ""
	}
}

// Value returns the underlying value as any (float64, string, or nil),
// which is what the spreadsheet writer expects.
func (c Cell) Value() any {
	switch c.kind {
	case kindNumber:
		return c.num
	case kindText:
		return c.text
	default:
		return nil
	}
}

// AsNumber coerces the cell to numeric. Non-numeric text becomes Missing;
// numbers and Missing pass through unchanged.
func (c Cell) AsNumber() Cell {
	switch c.kind {
	case kindNumber, kindMissing:
		return c
	default:
		if v, err := strconv.ParseFloat(strings.TrimSpace(c.text), 64); err == nil {
			return Number(v)
		}
		return Missing()
	}
}

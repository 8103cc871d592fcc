package spreadsheet

import "github.com/xuri/excelize/v2"

// Fill colors for the consolidated sheet, matching the exported gradebook
// look: gray banner, lighter header and group rows, faint zebra stripe.
const (
	titleFillColor  = "BFBFBF"
	groupFillColor  = "D0D0D0"
	headerFillColor = "E6E6E6"
	stripeFillColor = "F7F7F7"

	thinBorderColor   = "999999"
	mediumBorderColor = "666666"

	headerTextRotation = 90
	bannerFontSize     = 13

	numberFormat = "0.00"
)

// cellKind selects the base look of a cell in the layout.
type cellKind uint8

const (
	kindTitle cellKind = iota
	kindGroup
	kindHeader
	kindName
	kindData
)

type styleKey struct {
	kind     cellKind
	stripe   bool
	boundary bool
}

// styleCache builds excelize style IDs on demand. Styles in excelize are
// whole immutable objects, so every (kind, stripe, boundary) combination gets
// its own ID.
type styleCache struct {
	f     *excelize.File
	cache map[styleKey]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, cache: make(map[styleKey]int)}
}

func (s *styleCache) id(kind cellKind, stripe, boundary bool) (int, error) {
	key := styleKey{kind: kind, stripe: stripe, boundary: boundary}
	if id, ok := s.cache[key]; ok {
		return id, nil
	}
	style := baseStyle(kind)
	if stripe {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripeFillColor}}
	}
	style.Border = borders(boundary)
	id, err := s.f.NewStyle(&style)
	if err != nil {
		return 0, err
	}
	s.cache[key] = id
	return id, nil
}

func baseStyle(kind cellKind) excelize.Style {
	numFmt := numberFormat
	switch kind {
	case kindTitle:
		return excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Font:      &excelize.Font{Bold: true, Size: bannerFontSize},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{titleFillColor}},
		}
	case kindGroup:
		return excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Font:      &excelize.Font{Bold: true},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{groupFillColor}},
		}
	case kindHeader:
		return excelize.Style{
			Alignment: &excelize.Alignment{TextRotation: headerTextRotation, Horizontal: "center", Vertical: "bottom", WrapText: true},
			Font:      &excelize.Font{Bold: true},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
		}
	case kindName:
		return excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		}
	default:
		return excelize.Style{
			Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			CustomNumFmt: &numFmt,
		}
	}
}

func borders(boundary bool) []excelize.Border {
	right := excelize.Border{Type: "right", Color: thinBorderColor, Style: 1}
	if boundary {
		right = excelize.Border{Type: "right", Color: mediumBorderColor, Style: 2}
	}
	return []excelize.Border{
		{Type: "top", Color: thinBorderColor, Style: 1},
		{Type: "bottom", Color: thinBorderColor, Style: 1},
		{Type: "left", Color: thinBorderColor, Style: 1},
		right,
	}
}

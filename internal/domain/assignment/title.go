package assignment

import (
	"regexp"
	"strings"
)

var (
	weightAnchoredPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%\s*$`)
	weightAnywherePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
	assignmentWordPattern = regexp.MustCompile(`(?i)^assignment\s*[:-]?\s*`)
)

// ExtractWeight pulls the assignment's percentage weight out of its title,
// preferring a pattern anchored at the end. Returns "" when the title carries
// no weight.
func ExtractWeight(title string) string {
	if m := weightAnchoredPattern.FindStringSubmatch(title); m != nil {
		return m[1] + "%"
	}
	if m := weightAnywherePattern.FindStringSubmatch(title); m != nil {
		return m[1] + "%"
	}
	return ""
}

// DisplayName strips a leading "Assignment" word (with optional separator)
// from the title. Falls back to the original title if stripping would leave
// nothing.
func DisplayName(title string) string {
	cleaned := strings.TrimSpace(assignmentWordPattern.ReplaceAllString(title, ""))
	if cleaned == "" {
		return title
	}
	return cleaned
}

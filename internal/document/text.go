package document

import (
	"regexp"
	"strings"
)

var (
	markerRe    = regexp.MustCompile(`(?i)\[needs clarification(?::([^\]]*))?\]`)
	bulletRe    = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+(.+)$`)
	tableSepRe  = regexp.MustCompile(`^[\s|:\-]+$`)
	emphasisRe  = regexp.MustCompile("[*_`]+")
	numberingRe = regexp.MustCompile(`^(?:[#§]*\s*)?\d+(?:\.\d+)*[.)]?\s+`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text and collapses internal whitespace. Every
// count in the engine is computed over normalized text.
func Normalize(s string) string {
	return spaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// StripMarkers removes clarification markers from text. Weasel counting
// uses this so that a phrase already wrapped in a marker is not counted
// again.
func StripMarkers(s string) string {
	return markerRe.ReplaceAllString(s, "")
}

// normalizeHeading reduces a heading line to a comparable label.
func normalizeHeading(s string) string {
	s = emphasisRe.ReplaceAllString(s, "")
	s = numberingRe.ReplaceAllString(strings.TrimSpace(s), "")
	s = strings.TrimRight(s, ":. ")
	return Normalize(s)
}

// bullets extracts bullet items from a body, one entry per list line.
func bullets(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			out = append(out, strings.TrimSpace(m[1]))
		}
	}
	return out
}

// TableRows extracts pipe-table rows from a body, separator rows
// excluded. Each row is the list of trimmed cell values.
func TableRows(body string) [][]string {
	return tableRows(body)
}

func tableRows(body string) [][]string {
	var out [][]string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			continue
		}
		if tableSepRe.MatchString(trimmed) {
			continue
		}
		cells := strings.Split(strings.Trim(trimmed, "|"), "|")
		row := make([]string, 0, len(cells))
		for _, c := range cells {
			row = append(row, strings.TrimSpace(c))
		}
		out = append(out, row)
	}
	return out
}

// containsWord reports whether needle occurs in haystack on word
// boundaries. Both arguments must already be normalized.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return false
		}
		i += from
		end := i + len(needle)
		startOK := i == 0 || !isWordChar(haystack[i-1])
		endOK := end == len(haystack) || !isWordChar(haystack[end])
		if startOK && endOK {
			return true
		}
		from = i + 1
	}
}

func isWordChar(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

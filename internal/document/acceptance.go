package document

import (
	"regexp"
	"strings"
)

// Category classifies an acceptance criterion.
type Category string

// Acceptance criterion categories.
const (
	CategoryHappyPath  Category = "happy_path"
	CategoryNegative   Category = "negative"
	CategoryEdgeCase   Category = "edge_case"
	CategoryResilience Category = "resilience"
)

// AcceptanceCriterion is one acceptance criterion bullet with its
// category and concreteness flag.
type AcceptanceCriterion struct {
	Category Category
	Text     string
	Concrete bool
}

var (
	digitRe  = regexp.MustCompile(`\d`)
	quotedRe = regexp.MustCompile("\"[^\"]+\"|'[^']+'|`[^`]+`")
	statusRe = regexp.MustCompile(`\b[A-Z][A-Z_]{2,}\b`)

	categoryLabels = []struct {
		label string
		cat   Category
	}{
		{"happy path", CategoryHappyPath},
		{"negative", CategoryNegative},
		{"prohibition", CategoryNegative},
		{"edge case", CategoryEdgeCase},
		{"edge cases", CategoryEdgeCase},
		{"resilience", CategoryResilience},
	}
)

// AcceptanceCriteria parses the acceptance criteria section. Category
// labels may appear as subheadings or bold lines inside the section, or
// as a per-bullet prefix ("Negative: ..."); bullets without any label
// default to happy path.
func (d *Document) AcceptanceCriteria() []AcceptanceCriterion {
	var out []AcceptanceCriterion
	current := CategoryHappyPath
	for _, line := range strings.Split(d.Section(KeyAcceptance).Body, "\n") {
		if cat, ok := labelLine(line); ok {
			current = cat
			continue
		}
		m := bulletRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[1])
		cat := current
		if c, rest, ok := labelPrefix(text); ok {
			cat = c
			text = rest
		}
		out = append(out, AcceptanceCriterion{
			Category: cat,
			Text:     text,
			Concrete: IsConcrete(text),
		})
	}
	return out
}

// IsConcrete reports whether criterion text contains a literal number,
// a quoted value, or a named status rather than a bracket placeholder.
func IsConcrete(text string) bool {
	stripped := markerRe.ReplaceAllString(text, "")
	return digitRe.MatchString(stripped) ||
		quotedRe.MatchString(stripped) ||
		statusRe.MatchString(stripped)
}

// labelLine matches a non-bullet line consisting only of a category
// label, e.g. "### Negative" or "**Edge Cases**".
func labelLine(line string) (Category, bool) {
	if bulletRe.MatchString(line) {
		return "", false
	}
	label := normalizeHeading(strings.TrimLeft(strings.TrimSpace(line), "# "))
	for _, cl := range categoryLabels {
		if label == cl.label || label == cl.label+" tests" || label == cl.label+" criteria" {
			return cl.cat, true
		}
	}
	return "", false
}

// labelPrefix matches a bullet-leading category marker such as
// "Negative: ..." or "[edge case] ...".
func labelPrefix(text string) (Category, string, bool) {
	lower := strings.ToLower(text)
	for _, cl := range categoryLabels {
		for _, prefix := range []string{cl.label + ":", "[" + cl.label + "]"} {
			if strings.HasPrefix(lower, prefix) {
				rest := strings.TrimSpace(text[len(prefix):])
				return cl.cat, rest, true
			}
		}
		bold := "**" + cl.label + "**"
		if strings.HasPrefix(lower, bold) {
			rest := strings.TrimSpace(strings.TrimPrefix(text[len(bold):], ":"))
			return cl.cat, rest, true
		}
	}
	return "", "", false
}

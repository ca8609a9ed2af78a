package audit

import (
	"strings"

	"specvet/internal/document"
)

// stopwords are common words excluded from key-noun matching, negation
// cues included so that matching compares the action, not the polarity.
var stopwords = map[string]bool{
	"about": true, "after": true, "all": true, "also": true, "always": true,
	"and": true, "any": true, "are": true, "because": true, "been": true,
	"before": true, "being": true, "between": true, "both": true, "but": true,
	"can": true, "cannot": true, "could": true, "does": true, "dont": true,
	"each": true, "ever": true, "every": true, "for": true, "from": true,
	"has": true, "have": true, "into": true, "its": true, "may": true,
	"must": true, "never": true, "none": true, "not": true, "off": true,
	"once": true, "only": true, "onto": true, "other": true, "our": true,
	"over": true, "shall": true, "should": true, "some": true, "such": true,
	"than": true, "that": true, "the": true, "their": true, "them": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"those": true, "under": true, "until": true, "upon": true, "use": true,
	"used": true, "using": true, "verify": true, "when": true, "where": true,
	"which": true, "while": true, "will": true, "with": true, "within": true,
	"without": true, "would": true, "your": true,
}

// negationCues mark a statement as prohibition-polarity.
var negationCues = []string{"never", "don't", "dont", "do not", "must not", "no "}

// keyTokens extracts the comparable tokens of a statement: normalized
// words of four or more characters that are not stopwords.
func keyTokens(text string) map[string]bool {
	out := map[string]bool{}
	for _, tok := range splitWords(document.Normalize(text)) {
		if len(tok) < 4 || stopwords[tok] {
			continue
		}
		out[tok] = true
	}
	return out
}

// overlap counts tokens present in both sets.
func overlap(a, b map[string]bool) int {
	n := 0
	for tok := range a {
		if b[tok] {
			n++
		}
	}
	return n
}

// hasNegationCue reports whether the statement carries any negation
// cue.
func hasNegationCue(text string) bool {
	norm := document.Normalize(text)
	for _, cue := range negationCues {
		if strings.Contains(norm, cue) {
			return true
		}
	}
	return false
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

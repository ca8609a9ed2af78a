// Package repair implements the bounded self-repair pass: one
// deterministic mutation against the weakest axis, applied at most once
// per evaluation.
package repair

import (
	"fmt"
	"regexp"
	"strings"

	"specvet/internal/audit"
	"specvet/internal/config"
	"specvet/internal/document"
	"specvet/internal/health"
)

// Action names the remediation that was applied.
type Action string

// Remediation actions. ActionNone means no viable remediation existed
// for the weakest axis; the pre-repair verdict then stands.
const (
	ActionNone             Action = "none"
	ActionStubSections     Action = "stub_sections"
	ActionMarkWeasels      Action = "mark_weasels"
	ActionAddNegativeTests Action = "add_negative_tests"
)

const stubBody = "- To be completed."

// Apply selects the remediation for the weakest axis of the scored
// result and mutates the document once. The net effect on the score is
// not assumed positive; the caller must re-score and accept whatever
// verdict results.
func Apply(doc *document.Document, res health.Result, audited audit.Result, scoring config.Scoring) Action {
	switch res.WeakestAxis() {
	case health.AxisCompleteness:
		return stubMissingSections(doc)
	case health.AxisClarity:
		return markWeasels(doc, scoring.WeaselPhrases)
	case health.AxisConstraints:
		return addNegativeTests(doc, audited)
	default:
		// Specificity has no safe deterministic remediation: inventing
		// numeric thresholds would fabricate content.
		return ActionNone
	}
}

// stubMissingSections inserts placeholder stubs for canonical sections
// that are missing or empty.
func stubMissingSections(doc *document.Document) Action {
	stubbed := false
	for _, k := range document.Canonical {
		if doc.Complete(k) {
			continue
		}
		s := doc.Section(k)
		if s.Present && s.Empty() {
			s.Body = stubBody
			stubbed = true
			continue
		}
		if !s.Present {
			doc.Stub(k, stubBody)
			stubbed = true
		}
	}
	if !stubbed {
		return ActionNone
	}
	return ActionStubSections
}

// markWeasels replaces weasel phrases with clarification markers. This
// trades an L1 gain against an L2 cost; the re-score decides whether it
// helped.
func markWeasels(doc *document.Document, phrases []string) Action {
	replaced := false
	for _, phrase := range phrases {
		re := weaselRe(phrase)
		marker := fmt.Sprintf("[NEEDS CLARIFICATION: replace %q]", phrase)
		for _, s := range doc.Sections() {
			if !re.MatchString(s.Body) {
				continue
			}
			s.Body = re.ReplaceAllString(s.Body, marker)
			replaced = true
		}
	}
	if !replaced {
		return ActionNone
	}
	return ActionMarkWeasels
}

// weaselRe builds a case-insensitive matcher for a phrase, with word
// boundaries only where the phrase edge is a word character ("etc."
// must not require one after the dot).
func weaselRe(phrase string) *regexp.Regexp {
	pattern := regexp.QuoteMeta(phrase)
	if isWordEdge(phrase[0]) {
		pattern = `\b` + pattern
	}
	if isWordEdge(phrase[len(phrase)-1]) {
		pattern += `\b`
	}
	return regexp.MustCompile(`(?i)` + pattern)
}

func isWordEdge(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// addNegativeTests synthesizes placeholder negative acceptance criteria
// for prohibitions that pass 1 left unmatched.
func addNegativeTests(doc *document.Document, audited audit.Result) Action {
	unmatched := audited.UnmatchedProhibitions()
	if len(unmatched) == 0 {
		return ActionNone
	}
	prohibitions := doc.Prohibitions()

	var lines []string
	for _, i := range unmatched {
		if i >= len(prohibitions) {
			continue
		}
		lines = append(lines, fmt.Sprintf("- Negative: attempting %s is rejected", prohibitions[i].Statement))
	}
	if len(lines) == 0 {
		return ActionNone
	}

	ac := doc.Section(document.KeyAcceptance)
	if !ac.Present {
		doc.Stub(document.KeyAcceptance, strings.Join(lines, "\n"))
		return ActionAddNegativeTests
	}
	body := strings.TrimRight(ac.Body, "\n")
	if body != "" {
		body += "\n"
	}
	ac.Body = body + strings.Join(lines, "\n")
	return ActionAddNegativeTests
}

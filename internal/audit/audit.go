// Package audit implements the structural consistency pass over a
// specification document. It cross-references sections and yields
// findings; it never blocks or aborts an evaluation.
package audit

import (
	"fmt"
	"strings"

	"specvet/internal/document"
)

// Severity ranks a finding.
type Severity string

// Finding severities. Nothing the auditor emits is fatal.
const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warn"
)

// Finding is one structural inconsistency, tied to the section it was
// found in.
type Finding struct {
	Section  string   `json:"section"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result carries the findings of one audit pass plus the
// prohibition-to-negative-test matching consumed by the N3 sub-check
// and by self-repair.
type Result struct {
	Findings           []Finding
	ProhibitionMatched []bool
}

// MatchedProhibitions counts prohibitions with a matched negative test.
func (r Result) MatchedProhibitions() int {
	n := 0
	for _, m := range r.ProhibitionMatched {
		if m {
			n++
		}
	}
	return n
}

// UnmatchedProhibitions returns the indexes of prohibitions without a
// matched negative test.
func (r Result) UnmatchedProhibitions() []int {
	var out []int
	for i, m := range r.ProhibitionMatched {
		if !m {
			out = append(out, i)
		}
	}
	return out
}

// Run executes the six consistency checks. dontUse lists the "Don't
// use" entries from the project conventions registry; pass nil when no
// registry is configured.
func Run(doc *document.Document, dontUse []string) Result {
	var res Result

	prohibitions := doc.Prohibitions()
	criteria := doc.AcceptanceCriteria()
	requirements := doc.Requirements()

	res.ProhibitionMatched = matchProhibitions(prohibitions, criteria)
	for i, matched := range res.ProhibitionMatched {
		if !matched {
			res.add("Prohibitions", SeverityWarn,
				"prohibition %q has no matching negative acceptance criterion", clip(prohibitions[i].Statement))
		}
	}

	checkLeafCoverage(&res, doc, criteria)
	checkFileReferences(&res, doc, requirements, prohibitions)
	checkContradictions(&res, requirements, prohibitions)
	checkScopeLeakage(&res, doc)
	checkConventions(&res, prohibitions, dontUse)

	return res
}

// matchProhibitions pairs each prohibition with negative-category
// criteria by key-noun overlap.
func matchProhibitions(prohibitions []document.Prohibition, criteria []document.AcceptanceCriterion) []bool {
	matched := make([]bool, len(prohibitions))
	for i, p := range prohibitions {
		tokens := keyTokens(p.Statement)
		for _, ac := range criteria {
			if ac.Category != document.CategoryNegative {
				continue
			}
			if overlap(tokens, keyTokens(ac.Text)) >= 1 {
				matched[i] = true
				break
			}
		}
	}
	return matched
}

// checkLeafCoverage flags decision-tree leaf outcomes that no
// acceptance criterion references.
func checkLeafCoverage(res *Result, doc *document.Document, criteria []document.AcceptanceCriterion) {
	for _, outcome := range doc.LeafOutcomes() {
		tokens := keyTokens(outcome)
		if len(tokens) == 0 {
			continue
		}
		covered := false
		for _, ac := range criteria {
			if overlap(tokens, keyTokens(ac.Text)) >= 1 {
				covered = true
				break
			}
		}
		if !covered {
			res.add("Decision Tree", SeverityWarn,
				"leaf outcome %q is not referenced by any acceptance criterion", clip(outcome))
		}
	}
}

// checkFileReferences flags file entries that reference no requirement
// or prohibition.
func checkFileReferences(res *Result, doc *document.Document, requirements []string, prohibitions []document.Prohibition) {
	for _, entry := range doc.FileEntries() {
		tokens := keyTokens(entry)
		referenced := false
		for _, r := range requirements {
			if overlap(tokens, keyTokens(r)) >= 1 {
				referenced = true
				break
			}
		}
		if !referenced {
			for _, p := range prohibitions {
				if overlap(tokens, keyTokens(p.Statement)) >= 1 {
					referenced = true
					break
				}
			}
		}
		if !referenced {
			res.add("Files to Create/Modify", SeverityInfo,
				"file entry %q references no requirement or prohibition", clip(entry))
		}
	}
}

// checkContradictions flags requirement/prohibition pairs that describe
// the same action with opposite polarity. Contradictions are reported,
// never auto-resolved.
func checkContradictions(res *Result, requirements []string, prohibitions []document.Prohibition) {
	for _, r := range requirements {
		rTokens := keyTokens(r)
		rNeg := hasNegationCue(r)
		for _, p := range prohibitions {
			pNeg := hasNegationCue(p.Statement)
			if rNeg == pNeg {
				continue
			}
			if overlap(rTokens, keyTokens(p.Statement)) >= 2 {
				res.add("Requirements", SeverityWarn,
					"requirement %q contradicts prohibition %q", clip(r), clip(p.Statement))
			}
		}
	}
}

// checkScopeLeakage flags scope language outside the out-of-scope and
// deferred sections.
func checkScopeLeakage(res *Result, doc *document.Document) {
	for _, s := range doc.Sections() {
		if s.Key == document.KeyOutOfScope || s.Key == document.KeyDeferred {
			continue
		}
		for _, b := range s.Bullets() {
			norm := document.Normalize(b)
			if strings.Contains(norm, "out of scope") || strings.Contains(norm, "deferred") {
				res.add(s.Title, SeverityWarn, "scope leakage in bullet %q", clip(b))
			}
		}
	}
}

// checkConventions flags "Don't use" conventions with no matching
// prohibition. Self-repair reads these findings when strengthening the
// constraints axis.
func checkConventions(res *Result, prohibitions []document.Prohibition, dontUse []string) {
	for _, entry := range dontUse {
		norm := document.Normalize(entry)
		found := false
		for _, p := range prohibitions {
			if strings.Contains(document.Normalize(p.Statement), norm) {
				found = true
				break
			}
		}
		if !found {
			res.add("Prohibitions", SeverityWarn,
				"convention %q has no matching prohibition", clip(entry))
		}
	}
}

func (r *Result) add(section string, sev Severity, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Section:  section,
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
	})
}

// clip shortens long statements for finding messages.
func clip(s string) string {
	const max = 60
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

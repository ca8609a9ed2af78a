// Package document provides the section extractor and document model for
// specification documents.
package document

import (
	"strings"
)

// Key identifies a recognized section of a specification document.
type Key string

// Canonical section keys. These thirteen count toward completeness.
const (
	KeyOverview       Key = "overview"
	KeyScope          Key = "scope"
	KeyCodebase       Key = "codebase_context"
	KeyRequirements   Key = "requirements"
	KeyProhibitions   Key = "prohibitions"
	KeyDecisionTree   Key = "decision_tree"
	KeyDomainRules    Key = "domain_rules"
	KeyEscalation     Key = "escalation"
	KeyDataModel      Key = "data_model"
	KeyAPIContract    Key = "api_contract"
	KeyAcceptance     Key = "acceptance_criteria"
	KeyFiles          Key = "files"
	KeyObservability  Key = "observability"
)

// Recognized but non-canonical keys. They are parsed and cross-checked
// but do not count toward completeness. In/Out/Deferred roll up into
// the scope section for the completeness count.
const (
	KeyInScope       Key = "in_scope"
	KeyOutOfScope    Key = "out_of_scope"
	KeyDeferred      Key = "deferred"
	KeyReference     Key = "reference_implementation"
	KeyKeyDecisions  Key = "key_decisions"
	KeyOpenQuestions Key = "open_questions"
)

// Canonical lists the sections counted by the completeness axis, in
// template order.
var Canonical = []Key{
	KeyOverview,
	KeyScope,
	KeyCodebase,
	KeyRequirements,
	KeyProhibitions,
	KeyDecisionTree,
	KeyDomainRules,
	KeyEscalation,
	KeyDataModel,
	KeyAPIContract,
	KeyAcceptance,
	KeyFiles,
	KeyObservability,
}

// Titles maps keys to their display headings.
var Titles = map[Key]string{
	KeyOverview:      "Overview",
	KeyScope:         "Scope",
	KeyInScope:       "In Scope",
	KeyOutOfScope:    "Out of Scope",
	KeyDeferred:      "Deferred",
	KeyReference:     "Reference Implementation",
	KeyCodebase:      "Codebase Context",
	KeyRequirements:  "Requirements",
	KeyProhibitions:  "Prohibitions",
	KeyDecisionTree:  "Decision Tree",
	KeyDomainRules:   "Domain Rules & Exceptions",
	KeyEscalation:    "Escalation & Guardrails",
	KeyDataModel:     "Data Model",
	KeyAPIContract:   "API Contract",
	KeyAcceptance:    "Acceptance Criteria",
	KeyFiles:         "Files to Create/Modify",
	KeyObservability: "Observability",
	KeyKeyDecisions:  "Key Decisions",
	KeyOpenQuestions: "Open Questions",
}

// Section is one named region of the document. Body holds the raw text
// between this heading and the next; derived views (bullets, rows,
// prohibitions) are computed from Body on demand so that mutations stay
// consistent.
type Section struct {
	Key     Key
	Title   string
	Body    string
	Present bool
}

// Bullets returns the bullet items of the section body.
func (s *Section) Bullets() []string {
	return bullets(s.Body)
}

// Empty reports whether the section has no content beyond whitespace.
func (s *Section) Empty() bool {
	return strings.TrimSpace(s.Body) == ""
}

// Document is the structured model of one specification document. It is
// owned by a single evaluation; the only mutation path is the bounded
// self-repair pass.
type Document struct {
	preamble string
	order    []*Section
	index    map[Key]*Section
}

// Section returns the section for key, or an empty placeholder when the
// document does not contain it. The placeholder is stable: repeated
// calls return the same value.
func (d *Document) Section(k Key) *Section {
	if s, ok := d.index[k]; ok {
		return s
	}
	s := &Section{Key: k, Title: Titles[k]}
	d.index[k] = s
	return s
}

// Sections returns all parsed sections in document order.
func (d *Document) Sections() []*Section {
	return d.order
}

// Stub inserts a previously missing section with the given body,
// appending it to the document order. Used by self-repair only.
func (d *Document) Stub(k Key, body string) {
	s := d.Section(k)
	if s.Present {
		return
	}
	s.Present = true
	s.Body = body
	d.order = append(d.order, s)
}

// Complete reports whether the canonical section is present with
// non-empty content. The scope section counts when either the umbrella
// heading or any of its In/Out/Deferred subsections has content.
func (d *Document) Complete(k Key) bool {
	if k == KeyScope {
		for _, sub := range []Key{KeyScope, KeyInScope, KeyOutOfScope, KeyDeferred} {
			if s, ok := d.index[sub]; ok && s.Present && !s.Empty() {
				return true
			}
		}
		return false
	}
	s, ok := d.index[k]
	return ok && s.Present && !s.Empty()
}

// CompleteCount returns how many of the canonical sections are present
// and non-empty.
func (d *Document) CompleteCount() int {
	n := 0
	for _, k := range Canonical {
		if d.Complete(k) {
			n++
		}
	}
	return n
}

// Text reassembles the document from its current sections. After a
// self-repair mutation this reflects the mutated content.
func (d *Document) Text() string {
	var b strings.Builder
	if d.preamble != "" {
		b.WriteString(d.preamble)
		if !strings.HasSuffix(d.preamble, "\n") {
			b.WriteString("\n")
		}
	}
	for _, s := range d.order {
		b.WriteString("## ")
		b.WriteString(s.Title)
		b.WriteString("\n\n")
		body := strings.Trim(s.Body, "\n")
		if body != "" {
			b.WriteString(body)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Markers returns the payloads of every clarification marker in the
// document, one entry per occurrence.
func (d *Document) Markers() []string {
	var out []string
	for _, m := range markerRe.FindAllStringSubmatch(d.Text(), -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// OutOfScopeBullets returns the bullets of the out-of-scope region,
// falling back to the scope umbrella when no dedicated subsection
// exists.
func (d *Document) OutOfScopeBullets() []string {
	if s, ok := d.index[KeyOutOfScope]; ok && s.Present {
		return s.Bullets()
	}
	return nil
}

// Requirements returns the requirement bullets.
func (d *Document) Requirements() []string {
	return d.Section(KeyRequirements).Bullets()
}

// FileEntries returns the bullets of the files section.
func (d *Document) FileEntries() []string {
	return d.Section(KeyFiles).Bullets()
}

// DomainRuleRows returns the table rows of the domain rules section,
// separator rows excluded.
func (d *Document) DomainRuleRows() [][]string {
	return tableRows(d.Section(KeyDomainRules).Body)
}

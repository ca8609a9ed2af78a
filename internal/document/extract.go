package document

import (
	"regexp"
	"strings"
)

var headingRe = regexp.MustCompile(`^\s{0,3}#{1,6}\s+(.+?)\s*$`)

// headingAliases maps normalized heading labels to section keys. Order
// matters: more specific labels are listed before generic ones so that
// "out of scope" never resolves to the scope umbrella.
var headingAliases = []struct {
	label string
	key   Key
}{
	{"out of scope", KeyOutOfScope},
	{"out-of-scope", KeyOutOfScope},
	{"non-goals", KeyOutOfScope},
	{"in scope", KeyInScope},
	{"in-scope", KeyInScope},
	{"deferred", KeyDeferred},
	{"scope", KeyScope},
	{"overview", KeyOverview},
	{"reference implementation", KeyReference},
	{"codebase context", KeyCodebase},
	{"requirements", KeyRequirements},
	{"prohibitions", KeyProhibitions},
	{"decision tree", KeyDecisionTree},
	{"domain rules", KeyDomainRules},
	{"escalation", KeyEscalation},
	{"guardrails", KeyEscalation},
	{"data model", KeyDataModel},
	{"api contract", KeyAPIContract},
	{"acceptance criteria", KeyAcceptance},
	{"files to create", KeyFiles},
	{"files to modify", KeyFiles},
	{"files", KeyFiles},
	{"observability", KeyObservability},
	{"key decisions", KeyKeyDecisions},
	{"open questions", KeyOpenQuestions},
}

// Parse builds a document model from raw text. Parsing is tolerant by
// contract: unrecognized headings stay inside the enclosing section
// body, missing sections become empty placeholders, and no input ever
// produces an error. A partially completed document must still be
// gradable.
func Parse(text string) *Document {
	d := &Document{index: map[Key]*Section{}}

	var cur *Section
	var buf []string

	flush := func() {
		body := strings.Join(buf, "\n")
		if cur == nil {
			d.preamble = body
		} else {
			if cur.Body != "" {
				cur.Body += "\n" + body
			} else {
				cur.Body = body
			}
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			if key, ok := classifyHeading(m[1]); ok {
				flush()
				if existing, present := d.index[key]; present && existing.Present {
					// Duplicate heading: fold content into the first.
					cur = existing
					continue
				}
				cur = d.Section(key)
				cur.Present = true
				cur.Title = strings.TrimSpace(m[1])
				d.order = append(d.order, cur)
				continue
			}
		}
		buf = append(buf, line)
	}
	flush()

	return d
}

// classifyHeading resolves a raw heading to a section key.
func classifyHeading(heading string) (Key, bool) {
	label := normalizeHeading(heading)
	if label == "" {
		return "", false
	}
	for _, a := range headingAliases {
		if label == a.label || containsWord(label, a.label) {
			return a.key, true
		}
	}
	return "", false
}

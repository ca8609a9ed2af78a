package document

import (
	"regexp"
	"strings"
)

// Prohibition is one "never do X" statement from the prohibitions
// section, with its optional rationale and linked negative-test
// reference.
type Prohibition struct {
	Statement string
	Rationale string
	TestRef   string
}

var testRefRe = regexp.MustCompile(`(?i)\(?\s*test:\s*([^)\n]+)\)?`)

// HasRationale reports whether the prohibition carries a rationale
// clause. The clause is marked by an em dash or the word "because".
func (p Prohibition) HasRationale() bool {
	return p.Rationale != ""
}

// Prohibitions parses the prohibition bullets of the document.
func (d *Document) Prohibitions() []Prohibition {
	var out []Prohibition
	for _, b := range d.Section(KeyProhibitions).Bullets() {
		out = append(out, parseProhibition(b))
	}
	return out
}

func parseProhibition(text string) Prohibition {
	p := Prohibition{Statement: text}

	if m := testRefRe.FindStringSubmatch(text); m != nil {
		p.TestRef = strings.TrimSpace(m[1])
		p.Statement = strings.TrimSpace(strings.Replace(p.Statement, m[0], "", 1))
	}

	if i := strings.Index(p.Statement, "—"); i >= 0 { // em dash
		p.Rationale = strings.TrimSpace(p.Statement[i+len("—"):])
		p.Statement = strings.TrimSpace(p.Statement[:i])
		return p
	}
	lower := strings.ToLower(p.Statement)
	if i := strings.Index(lower, " because "); i >= 0 {
		p.Rationale = strings.TrimSpace(p.Statement[i+len(" because "):])
		p.Statement = strings.TrimSpace(p.Statement[:i])
	}
	return p
}

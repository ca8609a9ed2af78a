package health

import (
	"regexp"
	"strings"

	"specvet/internal/audit"
	"specvet/internal/config"
	"specvet/internal/document"
)

// env precomputes the derived views shared by the sub-check formulas.
// Sub-checks read it, never write it, which keeps them order-invariant.
type env struct {
	doc          *document.Document
	audited      audit.Result
	scoring      config.Scoring
	prohibitions []document.Prohibition
	criteria     []document.AcceptanceCriterion
}

func newEnv(doc *document.Document, audited audit.Result, scoring config.Scoring) *env {
	return &env{
		doc:          doc,
		audited:      audited,
		scoring:      scoring,
		prohibitions: doc.Prohibitions(),
		criteria:     doc.AcceptanceCriteria(),
	}
}

// subChecks is the full registry: five completeness, four clarity, five
// constraints, five specificity. Each entry is independently testable.
var subChecks = []struct {
	id   string
	axis Axis
	fn   func(*env) float64
}{
	{"C1", AxisCompleteness, checkC1},
	{"C2", AxisCompleteness, checkC2},
	{"C3", AxisCompleteness, checkC3},
	{"C4", AxisCompleteness, checkC4},
	{"C5", AxisCompleteness, checkC5},
	{"L1", AxisClarity, checkL1},
	{"L2", AxisClarity, checkL2},
	{"L3", AxisClarity, checkL3},
	{"L4", AxisClarity, checkL4},
	{"N1", AxisConstraints, checkN1},
	{"N2", AxisConstraints, checkN2},
	{"N3", AxisConstraints, checkN3},
	{"N4", AxisConstraints, checkN4},
	{"N5", AxisConstraints, checkN5},
	{"S1", AxisSpecificity, checkS1},
	{"S2", AxisSpecificity, checkS2},
	{"S3", AxisSpecificity, checkS3},
	{"S4", AxisSpecificity, checkS4},
	{"S5", AxisSpecificity, checkS5},
}

// checkC1: share of canonical sections present and non-empty.
func checkC1(e *env) float64 {
	return float64(e.doc.CompleteCount()) / float64(len(document.Canonical))
}

var (
	entityIntroRe = regexp.MustCompile(`^(?:#{1,6}\s+\S|\*\*[^*]+\*\*:?\s*$|[-*+]\s+\S|\w[\w &/]*:\s*$)`)
	propertyRe    = regexp.MustCompile(`^\s{2,}(?:[-*+]\s+\S|\w+\s*:)`)
)

// checkC2: data model has at least one entity block with a listed
// property. An entity block is an intro line (heading, bold name, or
// top-level bullet) followed by an indented property line, or a table
// with at least one multi-column row.
func checkC2(e *env) float64 {
	body := e.doc.Section(document.KeyDataModel).Body
	for _, row := range document.TableRows(body) {
		if len(row) >= 2 {
			return 1
		}
	}
	introSeen := false
	for _, line := range strings.Split(body, "\n") {
		if propertyRe.MatchString(line) {
			if introSeen {
				return 1
			}
			continue
		}
		if entityIntroRe.MatchString(line) {
			introSeen = true
		}
	}
	return 0
}

var methodPathRe = regexp.MustCompile(`(?i)\b(get|post|put|patch|delete|head|options)\s+/\S*`)

// checkC3: API contract has a "METHOD path" token, or "N/A" with a
// reason clause on the same line.
func checkC3(e *env) float64 {
	body := e.doc.Section(document.KeyAPIContract).Body
	if methodPathRe.MatchString(body) {
		return 1
	}
	for _, line := range strings.Split(body, "\n") {
		norm := document.Normalize(line)
		idx := strings.Index(norm, "n/a")
		if idx < 0 {
			continue
		}
		reason := strings.Trim(norm[idx+len("n/a"):], " —:-,.")
		if len(reason) >= 3 {
			return 1
		}
	}
	return 0
}

var pathTokenRe = regexp.MustCompile(`(?:[\w~.-]+/)+[\w.-]+\.\w+|(?:[\w~.-]+/){2,}[\w.-]*`)

// checkC4: files section has at least one path-like bullet.
func checkC4(e *env) float64 {
	for _, b := range e.doc.FileEntries() {
		if strings.Contains(b, "/") && pathTokenRe.MatchString(b) {
			return 1
		}
	}
	return 0
}

// checkC5: reference implementation path is non-placeholder.
func checkC5(e *env) float64 {
	ref := e.doc.Section(document.KeyReference)
	if ref.Empty() {
		return 0
	}
	if strings.Contains(ref.Body, "{") || strings.Contains(strings.ToUpper(ref.Body), "TBD") {
		return 0
	}
	return 1
}

// checkL1: weasel-phrase penalty, 0.1 per occurrence anywhere in the
// document. Phrases already wrapped in a clarification marker are the
// marker penalty's business, not this one's.
func checkL1(e *env) float64 {
	text := document.Normalize(document.StripMarkers(e.doc.Text()))
	count := 0
	for _, phrase := range e.scoring.WeaselPhrases {
		count += countWord(text, document.Normalize(phrase))
	}
	return 1 - 0.1*float64(count)
}

// checkL2: clarification-marker penalty, 0.15 per marker.
func checkL2(e *env) float64 {
	return 1 - 0.15*float64(len(e.doc.Markers()))
}

// requirementPrefixes are skipped before the leading verb is read.
var requirementPrefixes = map[string]bool{
	"a": true, "an": true, "always": true, "app": true, "application": true,
	"engine": true, "it": true, "must": true, "service": true, "shall": true,
	"should": true, "system": true, "the": true, "tool": true, "will": true,
}

// checkL3: no requirement leads with a banned vague verb.
func checkL3(e *env) float64 {
	for _, r := range e.doc.Requirements() {
		verb := leadingVerb(r)
		for _, banned := range e.scoring.VagueVerbs {
			b := document.Normalize(banned)
			if verb == b || verb == b+"s" || verb == b+"es" || verb == b+"d" {
				return 0
			}
		}
	}
	return 1
}

func leadingVerb(text string) string {
	for _, tok := range strings.Fields(document.Normalize(text)) {
		tok = strings.Trim(tok, ".,;:()[]")
		if tok == "" || requirementPrefixes[tok] {
			continue
		}
		return tok
	}
	return ""
}

// checkL4: decision tree has at least one real branch condition.
func checkL4(e *env) float64 {
	for _, cond := range e.doc.BranchConditions() {
		if document.Normalize(cond) != "it depends" {
			return 1
		}
	}
	return 0
}

// checkN1: prohibition volume, saturating at five.
func checkN1(e *env) float64 {
	n := float64(len(e.prohibitions)) / 5
	if n > 1 {
		return 1
	}
	return n
}

// checkN2: share of prohibitions with a rationale clause.
func checkN2(e *env) float64 {
	if len(e.prohibitions) == 0 {
		return 0
	}
	n := 0
	for _, p := range e.prohibitions {
		if p.HasRationale() {
			n++
		}
	}
	return float64(n) / float64(len(e.prohibitions))
}

// checkN3: share of prohibitions matched to a negative test by pass 1.
func checkN3(e *env) float64 {
	if len(e.prohibitions) == 0 {
		return 0
	}
	return float64(e.audited.MatchedProhibitions()) / float64(len(e.prohibitions))
}

// checkN4: out-of-scope list has at least two bullets.
func checkN4(e *env) float64 {
	if len(e.doc.OutOfScopeBullets()) >= 2 {
		return 1
	}
	return 0
}

// checkN5: escalation section has both a "fail if" and a "queue" or
// "review if" entry; half credit for exactly one.
func checkN5(e *env) float64 {
	body := document.Normalize(e.doc.Section(document.KeyEscalation).Body)
	failIf := strings.Contains(body, "fail if")
	queue := strings.Contains(body, "queue") || strings.Contains(body, "review if")
	switch {
	case failIf && queue:
		return 1
	case failIf || queue:
		return 0.5
	default:
		return 0
	}
}

// checkS1: share of acceptance criteria with a concrete literal.
func checkS1(e *env) float64 {
	if len(e.criteria) == 0 {
		return 0
	}
	n := 0
	for _, ac := range e.criteria {
		if ac.Concrete {
			n++
		}
	}
	return float64(n) / float64(len(e.criteria))
}

var thresholdTokenRe = regexp.MustCompile(`\d|[%<>\x{2264}\x{2265}]`)

// checkS2: share of domain-rule table rows with a numeric or threshold
// token. The header row is excluded when data rows exist.
func checkS2(e *env) float64 {
	rows := e.doc.DomainRuleRows()
	if len(rows) >= 2 {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return 0
	}
	n := 0
	for _, row := range rows {
		if thresholdTokenRe.MatchString(strings.Join(row, " ")) {
			n++
		}
	}
	return float64(n) / float64(len(rows))
}

var (
	logLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal"}
	metricRe  = regexp.MustCompile(`\b[a-z][a-z0-9]*(?:[._][a-z0-9]+){1,}\b|\b(?:counter|gauge|histogram)\b`)
)

// checkS3: observability names a log level (0.5) and a metric
// identifier pattern (0.5).
func checkS3(e *env) float64 {
	body := document.Normalize(e.doc.Section(document.KeyObservability).Body)
	score := 0.0
	for _, level := range logLevels {
		if countWord(body, level) > 0 {
			score = 0.5
			break
		}
	}
	if metricRe.MatchString(body) {
		score += 0.5
	}
	return score
}

var (
	statusCodeRe = regexp.MustCompile(`\b[1-5]\d{2}\b`)
	errIdentRe   = regexp.MustCompile(`\berr[a-z0-9_]+\b`)
	errKindRe    = regexp.MustCompile(`\b[a-z]+(?:error|exception)\b|\berror (?:kind|type|code)s?\b`)
	errorLineRe  = regexp.MustCompile(`\b(?:error|errors|fail|fails|failure|status)\b`)

	// genericErrWords are plain English uses of "error" that do not name
	// a distinct error kind.
	genericErrWords = map[string]bool{
		"error": true, "errors": true, "errored": true, "erroring": true,
	}
)

// checkS4: error-handling content names a status code or a distinct
// error kind. Only lines that talk about errors, failures, or statuses
// are considered error-handling content.
func checkS4(e *env) float64 {
	for _, line := range strings.Split(e.doc.Text(), "\n") {
		norm := document.Normalize(line)
		if !errorLineRe.MatchString(norm) {
			continue
		}
		if statusCodeRe.MatchString(norm) || namesErrorKind(norm) {
			return 1
		}
	}
	return 0
}

func namesErrorKind(norm string) bool {
	if errKindRe.MatchString(norm) {
		return true
	}
	for _, m := range errIdentRe.FindAllString(norm, -1) {
		if !genericErrWords[m] {
			return true
		}
	}
	return false
}

var (
	unitNumberRe = regexp.MustCompile(`\b\d+(?:\.\d+)?\s*(?:ms|msec|s|sec|secs|seconds|min|mins|minutes|h|hr|hrs|hours|d|days|%|kb|mb|gb|tb|rps|qps)\b`)
	limitWordRe  = regexp.MustCompile(`\b(?:timeout|limit|limits|max|maximum|min|minimum|threshold|budget|retries|retry|at most|at least|within|up to|no more than)\b`)
)

// checkS5: some numeric threshold, timeout, or limit token appears
// anywhere in the document.
func checkS5(e *env) float64 {
	for _, line := range strings.Split(e.doc.Text(), "\n") {
		norm := document.Normalize(line)
		if unitNumberRe.MatchString(norm) {
			return 1
		}
		if limitWordRe.MatchString(norm) && strings.ContainsAny(norm, "0123456789") {
			return 1
		}
	}
	return 0
}

// countWord counts word-bounded occurrences of needle in haystack.
// Both must already be normalized.
func countWord(haystack, needle string) int {
	if needle == "" {
		return 0
	}
	count := 0
	for from := 0; ; {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return count
		}
		i += from
		end := i + len(needle)
		startOK := i == 0 || !wordByte(haystack[i-1])
		endOK := end == len(haystack) || !wordByte(haystack[end])
		if startOK && endOK {
			count++
		}
		from = i + 1
	}
}

func wordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

package health

import "math"

// Verdict is the final categorical outcome of an evaluation.
type Verdict string

// Verdicts, from strongest to the catch-all.
const (
	VerdictShipIt          Verdict = "SHIP_IT"
	VerdictAlmost          Verdict = "ALMOST"
	VerdictDraft           Verdict = "DRAFT"
	VerdictVague           Verdict = "VAGUE"
	VerdictUnbounded       Verdict = "UNBOUNDED"
	VerdictOverConstrained Verdict = "OVER_CONSTRAINED"
	VerdictSketch          Verdict = "SKETCH"
)

// AxisScores holds the four raw axis scores.
type AxisScores struct {
	Completeness float64
	Clarity      float64
	Constraints  float64
	Specificity  float64
}

func (a AxisScores) values() [4]float64 {
	return [4]float64{a.Completeness, a.Clarity, a.Constraints, a.Specificity}
}

func (a AxisScores) min() float64 {
	m := a.Completeness
	for _, v := range a.values() {
		if v < m {
			m = v
		}
	}
	return m
}

func (a AxisScores) countAtLeast(threshold float64) int {
	n := 0
	for _, v := range a.values() {
		if v >= threshold {
			n++
		}
	}
	return n
}

// Balance measures how evenly the four axis scores are distributed:
// 1 minus the coefficient of variation, clamped to [0,1]. A zero mean
// would leave the variance ratio undefined, so it maps to 0.
func Balance(a AxisScores) float64 {
	vals := a.values()
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= 4
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= 4
	return clamp01(1 - math.Sqrt(variance)/mean)
}

// Rule is one row of the verdict table.
type Rule struct {
	Verdict Verdict
	When    func(a AxisScores, balance float64) bool
}

// VerdictTable is the ordered, total decision table. It is evaluated
// top to bottom and the first match wins; the order is a load-bearing
// contract, since a document can satisfy several rows at once. The
// final row always matches.
var VerdictTable = []Rule{
	{VerdictShipIt, func(a AxisScores, balance float64) bool {
		return a.min() >= 0.75 && balance >= 0.90
	}},
	{VerdictAlmost, func(a AxisScores, balance float64) bool {
		return a.min() >= 0.50 && balance >= 0.75 && a.countAtLeast(0.75) >= 3
	}},
	{VerdictDraft, func(a AxisScores, balance float64) bool {
		return balance >= 0.60 && a.countAtLeast(0.50) >= 2
	}},
	{VerdictVague, func(a AxisScores, balance float64) bool {
		return a.Completeness >= 0.70 && a.Clarity < 0.50
	}},
	{VerdictUnbounded, func(a AxisScores, balance float64) bool {
		return a.Completeness >= 0.70 && a.Clarity >= 0.60 && a.Constraints < 0.40
	}},
	{VerdictOverConstrained, func(a AxisScores, balance float64) bool {
		return a.Constraints >= 0.80 && a.Completeness < 0.50
	}},
	{VerdictSketch, func(a AxisScores, balance float64) bool {
		return true
	}},
}

// Resolve walks the verdict table and returns the first matching row.
// Comparisons use raw axis scores, never rounded ones.
func Resolve(a AxisScores, balance float64) Verdict {
	for _, rule := range VerdictTable {
		if rule.When(a, balance) {
			return rule.Verdict
		}
	}
	return VerdictSketch
}

// Weak reports whether a verdict triggers the self-repair pass.
func Weak(v Verdict) bool {
	return v == VerdictSketch || v == VerdictVague
}

// Passing reports whether a verdict is acceptable for gating purposes.
func Passing(v Verdict) bool {
	switch v {
	case VerdictShipIt, VerdictAlmost, VerdictDraft:
		return true
	default:
		return false
	}
}

// Package health computes the mechanistic quality score of a
// specification document: nineteen sub-checks across four axes, the
// balance measure, and the final verdict. Every formula is a pure
// function of the document; evaluation order never affects results.
package health

import (
	"sort"

	"specvet/internal/audit"
	"specvet/internal/config"
	"specvet/internal/document"
)

// Axis is one of the four top-level quality dimensions.
type Axis string

// The four axes.
const (
	AxisCompleteness Axis = "completeness"
	AxisClarity      Axis = "clarity"
	AxisConstraints  Axis = "constraints"
	AxisSpecificity  Axis = "specificity"
)

// AxisOrder fixes the reporting order and the tie-break order used when
// self-repair picks the weakest axis.
var AxisOrder = []Axis{AxisCompleteness, AxisClarity, AxisConstraints, AxisSpecificity}

// SubCheck is one atomic measurement contributing to an axis score.
// Scores are always in [0,1].
type SubCheck struct {
	ID    string  `json:"id"`
	Axis  Axis    `json:"axis"`
	Score float64 `json:"score"`
}

// Result is the outcome of one scoring pass. Axis scores and balance
// are raw (unrounded); rounding happens only at report time so that
// threshold comparisons never flap at boundaries.
type Result struct {
	SubChecks []SubCheck
	Axes      map[Axis]float64
	Balance   float64
	Verdict   Verdict
}

// AxisScores returns the result's axis scores as a value for verdict
// resolution.
func (r Result) AxisScores() AxisScores {
	return AxisScores{
		Completeness: r.Axes[AxisCompleteness],
		Clarity:      r.Axes[AxisClarity],
		Constraints:  r.Axes[AxisConstraints],
		Specificity:  r.Axes[AxisSpecificity],
	}
}

// WeakestAxis returns the lowest-scoring axis, ties resolved by axis
// order.
func (r Result) WeakestAxis() Axis {
	weakest := AxisOrder[0]
	for _, a := range AxisOrder[1:] {
		if r.Axes[a] < r.Axes[weakest] {
			weakest = a
		}
	}
	return weakest
}

// Evaluate runs all sub-checks against the document and aggregates
// them. audited carries the pass-1 matching consumed by N3; scoring
// carries the externalized phrase and verb lists.
func Evaluate(doc *document.Document, audited audit.Result, scoring config.Scoring) Result {
	e := newEnv(doc, audited, scoring)

	res := Result{Axes: map[Axis]float64{}}
	counts := map[Axis]int{}
	for _, c := range subChecks {
		score := clamp01(c.fn(e))
		res.SubChecks = append(res.SubChecks, SubCheck{ID: c.id, Axis: c.axis, Score: score})
		res.Axes[c.axis] += score
		counts[c.axis]++
	}
	for _, a := range AxisOrder {
		if counts[a] > 0 {
			res.Axes[a] /= float64(counts[a])
		}
	}
	sort.Slice(res.SubChecks, func(i, j int) bool { return res.SubChecks[i].ID < res.SubChecks[j].ID })

	res.Balance = Balance(res.AxisScores())
	res.Verdict = Resolve(res.AxisScores(), res.Balance)
	return res
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Round2 rounds a score for display. Internal comparisons always use
// the raw value.
func Round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

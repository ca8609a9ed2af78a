// Package engine orchestrates one full document evaluation: section
// extraction, the consistency audit, scoring, and the bounded
// self-repair pass. One evaluation is one synchronous call; the
// document model is owned by that call and discarded afterwards.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"specvet/internal/audit"
	"specvet/internal/config"
	"specvet/internal/document"
	"specvet/internal/health"
	"specvet/internal/repair"
)

// ErrNoDocument is reported for a wholly absent input. It is distinct
// from a document whose sections are all empty, which is a valid,
// low-scoring input.
var ErrNoDocument = errors.New("no document")

// Options configures one evaluation.
type Options struct {
	// Scoring holds the phrase and verb lists. Zero value falls back to
	// the built-in defaults.
	Scoring config.Scoring
	// DontUse lists conventions-registry entries for audit check six.
	DontUse []string
}

// Report is the full outcome of one evaluation. Scores are rounded to
// two decimals here and nowhere else.
type Report struct {
	SubChecks    []health.SubCheck  `json:"sub_checks"`
	Axes         map[string]float64 `json:"axes"`
	Balance      float64            `json:"balance"`
	Verdict      health.Verdict     `json:"verdict"`
	Actionable   []string           `json:"actionable,omitempty"`
	Findings     []audit.Finding    `json:"findings,omitempty"`
	Repaired     bool               `json:"repaired"`
	RepairAction repair.Action      `json:"repair_action,omitempty"`

	// RepairedText holds the reassembled document when self-repair
	// mutated it, for the caller to persist. Not part of the wire
	// report.
	RepairedText string `json:"-"`
}

// Evaluate scores one document and returns its report. Self-repair runs
// at most once: when the first verdict is weak, the document is mutated
// and re-scored exactly once, and the second verdict is final
// regardless of outcome.
func Evaluate(text string, opts Options) (*Report, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoDocument
	}
	scoring := opts.Scoring
	if len(scoring.WeaselPhrases) == 0 && len(scoring.VagueVerbs) == 0 {
		scoring = config.Default().Scoring
	}

	doc := document.Parse(text)
	audited := audit.Run(doc, opts.DontUse)
	res := health.Evaluate(doc, audited, scoring)

	repaired := false
	action := repair.ActionNone
	if health.Weak(res.Verdict) {
		action = repair.Apply(doc, res, audited, scoring)
		if action != repair.ActionNone {
			audited = audit.Run(doc, opts.DontUse)
			res = health.Evaluate(doc, audited, scoring)
			repaired = true
		}
	}

	rep := &Report{
		Axes:         map[string]float64{},
		Balance:      health.Round2(res.Balance),
		Verdict:      res.Verdict,
		Findings:     audited.Findings,
		Repaired:     repaired,
		RepairAction: action,
	}
	for _, sc := range res.SubChecks {
		sc.Score = health.Round2(sc.Score)
		rep.SubChecks = append(rep.SubChecks, sc)
	}
	for axis, score := range res.Axes {
		rep.Axes[string(axis)] = health.Round2(score)
	}
	rep.Actionable = actionable(audited.Findings, 3)
	if repaired {
		rep.RepairedText = doc.Text()
	}
	return rep, nil
}

// actionable selects up to limit findings for the report summary,
// warnings before informational ones, original order preserved within
// each severity.
func actionable(findings []audit.Finding, limit int) []string {
	var out []string
	for _, sev := range []audit.Severity{audit.SeverityWarn, audit.SeverityInfo} {
		for _, f := range findings {
			if f.Severity != sev || len(out) >= limit {
				continue
			}
			out = append(out, fmt.Sprintf("%s: %s", f.Section, f.Message))
		}
	}
	return out
}

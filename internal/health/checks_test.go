package health

import (
	"testing"

	"github.com/stretchr/testify/require"

	"specvet/internal/audit"
	"specvet/internal/config"
	"specvet/internal/document"
)

// scores evaluates a document with default scoring lists and returns
// the sub-check scores by id.
func scores(t *testing.T, text string) map[string]float64 {
	t.Helper()
	doc := document.Parse(text)
	res := Evaluate(doc, audit.Run(doc, nil), config.Default().Scoring)
	m := map[string]float64{}
	for _, sc := range res.SubChecks {
		m[sc.ID] = sc.Score
	}
	require.Len(t, m, 19)
	return m
}

func TestSectionPresenceScore(t *testing.T) {
	m := scores(t, "## Overview\n\nA short summary.\n")
	require.InDelta(t, 1.0/13, m["C1"], 1e-9)

	m = scores(t, "")
	require.Zero(t, m["C1"])
}

func TestDataModelScore(t *testing.T) {
	bullets := scores(t, `## Data Model

- Settlement
  - amount: integer minor units
  - currency: ISO 4217 code
`)
	require.Equal(t, 1.0, bullets["C2"])

	table := scores(t, `## Data Model

| Entity | Field |
|--------|-------|
| Settlement | amount |
`)
	require.Equal(t, 1.0, table["C2"])

	prose := scores(t, "## Data Model\n\nEntities exist and relate to one another.\n")
	require.Zero(t, prose["C2"])
}

func TestAPIContractScore(t *testing.T) {
	endpoint := scores(t, "## API Contract\n\nPOST /settlements creates a settlement.\n")
	require.Equal(t, 1.0, endpoint["C3"])

	na := scores(t, "## API Contract\n\nN/A — internal batch job with no transport surface.\n")
	require.Equal(t, 1.0, na["C3"])

	bareNA := scores(t, "## API Contract\n\nN/A\n")
	require.Zero(t, bareNA["C3"])
}

func TestFilePathScore(t *testing.T) {
	m := scores(t, "## Files to Create/Modify\n\n- internal/capture/settlement.go\n")
	require.Equal(t, 1.0, m["C4"])

	m = scores(t, "## Files to Create/Modify\n\n- the usual places\n")
	require.Zero(t, m["C4"])
}

func TestReferencePathScore(t *testing.T) {
	m := scores(t, "## Reference Implementation\n\ninternal/capture/settlement.go\n")
	require.Equal(t, 1.0, m["C5"])

	m = scores(t, "## Reference Implementation\n\n{path to reference}\n")
	require.Zero(t, m["C5"])

	m = scores(t, "## Reference Implementation\n\nTBD\n")
	require.Zero(t, m["C5"])
}

func TestWeaselPenalty(t *testing.T) {
	m := scores(t, "## Overview\n\nScale as needed. The cache might help.\n")
	require.InDelta(t, 0.8, m["L1"], 1e-9)
}

func TestWeaselPenaltyClampsAtZero(t *testing.T) {
	m := scores(t, `## Overview

Might might might might might might. Scale as needed, flush as needed,
rotate as needed, prune as needed, compact as needed, log if appropriate.
`)
	require.Zero(t, m["L1"])
}

func TestMarkerPenalty(t *testing.T) {
	m := scores(t, "## Overview\n\nPick a queue [NEEDS CLARIFICATION: which] and a region [NEEDS CLARIFICATION: where].\n")
	require.InDelta(t, 0.7, m["L2"], 1e-9)
}

func TestVagueVerbScore(t *testing.T) {
	vague := scores(t, "## Requirements\n\n- The system must handle requests.\n")
	require.Zero(t, vague["L3"])

	conjugated := scores(t, "## Requirements\n\n- The service handles uploads.\n")
	require.Zero(t, conjugated["L3"])

	precise := scores(t, "## Requirements\n\n- Validate each upload against the schema.\n")
	require.Equal(t, 1.0, precise["L3"])
}

func TestBranchConditionScore(t *testing.T) {
	branched := scores(t, "## Decision Tree\n\n- Token valid? → admit\n")
	require.Equal(t, 1.0, branched["L4"])

	depends := scores(t, "## Decision Tree\n\n- it depends → escalate\n")
	require.Zero(t, depends["L4"])

	missing := scores(t, "## Overview\n\nNo tree here.\n")
	require.Zero(t, missing["L4"])
}

func TestProhibitionVolumeScore(t *testing.T) {
	three := scores(t, `## Prohibitions

- NEVER do the first thing.
- NEVER do the second thing.
- NEVER do the third thing.
`)
	require.InDelta(t, 0.6, three["N1"], 1e-9)

	seven := scores(t, `## Prohibitions

- NEVER do thing one.
- NEVER do thing two.
- NEVER do thing three.
- NEVER do thing four.
- NEVER do thing five.
- NEVER do thing six.
- NEVER do thing seven.
`)
	require.Equal(t, 1.0, seven["N1"])
}

func TestRationaleScore(t *testing.T) {
	m := scores(t, `## Prohibitions

- NEVER store plaintext passwords — because breaches expose users.
- NEVER bypass rate limiting.
`)
	require.InDelta(t, 0.5, m["N2"], 1e-9)
}

func TestNegativeTestCoverageScore(t *testing.T) {
	m := scores(t, `## Prohibitions

- NEVER store plaintext passwords.
- NEVER bypass rate limiting.

## Acceptance Criteria

- Negative: storing a plaintext password returns 400.
`)
	require.InDelta(t, 0.5, m["N3"], 1e-9)
}

func TestConstraintScoresZeroWithoutProhibitions(t *testing.T) {
	m := scores(t, "## Overview\n\nA document with no prohibitions at all.\n")
	require.Zero(t, m["N1"])
	require.Zero(t, m["N2"])
	require.Zero(t, m["N3"])
}

func TestOutOfScopeScore(t *testing.T) {
	two := scores(t, "## Out of Scope\n\n- Billing.\n- Refunds.\n")
	require.Equal(t, 1.0, two["N4"])

	one := scores(t, "## Out of Scope\n\n- Billing.\n")
	require.Zero(t, one["N4"])
}

func TestEscalationScore(t *testing.T) {
	both := scores(t, "## Escalation & Guardrails\n\n- Fail if the ledger rejects twice.\n- Queue for review if the amount is unusual.\n")
	require.Equal(t, 1.0, both["N5"])

	half := scores(t, "## Escalation & Guardrails\n\n- Queue anything unusual for manual review.\n")
	require.InDelta(t, 0.5, half["N5"], 1e-9)

	neither := scores(t, "## Escalation & Guardrails\n\n- Someone will look at problems.\n")
	require.Zero(t, neither["N5"])
}

func TestConcreteCriteriaScore(t *testing.T) {
	m := scores(t, `## Acceptance Criteria

- Login succeeds with status 200.
- Login with a bad password returns 401.
- Login behaves correctly under load.
`)
	require.InDelta(t, 2.0/3, m["S1"], 1e-9)

	empty := scores(t, "## Overview\n\nNo criteria.\n")
	require.Zero(t, empty["S1"])
}

func TestDomainRuleThresholdScore(t *testing.T) {
	withHeader := scores(t, `## Domain Rules & Exceptions

| Rule | Threshold |
|------|-----------|
| Max amount | 10000 USD |
| Manual review | whenever it looks odd |
`)
	require.InDelta(t, 0.5, withHeader["S2"], 1e-9)

	single := scores(t, "## Domain Rules & Exceptions\n\n| Max amount | 10000 USD |\n")
	require.Equal(t, 1.0, single["S2"])
}

func TestObservabilityScore(t *testing.T) {
	full := scores(t, "## Observability\n\n- Log at info level on success.\n- Emit settlement_latency_ms.\n")
	require.Equal(t, 1.0, full["S3"])

	levelOnly := scores(t, "## Observability\n\n- Log at info level on success.\n")
	require.InDelta(t, 0.5, levelOnly["S3"], 1e-9)

	vague := scores(t, "## Observability\n\n- Add good logging.\n")
	require.Zero(t, vague["S3"])
}

func TestErrorTaxonomyScore(t *testing.T) {
	code := scores(t, "## Requirements\n\n- A malformed upload fails with 422.\n")
	require.Equal(t, 1.0, code["S4"])

	kind := scores(t, "## Requirements\n\n- A malformed upload fails with ErrMalformedUpload.\n")
	require.Equal(t, 1.0, kind["S4"])

	vague := scores(t, "## Requirements\n\n- Errors are surfaced to the operator.\n")
	require.Zero(t, vague["S4"])
}

func TestNumericThresholdScore(t *testing.T) {
	unit := scores(t, "## Requirements\n\n- Respond within 200 ms.\n")
	require.Equal(t, 1.0, unit["S5"])

	limit := scores(t, "## Requirements\n\n- Retry up to 3 times on timeout.\n")
	require.Equal(t, 1.0, limit["S5"])

	none := scores(t, "## Requirements\n\n- Respond quickly.\n")
	require.Zero(t, none["S5"])
}

func TestAllScoresStayInRange(t *testing.T) {
	doc := document.Parse(`## Overview

Might might might might might might might might might might might might.
[NEEDS CLARIFICATION: a] [NEEDS CLARIFICATION: b] [NEEDS CLARIFICATION: c]
[NEEDS CLARIFICATION: d] [NEEDS CLARIFICATION: e] [NEEDS CLARIFICATION: f]
[NEEDS CLARIFICATION: g] [NEEDS CLARIFICATION: h]
`)
	res := Evaluate(doc, audit.Run(doc, nil), config.Default().Scoring)
	for _, sc := range res.SubChecks {
		require.GreaterOrEqual(t, sc.Score, 0.0, sc.ID)
		require.LessOrEqual(t, sc.Score, 1.0, sc.ID)
	}
	for _, a := range AxisOrder {
		require.GreaterOrEqual(t, res.Axes[a], 0.0)
		require.LessOrEqual(t, res.Axes[a], 1.0)
	}
}

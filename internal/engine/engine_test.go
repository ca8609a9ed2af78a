package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"specvet/internal/health"
	"specvet/internal/repair"
)

// wellFormedDoc exercises every section the scorer looks at.
const wellFormedDoc = `# Payment Capture

## Overview

The capture service settles authorized card payments against the ledger.

## Scope

### In Scope

- Settlement of authorized card payments.

### Out of Scope

- Refund orchestration.
- Chargeback workflows.

### Deferred

- Multi-currency settlement.

## Reference Implementation

internal/capture/settlement.go

## Codebase Context

- Uses the payments ledger client for postings.

## Requirements

- Settle each authorized payment within 120 seconds.
- Record every settlement in the ledger with amount and currency.
- Reject settlements above 10000 USD.

## Prohibitions

- NEVER settle an unauthorized payment — because double capture creates chargebacks.
- NEVER retry a declined settlement more than 3 times — because issuers flag repeated retries.
- NEVER log full card numbers — because PAN data is regulated.
- NEVER settle amounts above the authorization amount — because overcapture breaks reconciliation.
- NEVER skip the ledger posting — because balances would stop reconciling.
- NEVER delete settlement records — because audits require full history.

## Decision Tree

- Authorization valid?
  - Amount within authorization? → post to ledger
  - Amount above authorization? → return OVERCAPTURE_REJECTED
- Authorization expired? → return DECLINED

## Domain Rules & Exceptions

| Rule | Threshold |
|------|-----------|
| Max settlement amount | 10000 USD |
| Retry budget | 3 attempts |
| Settlement window | 120 seconds |

## Escalation & Guardrails

- Fail if the ledger rejects a posting twice.
- Queue for review if the settlement amount exceeds 5000 USD.

## Data Model

- Settlement
  - amount: integer minor units
  - currency: ISO 4217 code
  - status: SETTLED or DECLINED

## API Contract

POST /settlements creates a settlement.
GET /settlements/{id} returns one settlement.

## Acceptance Criteria

### Happy Path

- Captured payment of 100 USD settles with status SETTLED within 120 seconds.

### Negative

- Settling an unauthorized payment returns DECLINED and writes no ledger entry.
- The 4th retry of a declined settlement returns RETRY_EXHAUSTED.
- Log output for a settlement of 100 USD contains no card numbers.
- Settling 150 USD against a 100 USD authorization returns OVERCAPTURE_REJECTED.
- A settlement that skips its ledger posting fails with LEDGER_WRITE_REQUIRED.
- Deleting a settlement record returns 403.

### Edge Cases

- Settlement of exactly 10000 USD succeeds with status SETTLED.

### Resilience

- Ledger timeouts of 5 seconds trigger 3 retries before failing with 504.

## Files to Create/Modify

- internal/capture/settlement.go — settlement window and retry enforcement
- internal/capture/ledger.go — ledger posting for every settlement

## Observability

- Log at info level on settlement success and at error level on declines.
- Emit settlement_latency_ms and settlement_failures_total.
`

// partialDoc is missing its API contract, files, and observability
// sections and has a degenerate decision tree.
const partialDoc = `## Overview

The login service authenticates users against stored credentials.

## Scope

### In Scope

- Username and password login.

### Out of Scope

- Single sign-on.
- Account recovery.

## Reference Implementation

internal/auth/login.go

## Codebase Context

- Uses the session middleware for request auth.

## Requirements

- Authenticate users with salted password hashes.
- Complete login within 30 seconds.

## Prohibitions

- NEVER store plaintext passwords — because breaches expose users.
- NEVER bypass rate limiting.

## Decision Tree

- it depends → escalate to the reviewer

## Domain Rules & Exceptions

| Rule | Value |
|------|-------|
| Lockout threshold | 5 failed attempts |
| Session lifetime | until logout |

## Escalation & Guardrails

- Fail if the hash backend is unavailable.

## Data Model

- Session
  - token: opaque string
  - expires_at: timestamp

## Acceptance Criteria

### Happy Path

- User login succeeds with status 200.

### Negative

- Storing a plaintext password returns 400.

### Edge Cases

- Login with an empty password is rejected.
`

func TestEvaluateWellFormedDocument(t *testing.T) {
	rep, err := Evaluate(wellFormedDoc, Options{})
	require.NoError(t, err)

	require.Equal(t, health.VerdictShipIt, rep.Verdict)
	for _, axis := range health.AxisOrder {
		require.GreaterOrEqual(t, rep.Axes[string(axis)], 0.90, axis)
	}
	require.GreaterOrEqual(t, rep.Balance, 0.95)
	require.False(t, rep.Repaired)
	require.Equal(t, repair.ActionNone, rep.RepairAction)
	require.Empty(t, rep.RepairedText)
}

func TestEvaluatePartialDocument(t *testing.T) {
	rep, err := Evaluate(partialDoc, Options{})
	require.NoError(t, err)

	require.Contains(t, []health.Verdict{health.VerdictDraft, health.VerdictVague}, rep.Verdict)
	require.NotEqual(t, health.VerdictShipIt, rep.Verdict)
	require.NotEqual(t, health.VerdictAlmost, rep.Verdict)

	require.Equal(t, health.VerdictDraft, rep.Verdict)
	require.InDelta(t, 0.55, rep.Axes["completeness"], 0.01)
	require.InDelta(t, 0.75, rep.Axes["clarity"], 0.01)
	require.InDelta(t, 0.58, rep.Axes["constraints"], 0.01)
	require.False(t, rep.Repaired)
}

func TestEvaluateEmptyInput(t *testing.T) {
	_, err := Evaluate("", Options{})
	require.ErrorIs(t, err, ErrNoDocument)

	_, err = Evaluate("   \n\t\n", Options{})
	require.ErrorIs(t, err, ErrNoDocument)
}

func TestEvaluateWithoutProhibitions(t *testing.T) {
	rep, err := Evaluate(`## Overview

A service without a single prohibition.

## Requirements

- Serve requests within 100 ms.
`, Options{})
	require.NoError(t, err)

	byID := map[string]float64{}
	for _, sc := range rep.SubChecks {
		byID[sc.ID] = sc.Score
	}
	require.Zero(t, byID["N1"])
	require.Zero(t, byID["N2"])
	require.Zero(t, byID["N3"])
}

func TestEvaluateIsDeterministic(t *testing.T) {
	first, err := Evaluate(partialDoc, Options{})
	require.NoError(t, err)
	second, err := Evaluate(partialDoc, Options{})
	require.NoError(t, err)

	require.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEvaluateScoresStayInRange(t *testing.T) {
	for _, text := range []string{wellFormedDoc, partialDoc, "## Overview\n\nx\n"} {
		rep, err := Evaluate(text, Options{})
		require.NoError(t, err)
		for _, sc := range rep.SubChecks {
			require.GreaterOrEqual(t, sc.Score, 0.0, sc.ID)
			require.LessOrEqual(t, sc.Score, 1.0, sc.ID)
		}
		for axis, score := range rep.Axes {
			require.GreaterOrEqual(t, score, 0.0, axis)
			require.LessOrEqual(t, score, 1.0, axis)
		}
		require.GreaterOrEqual(t, rep.Balance, 0.0)
		require.LessOrEqual(t, rep.Balance, 1.0)
	}
}

func TestEvaluateRepairsWeaselHeavyDocument(t *testing.T) {
	text := weaselHeavyDoc()

	rep, err := Evaluate(text, Options{})
	require.NoError(t, err)

	require.True(t, rep.Repaired)
	require.Equal(t, repair.ActionMarkWeasels, rep.RepairAction)
	require.Contains(t, rep.RepairedText, "[NEEDS CLARIFICATION: replace")
	require.Equal(t, health.VerdictVague, rep.Verdict)
}

func TestEvaluateSkipsRepairWhenNoRemediationExists(t *testing.T) {
	// All axes are weak and constraints is weakest, but with no
	// prohibitions there is nothing to synthesize negative tests from.
	rep, err := Evaluate(`## Overview

A bare sketch of a service.

## Requirements

- Serve requests.
`, Options{})
	require.NoError(t, err)

	require.Equal(t, health.VerdictSketch, rep.Verdict)
	require.False(t, rep.Repaired)
	require.Equal(t, repair.ActionNone, rep.RepairAction)
}

func TestEvaluateConventionsSurfaceAsFindings(t *testing.T) {
	rep, err := Evaluate(partialDoc, Options{DontUse: []string{"global singletons"}})
	require.NoError(t, err)

	found := false
	for _, f := range rep.Findings {
		if f.Section == "Prohibitions" && f.Severity == "warn" {
			found = true
		}
	}
	require.True(t, found)
	require.NotEmpty(t, rep.Actionable)
	require.LessOrEqual(t, len(rep.Actionable), 3)
}

// weaselHeavyDoc builds a structurally complete document whose prose is
// saturated with hedge phrases.
func weaselHeavyDoc() string {
	return `## Overview

The importer might work, might scale, might retry, might pause, might
resume, and might recover. Flush as needed, prune as needed, and
compact as needed.

## Scope

### In Scope

- Nightly import of warehouse records.

### Out of Scope

- Real-time streaming.
- Schema migration.

## Reference Implementation

internal/importer/importer.go

## Codebase Context

- Uses the warehouse client.

## Requirements

- The system must handle imports as needed.

## Prohibitions

- NEVER import draft records — because partial rows corrupt downstream joins.
- NEVER truncate the destination table — because consumers read continuously.
- NEVER import without a snapshot — because mid-write reads tear rows.
- NEVER run a second import concurrently — because output files would interleave.
- NEVER skip the row checksum — because silent corruption propagates.

## Decision Tree

- it depends → ask the operator

## Domain Rules & Exceptions

| Rule | Value |
|------|-------|
| Manual review | whenever flagged |

## Escalation & Guardrails

- Fail if the snapshot is stale.
- Queue for review if row counts drop sharply.

## Data Model

- Record
  - checksum: hex digest

## API Contract

POST /imports starts an import.

## Acceptance Criteria

### Happy Path

- An import of 1000 records finishes with status DONE within 10 minutes.

### Negative

- Importing a draft record returns 422.
- A truncate statement against the destination table returns 403.
- An import without a snapshot fails with ErrSnapshotRequired.
- A second concurrent import returns 409.
- A row with a bad checksum is rejected with ErrChecksumMismatch.

## Files to Create/Modify

- internal/importer/importer.go — snapshot and checksum enforcement for imports

## Observability

- Log at info level per import and at error level on aborts.
- Emit import_rows_total.
`
}

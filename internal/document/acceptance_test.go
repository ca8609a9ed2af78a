package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcceptanceCriteriaSubheadCategories(t *testing.T) {
	doc := Parse(`## Acceptance Criteria

### Happy Path

- Login with valid credentials returns 200.

### Negative

- Login with a bad password returns 401.

### Edge Cases

- Login with an empty username is rejected.

### Resilience

- A session store timeout of 5 seconds triggers one retry.
`)

	criteria := doc.AcceptanceCriteria()
	require.Len(t, criteria, 4)
	require.Equal(t, CategoryHappyPath, criteria[0].Category)
	require.Equal(t, CategoryNegative, criteria[1].Category)
	require.Equal(t, CategoryEdgeCase, criteria[2].Category)
	require.Equal(t, CategoryResilience, criteria[3].Category)
}

func TestAcceptanceCriteriaPrefixLabels(t *testing.T) {
	doc := Parse(`## Acceptance Criteria

- Negative: deleting another user's session returns 403.
- [edge case] A request at exactly the rate limit succeeds.
- **Prohibition** storing a plaintext password is rejected.
- An unlabeled criterion defaults to the happy path.
`)

	criteria := doc.AcceptanceCriteria()
	require.Len(t, criteria, 4)
	require.Equal(t, CategoryNegative, criteria[0].Category)
	require.Equal(t, "deleting another user's session returns 403.", criteria[0].Text)
	require.Equal(t, CategoryEdgeCase, criteria[1].Category)
	require.Equal(t, CategoryNegative, criteria[2].Category)
	require.Equal(t, CategoryHappyPath, criteria[3].Category)
}

func TestIsConcrete(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"settles within 120 seconds", true},
		{`returns the literal value "captured"`, true},
		{"transitions to SETTLED", true},
		{"behaves correctly", false},
		{"does the right thing [NEEDS CLARIFICATION: define 400]", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, IsConcrete(tc.text), tc.text)
	}
}

func TestProhibitionRationaleForms(t *testing.T) {
	doc := Parse(`## Prohibitions

- NEVER settle an unauthorized payment — because double capture creates chargebacks.
- NEVER log full card numbers because PAN data is regulated. (test: TestNoPANInLogs)
- NEVER delete settlement records.
`)

	ps := doc.Prohibitions()
	require.Len(t, ps, 3)

	require.Equal(t, "NEVER settle an unauthorized payment", ps[0].Statement)
	require.True(t, ps[0].HasRationale())
	require.Equal(t, "because double capture creates chargebacks.", ps[0].Rationale)

	require.True(t, ps[1].HasRationale())
	require.Equal(t, "TestNoPANInLogs", ps[1].TestRef)

	require.False(t, ps[2].HasRationale())
	require.Empty(t, ps[2].TestRef)
}

func TestDecisionTreeNesting(t *testing.T) {
	doc := Parse(`## Decision Tree

- Authorization valid?
  - Amount within authorization? → post to ledger
  - Amount above authorization? → return OVERCAPTURE_REJECTED
- Authorization expired? → return DECLINED
- escalate to manual review
`)

	roots := doc.DecisionTree()
	require.Len(t, roots, 3)
	require.Len(t, roots[0].Children, 2)
	require.True(t, roots[0].Children[0].Leaf())

	outcomes := doc.LeafOutcomes()
	require.Equal(t, []string{
		"post to ledger",
		"return OVERCAPTURE_REJECTED",
		"return DECLINED",
		"escalate to manual review",
	}, outcomes)

	conditions := doc.BranchConditions()
	require.Equal(t, []string{
		"Authorization valid?",
		"Amount within authorization?",
		"Amount above authorization?",
		"Authorization expired?",
	}, conditions)
}

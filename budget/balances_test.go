package budget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pocketfold/envelope-engine/budget"
)

func TestReadCurrentBalances_SumsEnvelopesGoalsAndUnassigned(t *testing.T) {
	// GIVEN: unassigned=500, envelopes 300+200, goal 1000
	// WHEN: Reading balances
	// THEN: virtual = 500+300+200+1000 = 2000

	meta := &budget.Meta{ActualBalance: d("2000"), UnassignedCash: d("500")}
	envelopes := []budget.EnvelopeSnapshot{
		{ID: "env-1", CurrentBalance: d("300")},
		{ID: "env-2", CurrentBalance: "200"}, // string-encoded balance
	}
	goals := []budget.GoalSnapshot{
		{ID: "goal-1", CurrentAmount: d("1000")},
	}

	cb := budget.ReadCurrentBalances(meta, envelopes, goals)

	assertAmount(t, "2000", cb.ActualBalance)
	assertAmount(t, "2000", cb.VirtualBalance)
	assertAmount(t, "500", cb.UnassignedCash)
	assert.True(t, cb.Reconciled())
}

func TestReadCurrentBalances_NilMetaDefaultsToZero(t *testing.T) {
	cb := budget.ReadCurrentBalances(nil, nil, nil)

	assert.True(t, cb.ActualBalance.IsZero())
	assert.True(t, cb.VirtualBalance.IsZero())
	assert.True(t, cb.UnassignedCash.IsZero())
	assert.False(t, cb.ActualBalanceManual)
	assert.True(t, cb.Reconciled())
}

func TestReadCurrentBalances_GarbageBalancesDegradeToZero(t *testing.T) {
	// GIVEN: An envelope with an unparseable balance
	// WHEN: Reading balances
	// THEN: That envelope contributes zero; the read never fails

	envelopes := []budget.EnvelopeSnapshot{
		{ID: "env-1", CurrentBalance: "corrupt"},
		{ID: "env-2", CurrentBalance: d("100")},
	}

	cb := budget.ReadCurrentBalances(&budget.Meta{}, envelopes, nil)

	assertAmount(t, "100", cb.VirtualBalance)
}

func TestReconciled_DriftBeyondEpsilon(t *testing.T) {
	cb := budget.CurrentBalances{
		ActualBalance:  d("100.00"),
		VirtualBalance: d("100.01"),
	}
	assert.False(t, cb.Reconciled())

	cb.VirtualBalance = d("100.004")
	assert.True(t, cb.Reconciled())
}

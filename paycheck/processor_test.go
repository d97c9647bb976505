package paycheck_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketfold/envelope-engine/budget"
	"github.com/pocketfold/envelope-engine/budget/store"
	"github.com/pocketfold/envelope-engine/paycheck"
)

func TestProcessPaycheck_EndToEnd(t *testing.T) {
	// GIVEN: actual=1000, unassigned=500, two envelopes
	// WHEN: Processing a 2000 paycheck allocating 500/1200
	// THEN: The read-plan-execute pipeline lands the documented state

	ctx := context.Background()
	s := store.NewTxMemory()
	seedMeta(t, s, "1000", "500")
	seedEnvelope(t, s, "env-rent", "Rent", "0")
	seedEnvelope(t, s, "env-savings", "Savings", "0")

	p := paycheck.NewProcessor(s, nil, nil)

	record, err := p.ProcessPaycheck(ctx, budget.PaycheckInput{
		Amount: d("2000"),
		Mode:   budget.ModeAllocate,
		EnvelopeAllocations: []budget.Allocation{
			{EnvelopeID: "env-rent", EnvelopeName: "Rent", Amount: d("500")},
			{EnvelopeID: "env-savings", EnvelopeName: "Savings", Amount: d("1200")},
		},
		PayerName: "Acme Corp",
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	assertAmount(t, "1000", record.ActualBalanceBefore)
	assertAmount(t, "3000", record.ActualBalanceAfter)
	assertAmount(t, "500", record.UnassignedCashBefore)
	assertAmount(t, "800", record.UnassignedCashAfter)
	assert.Equal(t, "Acme Corp", record.PayerName)

	balances, err := p.ReadBalances(ctx)
	require.NoError(t, err)
	assertAmount(t, "3000", balances.ActualBalance)
	assertAmount(t, "800", balances.UnassignedCash)
	// virtual = unassigned 800 + rent 500 + savings 1200
	assertAmount(t, "2500", balances.VirtualBalance)
}

func TestProcessPaycheck_InvalidInput_NothingWritten(t *testing.T) {
	// GIVEN: Allocations exceeding the paycheck amount
	// WHEN: Processing
	// THEN: InvalidPaycheckError with the full report; state untouched

	ctx := context.Background()
	s := store.NewTxMemory()
	seedMeta(t, s, "1000", "500")
	seedEnvelope(t, s, "env-1", "Rent", "0")

	p := paycheck.NewProcessor(s, nil, nil)

	_, err := p.ProcessPaycheck(ctx, budget.PaycheckInput{
		Amount:              d("1000"),
		Mode:                budget.ModeAllocate,
		EnvelopeAllocations: []budget.Allocation{{EnvelopeID: "env-1", Amount: d("1200")}},
	})

	require.Error(t, err)
	var invalid *budget.InvalidPaycheckError
	require.ErrorAs(t, err, &invalid)
	assert.NotEmpty(t, invalid.Report.Errors)
	assert.ErrorIs(t, err, budget.ErrInvalidPaycheck)
	assert.True(t, budget.IsClientError(err))

	meta, err := s.GetMeta(ctx)
	require.NoError(t, err)
	assertAmount(t, "1000", meta.ActualBalance)
	assertAmount(t, "500", meta.UnassignedCash)

	records, err := s.ListPaychecks(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestProcessPaycheck_FirstPaycheckEver_NoMeta(t *testing.T) {
	// GIVEN: A store with no balance metadata written yet
	// WHEN: Processing a paycheck
	// THEN: Globals default to zero and the paycheck lands normally

	ctx := context.Background()
	s := store.NewTxMemory()

	p := paycheck.NewProcessor(s, nil, nil)

	record, err := p.ProcessPaycheck(ctx, budget.PaycheckInput{
		Amount: d("1500"),
		Mode:   budget.ModeLeftover,
	})
	require.NoError(t, err)

	assertAmount(t, "0", record.ActualBalanceBefore)
	assertAmount(t, "1500", record.ActualBalanceAfter)
	assertAmount(t, "1500", record.UnassignedCashAfter)
}

func TestProcessPaycheck_ConcurrentPaychecks_Serialized(t *testing.T) {
	// GIVEN: Many concurrent paychecks against one processor
	// WHEN: All complete
	// THEN: Totals equal the sum - the mutex prevents interleaved
	//       read-modify-write cycles from losing deposits

	ctx := context.Background()
	s := store.NewTxMemory()
	p := paycheck.NewProcessor(s, nil, nil)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.ProcessPaycheck(ctx, budget.PaycheckInput{
				Amount: d("100"),
				Mode:   budget.ModeLeftover,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	meta, err := s.GetMeta(ctx)
	require.NoError(t, err)
	assertAmount(t, "2000", meta.ActualBalance)
	assertAmount(t, "2000", meta.UnassignedCash)

	records, err := s.ListPaychecks(ctx)
	require.NoError(t, err)
	assert.Len(t, records, n)
}

// metaFailingStore fails GetMeta to exercise the read path.
type metaFailingStore struct {
	*store.Memory
}

func (metaFailingStore) GetMeta(context.Context) (*budget.Meta, error) {
	return nil, errors.New("meta table corrupt")
}

func TestProcessPaycheck_ReadFailure_IsFatal(t *testing.T) {
	s := &metaFailingStore{Memory: store.NewMemory()}
	p := paycheck.NewProcessor(s, nil, nil)

	_, err := p.ProcessPaycheck(context.Background(), budget.PaycheckInput{
		Amount: d("100"),
		Mode:   budget.ModeLeftover,
	})

	require.Error(t, err)
	assert.False(t, budget.IsClientError(err))
}

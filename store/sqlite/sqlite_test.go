package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketfold/envelope-engine/budget"
	"github.com/pocketfold/envelope-engine/paycheck"
	"github.com/pocketfold/envelope-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// =============================================================================
// ENVELOPES
// =============================================================================

func TestEnvelopeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveEnvelope(ctx, budget.Envelope{
		ID: "env-1", Name: "Rent", CurrentBalance: d("123.45"), CreatedAt: created,
	}))

	env, err := s.GetEnvelope(ctx, "env-1")
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.Equal(t, "Rent", env.Name)
	assert.True(t, d("123.45").Equal(env.CurrentBalance), "TEXT storage must not lose precision")
	assert.Equal(t, created, env.CreatedAt)
}

func TestGetEnvelope_MissReturnsNil(t *testing.T) {
	s := newTestStore(t)

	env, err := s.GetEnvelope(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, env)
}

func TestSetEnvelopeBalance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEnvelope(ctx, budget.Envelope{ID: "env-1", Name: "Rent"}))
	require.NoError(t, s.SetEnvelopeBalance(ctx, "env-1", d("42.01")))

	env, err := s.GetEnvelope(ctx, "env-1")
	require.NoError(t, err)
	assert.True(t, d("42.01").Equal(env.CurrentBalance))
}

func TestSetEnvelopeBalance_MissingEnvelope(t *testing.T) {
	s := newTestStore(t)

	err := s.SetEnvelopeBalance(context.Background(), "ghost", d("10"))
	assert.ErrorIs(t, err, budget.ErrEnvelopeNotFound)
}

func TestListEnvelopes_OrderedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEnvelope(ctx, budget.Envelope{ID: "e2", Name: "Zebra"}))
	require.NoError(t, s.SaveEnvelope(ctx, budget.Envelope{ID: "e1", Name: "Apple"}))

	envelopes, err := s.ListEnvelopes(ctx)
	require.NoError(t, err)
	require.Len(t, envelopes, 2)
	assert.Equal(t, "Apple", envelopes[0].Name)
	assert.Equal(t, "Zebra", envelopes[1].Name)
}

// =============================================================================
// META
// =============================================================================

func TestMeta_NilBeforeFirstWrite(t *testing.T) {
	s := newTestStore(t)

	meta, err := s.GetMeta(context.Background())
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestMeta_PartialUpdatePreservesOtherFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, u := d("100.50"), d("25")
	require.NoError(t, s.UpdateMeta(ctx, budget.MetaUpdate{ActualBalance: &a, UnassignedCash: &u}))

	manual := true
	require.NoError(t, s.UpdateMeta(ctx, budget.MetaUpdate{ActualBalanceManual: &manual}))

	meta, err := s.GetMeta(ctx)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.True(t, d("100.50").Equal(meta.ActualBalance))
	assert.True(t, d("25").Equal(meta.UnassignedCash))
	assert.True(t, meta.ActualBalanceManual)
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func TestTransactions_AppendAndFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	_, err := s.AddTransaction(ctx, budget.Transaction{
		ID: "tx-1", Type: budget.TxIncome, Amount: d("1000"),
		Payee: "Acme", PaycheckID: "pc-1", CreatedAt: now,
	})
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, budget.Transaction{
		ID: "tx-2", Type: budget.TxTransfer, Amount: d("400"),
		EnvelopeID: "env-1", PaycheckID: "pc-1", CreatedAt: now.Add(time.Second),
	})
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, budget.Transaction{
		ID: "tx-3", Type: budget.TxIncome, Amount: d("500"),
		PaycheckID: "pc-other", CreatedAt: now.Add(2 * time.Second),
	})
	require.NoError(t, err)

	all, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, budget.TransactionID("tx-1"), all[0].ID, "ledger order is creation order")

	byPaycheck, err := s.ListTransactionsByPaycheck(ctx, "pc-1")
	require.NoError(t, err)
	require.Len(t, byPaycheck, 2)
	assert.Equal(t, budget.EnvelopeID("env-1"), byPaycheck[1].EnvelopeID)
	assert.Empty(t, byPaycheck[0].EnvelopeID, "income rows carry no envelope")
}

// =============================================================================
// PAYCHECK HISTORY
// =============================================================================

func TestPaycheckRecordRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := budget.PaycheckHistoryRecord{
		ID:                   "pc-1",
		Amount:               d("2000"),
		Mode:                 budget.ModeAllocate,
		PayerName:            "Acme Corp",
		Notes:                "march salary",
		ActualBalanceBefore:  d("1000"),
		ActualBalanceAfter:   d("3000"),
		UnassignedCashBefore: d("500"),
		UnassignedCashAfter:  d("800"),
		Allocations: map[budget.EnvelopeID]decimal.Decimal{
			"env-rent":    d("500"),
			"env-savings": d("1200"),
		},
		IncomeTransactionID:    "tx-income",
		TransferTransactionIDs: []budget.TransactionID{"tx-1", "tx-2"},
		SkippedAllocations:     1,
		ProcessedAt:            time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.PutPaycheck(ctx, record))

	got, err := s.GetPaycheck(ctx, "pc-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.Mode, got.Mode)
	assert.Equal(t, record.PayerName, got.PayerName)
	assert.Equal(t, record.Notes, got.Notes)
	assert.True(t, record.Amount.Equal(got.Amount))
	assert.True(t, record.ActualBalanceAfter.Equal(got.ActualBalanceAfter))
	assert.True(t, record.UnassignedCashAfter.Equal(got.UnassignedCashAfter))
	require.Len(t, got.Allocations, 2)
	assert.True(t, d("500").Equal(got.Allocations["env-rent"]))
	assert.Equal(t, record.TransferTransactionIDs, got.TransferTransactionIDs)
	assert.Equal(t, 1, got.SkippedAllocations)
	assert.Equal(t, record.ProcessedAt, got.ProcessedAt)
}

func TestGetPaycheck_MissReturnsNil(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetPaycheck(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPaycheckRecord_EmptyLinkage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutPaycheck(ctx, budget.PaycheckHistoryRecord{
		ID:                     "pc-bare",
		Amount:                 d("100"),
		Mode:                   budget.ModeLeftover,
		PayerName:              "Unknown",
		Allocations:            map[budget.EnvelopeID]decimal.Decimal{},
		TransferTransactionIDs: []budget.TransactionID{},
		ProcessedAt:            time.Now().UTC(),
	}))

	got, err := s.GetPaycheck(ctx, "pc-bare")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.IncomeTransactionID)
	assert.NotNil(t, got.TransferTransactionIDs)
	assert.Empty(t, got.TransferTransactionIDs)
}

// =============================================================================
// TRANSACTIONAL EXECUTION
// =============================================================================

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEnvelope(ctx, budget.Envelope{
		ID: "env-1", Name: "Rent", CurrentBalance: d("100"),
	}))

	err := s.WithTx(ctx, func(txs budget.Store) error {
		if err := txs.SetEnvelopeBalance(ctx, "env-1", d("999")); err != nil {
			return err
		}
		v := d("999")
		if err := txs.UpdateMeta(ctx, budget.MetaUpdate{ActualBalance: &v}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	env, err := s.GetEnvelope(ctx, "env-1")
	require.NoError(t, err)
	assert.True(t, d("100").Equal(env.CurrentBalance))

	meta, err := s.GetMeta(ctx)
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestExecutorAgainstSQLite(t *testing.T) {
	// The full paycheck pipeline against the real store: transactions,
	// envelope deltas, metadata, and history all through SQLite.
	s := newTestStore(t)
	ctx := context.Background()

	a, u := d("1000"), d("500")
	require.NoError(t, s.UpdateMeta(ctx, budget.MetaUpdate{ActualBalance: &a, UnassignedCash: &u}))
	require.NoError(t, s.SaveEnvelope(ctx, budget.Envelope{ID: "env-rent", Name: "Rent"}))

	p := paycheck.NewProcessor(s, nil, nil)
	record, err := p.ProcessPaycheck(ctx, budget.PaycheckInput{
		Amount:              d("2000"),
		Mode:                budget.ModeAllocate,
		EnvelopeAllocations: []budget.Allocation{{EnvelopeID: "env-rent", EnvelopeName: "Rent", Amount: d("500")}},
		PayerName:           "Acme Corp",
	})
	require.NoError(t, err)

	env, err := s.GetEnvelope(ctx, "env-rent")
	require.NoError(t, err)
	assert.True(t, d("500").Equal(env.CurrentBalance))

	meta, err := s.GetMeta(ctx)
	require.NoError(t, err)
	assert.True(t, d("3000").Equal(meta.ActualBalance))
	assert.True(t, d("800").Equal(meta.UnassignedCash))

	txs, err := s.ListTransactionsByPaycheck(ctx, record.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	persisted, err := s.GetPaycheck(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, record.IncomeTransactionID, persisted.IncomeTransactionID)
}

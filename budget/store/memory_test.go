package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketfold/envelope-engine/budget"
	"github.com/pocketfold/envelope-engine/budget/store"
)

func TestMemory_SetEnvelopeBalance_MissingEnvelope(t *testing.T) {
	m := store.NewMemory()

	err := m.SetEnvelopeBalance(context.Background(), "nope", decimal.NewFromInt(10))

	assert.ErrorIs(t, err, budget.ErrEnvelopeNotFound)
}

func TestMemory_GetMeta_NilBeforeFirstWrite(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	meta, err := m.GetMeta(ctx)
	require.NoError(t, err)
	assert.Nil(t, meta)

	v := decimal.NewFromInt(100)
	require.NoError(t, m.UpdateMeta(ctx, budget.MetaUpdate{ActualBalance: &v}))

	meta, err = m.GetMeta(ctx)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.True(t, v.Equal(meta.ActualBalance))
	assert.True(t, meta.UnassignedCash.IsZero(), "untouched fields stay zero")
}

func TestMemory_UpdateMeta_PartialWrite(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	a, u := decimal.NewFromInt(100), decimal.NewFromInt(50)
	require.NoError(t, m.UpdateMeta(ctx, budget.MetaUpdate{ActualBalance: &a, UnassignedCash: &u}))

	// Update only unassigned; actual must survive.
	u2 := decimal.NewFromInt(75)
	require.NoError(t, m.UpdateMeta(ctx, budget.MetaUpdate{UnassignedCash: &u2}))

	meta, err := m.GetMeta(ctx)
	require.NoError(t, err)
	assert.True(t, a.Equal(meta.ActualBalance))
	assert.True(t, u2.Equal(meta.UnassignedCash))
}

func TestTxMemory_WithTx_RollsBackOnError(t *testing.T) {
	// GIVEN: An envelope and metadata
	// WHEN: A transaction writes both and then fails
	// THEN: Every write inside the transaction is undone

	ctx := context.Background()
	tm := store.NewTxMemory()
	require.NoError(t, tm.SaveEnvelope(ctx, budget.Envelope{
		ID: "env-1", Name: "Rent", CurrentBalance: decimal.NewFromInt(100), CreatedAt: time.Now().UTC(),
	}))

	err := tm.WithTx(ctx, func(s budget.Store) error {
		if err := s.SetEnvelopeBalance(ctx, "env-1", decimal.NewFromInt(999)); err != nil {
			return err
		}
		v := decimal.NewFromInt(999)
		if err := s.UpdateMeta(ctx, budget.MetaUpdate{ActualBalance: &v}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	env, err := tm.GetEnvelope(ctx, "env-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(env.CurrentBalance))

	meta, err := tm.GetMeta(ctx)
	require.NoError(t, err)
	assert.Nil(t, meta, "meta write must roll back to never-written")
}

func TestTxMemory_WithTx_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	tm := store.NewTxMemory()

	err := tm.WithTx(ctx, func(s budget.Store) error {
		return s.SaveEnvelope(ctx, budget.Envelope{ID: "env-1", Name: "Rent"})
	})
	require.NoError(t, err)

	env, err := tm.GetEnvelope(ctx, "env-1")
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.Equal(t, "Rent", env.Name)
}

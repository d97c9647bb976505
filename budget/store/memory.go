// Package store provides budget.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketfold/envelope-engine/budget"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu           sync.RWMutex
	envelopes    map[budget.EnvelopeID]budget.Envelope
	goals        map[budget.GoalID]budget.SavingsGoal
	transactions []budget.Transaction
	meta         *budget.Meta
	paychecks    map[budget.PaycheckID]budget.PaycheckHistoryRecord
}

func NewMemory() *Memory {
	return &Memory{
		envelopes: make(map[budget.EnvelopeID]budget.Envelope),
		goals:     make(map[budget.GoalID]budget.SavingsGoal),
		paychecks: make(map[budget.PaycheckID]budget.PaycheckHistoryRecord),
	}
}

// =============================================================================
// ENVELOPES
// =============================================================================

func (m *Memory) GetEnvelope(_ context.Context, id budget.EnvelopeID) (*budget.Envelope, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getEnvelopeLocked(id), nil
}

func (m *Memory) getEnvelopeLocked(id budget.EnvelopeID) *budget.Envelope {
	e, ok := m.envelopes[id]
	if !ok {
		return nil
	}
	return &e
}

func (m *Memory) ListEnvelopes(_ context.Context) ([]budget.Envelope, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]budget.Envelope, 0, len(m.envelopes))
	for _, e := range m.envelopes {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *Memory) SaveEnvelope(_ context.Context, e budget.Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.envelopes[e.ID] = e
	return nil
}

func (m *Memory) SetEnvelopeBalance(_ context.Context, id budget.EnvelopeID, balance decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setEnvelopeBalanceLocked(id, balance)
}

func (m *Memory) setEnvelopeBalanceLocked(id budget.EnvelopeID, balance decimal.Decimal) error {
	e, ok := m.envelopes[id]
	if !ok {
		return budget.ErrEnvelopeNotFound
	}
	e.CurrentBalance = balance
	m.envelopes[id] = e
	return nil
}

// =============================================================================
// SAVINGS GOALS
// =============================================================================

func (m *Memory) ListGoals(_ context.Context) ([]budget.SavingsGoal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]budget.SavingsGoal, 0, len(m.goals))
	for _, g := range m.goals {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *Memory) SaveGoal(_ context.Context, g budget.SavingsGoal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[g.ID] = g
	return nil
}

// =============================================================================
// TRANSACTIONS (append-only)
// =============================================================================

func (m *Memory) AddTransaction(_ context.Context, tx budget.Transaction) (budget.TransactionID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addTransactionLocked(tx)
}

func (m *Memory) addTransactionLocked(tx budget.Transaction) (budget.TransactionID, error) {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	m.transactions = append(m.transactions, tx)
	return tx.ID, nil
}

func (m *Memory) ListTransactions(_ context.Context) ([]budget.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]budget.Transaction, len(m.transactions))
	copy(result, m.transactions)
	return result, nil
}

func (m *Memory) ListTransactionsByPaycheck(_ context.Context, id budget.PaycheckID) ([]budget.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []budget.Transaction
	for _, tx := range m.transactions {
		if tx.PaycheckID == id {
			result = append(result, tx)
		}
	}
	return result, nil
}

// =============================================================================
// META (singleton)
// =============================================================================

func (m *Memory) GetMeta(_ context.Context) (*budget.Meta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.meta == nil {
		return nil, nil
	}
	meta := *m.meta
	return &meta, nil
}

func (m *Memory) UpdateMeta(_ context.Context, update budget.MetaUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateMetaLocked(update)
	return nil
}

func (m *Memory) updateMetaLocked(update budget.MetaUpdate) {
	meta := budget.Meta{}
	if m.meta != nil {
		meta = *m.meta
	}
	if update.ActualBalance != nil {
		meta.ActualBalance = *update.ActualBalance
	}
	if update.UnassignedCash != nil {
		meta.UnassignedCash = *update.UnassignedCash
	}
	if update.ActualBalanceManual != nil {
		meta.ActualBalanceManual = *update.ActualBalanceManual
	}
	meta.UpdatedAt = time.Now().UTC()
	m.meta = &meta
}

// =============================================================================
// PAYCHECK HISTORY (append-only)
// =============================================================================

func (m *Memory) PutPaycheck(_ context.Context, record budget.PaycheckHistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paychecks[record.ID] = record
	return nil
}

func (m *Memory) GetPaycheck(_ context.Context, id budget.PaycheckID) (*budget.PaycheckHistoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.paychecks[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Memory) ListPaychecks(_ context.Context) ([]budget.PaycheckHistoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]budget.PaycheckHistoryRecord, 0, len(m.paychecks))
	for _, r := range m.paychecks {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProcessedAt.Before(result[j].ProcessedAt) })
	return result, nil
}

// =============================================================================
// TRANSACTIONAL MEMORY STORE
// =============================================================================

// TxMemory wraps Memory with transaction support.
type TxMemory struct {
	*Memory
}

func NewTxMemory() *TxMemory {
	return &TxMemory{Memory: NewMemory()}
}

// WithTx executes fn within a transaction. For the memory store this is
// simulated with a snapshot + rollback on error.
func (tm *TxMemory) WithTx(ctx context.Context, fn func(budget.Store) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	snapshot := tm.snapshot()
	view := &txMemoryView{parent: tm}

	if err := fn(view); err != nil {
		tm.restore(snapshot)
		return err
	}
	return nil
}

type memorySnapshot struct {
	envelopes    map[budget.EnvelopeID]budget.Envelope
	goals        map[budget.GoalID]budget.SavingsGoal
	transactions []budget.Transaction
	meta         *budget.Meta
	paychecks    map[budget.PaycheckID]budget.PaycheckHistoryRecord
}

func (tm *TxMemory) snapshot() memorySnapshot {
	s := memorySnapshot{
		envelopes:    make(map[budget.EnvelopeID]budget.Envelope, len(tm.envelopes)),
		goals:        make(map[budget.GoalID]budget.SavingsGoal, len(tm.goals)),
		transactions: append([]budget.Transaction{}, tm.transactions...),
		paychecks:    make(map[budget.PaycheckID]budget.PaycheckHistoryRecord, len(tm.paychecks)),
	}
	for k, v := range tm.envelopes {
		s.envelopes[k] = v
	}
	for k, v := range tm.goals {
		s.goals[k] = v
	}
	for k, v := range tm.paychecks {
		s.paychecks[k] = v
	}
	if tm.meta != nil {
		meta := *tm.meta
		s.meta = &meta
	}
	return s
}

func (tm *TxMemory) restore(s memorySnapshot) {
	tm.envelopes = s.envelopes
	tm.goals = s.goals
	tm.transactions = s.transactions
	tm.meta = s.meta
	tm.paychecks = s.paychecks
}

// txMemoryView operates on the parent's state while the parent's lock is
// held by WithTx.
type txMemoryView struct {
	parent *TxMemory
}

func (tv *txMemoryView) GetEnvelope(_ context.Context, id budget.EnvelopeID) (*budget.Envelope, error) {
	return tv.parent.getEnvelopeLocked(id), nil
}

func (tv *txMemoryView) ListEnvelopes(ctx context.Context) ([]budget.Envelope, error) {
	result := make([]budget.Envelope, 0, len(tv.parent.envelopes))
	for _, e := range tv.parent.envelopes {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (tv *txMemoryView) SaveEnvelope(_ context.Context, e budget.Envelope) error {
	tv.parent.envelopes[e.ID] = e
	return nil
}

func (tv *txMemoryView) SetEnvelopeBalance(_ context.Context, id budget.EnvelopeID, balance decimal.Decimal) error {
	return tv.parent.setEnvelopeBalanceLocked(id, balance)
}

func (tv *txMemoryView) ListGoals(_ context.Context) ([]budget.SavingsGoal, error) {
	result := make([]budget.SavingsGoal, 0, len(tv.parent.goals))
	for _, g := range tv.parent.goals {
		result = append(result, g)
	}
	return result, nil
}

func (tv *txMemoryView) SaveGoal(_ context.Context, g budget.SavingsGoal) error {
	tv.parent.goals[g.ID] = g
	return nil
}

func (tv *txMemoryView) AddTransaction(_ context.Context, tx budget.Transaction) (budget.TransactionID, error) {
	return tv.parent.addTransactionLocked(tx)
}

func (tv *txMemoryView) ListTransactions(_ context.Context) ([]budget.Transaction, error) {
	result := make([]budget.Transaction, len(tv.parent.transactions))
	copy(result, tv.parent.transactions)
	return result, nil
}

func (tv *txMemoryView) ListTransactionsByPaycheck(_ context.Context, id budget.PaycheckID) ([]budget.Transaction, error) {
	var result []budget.Transaction
	for _, tx := range tv.parent.transactions {
		if tx.PaycheckID == id {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (tv *txMemoryView) GetMeta(_ context.Context) (*budget.Meta, error) {
	if tv.parent.meta == nil {
		return nil, nil
	}
	meta := *tv.parent.meta
	return &meta, nil
}

func (tv *txMemoryView) UpdateMeta(_ context.Context, update budget.MetaUpdate) error {
	tv.parent.updateMetaLocked(update)
	return nil
}

func (tv *txMemoryView) PutPaycheck(_ context.Context, record budget.PaycheckHistoryRecord) error {
	tv.parent.paychecks[record.ID] = record
	return nil
}

func (tv *txMemoryView) GetPaycheck(_ context.Context, id budget.PaycheckID) (*budget.PaycheckHistoryRecord, error) {
	r, ok := tv.parent.paychecks[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (tv *txMemoryView) ListPaychecks(_ context.Context) ([]budget.PaycheckHistoryRecord, error) {
	result := make([]budget.PaycheckHistoryRecord, 0, len(tv.parent.paychecks))
	for _, r := range tv.parent.paychecks {
		result = append(result, r)
	}
	return result, nil
}

/*
store.go - Persistence interfaces for the budgeting engine

PURPOSE:
  Defines the boundary between domain logic and storage. The paycheck
  executor only ever talks to these interfaces; implementations exist for
  SQLite (store/sqlite) and memory (budget/store).

INTERFACES:
  EnvelopeStore:    Envelope reads and balance writes
  GoalStore:        Savings-goal reads/writes
  TransactionStore: Ledger inserts (append-only; no update, no delete)
  MetaStore:        Global balance metadata (singleton, partial updates)
  HistoryStore:     Paycheck audit records (append-only, keyed by ID)
  Store:            All of the above
  TxStore:          Store + WithTx for atomic multi-record writes

ATOMICITY:
  The executor wraps envelope deltas, metadata, and the history record in
  WithTx when the store supports it, so one paycheck's balance-affecting
  writes commit together or not at all. Stores that cannot provide this
  fall back to sequential writes (the caller accepts the partial-failure
  window).

SEE ALSO:
  - store/memory.go: In-memory implementation
  - ../store/sqlite/sqlite.go: SQLite implementation
*/
package budget

import (
	"context"

	"github.com/shopspring/decimal"
)

// EnvelopeStore persists envelopes. Get returns (nil, nil) when the
// envelope does not exist; callers decide whether that is fatal.
type EnvelopeStore interface {
	GetEnvelope(ctx context.Context, id EnvelopeID) (*Envelope, error)
	ListEnvelopes(ctx context.Context) ([]Envelope, error)
	SaveEnvelope(ctx context.Context, e Envelope) error

	// SetEnvelopeBalance writes a new current balance. Returns
	// ErrEnvelopeNotFound if the envelope is missing.
	SetEnvelopeBalance(ctx context.Context, id EnvelopeID, balance decimal.Decimal) error
}

// GoalStore persists savings goals.
type GoalStore interface {
	ListGoals(ctx context.Context) ([]SavingsGoal, error)
	SaveGoal(ctx context.Context, g SavingsGoal) error
}

// TransactionStore is the append-only ledger. No Update, no Delete;
// corrections are new transactions.
type TransactionStore interface {
	AddTransaction(ctx context.Context, tx Transaction) (TransactionID, error)
	ListTransactions(ctx context.Context) ([]Transaction, error)
	ListTransactionsByPaycheck(ctx context.Context, id PaycheckID) ([]Transaction, error)
}

// MetaStore persists the global balance metadata singleton. GetMeta
// returns (nil, nil) when no metadata has ever been written; readers
// default everything to zero/false.
type MetaStore interface {
	GetMeta(ctx context.Context) (*Meta, error)
	UpdateMeta(ctx context.Context, update MetaUpdate) error
}

// HistoryStore persists paycheck audit records. Append-only: PutPaycheck
// is called exactly once per paycheck; GetPaycheck returns (nil, nil) on
// a miss so the executor can use it as an idempotency probe.
type HistoryStore interface {
	PutPaycheck(ctx context.Context, record PaycheckHistoryRecord) error
	GetPaycheck(ctx context.Context, id PaycheckID) (*PaycheckHistoryRecord, error)
	ListPaychecks(ctx context.Context) ([]PaycheckHistoryRecord, error)
}

// Store aggregates every persistence concern the engine needs.
type Store interface {
	EnvelopeStore
	GoalStore
	TransactionStore
	MetaStore
	HistoryStore
}

// TxStore adds transactional execution. If fn returns an error the
// writes it performed are rolled back.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}

/*
Package budget provides the core envelope-budgeting engine.

PURPOSE:
  This package contains the pure domain types and algorithms for keeping a
  real bank balance and a set of virtual buckets (envelopes, savings goals,
  unassigned cash) mutually consistent. The hardest piece is paycheck
  processing: deciding how an incoming deposit is distributed across
  envelopes and describing every write that must happen, before any write
  happens.

KEY CONCEPTS IN THIS FILE (types.go):
  - Envelope / SavingsGoal: Virtual sub-balances of the user's money
  - Meta: Global balance metadata (actual balance, unassigned cash)
  - Transaction: A ledger entry (income deposit or envelope transfer)
  - CurrentBalances: Read-only snapshot reconciling actual vs virtual
  - PaycheckHistoryRecord: Durable audit entry linking a paycheck to the
    transactions it generated

DESIGN PRINCIPLES:
  1. Conservation: Money is never created or destroyed when it moves
     between actual, unassigned, and envelope balances
  2. Precision: decimal.Decimal everywhere; no float money
  3. Purity: Plan construction (plan.go) does zero I/O; effects live in
     the paycheck package
  4. Auditability: Every paycheck produces a history record with before
     and after balances and transaction linkage

SEE ALSO:
  - plan.go: Paycheck execution plan construction
  - balances.go: CurrentBalances computation
  - store.go: Persistence interfaces
*/
package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EnvelopeID string
type GoalID string
type TransactionID string
type PaycheckID string

// =============================================================================
// ENVELOPE / SAVINGS GOAL - Virtual buckets
// =============================================================================

// Envelope is a named virtual sub-balance budgeted for a category.
// CurrentBalance is the only field the paycheck engine mutates.
type Envelope struct {
	ID             EnvelopeID
	Name           string
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
}

// SavingsGoal is a virtual bucket with a target. The paycheck engine only
// reads CurrentAmount (it contributes to the virtual balance); goal funding
// happens elsewhere.
type SavingsGoal struct {
	ID            GoalID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	CreatedAt     time.Time
}

// =============================================================================
// META - Global balance metadata (singleton record)
// =============================================================================

// Meta holds the global balance state. ActualBalance is the real bank
// balance; UnassignedCash is money received but not yet allocated to any
// envelope. The virtual balance is NEVER stored: it is always recomputed
// from envelopes + goals + unassigned (see balances.go).
type Meta struct {
	ActualBalance       decimal.Decimal
	UnassignedCash      decimal.Decimal
	ActualBalanceManual bool
	UpdatedAt           time.Time
}

// MetaUpdate is a partial write to Meta. Nil fields are left untouched.
type MetaUpdate struct {
	ActualBalance       *decimal.Decimal
	UnassignedCash      *decimal.Decimal
	ActualBalanceManual *bool
}

// =============================================================================
// TRANSACTION - Ledger entry created by paycheck execution
// =============================================================================

type TransactionType string

const (
	TxIncome   TransactionType = "income"   // Paycheck deposit posted to unassigned
	TxTransfer TransactionType = "transfer" // Unassigned -> envelope allocation
)

// Transaction is an immutable ledger entry. Income transactions carry the
// full paycheck amount; transfer transactions carry one envelope allocation.
type Transaction struct {
	ID         TransactionID
	Type       TransactionType
	Amount     decimal.Decimal
	Payee      string
	Notes      string
	EnvelopeID EnvelopeID // destination; empty for income
	PaycheckID PaycheckID // back-reference to the paycheck that created it
	CreatedAt  time.Time
}

// =============================================================================
// CURRENT BALANCES - Read-only reconciliation snapshot
// =============================================================================

// CurrentBalances is the authoritative "before" state for a paycheck.
// VirtualBalance is derived, not stored; it must always be recomputable
// from its parts.
type CurrentBalances struct {
	ActualBalance       decimal.Decimal
	VirtualBalance      decimal.Decimal
	UnassignedCash      decimal.Decimal
	ActualBalanceManual bool
}

// Reconciled reports whether actual and virtual balances agree to within
// the conservation epsilon. A manual actual balance is allowed to drift.
func (cb CurrentBalances) Reconciled() bool {
	return cb.ActualBalance.Sub(cb.VirtualBalance).Abs().LessThanOrEqual(ConservationEpsilon)
}

// =============================================================================
// PAYCHECK HISTORY RECORD - Durable audit entry
// =============================================================================

// PaycheckHistoryRecord is the append-only audit record for one processed
// paycheck. Transaction linkage is optional: transaction creation can fail
// independently of balance application, and the record is persisted either
// way.
type PaycheckHistoryRecord struct {
	ID PaycheckID

	Amount    decimal.Decimal
	Mode      PaycheckMode
	PayerName string
	Notes     string

	// Before/after snapshots
	ActualBalanceBefore  decimal.Decimal
	ActualBalanceAfter   decimal.Decimal
	UnassignedCashBefore decimal.Decimal
	UnassignedCashAfter  decimal.Decimal

	// envelope ID -> allocated amount
	Allocations map[EnvelopeID]decimal.Decimal

	// Linkage to the transactions this paycheck generated. Empty when
	// transaction creation failed (balance correctness wins over ledger
	// completeness).
	IncomeTransactionID    TransactionID
	TransferTransactionIDs []TransactionID

	// Allocations that referenced a missing envelope and were skipped
	// during execution. Non-zero values mean silently-dropped money that
	// stayed in unassigned cash.
	SkippedAllocations int

	ProcessedAt time.Time
}

/*
plan.go - Paycheck execution plan construction (pure domain core)

PURPOSE:
  Given a paycheck request and the current balances, computes everything
  that must change - new global balances, per-envelope deltas, the shape
  of the transactions to create, and the history payload - WITHOUT
  performing any of it. The plan is an immutable description of writes;
  the paycheck package executes it.

WHY SPLIT DECISION FROM EXECUTION?
  - The balance math is testable without storage
  - A plan can be inspected (validation report) before anything commits
  - Partial execution failures are diagnosable: the plan says what was
    supposed to happen

CONSERVATION LAW:
  actual'     = actual + amount          (full deposit, regardless of mode)
  unassigned' = unassigned + amount - totalAllocated

  Allocated money leaves unassigned cash into envelopes; unallocated money
  stays. In leftover mode totalAllocated is 0 and everything lands in
  unassigned. The plan re-checks this arithmetic and records drift beyond
  ConservationEpsilon as a warning.

DETERMINISM:
  NewPaycheckPlan is pure except for PaycheckID, which is a random UUID
  generated at plan-creation time (not execution time) so the same ID
  threads through every downstream record even across a retry. Never a
  timestamp: two paychecks can land in the same millisecond.

SEE ALSO:
  - validate.go: Input rules embedded in the plan's report
  - ../paycheck/executor.go: Applies the plan
*/
package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PAYCHECK INPUT
// =============================================================================

type PaycheckMode string

const (
	// ModeAllocate distributes the paycheck across named envelopes;
	// any remainder becomes unassigned cash.
	ModeAllocate PaycheckMode = "allocate"
	// ModeLeftover deposits the full amount into unassigned cash.
	ModeLeftover PaycheckMode = "leftover"
)

// Allocation is one caller-requested envelope funding entry.
type Allocation struct {
	EnvelopeID   EnvelopeID
	EnvelopeName string
	Amount       decimal.Decimal
}

// PaycheckInput is the caller-supplied request.
type PaycheckInput struct {
	Amount              decimal.Decimal
	Mode                PaycheckMode
	EnvelopeAllocations []Allocation
	PayerName           string
	Notes               string
	ReceivedAt          time.Time
}

// =============================================================================
// EXECUTION PLAN
// =============================================================================

// BalanceUpdates are the post-paycheck global values to persist.
type BalanceUpdates struct {
	ActualBalance  decimal.Decimal
	UnassignedCash decimal.Decimal
}

// TransactionSpec describes the transactions execution should create:
// one income deposit plus one transfer per allocation. Described here,
// executed by the paycheck package.
type TransactionSpec struct {
	PaycheckID  PaycheckID
	Amount      decimal.Decimal
	PayerName   string
	Notes       string
	Allocations []Allocation
}

// PaycheckExecutionPlan is the immutable output of NewPaycheckPlan.
// PaycheckRecord is the history payload minus the two fields only known
// after transaction creation (income/transfer transaction IDs).
type PaycheckExecutionPlan struct {
	PaycheckID          PaycheckID
	BalanceUpdates      BalanceUpdates
	EnvelopeAllocations []Allocation
	TransactionCreation TransactionSpec
	PaycheckRecord      PaycheckHistoryRecord
	Validation          ValidationReport
}

// NewPaycheckPlan computes the execution plan for a paycheck against the
// current balances. Pure: it never mutates its arguments, and two calls
// with identical inputs yield plans equal in everything but PaycheckID.
//
// Construction always succeeds; input problems land in Validation rather
// than blocking the plan, so callers can decide policy.
func NewPaycheckPlan(input PaycheckInput, current CurrentBalances) *PaycheckExecutionPlan {
	validation := ValidatePaycheckInput(input)

	// Leftover mode ignores allocations entirely.
	allocations := input.EnvelopeAllocations
	if input.Mode == ModeLeftover {
		allocations = nil
	}

	totalAllocated := decimal.Zero
	for _, alloc := range allocations {
		totalAllocated = totalAllocated.Add(alloc.Amount)
	}

	newActual := current.ActualBalance.Add(input.Amount)
	newUnassigned := current.UnassignedCash.Add(input.Amount).Sub(totalAllocated)

	// Conservation check: envelope deltas + unassigned delta must equal
	// the paycheck amount. Drift within epsilon can arise from rounding
	// of fractional-cent allocations and must not block the paycheck.
	unassignedDelta := newUnassigned.Sub(current.UnassignedCash)
	drift := totalAllocated.Add(unassignedDelta).Sub(input.Amount).Abs()
	if drift.GreaterThan(ConservationEpsilon) {
		validation.addWarning("conservation drift %s: allocations %s + unassigned delta %s != amount %s",
			drift, totalAllocated, unassignedDelta, input.Amount)
	}

	allocationMap := make(map[EnvelopeID]decimal.Decimal, len(allocations))
	for _, alloc := range allocations {
		allocationMap[alloc.EnvelopeID] = allocationMap[alloc.EnvelopeID].Add(alloc.Amount)
	}

	id := PaycheckID(uuid.NewString())
	payer := input.PayerName
	if payer == "" {
		payer = DefaultPayerName
	}

	planAllocations := make([]Allocation, len(allocations))
	copy(planAllocations, allocations)

	return &PaycheckExecutionPlan{
		PaycheckID: id,
		BalanceUpdates: BalanceUpdates{
			ActualBalance:  newActual,
			UnassignedCash: newUnassigned,
		},
		EnvelopeAllocations: planAllocations,
		TransactionCreation: TransactionSpec{
			PaycheckID:  id,
			Amount:      input.Amount,
			PayerName:   payer,
			Notes:       input.Notes,
			Allocations: planAllocations,
		},
		PaycheckRecord: PaycheckHistoryRecord{
			ID:                   id,
			Amount:               input.Amount,
			Mode:                 input.Mode,
			PayerName:            payer,
			Notes:                input.Notes,
			ActualBalanceBefore:  current.ActualBalance,
			ActualBalanceAfter:   newActual,
			UnassignedCashBefore: current.UnassignedCash,
			UnassignedCashAfter:  newUnassigned,
			Allocations:          allocationMap,
		},
		Validation: validation,
	}
}

// DefaultPayerName is used when the caller supplies no payer.
const DefaultPayerName = "Unknown"

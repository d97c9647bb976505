/*
executor.go - Plan executor (all side effects live here)

PURPOSE:
  Takes a PaycheckExecutionPlan and performs every write it describes, in
  a fixed order:

    1. Create transactions (income + transfers)  - survivable failure
    2. Apply envelope balance deltas             - missing envelope: skip, count, log
    3. Persist balance metadata                  - fatal on failure
    4. Persist the history record                - fatal on failure

ORDERING RATIONALE:
  Transactions go first because the step-4 record wants to reference them,
  but their failure must not block balance correctness: the user is
  waiting on their money showing up in envelope totals, not on ledger rows.

ATOMICITY:
  When the store implements budget.TxStore, steps 2-4 run inside one
  storage transaction, so a paycheck's balance-affecting writes commit
  together or roll back together. Step 1 stays outside: its failure is
  survivable and must not poison the balance writes.

IDEMPOTENCY:
  Before applying anything, the executor probes the history store for an
  existing record with the plan's PaycheckID and short-circuits if one
  exists. A retried plan therefore cannot double-apply its deltas.

SEQUENTIAL EXECUTION:
  Steps run sequentially, never concurrently: step 2 is a read-then-write
  per envelope, and concurrent writes to the same envelope within one
  plan would race.

SEE ALSO:
  - processor.go: The inbound wrapper (read -> plan -> gate -> execute)
  - record.go: Step-4 record assembly
*/
package paycheck

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketfold/envelope-engine/budget"
	"github.com/pocketfold/envelope-engine/logging"
)

// Executor applies execution plans against a store.
type Executor struct {
	Store  budget.Store
	Txns   TransactionCreator
	Logger *logging.Logger
}

// NewExecutor creates an executor. When txns is nil, transactions are
// written through the store's own ledger.
func NewExecutor(store budget.Store, txns TransactionCreator, logger *logging.Logger) *Executor {
	if txns == nil {
		txns = NewLedgerTransactionCreator(store)
	}
	if logger == nil {
		logger = logging.Default("paycheck.executor")
	}
	return &Executor{Store: store, Txns: txns, Logger: logger}
}

// ExecutePlan performs all side effects the plan describes and returns
// the persisted history record.
//
// ExecutePlan does NOT gate on plan.Validation - that policy belongs to
// the Processor. Callers invoking this directly are expected to have
// inspected the report.
//
// A returned error means the paycheck was not durably recorded. A
// returned record means balance metadata and history are committed,
// though transaction linkage may be absent.
func (e *Executor) ExecutePlan(ctx context.Context, plan *budget.PaycheckExecutionPlan) (*budget.PaycheckHistoryRecord, error) {
	// Idempotency probe: a plan whose record already exists has already
	// been applied. Short-circuit instead of double-counting money.
	existing, err := e.Store.GetPaycheck(ctx, plan.PaycheckID)
	if err != nil {
		return nil, fmt.Errorf("idempotency check for paycheck %s: %w", plan.PaycheckID, err)
	}
	if existing != nil {
		e.Logger.Warn("paycheck already processed, skipping re-execution",
			"paycheck_id", plan.PaycheckID)
		return existing, nil
	}

	// Step 1: create transactions. Failure is logged and execution
	// continues with empty linkage.
	linkage, err := e.Txns.CreatePaycheckTransactions(ctx, plan.TransactionCreation)
	if err != nil {
		e.Logger.Error("transaction creation failed, continuing without linkage",
			"paycheck_id", plan.PaycheckID, "error", err)
		linkage = TransactionLinkage{}
	}

	var record budget.PaycheckHistoryRecord
	apply := func(s budget.Store) error {
		skipped, err := e.applyAllocations(ctx, s, plan)
		if err != nil {
			return err
		}

		// Step 3: the write that makes the paycheck real.
		updates := plan.BalanceUpdates
		if err := s.UpdateMeta(ctx, budget.MetaUpdate{
			ActualBalance:  &updates.ActualBalance,
			UnassignedCash: &updates.UnassignedCash,
		}); err != nil {
			return fmt.Errorf("persist balance metadata: %w", err)
		}

		// Step 4: durable audit record, with whatever linkage step 1 produced.
		record = ShapeHistoryRecord(plan, linkage, skipped, time.Now().UTC())
		if err := s.PutPaycheck(ctx, record); err != nil {
			return fmt.Errorf("persist paycheck record %s: %w", plan.PaycheckID, err)
		}
		return nil
	}

	if tx, ok := e.Store.(budget.TxStore); ok {
		err = tx.WithTx(ctx, apply)
	} else {
		err = apply(e.Store)
	}
	if err != nil {
		return nil, err
	}

	e.Logger.Info("paycheck processed",
		"paycheck_id", record.ID,
		"amount", record.Amount,
		"mode", record.Mode,
		"allocations", len(record.Allocations),
		"skipped_allocations", record.SkippedAllocations,
		"linked_transactions", len(record.TransferTransactionIDs),
	)
	return &record, nil
}

// applyAllocations is step 2: read-then-write each allocated envelope.
// Allocations referencing a missing envelope are skipped and counted so
// silently-dropped money stays visible to operators.
func (e *Executor) applyAllocations(ctx context.Context, s budget.Store, plan *budget.PaycheckExecutionPlan) (skipped int, err error) {
	for _, alloc := range plan.EnvelopeAllocations {
		envelope, err := s.GetEnvelope(ctx, alloc.EnvelopeID)
		if err != nil {
			return skipped, fmt.Errorf("read envelope %s: %w", alloc.EnvelopeID, err)
		}
		if envelope == nil {
			skipped++
			e.Logger.Warn("allocation references missing envelope, skipping",
				"paycheck_id", plan.PaycheckID,
				"envelope_id", alloc.EnvelopeID,
				"amount", alloc.Amount)
			continue
		}

		newBalance := envelope.CurrentBalance.Add(alloc.Amount)
		if err := s.SetEnvelopeBalance(ctx, alloc.EnvelopeID, newBalance); err != nil {
			return skipped, fmt.Errorf("write envelope %s balance: %w", alloc.EnvelopeID, err)
		}
	}
	return skipped, nil
}

/*
processor.go - Inbound paycheck processing service

PURPOSE:
  The single entry point callers use: read current state, build the plan,
  gate on validity, execute. Wraps the pure budget core and the effectful
  executor into one operation.

POLICY DECISIONS (made explicit here):
  - Plans with validation errors do NOT execute. ProcessPaycheck returns
    budget.InvalidPaycheckError carrying the full report. Callers who want
    to force a degraded plan can build it themselves and call the
    executor directly.
  - One paycheck in flight at a time. Envelope and metadata writes are
    unsynchronized read-modify-write operations, so concurrent paychecks
    against the same budget would interleave; the processor serializes
    them with a mutex.

FAILURE SEMANTICS:
  A failure while reading balances or building the plan is fatal and
  happens before any write - nothing to roll back. Execution failures
  follow the executor's contract.

SEE ALSO:
  - executor.go: Step ordering and partial-failure policy
  - ../budget/plan.go: Plan construction
*/
package paycheck

import (
	"context"
	"fmt"
	"sync"

	"github.com/pocketfold/envelope-engine/budget"
	"github.com/pocketfold/envelope-engine/logging"
)

// Processor handles the full paycheck workflow.
type Processor struct {
	store    budget.Store
	executor *Executor
	logger   *logging.Logger

	// Serializes paycheck processing: the executor's read-modify-write
	// steps have no per-record locking of their own.
	mu sync.Mutex
}

// NewProcessor creates a processor backed by the given store. When txns
// is nil the store's own ledger is used for transaction creation.
func NewProcessor(store budget.Store, txns TransactionCreator, logger *logging.Logger) *Processor {
	if logger == nil {
		logger = logging.Default("paycheck")
	}
	return &Processor{
		store:    store,
		executor: NewExecutor(store, txns, logger.WithComponent("paycheck.executor")),
		logger:   logger,
	}
}

// ProcessPaycheck reads the current balances, builds an execution plan,
// and executes it. Returns the persisted history record.
//
// A returned error means the paycheck was not durably recorded (earlier
// envelope writes may have applied when the store is non-transactional).
func (p *Processor) ProcessPaycheck(ctx context.Context, input budget.PaycheckInput) (*budget.PaycheckHistoryRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current, err := p.ReadBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("read current balances: %w", err)
	}

	plan := budget.NewPaycheckPlan(input, current)
	if !plan.Validation.IsValid {
		p.logger.Warn("rejecting invalid paycheck input",
			"errors", plan.Validation.Errors)
		return nil, &budget.InvalidPaycheckError{Report: plan.Validation}
	}
	for _, w := range plan.Validation.Warnings {
		p.logger.Warn("paycheck plan warning", "paycheck_id", plan.PaycheckID, "warning", w)
	}

	return p.executor.ExecutePlan(ctx, plan)
}

// ReadBalances returns the current reconciliation snapshot. Read-only.
func (p *Processor) ReadBalances(ctx context.Context) (budget.CurrentBalances, error) {
	meta, err := p.store.GetMeta(ctx)
	if err != nil {
		return budget.CurrentBalances{}, fmt.Errorf("read metadata: %w", err)
	}
	envelopes, err := p.store.ListEnvelopes(ctx)
	if err != nil {
		return budget.CurrentBalances{}, fmt.Errorf("list envelopes: %w", err)
	}
	goals, err := p.store.ListGoals(ctx)
	if err != nil {
		return budget.CurrentBalances{}, fmt.Errorf("list savings goals: %w", err)
	}

	return budget.ReadCurrentBalances(meta,
		budget.EnvelopeSnapshots(envelopes),
		budget.GoalSnapshots(goals)), nil
}

/*
transactions.go - Transaction-creation collaborator

PURPOSE:
  Turns a plan's TransactionSpec into ledger rows: one income transaction
  for the full paycheck amount posted to unassigned cash, plus one
  transfer per envelope allocation (source = unassigned, destination =
  envelope).

FAILURE CONTRACT:
  CreatePaycheckTransactions may fail. The executor catches the error,
  logs it, and continues with empty linkage - transaction-log completeness
  is deliberately subordinate to balance correctness.

SEE ALSO:
  - executor.go: The only caller
*/
package paycheck

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pocketfold/envelope-engine/budget"
)

// TransactionLinkage is what a paycheck record stores to point back at
// the ledger rows it generated.
type TransactionLinkage struct {
	IncomeTransactionID    budget.TransactionID
	TransferTransactionIDs []budget.TransactionID
}

// TransactionCreator creates the income + transfer transactions for a
// paycheck. Implementations may fail; callers must treat that failure as
// survivable.
type TransactionCreator interface {
	CreatePaycheckTransactions(ctx context.Context, spec budget.TransactionSpec) (TransactionLinkage, error)
}

// LedgerTransactionCreator writes transactions through a TransactionStore.
type LedgerTransactionCreator struct {
	Store budget.TransactionStore
}

func NewLedgerTransactionCreator(store budget.TransactionStore) *LedgerTransactionCreator {
	return &LedgerTransactionCreator{Store: store}
}

// CreatePaycheckTransactions inserts one income row plus one transfer row
// per allocation. The first failed insert aborts the rest: partial
// linkage is worse than none, since the history record would then
// reference an incomplete set.
func (c *LedgerTransactionCreator) CreatePaycheckTransactions(ctx context.Context, spec budget.TransactionSpec) (TransactionLinkage, error) {
	now := time.Now().UTC()

	incomeID, err := c.Store.AddTransaction(ctx, budget.Transaction{
		ID:         budget.TransactionID(uuid.NewString()),
		Type:       budget.TxIncome,
		Amount:     spec.Amount,
		Payee:      spec.PayerName,
		Notes:      spec.Notes,
		PaycheckID: spec.PaycheckID,
		CreatedAt:  now,
	})
	if err != nil {
		return TransactionLinkage{}, fmt.Errorf("income transaction: %w", err)
	}

	linkage := TransactionLinkage{IncomeTransactionID: incomeID}
	for _, alloc := range spec.Allocations {
		notes := fmt.Sprintf("paycheck allocation to %s", alloc.EnvelopeName)
		if alloc.EnvelopeName == "" {
			notes = fmt.Sprintf("paycheck allocation to envelope %s", alloc.EnvelopeID)
		}
		transferID, err := c.Store.AddTransaction(ctx, budget.Transaction{
			ID:         budget.TransactionID(uuid.NewString()),
			Type:       budget.TxTransfer,
			Amount:     alloc.Amount,
			Payee:      spec.PayerName,
			Notes:      notes,
			EnvelopeID: alloc.EnvelopeID,
			PaycheckID: spec.PaycheckID,
			CreatedAt:  now,
		})
		if err != nil {
			return TransactionLinkage{}, fmt.Errorf("transfer transaction for %s: %w", alloc.EnvelopeID, err)
		}
		linkage.TransferTransactionIDs = append(linkage.TransferTransactionIDs, transferID)
	}

	return linkage, nil
}

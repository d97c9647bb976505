/*
record.go - History record shaping

PURPOSE:
  Pure assembly of the final persisted audit record from a plan and the
  (possibly empty) transaction linkage. No business rules beyond
  defaulting: missing payer -> "Unknown", missing notes -> "", missing
  transfer IDs -> empty slice.

SEE ALSO:
  - executor.go: Persists the shaped record
*/
package paycheck

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketfold/envelope-engine/budget"
)

// ShapeHistoryRecord combines the plan's payload with transaction linkage
// into the record the executor persists. skipped is the count of
// allocations dropped because their envelope no longer exists.
func ShapeHistoryRecord(plan *budget.PaycheckExecutionPlan, linkage TransactionLinkage, skipped int, at time.Time) budget.PaycheckHistoryRecord {
	record := plan.PaycheckRecord

	if record.PayerName == "" {
		record.PayerName = budget.DefaultPayerName
	}
	if record.Allocations == nil {
		record.Allocations = map[budget.EnvelopeID]decimal.Decimal{}
	}

	record.IncomeTransactionID = linkage.IncomeTransactionID
	record.TransferTransactionIDs = linkage.TransferTransactionIDs
	if record.TransferTransactionIDs == nil {
		record.TransferTransactionIDs = []budget.TransactionID{}
	}
	record.SkippedAllocations = skipped
	record.ProcessedAt = at

	return record
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model from
  the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

AMOUNTS:
  Amounts use decimal.Decimal, which unmarshals from both JSON numbers
  and string-encoded numbers, and marshals without float precision loss.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketfold/envelope-engine/budget"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// BalancesDTO is the current reconciliation snapshot.
type BalancesDTO struct {
	ActualBalance       decimal.Decimal `json:"actual_balance"`
	VirtualBalance      decimal.Decimal `json:"virtual_balance"`
	UnassignedCash      decimal.Decimal `json:"unassigned_cash"`
	ActualBalanceManual bool            `json:"is_actual_balance_manual"`
	Reconciled          bool            `json:"reconciled"`
}

// SetActualBalanceRequest manually overrides the actual bank balance.
type SetActualBalanceRequest struct {
	ActualBalance decimal.Decimal `json:"actual_balance"`
	Manual        bool            `json:"manual"`
}

// AllocationRequest is one envelope funding entry of a paycheck.
type AllocationRequest struct {
	EnvelopeID   string          `json:"envelope_id"`
	EnvelopeName string          `json:"envelope_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
}

// ProcessPaycheckRequest is the inbound paycheck submission.
type ProcessPaycheckRequest struct {
	Amount      decimal.Decimal     `json:"amount"`
	Mode        string              `json:"mode"`
	Allocations []AllocationRequest `json:"allocations,omitempty"`
	PayerName   string              `json:"payer_name,omitempty"`
	Notes       string              `json:"notes,omitempty"`
}

// PaycheckRecordDTO is the persisted audit record returned to clients.
type PaycheckRecordDTO struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Mode      string          `json:"mode"`
	PayerName string          `json:"payer_name"`
	Notes     string          `json:"notes,omitempty"`

	ActualBalanceBefore  decimal.Decimal `json:"actual_balance_before"`
	ActualBalanceAfter   decimal.Decimal `json:"actual_balance_after"`
	UnassignedCashBefore decimal.Decimal `json:"unassigned_cash_before"`
	UnassignedCashAfter  decimal.Decimal `json:"unassigned_cash_after"`

	Allocations map[string]decimal.Decimal `json:"allocations"`

	IncomeTransactionID    string   `json:"income_transaction_id,omitempty"`
	TransferTransactionIDs []string `json:"transfer_transaction_ids"`
	SkippedAllocations     int      `json:"skipped_allocations,omitempty"`

	ProcessedAt string `json:"processed_at"`
}

// EnvelopeDTO represents an envelope in API responses.
type EnvelopeDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      string          `json:"created_at,omitempty"`
}

// CreateEnvelopeRequest creates an envelope.
type CreateEnvelopeRequest struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// GoalDTO represents a savings goal.
type GoalDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	CreatedAt     string          `json:"created_at,omitempty"`
}

// CreateGoalRequest creates a savings goal.
type CreateGoalRequest struct {
	ID            string          `json:"id,omitempty"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
}

// TransactionDTO represents a ledger transaction.
type TransactionDTO struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Payee      string          `json:"payee,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	EnvelopeID string          `json:"envelope_id,omitempty"`
	PaycheckID string          `json:"paycheck_id,omitempty"`
	CreatedAt  string          `json:"created_at,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toBalancesDTO(cb budget.CurrentBalances) BalancesDTO {
	return BalancesDTO{
		ActualBalance:       cb.ActualBalance,
		VirtualBalance:      cb.VirtualBalance,
		UnassignedCash:      cb.UnassignedCash,
		ActualBalanceManual: cb.ActualBalanceManual,
		Reconciled:          cb.Reconciled(),
	}
}

func toPaycheckRecordDTO(r budget.PaycheckHistoryRecord) PaycheckRecordDTO {
	allocations := make(map[string]decimal.Decimal, len(r.Allocations))
	for id, amount := range r.Allocations {
		allocations[string(id)] = amount
	}
	transferIDs := make([]string, len(r.TransferTransactionIDs))
	for i, id := range r.TransferTransactionIDs {
		transferIDs[i] = string(id)
	}
	return PaycheckRecordDTO{
		ID:                     string(r.ID),
		Amount:                 r.Amount,
		Mode:                   string(r.Mode),
		PayerName:              r.PayerName,
		Notes:                  r.Notes,
		ActualBalanceBefore:    r.ActualBalanceBefore,
		ActualBalanceAfter:     r.ActualBalanceAfter,
		UnassignedCashBefore:   r.UnassignedCashBefore,
		UnassignedCashAfter:    r.UnassignedCashAfter,
		Allocations:            allocations,
		IncomeTransactionID:    string(r.IncomeTransactionID),
		TransferTransactionIDs: transferIDs,
		SkippedAllocations:     r.SkippedAllocations,
		ProcessedAt:            r.ProcessedAt.Format(time.RFC3339),
	}
}

func toEnvelopeDTO(e budget.Envelope) EnvelopeDTO {
	return EnvelopeDTO{
		ID:             string(e.ID),
		Name:           e.Name,
		CurrentBalance: e.CurrentBalance,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
}

func toGoalDTO(g budget.SavingsGoal) GoalDTO {
	return GoalDTO{
		ID:            string(g.ID),
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionDTO(tx budget.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:         string(tx.ID),
		Type:       string(tx.Type),
		Amount:     tx.Amount,
		Payee:      tx.Payee,
		Notes:      tx.Notes,
		EnvelopeID: string(tx.EnvelopeID),
		PaycheckID: string(tx.PaycheckID),
		CreatedAt:  tx.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionDTOs(txs []budget.Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		dtos[i] = toTransactionDTO(tx)
	}
	return dtos
}

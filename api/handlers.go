/*
handlers.go - HTTP API handlers for the envelope budgeting engine

PURPOSE:
  Exposes the budgeting engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Paychecks:
    POST   /api/paychecks              Process a paycheck
    GET    /api/paychecks              Paycheck history (newest first)
    GET    /api/paychecks/{id}         Single paycheck record

  Balances:
    GET    /api/balances               Actual vs virtual balance snapshot
    PUT    /api/balances/actual        Manual actual-balance override

  Envelopes:
    GET    /api/envelopes              List envelopes
    POST   /api/envelopes              Create envelope
    GET    /api/envelopes/{id}         Single envelope

  Goals:
    GET    /api/goals                  List savings goals
    POST   /api/goals                  Create savings goal

  Ledger:
    GET    /api/transactions           List transactions (optional
                                       ?paycheck_id= filter)

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access
  - Processor: Paycheck pipeline (validate, plan, execute)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input (details carry the full report)
  - 404: Resource not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pocketfold/envelope-engine/budget"
	"github.com/pocketfold/envelope-engine/logging"
	"github.com/pocketfold/envelope-engine/paycheck"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     budget.Store
	Processor *paycheck.Processor
	Logger    *logging.Logger
}

// NewHandler creates a new handler with the given store and processor.
func NewHandler(store budget.Store, processor *paycheck.Processor, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default("api")
	}
	return &Handler{
		Store:     store,
		Processor: processor,
		Logger:    logger,
	}
}

// =============================================================================
// PAYCHECK HANDLERS
// =============================================================================

// ProcessPaycheck validates and applies a paycheck.
func (h *Handler) ProcessPaycheck(w http.ResponseWriter, r *http.Request) {
	var req ProcessPaycheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	allocations := make([]budget.Allocation, len(req.Allocations))
	for i, a := range req.Allocations {
		allocations[i] = budget.Allocation{
			EnvelopeID:   budget.EnvelopeID(a.EnvelopeID),
			EnvelopeName: a.EnvelopeName,
			Amount:       a.Amount,
		}
	}

	input := budget.PaycheckInput{
		Amount:              req.Amount,
		Mode:                budget.PaycheckMode(strings.ToLower(strings.TrimSpace(req.Mode))),
		EnvelopeAllocations: allocations,
		PayerName:           req.PayerName,
		Notes:               req.Notes,
		ReceivedAt:          time.Now().UTC(),
	}

	record, err := h.Processor.ProcessPaycheck(r.Context(), input)
	if err != nil {
		var invalid *budget.InvalidPaycheckError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "Paycheck validation failed",
				Code:    "invalid_paycheck",
				Details: invalid.Report,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to process paycheck", err)
		return
	}

	writeJSON(w, http.StatusCreated, toPaycheckRecordDTO(*record))
}

// ListPaychecks returns paycheck history, newest first.
func (h *Handler) ListPaychecks(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListPaychecks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list paychecks", err)
		return
	}

	dtos := make([]PaycheckRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toPaycheckRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPaycheck returns a single paycheck record.
func (h *Handler) GetPaycheck(w http.ResponseWriter, r *http.Request) {
	id := budget.PaycheckID(chi.URLParam(r, "id"))

	record, err := h.Store.GetPaycheck(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get paycheck", err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "Paycheck not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toPaycheckRecordDTO(*record))
}

// =============================================================================
// BALANCE HANDLERS
// =============================================================================

// GetBalances returns the current actual/virtual balance snapshot.
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.Processor.ReadBalances(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read balances", err)
		return
	}
	writeJSON(w, http.StatusOK, toBalancesDTO(balances))
}

// SetActualBalance manually overrides the actual bank balance. Virtual
// balances are untouched: overriding actual never moves envelope money.
func (h *Handler) SetActualBalance(w http.ResponseWriter, r *http.Request) {
	var req SetActualBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	actual := req.ActualBalance
	manual := req.Manual
	update := budget.MetaUpdate{
		ActualBalance:       &actual,
		ActualBalanceManual: &manual,
	}
	h.Logger.Info("manual actual balance override", "actual_balance", actual, "manual", manual)
	if err := h.Store.UpdateMeta(r.Context(), update); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update actual balance", err)
		return
	}

	balances, err := h.Processor.ReadBalances(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read balances", err)
		return
	}
	writeJSON(w, http.StatusOK, toBalancesDTO(balances))
}

// =============================================================================
// ENVELOPE HANDLERS
// =============================================================================

// ListEnvelopes returns all envelopes.
func (h *Handler) ListEnvelopes(w http.ResponseWriter, r *http.Request) {
	envelopes, err := h.Store.ListEnvelopes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list envelopes", err)
		return
	}

	dtos := make([]EnvelopeDTO, len(envelopes))
	for i, e := range envelopes {
		dtos[i] = toEnvelopeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEnvelope returns a single envelope.
func (h *Handler) GetEnvelope(w http.ResponseWriter, r *http.Request) {
	id := budget.EnvelopeID(chi.URLParam(r, "id"))

	env, err := h.Store.GetEnvelope(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get envelope", err)
		return
	}
	if env == nil {
		writeError(w, http.StatusNotFound, "Envelope not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toEnvelopeDTO(*env))
}

// CreateEnvelope creates a new envelope.
func (h *Handler) CreateEnvelope(w http.ResponseWriter, r *http.Request) {
	var req CreateEnvelopeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Envelope name is required", nil)
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	env := budget.Envelope{
		ID:             budget.EnvelopeID(id),
		Name:           req.Name,
		CurrentBalance: req.CurrentBalance,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.Store.SaveEnvelope(r.Context(), env); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create envelope", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEnvelopeDTO(env))
}

// =============================================================================
// SAVINGS GOAL HANDLERS
// =============================================================================

// ListGoals returns all savings goals.
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.Store.ListGoals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list goals", err)
		return
	}

	dtos := make([]GoalDTO, len(goals))
	for i, g := range goals {
		dtos[i] = toGoalDTO(g)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateGoal creates a new savings goal.
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Goal name is required", nil)
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	goal := budget.SavingsGoal{
		ID:            budget.GoalID(id),
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.Store.SaveGoal(r.Context(), goal); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create goal", err)
		return
	}

	writeJSON(w, http.StatusCreated, toGoalDTO(goal))
}

// =============================================================================
// LEDGER HANDLERS
// =============================================================================

// ListTransactions returns ledger entries, optionally filtered by paycheck.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var (
		txs []budget.Transaction
		err error
	)
	if pid := r.URL.Query().Get("paycheck_id"); pid != "" {
		txs, err = h.Store.ListTransactionsByPaycheck(r.Context(), budget.PaycheckID(pid))
	} else {
		txs, err = h.Store.ListTransactions(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

/*
Package sqlite provides a SQLite-backed implementation of budget.TxStore.

PURPOSE:
  Implements every persistence interface the engine needs (envelopes,
  savings goals, transaction ledger, balance metadata, paycheck history)
  on SQLite. The same patterns apply to PostgreSQL with minor dialect
  changes.

KEY TABLES:
  envelopes:     Virtual buckets with current balances
  savings_goals: Goal buckets contributing to the virtual balance
  transactions:  Append-only ledger (income + transfers); no UPDATE or
                 DELETE statements exist for this table
  budget_meta:   Singleton row holding actual balance / unassigned cash
  paychecks:     Append-only paycheck audit records, keyed by paycheck ID

AMOUNT STORAGE:
  All amounts are stored as TEXT and parsed with shopspring/decimal, so
  no precision is lost to SQLite's float affinity.

ATOMICITY:
  WithTx wraps a function in a single SQL transaction; the paycheck
  executor uses it so envelope deltas, metadata, and the history record
  commit together or not at all.

WAL MODE:
  The database is opened with WAL for better concurrency: readers don't
  block, single writer, better crash recovery.

USAGE:
  st, err := sqlite.New("./data/envelope.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()
  processor := paycheck.NewProcessor(st, nil, nil)

SEE ALSO:
  - budget/store.go: Interface definitions
  - budget/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/pocketfold/envelope-engine/budget"
)

// Store implements budget.TxStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New opens (or creates) the database at the given path and migrates the
// schema. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS envelopes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		current_balance TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS savings_goals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		target_amount TEXT NOT NULL DEFAULT '0',
		current_amount TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	-- Append-only ledger
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		tx_type TEXT NOT NULL,
		amount TEXT NOT NULL,
		payee TEXT,
		notes TEXT,
		envelope_id TEXT,
		paycheck_id TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_paycheck
		ON transactions(paycheck_id) WHERE paycheck_id IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_transactions_envelope
		ON transactions(envelope_id) WHERE envelope_id IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_transactions_created
		ON transactions(created_at);

	-- Singleton global balance metadata
	CREATE TABLE IF NOT EXISTS budget_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		actual_balance TEXT NOT NULL DEFAULT '0',
		unassigned_cash TEXT NOT NULL DEFAULT '0',
		actual_balance_manual INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	);

	-- Append-only paycheck audit records
	CREATE TABLE IF NOT EXISTS paychecks (
		id TEXT PRIMARY KEY,
		amount TEXT NOT NULL,
		mode TEXT NOT NULL,
		payer_name TEXT NOT NULL,
		notes TEXT,
		actual_before TEXT NOT NULL,
		actual_after TEXT NOT NULL,
		unassigned_before TEXT NOT NULL,
		unassigned_after TEXT NOT NULL,
		allocations_json TEXT NOT NULL,
		income_transaction_id TEXT,
		transfer_transaction_ids_json TEXT NOT NULL DEFAULT '[]',
		skipped_allocations INTEGER NOT NULL DEFAULT 0,
		processed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_paychecks_processed
		ON paychecks(processed_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ENVELOPES (budget.EnvelopeStore)
// =============================================================================

func (s *Store) GetEnvelope(ctx context.Context, id budget.EnvelopeID) (*budget.Envelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getEnvelope(ctx, s.db, id)
}

func getEnvelope(ctx context.Context, q querier, id budget.EnvelopeID) (*budget.Envelope, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, name, current_balance, created_at FROM envelopes WHERE id = ?`, id)

	var e budget.Envelope
	var balance, createdAt string
	err := row.Scan(&e.ID, &e.Name, &balance, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope: %w", err)
	}
	e.CurrentBalance = parseStoredAmount(balance)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &e, nil
}

func (s *Store) ListEnvelopes(ctx context.Context) ([]budget.Envelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listEnvelopes(ctx, s.db)
}

func listEnvelopes(ctx context.Context, q querier) ([]budget.Envelope, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, current_balance, created_at FROM envelopes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list envelopes: %w", err)
	}
	defer rows.Close()

	var envelopes []budget.Envelope
	for rows.Next() {
		var e budget.Envelope
		var balance, createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &balance, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan envelope: %w", err)
		}
		e.CurrentBalance = parseStoredAmount(balance)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		envelopes = append(envelopes, e)
	}
	return envelopes, rows.Err()
}

func (s *Store) SaveEnvelope(ctx context.Context, e budget.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveEnvelope(ctx, s.db, e)
}

func saveEnvelope(ctx context.Context, q querier, e budget.Envelope) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO envelopes (id, name, current_balance, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name,
			current_balance = excluded.current_balance`,
		e.ID, e.Name, e.CurrentBalance.String(), createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save envelope: %w", err)
	}
	return nil
}

func (s *Store) SetEnvelopeBalance(ctx context.Context, id budget.EnvelopeID, balance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return setEnvelopeBalance(ctx, s.db, id, balance)
}

func setEnvelopeBalance(ctx context.Context, q querier, id budget.EnvelopeID, balance decimal.Decimal) error {
	res, err := q.ExecContext(ctx,
		`UPDATE envelopes SET current_balance = ? WHERE id = ?`, balance.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update envelope balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return budget.ErrEnvelopeNotFound
	}
	return nil
}

// =============================================================================
// SAVINGS GOALS (budget.GoalStore)
// =============================================================================

func (s *Store) ListGoals(ctx context.Context) ([]budget.SavingsGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listGoals(ctx, s.db)
}

func listGoals(ctx context.Context, q querier) ([]budget.SavingsGoal, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, target_amount, current_amount, created_at FROM savings_goals ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	defer rows.Close()

	var goals []budget.SavingsGoal
	for rows.Next() {
		var g budget.SavingsGoal
		var target, current, createdAt string
		if err := rows.Scan(&g.ID, &g.Name, &target, &current, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan savings goal: %w", err)
		}
		g.TargetAmount = parseStoredAmount(target)
		g.CurrentAmount = parseStoredAmount(current)
		g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) SaveGoal(ctx context.Context, g budget.SavingsGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveGoal(ctx, s.db, g)
}

func saveGoal(ctx context.Context, q querier, g budget.SavingsGoal) error {
	createdAt := g.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO savings_goals (id, name, target_amount, current_amount, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name,
			target_amount = excluded.target_amount,
			current_amount = excluded.current_amount`,
		g.ID, g.Name, g.TargetAmount.String(), g.CurrentAmount.String(),
		createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save savings goal: %w", err)
	}
	return nil
}

// =============================================================================
// TRANSACTIONS (budget.TransactionStore, append-only)
// =============================================================================

func (s *Store) AddTransaction(ctx context.Context, tx budget.Transaction) (budget.TransactionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return addTransaction(ctx, s.db, tx)
}

func addTransaction(ctx context.Context, q querier, tx budget.Transaction) (budget.TransactionID, error) {
	createdAt := tx.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO transactions (id, tx_type, amount, payee, notes, envelope_id, paycheck_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Type, tx.Amount.String(), tx.Payee, tx.Notes,
		nullString(string(tx.EnvelopeID)), nullString(string(tx.PaycheckID)),
		createdAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to add transaction: %w", err)
	}
	return tx.ID, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]budget.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return queryTransactions(ctx, s.db, transactionSelect+` ORDER BY created_at ASC, id ASC`)
}

func (s *Store) ListTransactionsByPaycheck(ctx context.Context, id budget.PaycheckID) ([]budget.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return queryTransactions(ctx, s.db,
		transactionSelect+` WHERE paycheck_id = ? ORDER BY created_at ASC, id ASC`, id)
}

const transactionSelect = `
	SELECT id, tx_type, amount, payee, notes, envelope_id, paycheck_id, created_at
	FROM transactions`

func queryTransactions(ctx context.Context, q querier, query string, args ...any) ([]budget.Transaction, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []budget.Transaction
	for rows.Next() {
		var tx budget.Transaction
		var amount, createdAt string
		var payee, notes, envelopeID, paycheckID sql.NullString
		if err := rows.Scan(&tx.ID, &tx.Type, &amount, &payee, &notes,
			&envelopeID, &paycheckID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Amount = parseStoredAmount(amount)
		tx.Payee = payee.String
		tx.Notes = notes.String
		tx.EnvelopeID = budget.EnvelopeID(envelopeID.String)
		tx.PaycheckID = budget.PaycheckID(paycheckID.String)
		tx.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// =============================================================================
// META (budget.MetaStore, singleton row)
// =============================================================================

func (s *Store) GetMeta(ctx context.Context) (*budget.Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getMeta(ctx, s.db)
}

func getMeta(ctx context.Context, q querier) (*budget.Meta, error) {
	row := q.QueryRowContext(ctx, `
		SELECT actual_balance, unassigned_cash, actual_balance_manual, updated_at
		FROM budget_meta WHERE id = 1`)

	var meta budget.Meta
	var actual, unassigned, updatedAt string
	var manual int
	err := row.Scan(&actual, &unassigned, &manual, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget metadata: %w", err)
	}
	meta.ActualBalance = parseStoredAmount(actual)
	meta.UnassignedCash = parseStoredAmount(unassigned)
	meta.ActualBalanceManual = manual != 0
	meta.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &meta, nil
}

func (s *Store) UpdateMeta(ctx context.Context, update budget.MetaUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return updateMeta(ctx, s.db, update)
}

func updateMeta(ctx context.Context, q querier, update budget.MetaUpdate) error {
	current, err := getMeta(ctx, q)
	if err != nil {
		return err
	}
	meta := budget.Meta{}
	if current != nil {
		meta = *current
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

	manual := 0
	if meta.ActualBalanceManual {
		manual = 1
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO budget_meta (id, actual_balance, unassigned_cash, actual_balance_manual, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			actual_balance = excluded.actual_balance,
			unassigned_cash = excluded.unassigned_cash,
			actual_balance_manual = excluded.actual_balance_manual,
			updated_at = excluded.updated_at`,
		meta.ActualBalance.String(), meta.UnassignedCash.String(), manual,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to update budget metadata: %w", err)
	}
	return nil
}

// =============================================================================
// PAYCHECK HISTORY (budget.HistoryStore, append-only)
// =============================================================================

func (s *Store) PutPaycheck(ctx context.Context, record budget.PaycheckHistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return putPaycheck(ctx, s.db, record)
}

func putPaycheck(ctx context.Context, q querier, record budget.PaycheckHistoryRecord) error {
	allocations := make(map[string]string, len(record.Allocations))
	for id, amount := range record.Allocations {
		allocations[string(id)] = amount.String()
	}
	allocationsJSON, _ := json.Marshal(allocations)
	transferIDsJSON, _ := json.Marshal(record.TransferTransactionIDs)

	_, err := q.ExecContext(ctx, `
		INSERT INTO paychecks
		(id, amount, mode, payer_name, notes, actual_before, actual_after,
		 unassigned_before, unassigned_after, allocations_json,
		 income_transaction_id, transfer_transaction_ids_json,
		 skipped_allocations, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Amount.String(), record.Mode, record.PayerName, record.Notes,
		record.ActualBalanceBefore.String(), record.ActualBalanceAfter.String(),
		record.UnassignedCashBefore.String(), record.UnassignedCashAfter.String(),
		string(allocationsJSON),
		nullString(string(record.IncomeTransactionID)), string(transferIDsJSON),
		record.SkippedAllocations,
		record.ProcessedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to persist paycheck record: %w", err)
	}
	return nil
}

func (s *Store) GetPaycheck(ctx context.Context, id budget.PaycheckID) (*budget.PaycheckHistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getPaycheck(ctx, s.db, id)
}

func getPaycheck(ctx context.Context, q querier, id budget.PaycheckID) (*budget.PaycheckHistoryRecord, error) {
	records, err := queryPaychecks(ctx, q, paycheckSelect+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (s *Store) ListPaychecks(ctx context.Context) ([]budget.PaycheckHistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return queryPaychecks(ctx, s.db, paycheckSelect+` ORDER BY processed_at ASC`)
}

const paycheckSelect = `
	SELECT id, amount, mode, payer_name, notes, actual_before, actual_after,
	       unassigned_before, unassigned_after, allocations_json,
	       income_transaction_id, transfer_transaction_ids_json,
	       skipped_allocations, processed_at
	FROM paychecks`

func queryPaychecks(ctx context.Context, q querier, query string, args ...any) ([]budget.PaycheckHistoryRecord, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query paychecks: %w", err)
	}
	defer rows.Close()

	var records []budget.PaycheckHistoryRecord
	for rows.Next() {
		r, err := scanPaycheck(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanPaycheck(rows *sql.Rows) (budget.PaycheckHistoryRecord, error) {
	var (
		r                budget.PaycheckHistoryRecord
		amount           string
		actualBefore     string
		actualAfter      string
		unassignedBefore string
		unassignedAfter  string
		allocationsJSON  string
		incomeTxID       sql.NullString
		transferIDsJSON  string
		notes            sql.NullString
		processedAt      string
	)

	err := rows.Scan(&r.ID, &amount, &r.Mode, &r.PayerName, &notes,
		&actualBefore, &actualAfter, &unassignedBefore, &unassignedAfter,
		&allocationsJSON, &incomeTxID, &transferIDsJSON,
		&r.SkippedAllocations, &processedAt)
	if err != nil {
		return r, fmt.Errorf("failed to scan paycheck: %w", err)
	}

	r.Amount = parseStoredAmount(amount)
	r.Notes = notes.String
	r.ActualBalanceBefore = parseStoredAmount(actualBefore)
	r.ActualBalanceAfter = parseStoredAmount(actualAfter)
	r.UnassignedCashBefore = parseStoredAmount(unassignedBefore)
	r.UnassignedCashAfter = parseStoredAmount(unassignedAfter)
	r.IncomeTransactionID = budget.TransactionID(incomeTxID.String)
	r.ProcessedAt, _ = time.Parse(time.RFC3339, processedAt)

	var allocations map[string]string
	if err := json.Unmarshal([]byte(allocationsJSON), &allocations); err == nil {
		r.Allocations = make(map[budget.EnvelopeID]decimal.Decimal, len(allocations))
		for id, a := range allocations {
			r.Allocations[budget.EnvelopeID(id)] = parseStoredAmount(a)
		}
	}

	r.TransferTransactionIDs = []budget.TransactionID{}
	json.Unmarshal([]byte(transferIDsJSON), &r.TransferTransactionIDs)

	return r, nil
}

// =============================================================================
// TRANSACTIONAL STORE (budget.TxStore)
// =============================================================================

// WithTx executes fn within a single database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(budget.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// txStore runs every operation against the open SQL transaction. The
// store lock is already held by WithTx, so no re-locking here.
type txStore struct {
	tx *sql.Tx
}

func (ts *txStore) GetEnvelope(ctx context.Context, id budget.EnvelopeID) (*budget.Envelope, error) {
	return getEnvelope(ctx, ts.tx, id)
}

func (ts *txStore) ListEnvelopes(ctx context.Context) ([]budget.Envelope, error) {
	return listEnvelopes(ctx, ts.tx)
}

func (ts *txStore) SaveEnvelope(ctx context.Context, e budget.Envelope) error {
	return saveEnvelope(ctx, ts.tx, e)
}

func (ts *txStore) SetEnvelopeBalance(ctx context.Context, id budget.EnvelopeID, balance decimal.Decimal) error {
	return setEnvelopeBalance(ctx, ts.tx, id, balance)
}

func (ts *txStore) ListGoals(ctx context.Context) ([]budget.SavingsGoal, error) {
	return listGoals(ctx, ts.tx)
}

func (ts *txStore) SaveGoal(ctx context.Context, g budget.SavingsGoal) error {
	return saveGoal(ctx, ts.tx, g)
}

func (ts *txStore) AddTransaction(ctx context.Context, tx budget.Transaction) (budget.TransactionID, error) {
	return addTransaction(ctx, ts.tx, tx)
}

func (ts *txStore) ListTransactions(ctx context.Context) ([]budget.Transaction, error) {
	return queryTransactions(ctx, ts.tx, transactionSelect+` ORDER BY created_at ASC, id ASC`)
}

func (ts *txStore) ListTransactionsByPaycheck(ctx context.Context, id budget.PaycheckID) ([]budget.Transaction, error) {
	return queryTransactions(ctx, ts.tx,
		transactionSelect+` WHERE paycheck_id = ? ORDER BY created_at ASC, id ASC`, id)
}

func (ts *txStore) GetMeta(ctx context.Context) (*budget.Meta, error) {
	return getMeta(ctx, ts.tx)
}

func (ts *txStore) UpdateMeta(ctx context.Context, update budget.MetaUpdate) error {
	return updateMeta(ctx, ts.tx, update)
}

func (ts *txStore) PutPaycheck(ctx context.Context, record budget.PaycheckHistoryRecord) error {
	return putPaycheck(ctx, ts.tx, record)
}

func (ts *txStore) GetPaycheck(ctx context.Context, id budget.PaycheckID) (*budget.PaycheckHistoryRecord, error) {
	return getPaycheck(ctx, ts.tx, id)
}

func (ts *txStore) ListPaychecks(ctx context.Context) ([]budget.PaycheckHistoryRecord, error) {
	return queryPaychecks(ctx, ts.tx, paycheckSelect+` ORDER BY processed_at ASC`)
}

// =============================================================================
// HELPERS
// =============================================================================

func parseStoredAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

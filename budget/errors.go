/*
errors.go - Centralized error types for the budgeting engine

PURPOSE:
  All error types in one place. The paycheck package wraps these with
  execution context; callers branch with errors.Is/As.

ERROR CATEGORIES:
  1. Input errors   - Collected into ValidationReport, surfaced via
                      InvalidPaycheckError when the service gates
  2. Duplicate work - A paycheck ID that already has a history record
  3. Store errors   - Missing records, persistence failures

SEE ALSO:
  - validate.go: Produces the reports InvalidPaycheckError carries
  - ../paycheck/executor.go: Wraps store errors with step context
*/
package budget

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPaycheck is returned when a plan with validation errors
	// reaches a gate that refuses to execute it.
	ErrInvalidPaycheck = errors.New("invalid paycheck input")

	// ErrPaycheckAlreadyProcessed is returned (or detected) when a history
	// record with the same paycheck ID already exists. Retrying a plan
	// whose writes partially landed must not double-apply its deltas.
	ErrPaycheckAlreadyProcessed = errors.New("paycheck already processed")

	// ErrEnvelopeNotFound is returned when a referenced envelope does not
	// exist. During allocation application this is recovered (skip and
	// count), not fatal.
	ErrEnvelopeNotFound = errors.New("envelope not found")

	// ErrGoalNotFound is returned when a referenced savings goal does not exist.
	ErrGoalNotFound = errors.New("savings goal not found")

	// ErrPaycheckNotFound is returned when a history record lookup misses.
	ErrPaycheckNotFound = errors.New("paycheck not found")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// InvalidPaycheckError carries the full validation report so a caller sees
// every problem at once.
type InvalidPaycheckError struct {
	Report ValidationReport
}

func (e *InvalidPaycheckError) Error() string {
	return fmt.Sprintf("invalid paycheck input: %s", strings.Join(e.Report.Errors, "; "))
}

func (e *InvalidPaycheckError) Unwrap() error { return ErrInvalidPaycheck }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is due to invalid caller input
// rather than a system failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPaycheck) ||
		errors.Is(err, ErrPaycheckAlreadyProcessed)
}

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEnvelopeNotFound) ||
		errors.Is(err, ErrGoalNotFound) ||
		errors.Is(err, ErrPaycheckNotFound)
}

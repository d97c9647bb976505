/*
validate.go - Paycheck input validation

PURPOSE:
  Pure predicate set run during plan construction. Rules are independent
  and ALL collected - no short-circuiting - so the caller sees every
  problem at once instead of fixing them one round-trip at a time.

ADVISORY, NOT A GATE:
  Validation is reported inside the plan; plan construction itself never
  refuses to run. Whether an invalid plan may execute is the service
  layer's decision (paycheck.Processor gates on it, paycheck.Executor
  does not).

SEE ALSO:
  - plan.go: Embeds the report in every plan
  - errors.go: InvalidPaycheckError wrapper
*/
package budget

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationReport collects everything wrong (errors) or suspicious
// (warnings) about a paycheck input and the balance math derived from it.
type ValidationReport struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *ValidationReport) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.IsValid = false
}

func (r *ValidationReport) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidatePaycheckInput runs every input rule and collects all failures.
func ValidatePaycheckInput(input PaycheckInput) ValidationReport {
	report := ValidationReport{IsValid: true}

	if !input.Amount.IsPositive() {
		report.addError("amount must be greater than 0, got %s", input.Amount)
	}

	switch input.Mode {
	case ModeAllocate, ModeLeftover:
	default:
		report.addError("unknown mode %q: must be %q or %q", input.Mode, ModeAllocate, ModeLeftover)
	}

	totalAllocated := decimal.Zero
	for i, alloc := range input.EnvelopeAllocations {
		if alloc.EnvelopeID == "" {
			report.addError("allocation %d: missing envelope id", i)
		}
		if !alloc.Amount.IsPositive() {
			// Zero is rejected alongside negative: an allocation that
			// accomplishes nothing is a caller bug worth surfacing.
			report.addError("allocation %d (%s): amount must be greater than 0, got %s",
				i, alloc.EnvelopeID, alloc.Amount)
		}
		totalAllocated = totalAllocated.Add(alloc.Amount)
	}

	if len(input.EnvelopeAllocations) > 0 && totalAllocated.GreaterThan(input.Amount) {
		report.addError("allocations total %s exceeds paycheck amount %s by %s",
			totalAllocated, input.Amount, totalAllocated.Sub(input.Amount))
	}

	if input.Mode == ModeLeftover && len(input.EnvelopeAllocations) > 0 {
		report.addWarning("leftover mode ignores the %d supplied allocation(s); the full amount goes to unassigned cash",
			len(input.EnvelopeAllocations))
	}

	return report
}

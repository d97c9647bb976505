/*
money.go - Typed parsing boundary for amounts

PURPOSE:
  All numeric coercion from loosely-typed inputs (JSON numbers, string
  encoded balances, missing fields) happens HERE, in one total function.
  Business logic never sees a malformed amount: anything unparseable
  degrades to zero instead of propagating garbage into the ledger, where
  a single bad value would poison every downstream balance comparison.

SEE ALSO:
  - balances.go: The main consumer (snapshot normalization)
*/
package budget

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// ConservationEpsilon is the tolerance for the conservation check.
// Fractional-cent allocations can legitimately round; drift within this
// bound is a warning, not a failure.
var ConservationEpsilon = decimal.NewFromFloat(0.005)

// ParseAmount coerces an arbitrary value into a decimal amount.
// Total: never panics, never errors. nil and anything non-numeric
// (including NaN/Inf floats) parse as zero.
func ParseAmount(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero
		}
		return d
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		return ParseAmount(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	default:
		return decimal.Zero
	}
}

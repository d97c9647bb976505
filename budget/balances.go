/*
balances.go - Balance Reader

PURPOSE:
  Computes the authoritative CurrentBalances snapshot: the real bank
  balance, unassigned cash, and the derived virtual balance (sum of all
  envelope and goal balances plus unassigned cash).

KEY INSIGHT:
  The virtual balance is NEVER stored. It is recomputed from its parts on
  every read, so it cannot drift without a corresponding write to one of
  those parts. CurrentBalances is the "before" state every paycheck plan
  is built against.

INPUT TOLERANCE:
  Snapshots arrive as already-fetched collections whose balance fields may
  be string-encoded, missing, or garbage (imports, older clients). All of
  that flows through ParseAmount and degrades to zero; this function never
  fails and never writes.

SEE ALSO:
  - money.go: ParseAmount boundary
  - plan.go: Consumes CurrentBalances
*/
package budget

import "github.com/shopspring/decimal"

// EnvelopeSnapshot is a pre-fetched envelope row as seen at the read
// boundary. CurrentBalance is deliberately untyped: it is normalized via
// ParseAmount.
type EnvelopeSnapshot struct {
	ID             EnvelopeID
	Name           string
	CurrentBalance any
}

// GoalSnapshot is a pre-fetched savings-goal row at the read boundary.
type GoalSnapshot struct {
	ID            GoalID
	Name          string
	CurrentAmount any
}

// ReadCurrentBalances builds the CurrentBalances snapshot from global
// metadata and pre-fetched envelope/goal collections.
//
// Pure with respect to system state: no writes, idempotent, never fails.
// A nil meta defaults every global field to zero/false.
func ReadCurrentBalances(meta *Meta, envelopes []EnvelopeSnapshot, goals []GoalSnapshot) CurrentBalances {
	var actual, unassigned decimal.Decimal
	var manual bool
	if meta != nil {
		actual = meta.ActualBalance
		unassigned = meta.UnassignedCash
		manual = meta.ActualBalanceManual
	}

	virtual := unassigned
	for _, e := range envelopes {
		virtual = virtual.Add(ParseAmount(e.CurrentBalance))
	}
	for _, g := range goals {
		virtual = virtual.Add(ParseAmount(g.CurrentAmount))
	}

	return CurrentBalances{
		ActualBalance:       actual,
		VirtualBalance:      virtual,
		UnassignedCash:      unassigned,
		ActualBalanceManual: manual,
	}
}

// EnvelopeSnapshots converts stored envelopes into read-boundary snapshots.
func EnvelopeSnapshots(envelopes []Envelope) []EnvelopeSnapshot {
	out := make([]EnvelopeSnapshot, len(envelopes))
	for i, e := range envelopes {
		out[i] = EnvelopeSnapshot{ID: e.ID, Name: e.Name, CurrentBalance: e.CurrentBalance}
	}
	return out
}

// GoalSnapshots converts stored savings goals into read-boundary snapshots.
func GoalSnapshots(goals []SavingsGoal) []GoalSnapshot {
	out := make([]GoalSnapshot, len(goals))
	for i, g := range goals {
		out[i] = GoalSnapshot{ID: g.ID, Name: g.Name, CurrentAmount: g.CurrentAmount}
	}
	return out
}

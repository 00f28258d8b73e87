// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package query

import "github.com/dalzilio/tpnv/internal/model"

// Frame adapts a model.State to the Evaluator interface a Condition needs.
type Frame struct {
	State *model.State
}

func (f Frame) Var(idx int) int64      { return f.State.EvaluateVar(idx) }
func (f Frame) Clock(idx int) float64  { return f.State.EvaluateClock(idx) }
func (f Frame) Deadlocked() bool       { return f.State.IsDeadlocked() }

// Quantifier picks how a Query's per-run verdicts are folded across the
// runs (or branches) explored to answer it.
type Quantifier uint8

const (
	// QuantifierExists is satisfied if some run verifies the condition.
	QuantifierExists Quantifier = iota
	// QuantifierForAll is satisfied only if every run verifies it.
	QuantifierForAll
	// QuantifierProbability asks whether the probability of the
	// condition holding meets a numeric Target; resolved by package smc,
	// not by the boolean fold below.
	QuantifierProbability
	// QuantifierLTL checks the condition against a single generated run
	// online, with no cross-run fold at all.
	QuantifierLTL
)

func (q Quantifier) String() string {
	switch q {
	case QuantifierExists:
		return "E"
	case QuantifierForAll:
		return "A"
	case QuantifierProbability:
		return "Pr"
	default:
		return "LTL"
	}
}

// Query is a parsed query: a quantifier over a condition. The condition's
// own outer shape (Finally/Globally/anything else) determines how a
// single run's states are folded — see RunState.
type Query struct {
	Quantifier Quantifier
	Condition  Condition
	// Target is the probability threshold for QuantifierProbability, the
	// bound package smc's SPRT/Chernoff-Hoeffding estimators test against.
	Target float64
}

// NewRun starts a fresh per-run fold over q's condition.
func (q *Query) NewRun() *RunState {
	return &RunState{pending: q.Condition}
}

// FoldRuns combines the final verdicts of several runs according to q's
// quantifier. QuantifierProbability and QuantifierLTL are not resolved
// here; they return StatusMaybe as a neutral placeholder for callers that
// use a numeric estimator instead (package smc).
func (q *Query) FoldRuns(results []VerificationStatus) VerificationStatus {
	switch q.Quantifier {
	case QuantifierExists:
		acc := StatusUnverified
		for _, r := range results {
			acc = OrStatus(acc, r)
		}
		return acc
	case QuantifierForAll:
		acc := StatusVerified
		for _, r := range results {
			acc = AndStatus(acc, r)
		}
		return acc
	default:
		return StatusMaybe
	}
}

// RunState folds one Query's condition across the successive states of a
// single run, keeping only the live residual condition between calls to
// Step so a run of unbounded length is checked in constant memory.
type RunState struct {
	pending Condition
	last    VerificationStatus
	done    bool
}

// Step feeds the next state of the run to the evaluator and returns the
// verdict accumulated so far. Once Done reports true, further calls to
// Step are no-ops that just return the frozen verdict.
func (r *RunState) Step(ev Evaluator) VerificationStatus {
	if r.done || r.pending == nil {
		return r.last
	}
	status, residual := r.pending.Eval(ev)
	r.last = status
	r.pending = residual
	if residual == nil {
		r.done = true
	}
	return r.last
}

// Done reports whether the run's verdict is final: either the condition
// fully resolved, or the run itself ended (the caller should call Finish).
func (r *RunState) Done() bool { return r.done }

// Finish is called when the run ends (deadlock, step bound, time bound)
// before the condition's residual ever resolved on its own: an
// unresolved Finally is Unverified (it ran out of states to find a
// witness), an unresolved Globally is Verified (no counterexample turned
// up), and anything else stays at its last observed value.
func (r *RunState) Finish() VerificationStatus {
	if r.done {
		return r.last
	}
	r.done = true
	switch r.pending.(type) {
	case Finally:
		r.last = StatusUnverified
	case Globally:
		r.last = StatusVerified
	}
	return r.last
}

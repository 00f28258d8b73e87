// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package query

import "fmt"

// CompareOp is a numeric comparison operator.
type CompareOp uint8

const (
	OpLt CompareOp = iota
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
)

func (op CompareOp) String() string {
	switch op {
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpEq:
		return "=="
	default:
		return "!="
	}
}

func (op CompareOp) apply(l, r float64) bool {
	switch op {
	case OpLt:
		return l < r
	case OpLe:
		return l <= r
	case OpGt:
		return l > r
	case OpGe:
		return l >= r
	case OpEq:
		return l == r
	default:
		return l != r
	}
}

// Condition is a node of the query language's boolean/temporal AST. Eval
// checks the condition against one state and returns two things: the
// status contributed by this state alone, and — for the stateful temporal
// operators (Until, Next) — a residual Condition that must be evaluated
// again against the NEXT state to keep checking it. A nil residual means
// the condition is fully resolved by this one state.
type Condition interface {
	Eval(ev Evaluator) (VerificationStatus, Condition)
	String() string
}

// Compare is a leaf condition: a numeric comparison between two
// expressions, resolved in a single state.
type Compare struct {
	Op          CompareOp
	Left, Right Expr
}

func (c Compare) Eval(ev Evaluator) (VerificationStatus, Condition) {
	return FromBool(c.Op.apply(c.Left.Eval(ev), c.Right.Eval(ev))), nil
}

func (c Compare) String() string { return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right) }

// Deadlock holds at any state with no fireable transition.
type Deadlock struct{}

func (Deadlock) Eval(ev Evaluator) (VerificationStatus, Condition) {
	return FromBool(ev.Deadlocked()), nil
}
func (Deadlock) String() string { return "deadlock" }

// Not negates a condition, propagating a Not-wrapped residual if its
// operand is still pending.
type Not struct {
	Inner Condition
}

func (n Not) Eval(ev Evaluator) (VerificationStatus, Condition) {
	s, residual := n.Inner.Eval(ev)
	if residual == nil {
		return Invert(s), nil
	}
	return Invert(s), Not{Inner: residual}
}

func (n Not) String() string { return fmt.Sprintf("!%s", n.Inner) }

// And is the conjunction of two conditions. Each side may still be
// pending; the residual, if any, recombines only the sides that are.
type And struct {
	Left, Right Condition
}

func (a And) Eval(ev Evaluator) (VerificationStatus, Condition) {
	ls, lr := a.Left.Eval(ev)
	rs, rr := a.Right.Eval(ev)
	status := AndStatus(ls, rs)
	if status != StatusMaybe {
		return status, nil
	}
	// A nil residual means that side is stateless (e.g. a Compare or
	// Deadlock leaf): re-evaluate the original condition again next
	// state rather than dropping it from the conjunction.
	if lr == nil {
		lr = a.Left
	}
	if rr == nil {
		rr = a.Right
	}
	return status, And{Left: lr, Right: rr}
}

func (a And) String() string { return fmt.Sprintf("(%s & %s)", a.Left, a.Right) }

// Or is the disjunction of two conditions.
type Or struct {
	Left, Right Condition
}

func (o Or) Eval(ev Evaluator) (VerificationStatus, Condition) {
	ls, lr := o.Left.Eval(ev)
	rs, rr := o.Right.Eval(ev)
	status := OrStatus(ls, rs)
	if status != StatusMaybe {
		return status, nil
	}
	if lr == nil {
		lr = o.Left
	}
	if rr == nil {
		rr = o.Right
	}
	return status, Or{Left: lr, Right: rr}
}

func (o Or) String() string { return fmt.Sprintf("(%s | %s)", o.Left, o.Right) }

// Until holds at a state if Right holds now, or if Left holds now and the
// pair still holds on the next state (strong until: Left must keep holding
// until Right eventually does). Left and Right are state formulas,
// evaluated fresh at each state rather than threading their own
// residuals, the same state/path-formula split CTL makes.
type Until struct {
	Left, Right Condition
}

func (u Until) Eval(ev Evaluator) (VerificationStatus, Condition) {
	rs, _ := u.Right.Eval(ev)
	if rs == StatusVerified {
		return StatusVerified, nil
	}
	ls, _ := u.Left.Eval(ev)
	if ls != StatusVerified {
		return StatusUnverified, nil
	}
	return StatusMaybe, u
}

func (u Until) String() string { return fmt.Sprintf("(%s U %s)", u.Left, u.Right) }

// Next defers evaluation of Inner to the following state: at the state
// where Next is introduced it contributes no verdict of its own (Maybe)
// and schedules Inner, unwrapped, to run on the next state.
type Next struct {
	Inner Condition
}

func (n Next) Eval(ev Evaluator) (VerificationStatus, Condition) {
	return StatusMaybe, activated{n.Inner}
}

func (n Next) String() string { return fmt.Sprintf("X %s", n.Inner) }

// activated evaluates Condition directly, without re-deferring: the
// one-state delay Next introduces has already elapsed.
type activated struct {
	Condition
}

// Finally holds across a run if Inner holds at some state reached so far
// (an eventually/reachability property); RunState folds its per-state
// results with Or.
type Finally struct {
	Inner Condition
}

func (f Finally) Eval(ev Evaluator) (VerificationStatus, Condition) {
	s, residual := f.Inner.Eval(ev)
	if s == StatusVerified {
		return StatusVerified, nil
	}
	// Not yet witnessed: keep waiting, re-evaluating Inner fresh next
	// state if it was stateless (residual nil), or its own residual if
	// Inner is itself temporal.
	if residual == nil {
		residual = f.Inner
	}
	return StatusMaybe, Finally{Inner: residual}
}

func (f Finally) String() string { return fmt.Sprintf("F %s", f.Inner) }

// Globally holds across a run if Inner holds at every state reached so
// far (an invariant property); RunState folds its per-state results with
// And.
type Globally struct {
	Inner Condition
}

func (g Globally) Eval(ev Evaluator) (VerificationStatus, Condition) {
	s, residual := g.Inner.Eval(ev)
	if s == StatusUnverified {
		return StatusUnverified, nil
	}
	if residual == nil {
		residual = g.Inner
	}
	return StatusMaybe, Globally{Inner: residual}
}

func (g Globally) String() string { return fmt.Sprintf("G %s", g.Inner) }

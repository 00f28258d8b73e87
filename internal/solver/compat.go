// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package solver

import "github.com/dalzilio/tpnv/internal/query"

// containsClockProposition reports whether c references a clock anywhere
// in its expression tree: a class-graph class has no single clock value
// to offer (only a zone of reachable valuations), so any such condition
// is out of reach for ClassGraphReachability.
func containsClockProposition(c query.Condition) bool {
	switch v := c.(type) {
	case query.Compare:
		return exprHasClock(v.Left) || exprHasClock(v.Right)
	case query.Deadlock:
		return false
	case query.Not:
		return containsClockProposition(v.Inner)
	case query.And:
		return containsClockProposition(v.Left) || containsClockProposition(v.Right)
	case query.Or:
		return containsClockProposition(v.Left) || containsClockProposition(v.Right)
	case query.Until:
		return containsClockProposition(v.Left) || containsClockProposition(v.Right)
	case query.Next:
		return containsClockProposition(v.Inner)
	case query.Finally:
		return containsClockProposition(v.Inner)
	case query.Globally:
		return containsClockProposition(v.Inner)
	default:
		return false
	}
}

func exprHasClock(e query.Expr) bool {
	switch v := e.(type) {
	case query.ClockRef:
		return true
	case query.BinExpr:
		return exprHasClock(v.Left) || exprHasClock(v.Right)
	case query.Neg:
		return exprHasClock(v.Inner)
	default:
		return false
	}
}

// isStateCondition reports whether c, once its single permitted outer
// Finally/Globally wrapper is stripped, is a pure boolean combination of
// per-state leaves (Compare, Deadlock, Not, And, Or) with no further
// temporal nesting (Until, Next, a second Finally/Globally): exactly the
// shape a class-graph fold over single classes can decide.
func isStateCondition(c query.Condition) bool {
	return isStateConditionRec(innerCondition(c))
}

func isStateConditionRec(c query.Condition) bool {
	switch v := c.(type) {
	case query.Compare:
		return true
	case query.Deadlock:
		return true
	case query.Not:
		return isStateConditionRec(v.Inner)
	case query.And:
		return isStateConditionRec(v.Left) && isStateConditionRec(v.Right)
	case query.Or:
		return isStateConditionRec(v.Left) && isStateConditionRec(v.Right)
	default:
		return false
	}
}

// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package sly

import "github.com/dalzilio/tpnv/internal/query"

// conditionGuard adapts a parsed query.Condition to model.Guard, the only
// way a transition's textual "guard" field (a boolean condition over
// discrete variables, in the same grammar queries are written in) can be
// attached to a model.Transition without model importing package query.
type conditionGuard struct{ c query.Condition }

// Holds evaluates the guard against vars; a guard is a pure discrete
// condition, so the clock and deadlock facets of Evaluator are never
// actually read here, but varsEvaluator still supplies harmless zero
// values for them rather than panicking if a malformed guard sneaks a
// clock reference past the loader.
func (g conditionGuard) Holds(vars []int64) bool {
	status, _ := g.c.Eval(varsEvaluator(vars))
	return status.Good()
}

// varsEvaluator is a query.Evaluator over a plain discrete-variable slice,
// with no state, clock vector or deadlock flag behind it.
type varsEvaluator []int64

func (v varsEvaluator) Var(idx int) int64     { return v[idx] }
func (v varsEvaluator) Clock(idx int) float64 { return 0 }
func (v varsEvaluator) Deadlocked() bool      { return false }

// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Package smc implements statistical model checking: running many random,
// bounded simulations of a model and feeding each run's final verdict to an
// estimator (Chernoff-Hoeffding confidence interval, Wald's SPRT, or a
// plain max-value tracker) instead of exploring the full state space.
package smc

import "github.com/dalzilio/tpnv/internal/query"

// ResultKind tags which field of Result holds the answer.
type ResultKind uint8

const (
	ResultBool ResultKind = iota
	ResultFloat
	ResultInt
)

// Result is the outcome of running an estimator to completion.
type Result struct {
	Kind  ResultKind
	Bool  bool
	Float float64
	Int   int
}

func BoolResult(b bool) Result       { return Result{Kind: ResultBool, Bool: b} }
func FloatResult(f float64) Result   { return Result{Kind: ResultFloat, Float: f} }
func IntResult(n int) Result         { return Result{Kind: ResultInt, Int: n} }

// Estimator drives one statistical procedure: it decides, after each run's
// verdict comes in, whether another run is needed, and produces a final
// Result once it isn't.
type Estimator interface {
	MustDoAnotherRun() bool
	HandleRunResult(result query.VerificationStatus)
	Result() Result
}

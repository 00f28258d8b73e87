// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package query

import "fmt"

// Evaluator gives a condition read access to one state: its discrete
// variables, its clock values, and whether it is a deadlock. model.State
// satisfies this through the Frame adapter in evaluate.go.
type Evaluator interface {
	Var(idx int) int64
	Clock(idx int) float64
	Deadlocked() bool
}

// Expr is a numeric expression evaluated against one state, the operand of
// a Compare condition.
type Expr interface {
	Eval(ev Evaluator) float64
	String() string
}

// Const is a literal numeric value.
type Const float64

func (c Const) Eval(Evaluator) float64 { return float64(c) }
func (c Const) String() string         { return fmt.Sprintf("%g", float64(c)) }

// VarRef reads a discrete variable (a place's marking, or a declared
// integer variable) by index.
type VarRef struct {
	Idx  int
	Name string
}

func (v VarRef) Eval(ev Evaluator) float64 { return float64(ev.Var(v.Idx)) }
func (v VarRef) String() string            { return v.Name }

// ClockRef reads a clock's current value by index.
type ClockRef struct {
	Idx  int
	Name string
}

func (c ClockRef) Eval(ev Evaluator) float64 { return ev.Clock(c.Idx) }
func (c ClockRef) String() string            { return c.Name }

// ArithOp is the operator of a BinExpr.
type ArithOp uint8

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	default:
		return "*"
	}
}

// BinExpr is a binary arithmetic expression.
type BinExpr struct {
	Op          ArithOp
	Left, Right Expr
}

func (b BinExpr) Eval(ev Evaluator) float64 {
	l, r := b.Left.Eval(ev), b.Right.Eval(ev)
	switch b.Op {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	default:
		return l * r
	}
}

func (b BinExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Neg is unary arithmetic negation.
type Neg struct {
	Inner Expr
}

func (n Neg) Eval(ev Evaluator) float64 { return -n.Inner.Eval(ev) }
func (n Neg) String() string            { return fmt.Sprintf("-%s", n.Inner) }

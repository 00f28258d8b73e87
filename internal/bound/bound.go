// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Package bound implements the extended-integer ring used throughout the
// verification engine to express clock and time constraints: ±∞ together with
// strict ("<") and large ("<=") finite bounds. It also provides the derived
// Interval and Disjoint types used by transition firing windows, TAPN age
// windows and the time-flow cone of a state class.
package bound

import (
	"errors"
	"fmt"
)

// Kind identifies one of the four shapes a Bound can take.
type Kind uint8

const (
	// KindLarge is a non-strict ("<=") finite bound.
	KindLarge Kind = iota
	// KindStrict is a strict ("<") finite bound.
	KindStrict
	// KindPlusInf is +∞: no upper constraint.
	KindPlusInf
	// KindMinusInf is −∞: no lower constraint.
	KindMinusInf
)

func (k Kind) String() string {
	switch k {
	case KindLarge:
		return "<="
	case KindStrict:
		return "<"
	case KindPlusInf:
		return "+inf"
	case KindMinusInf:
		return "-inf"
	default:
		return "?"
	}
}

// Bound is a value in {−∞, Strict(n), Large(n), +∞}. The zero value is
// Large(0), matching the diagonal of a fresh DBM.
type Bound struct {
	Kind  Kind
	Value int
}

// PlusInf is the +∞ bound.
var PlusInf = Bound{Kind: KindPlusInf}

// MinusInf is the −∞ bound.
var MinusInf = Bound{Kind: KindMinusInf}

// Zero is the Large(0) bound, the identity of the DBM diagonal.
var Zero = Large(0)

// Large returns the non-strict bound "<= n".
func Large(n int) Bound { return Bound{Kind: KindLarge, Value: n} }

// Strict returns the strict bound "< n".
func Strict(n int) Bound { return Bound{Kind: KindStrict, Value: n} }

// ErrIndeterminate is returned by Add when summing +∞ and −∞, which has no
// sensible value under this ring.
var ErrIndeterminate = errors.New("bound: indeterminate sum of +inf and -inf")

// finite reports whether b carries an integer value (Strict or Large).
func (b Bound) finite() bool {
	return b.Kind == KindStrict || b.Kind == KindLarge
}

// IsInfinite reports whether b is +∞ or −∞.
func (b Bound) IsInfinite() bool { return !b.finite() }

// IsStrict reports whether b is a strict bound Strict(n); the infinite
// bounds are not strict.
func (b Bound) IsStrict() bool { return b.Kind == KindStrict }

// Compare returns an integer comparing two bounds under the ordering
// Large(n) < Strict(n+1); Strict(n) < Large(n). The result is negative if
// a < b, positive if a > b, and zero if they are equal.
func Compare(a, b Bound) int {
	if a.Kind == KindMinusInf {
		if b.Kind == KindMinusInf {
			return 0
		}
		return -1
	}
	if b.Kind == KindMinusInf {
		return 1
	}
	if a.Kind == KindPlusInf {
		if b.Kind == KindPlusInf {
			return 0
		}
		return 1
	}
	if b.Kind == KindPlusInf {
		return -1
	}
	// both finite: compare the "real line" position a.Value (+epsilon if strict)
	switch {
	case a.Value != b.Value:
		return a.Value - b.Value
	case a.Kind == b.Kind:
		return 0
	case a.Kind == KindStrict:
		// Strict(n) represents n-epsilon as an upper reference point, but the
		// ordering used in a DBM treats Large(n) < Strict(n+1), i.e. at equal
		// Value a Strict bound is the *smaller* one on the "less-than" axis.
		return -1
	default:
		return 1
	}
}

// Less reports whether a < b.
func Less(a, b Bound) bool { return Compare(a, b) < 0 }

// Min returns the smaller of a and b.
func Min(a, b Bound) Bound {
	if Compare(a, b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Bound) Bound {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

// Intersection returns the tighter (smaller) of two upper bounds, i.e.
// min under the Bound ordering. It is named distinctly from Min because it is
// the operation DBM constraint-tightening actually calls.
func Intersection(a, b Bound) Bound { return Min(a, b) }

// Neg returns the negation of b, flipping sign and preserving strictness:
// −(+∞) = −∞, −Strict(n) = Strict(−n), −Large(n) = Large(−n).
func Neg(b Bound) Bound {
	switch b.Kind {
	case KindPlusInf:
		return MinusInf
	case KindMinusInf:
		return PlusInf
	default:
		return Bound{Kind: b.Kind, Value: -b.Value}
	}
}

// Add returns a+b under absorption rules: ±∞ absorbs any finite value;
// Strict absorbs Large (the sum of a strict and a non-strict bound is
// strict); otherwise the integer sum. Add returns ErrIndeterminate if the
// operands are +∞ and −∞ in either order.
func Add(a, b Bound) (Bound, error) {
	if (a.Kind == KindPlusInf && b.Kind == KindMinusInf) ||
		(a.Kind == KindMinusInf && b.Kind == KindPlusInf) {
		return Bound{}, ErrIndeterminate
	}
	if a.Kind == KindPlusInf || b.Kind == KindPlusInf {
		return PlusInf, nil
	}
	if a.Kind == KindMinusInf || b.Kind == KindMinusInf {
		return MinusInf, nil
	}
	sum := a.Value + b.Value
	if a.Kind == KindStrict || b.Kind == KindStrict {
		return Strict(sum), nil
	}
	return Large(sum), nil
}

// MustAdd is Add but panics on ErrIndeterminate; used internally where the
// caller has already established the operands cannot both be infinite (e.g.
// one side is always a finite clock bound).
func MustAdd(a, b Bound) Bound {
	r, err := Add(a, b)
	if err != nil {
		panic(err)
	}
	return r
}

// Sub returns a-b, equivalent to Add(a, Neg(b)).
func Sub(a, b Bound) (Bound, error) { return Add(a, Neg(b)) }

// GreaterThan reports whether b, used as an upper bound, admits x (i.e.
// x < b for Strict, x <= b for Large, always for +∞, never for −∞).
func (b Bound) GreaterThan(x float64) bool {
	switch b.Kind {
	case KindPlusInf:
		return true
	case KindMinusInf:
		return false
	case KindStrict:
		return float64(b.Value) > x
	default:
		return float64(b.Value) >= x
	}
}

// LowerThan reports whether b, used as a lower bound, admits x (i.e.
// x > b for Strict, x >= b for Large, always for −∞, never for +∞).
func (b Bound) LowerThan(x float64) bool {
	switch b.Kind {
	case KindMinusInf:
		return true
	case KindPlusInf:
		return false
	case KindStrict:
		return float64(b.Value) < x
	default:
		return float64(b.Value) <= x
	}
}

func (b Bound) String() string {
	switch b.Kind {
	case KindPlusInf:
		return "+inf"
	case KindMinusInf:
		return "-inf"
	case KindStrict:
		return fmt.Sprintf("<%d", b.Value)
	default:
		return fmt.Sprintf("<=%d", b.Value)
	}
}

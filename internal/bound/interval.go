// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package bound

import (
	"fmt"
	"math"
)

// Interval is a closed/open interval of the extended-integer line, given by
// a lower and an upper Bound. The zero value is not meaningful; use Full,
// Invariant or New.
type Interval struct {
	Lower, Upper Bound
}

// Full is the interval (−∞, +∞).
func Full() Interval { return Interval{Lower: MinusInf, Upper: PlusInf} }

// Empty is the canonical empty interval.
func Empty() Interval { return Interval{Lower: PlusInf, Upper: MinusInf} }

// New builds an interval and normalizes it to Empty() if it denotes no
// points.
func New(lower, upper Bound) Interval {
	i := Interval{Lower: lower, Upper: upper}
	if i.IsEmpty() {
		return Empty()
	}
	return i
}

// Invariant builds the interval [0, upper], the shape of a TAPN place
// age-invariant or a TA location invariant.
func Invariant(upper Bound) Interval { return New(Large(0), upper) }

// lowerKey/upperKey encode a Bound used in a lower or upper role as a
// (value, nudge) pair that can be compared lexicographically regardless of
// which role produced it: a Strict lower bound starts just *after* its
// value (nudge +1), a Strict upper bound ends just *before* its value
// (nudge -1). This lets IsEmpty/Intersection/Covers compare a lower-role
// bound against an upper-role bound correctly, which a naive reuse of the
// DBM-oriented Compare (calibrated for the upper-bound-only case) cannot do.
func lowerKey(b Bound) (int64, int64) {
	switch b.Kind {
	case KindMinusInf:
		return math.MinInt64, 0
	case KindPlusInf:
		return math.MaxInt64, 0
	case KindStrict:
		return int64(b.Value), 1
	default:
		return int64(b.Value), 0
	}
}

func upperKey(b Bound) (int64, int64) {
	switch b.Kind {
	case KindMinusInf:
		return math.MinInt64, 0
	case KindPlusInf:
		return math.MaxInt64, 0
	case KindStrict:
		return int64(b.Value), -1
	default:
		return int64(b.Value), 0
	}
}

func lessKey(a1, a2, b1, b2 int64) bool {
	if a1 != b1 {
		return a1 < b1
	}
	return a2 < b2
}

// flip swaps Strict<->Large, the conversion needed when a bound changes
// role from lower to upper or vice-versa (as in Complement).
func flip(b Bound) Bound {
	switch b.Kind {
	case KindLarge:
		return Strict(b.Value)
	case KindStrict:
		return Large(b.Value)
	default:
		return b
	}
}

// IsEmpty reports whether i denotes no points.
func (i Interval) IsEmpty() bool {
	lv, ln := lowerKey(i.Lower)
	uv, un := upperKey(i.Upper)
	return lessKey(uv, un, lv, ln) || (lv == uv && ln == un && i.Lower.Kind == KindStrict && i.Upper.Kind == KindStrict)
}

// Contains reports whether x lies in i.
func (i Interval) Contains(x float64) bool {
	return i.Lower.LowerThan(x) && i.Upper.GreaterThan(x)
}

// Intersection returns the intersection of i and j.
func (i Interval) Intersection(j Interval) Interval {
	lo := i.Lower
	if lv1, ln1 := lowerKey(i.Lower); true {
		if lv2, ln2 := lowerKey(j.Lower); lessKey(lv1, ln1, lv2, ln2) {
			lo = j.Lower
		}
	}
	up := i.Upper
	if uv1, un1 := upperKey(i.Upper); true {
		if uv2, un2 := upperKey(j.Upper); lessKey(uv2, un2, uv1, un1) {
			up = j.Upper
		}
	}
	return New(lo, up)
}

// Intersects reports whether i and j share at least one point.
func (i Interval) Intersects(j Interval) bool {
	return !i.Intersection(j).IsEmpty()
}

// Covers reports whether i contains every point of j.
func (i Interval) Covers(j Interval) bool {
	lv1, ln1 := lowerKey(i.Lower)
	lv2, ln2 := lowerKey(j.Lower)
	uv1, un1 := upperKey(i.Upper)
	uv2, un2 := upperKey(j.Upper)
	return !lessKey(lv2, ln2, lv1, ln1) && !lessKey(uv1, un1, uv2, un2)
}

// adjacent reports whether i and j touch with no gap and no overlap, e.g.
// [0,3] and ]3,5].
func adjacent(i, j Interval) bool {
	return (i.Upper.Kind == KindLarge && j.Lower.Kind == KindStrict && i.Upper.Value == j.Lower.Value) ||
		(j.Upper.Kind == KindLarge && i.Lower.Kind == KindStrict && j.Upper.Value == i.Lower.Value)
}

// Union returns the union of i and j as a Disjoint set (one interval if
// they overlap or touch, two otherwise).
func (i Interval) Union(j Interval) Disjoint {
	if i.IsEmpty() {
		return Disjoint{j}.normalized()
	}
	if j.IsEmpty() {
		return Disjoint{i}.normalized()
	}
	if i.Intersects(j) || adjacent(i, j) {
		lo := i.Lower
		if lv1, ln1 := lowerKey(i.Lower); true {
			if lv2, ln2 := lowerKey(j.Lower); lessKey(lv2, ln2, lv1, ln1) {
				lo = j.Lower
			}
		}
		up := i.Upper
		if uv1, un1 := upperKey(i.Upper); true {
			if uv2, un2 := upperKey(j.Upper); lessKey(uv1, un1, uv2, un2) {
				up = j.Upper
			}
		}
		return Disjoint{New(lo, up)}
	}
	return Disjoint{i, j}.normalized()
}

// Complement returns the complement of i as a Disjoint set.
func (i Interval) Complement() Disjoint {
	if i.IsEmpty() {
		return Disjoint{Full()}
	}
	var out Disjoint
	if i.Lower.Kind != KindMinusInf {
		out = append(out, New(MinusInf, flip(i.Lower)))
	}
	if i.Upper.Kind != KindPlusInf {
		out = append(out, New(flip(i.Upper), PlusInf))
	}
	return out
}

// Delta shifts both endpoints of i by dx, used to advance a firing window
// by an elapsed delay (or, negated, to project a class back to the firing
// instant of one of its transitions).
func (i Interval) Delta(dx Bound) Interval {
	lower := i.Lower
	if !lower.IsInfinite() {
		lower = MustAdd(lower, dx)
	}
	upper := i.Upper
	if !upper.IsInfinite() {
		upper = MustAdd(upper, dx)
	}
	return New(lower, upper)
}

func (i Interval) String() string {
	if i.IsEmpty() {
		return "{}"
	}
	left := "["
	if i.Lower.Kind == KindStrict {
		left = "]"
	}
	right := "]"
	if i.Upper.Kind == KindStrict {
		right = "["
	}
	lv := i.Lower.String()
	if !i.Lower.IsInfinite() {
		lv = fmt.Sprintf("%d", i.Lower.Value)
	}
	rv := i.Upper.String()
	if !i.Upper.IsInfinite() {
		rv = fmt.Sprintf("%d", i.Upper.Value)
	}
	return fmt.Sprintf("%s%s,%s%s", left, lv, rv, right)
}

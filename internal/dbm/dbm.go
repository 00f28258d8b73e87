// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Package dbm implements difference bound matrices over the extended-integer
// ring of package bound: the symbolic representation of a convex set of
// clock valuations used by the state-class graph to represent "all the
// dates a transition could fire at" without enumerating them.
//
// A DBM of n clocks is an (n+1)x(n+1) matrix M where M[i][j] bounds the
// difference x_i - x_j <= M[i][j]. Clock 0 is the implicit reference clock,
// always equal to zero, so row/column 0 carries the absolute bounds on each
// clock (M[i][0] is the upper bound on x_i, M[0][i] the upper bound on -x_i,
// i.e. the negated lower bound).
package dbm

import (
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/dalzilio/tpnv/internal/bound"
)

// ErrDimensionMismatch is returned by operations combining two DBMs of
// different clock counts.
var ErrDimensionMismatch = errors.New("dbm: dimension mismatch")

// DBM is a difference bound matrix over n clocks plus the implicit
// reference clock 0.
type DBM struct {
	n int
	m []bound.Bound // flat (n+1)x(n+1), row-major
}

// N returns the number of clocks (excluding the implicit reference clock).
func (d *DBM) N() int { return d.n }

func (d *DBM) index(i, j int) int { return i*(d.n+1) + j }

// At returns M[i][j].
func (d *DBM) At(i, j int) bound.Bound { return d.m[d.index(i, j)] }

// Set assigns M[i][j] = b directly, bypassing tightening. Callers that want
// to narrow a constraint should use AddConstraint instead.
func (d *DBM) Set(i, j int, b bound.Bound) { d.m[d.index(i, j)] = b }

// NewUnconstrained returns the DBM of n clocks with no constraint beyond the
// diagonal: M[i][j] = +inf for i != j, M[i][i] = 0. Row 0 is +inf as well,
// so not even clock non-negativity is encoded.
func NewUnconstrained(n int) *DBM {
	d := &DBM{n: n, m: make([]bound.Bound, (n+1)*(n+1))}
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			if i == j {
				d.Set(i, j, bound.Zero)
			} else {
				d.Set(i, j, bound.PlusInf)
			}
		}
	}
	return d
}

// NewZero returns the DBM of n clocks where every clock is pinned to zero
// (the initial state of a freshly-enabled net before any delay has
// elapsed).
func NewZero(n int) *DBM {
	d := &DBM{n: n, m: make([]bound.Bound, (n+1)*(n+1))}
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			d.Set(i, j, bound.Zero)
		}
	}
	return d
}

// Clone returns a deep copy of d.
func (d *DBM) Clone() *DBM {
	c := &DBM{n: d.n, m: make([]bound.Bound, len(d.m))}
	copy(c.m, d.m)
	return c
}

// AddConstraint tightens M[i][j] to the minimum of its current value and b,
// the elementary operation used to intersect a clock-difference constraint
// into the zone (e.g. a firing interval or a TA guard).
func (d *DBM) AddConstraint(i, j int, b bound.Bound) {
	idx := d.index(i, j)
	d.m[idx] = bound.Min(d.m[idx], b)
}

// Canonicalise puts d in canonical (shortest-path-closed) form via
// Floyd-Warshall over the Bound ring: M[i][j] = min(M[i][j], M[i][k]+M[k][j])
// for every intermediate k, in the fixed k-outermost loop order that lets
// the update run in place with no extra allocation.
func (d *DBM) Canonicalise() {
	n1 := d.n + 1
	for k := 0; k < n1; k++ {
		for i := 0; i < n1; i++ {
			ik := d.At(i, k)
			if ik.Kind == bound.KindPlusInf {
				continue
			}
			for j := 0; j < n1; j++ {
				kj := d.At(k, j)
				if kj.Kind == bound.KindPlusInf {
					continue
				}
				through := bound.MustAdd(ik, kj)
				idx := d.index(i, j)
				if bound.Less(through, d.m[idx]) {
					d.m[idx] = through
				}
			}
		}
	}
}

// IsEmpty reports whether the zone denoted by d is empty, i.e. d has a
// negative cycle. d must already be canonical: a negative cycle surfaces on
// the diagonal once shortest paths are closed.
func (d *DBM) IsEmpty() bool {
	for i := 0; i <= d.n; i++ {
		if bound.Less(d.At(i, i), bound.Zero) {
			return true
		}
	}
	return false
}

// Intersection returns the (not yet canonical) pointwise intersection of d
// and e, which must share the same clock count.
func (d *DBM) Intersection(e *DBM) (*DBM, error) {
	if d.n != e.n {
		return nil, fmt.Errorf("%w: %d clocks vs %d", ErrDimensionMismatch, d.n, e.n)
	}
	out := &DBM{n: d.n, m: make([]bound.Bound, len(d.m))}
	for idx := range d.m {
		out.m[idx] = bound.Min(d.m[idx], e.m[idx])
	}
	return out, nil
}

// Includes reports whether d (assumed canonical) is a superset of e: every
// constraint of e is at least as tight as the corresponding constraint of d.
func (d *DBM) Includes(e *DBM) (bool, error) {
	if d.n != e.n {
		return false, fmt.Errorf("%w: %d clocks vs %d", ErrDimensionMismatch, d.n, e.n)
	}
	for idx := range d.m {
		if bound.Less(d.m[idx], e.m[idx]) {
			return false, nil
		}
	}
	return true, nil
}

// Equivalent reports whether d and e (both canonical) denote the same zone.
func (d *DBM) Equivalent(e *DBM) (bool, error) {
	di, err := d.Includes(e)
	if err != nil {
		return false, err
	}
	ei, err := e.Includes(d)
	if err != nil {
		return false, err
	}
	return di && ei, nil
}

// Delay lets time elapse freely: every clock may grow without bound, so the
// upper bound of each clock against the reference clock is relaxed to +inf.
// The result is left non-canonical; callers re-canonicalise after
// intersecting it with an invariant.
func (d *DBM) Delay() {
	for i := 1; i <= d.n; i++ {
		d.Set(i, 0, bound.PlusInf)
	}
}

// Reset sets clock i to zero: every bound involving i is replaced by the
// corresponding bound involving the reference clock, since x_i is now
// identically 0.
func (d *DBM) Reset(i int) {
	for j := 0; j <= d.n; j++ {
		if j == i {
			continue
		}
		d.Set(i, j, d.At(0, j))
		d.Set(j, i, d.At(j, 0))
	}
	d.Set(i, i, bound.Zero)
}

// Free disables clock i's bounds entirely (used when a clock's transition
// leaves the newly-enabled set and its value becomes irrelevant until the
// clock is next reset): every bound touching i except the diagonal becomes
// unconstrained.
func (d *DBM) Free(i int) {
	for j := 0; j <= d.n; j++ {
		if j == i {
			continue
		}
		d.Set(i, j, bound.PlusInf)
		d.Set(j, i, bound.PlusInf)
	}
}

// CanonicalHash returns an order-sensitive hash of d's entries, suitable as
// the DBM half of a state-class deduplication key once d is canonical
// (two canonical DBMs denoting the same zone hash equal since canonical
// form is unique).
func (d *DBM) CanonicalHash() uint64 {
	h := fnv.New64a()
	for _, b := range d.m {
		fmt.Fprintf(h, "%d:%d;", b.Kind, b.Value)
	}
	return h.Sum64()
}

func (d *DBM) String() string {
	s := ""
	for i := 0; i <= d.n; i++ {
		for j := 0; j <= d.n; j++ {
			s += fmt.Sprintf("%6s", d.At(i, j).String())
		}
		s += "\n"
	}
	return s
}

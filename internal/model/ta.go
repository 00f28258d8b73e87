// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package model

import (
	"fmt"

	"github.com/dalzilio/tpnv/internal/bound"
)

// Automaton is a network-free Timed Automaton: explicit locations with
// clock invariants, and edges carrying a guard (a conjunction of per-clock
// bound.Interval constraints), a reset set and an action.
type Automaton struct {
	Locations []Location
	Edges     []TAEdge
	Initial   int // index into Locations
	NumClocks int
}

// Location is a TA location together with its invariant: a conjunction of
// per-clock intervals that must hold for as long as control sits here.
type Location struct {
	Name      string
	Invariant map[int]bound.Interval // clock index -> admissible interval; absent clocks are unconstrained
}

// TAEdge is a TA transition: From -> To, guarded by a conjunction of
// per-clock intervals, resetting Resets to zero, and labeled with an
// action index (used for synchronisation/query matching; -1 if internal).
type TAEdge struct {
	From, To int
	Guard    map[int]bound.Interval
	Resets   []int
	Action   int
}

// GuardHolds reports whether clocks satisfies e's guard.
func (e TAEdge) GuardHolds(clocks []ClockValue) bool {
	for idx, iv := range e.Guard {
		if !iv.Contains(float64(clocks[idx])) {
			return false
		}
	}
	return true
}

// InvariantHolds reports whether clocks satisfies loc's invariant.
func (loc Location) InvariantHolds(clocks []ClockValue) bool {
	for idx, iv := range loc.Invariant {
		if !iv.Contains(float64(clocks[idx])) {
			return false
		}
	}
	return true
}

// ErrNoSuchEdge is returned by Automaton.Fire when asked to take an edge
// index out of range.
var ErrNoSuchEdge = fmt.Errorf("model: no such edge")

// OutgoingEdges returns the indices, into a.Edges, of the edges leaving
// location loc.
func (a *Automaton) OutgoingEdges(loc int) []int {
	var out []int
	for i, e := range a.Edges {
		if e.From == loc {
			out = append(out, i)
		}
	}
	return out
}

// Fire applies edge i to (loc, clocks), returning the resulting location
// and clock vector. It does not check GuardHolds/InvariantHolds; a caller
// that needs them checked filters on them before calling Fire.
func (a *Automaton) Fire(i int, clocks []ClockValue) (int, []ClockValue, error) {
	if i < 0 || i >= len(a.Edges) {
		return 0, nil, ErrNoSuchEdge
	}
	e := a.Edges[i]
	out := append([]ClockValue{}, clocks...)
	for _, c := range e.Resets {
		out[c] = 0
	}
	return e.To, out, nil
}

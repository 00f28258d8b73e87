// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Package classgraph builds the state-class graph of a Time Petri Net: a
// symbolic reachability graph whose nodes pair a discrete marking with a
// canonical DBM describing every clock valuation reachable at that marking,
// following the Berthomieu-Diaz state-class method.
package classgraph

import (
	"fmt"

	"github.com/dalzilio/tpnv/internal/bound"
	"github.com/dalzilio/tpnv/internal/dbm"
	"github.com/dalzilio/tpnv/internal/model"
)

// StateClass is one node of the graph: a marking together with the zone of
// clock valuations (one clock per currently-enabled transition) reachable
// at that marking without any transition firing.
type StateClass struct {
	Marking model.Marking
	DBM     *dbm.DBM

	// ToDBM maps a transition index to its DBM clock index (1..DBM.N()), or
	// 0 if the transition is not enabled in this class.
	ToDBM []int
	// FromDBM is the inverse of ToDBM: FromDBM[i] is the transition whose
	// clock is DBM index i, for i in 1..DBM.N(). FromDBM[0] is unused.
	FromDBM []int
}

// Enabled returns the transition indices enabled in c, in increasing order.
func (c *StateClass) Enabled() []int {
	var out []int
	for t, idx := range c.ToDBM {
		if idx != 0 {
			out = append(out, t)
		}
	}
	return out
}

// IsDeadlocked reports whether no transition is enabled in c.
func (c *StateClass) IsDeadlocked() bool { return len(c.Enabled()) == 0 }

// Hash returns a dedup key combining the marking and the canonical DBM, the
// key the exploration worklist uses to detect an already-visited class
// (spec: "keyed in a deduplication table by (marking, canonical DBM)
// hash").
func (c *StateClass) Hash() uint64 {
	h := c.DBM.CanonicalHash()
	for _, a := range c.Marking {
		h = h*1099511628211 ^ uint64(a.Pl)*31 + uint64(a.Mult)
	}
	return h
}

// Equal reports whether c and other denote the same class: equal marking
// and equivalent (both canonical) DBMs over the same transition-to-clock
// assignment.
func (c *StateClass) Equal(other *StateClass) bool {
	if !c.Marking.Equal(other.Marking) {
		return false
	}
	if len(c.ToDBM) != len(other.ToDBM) {
		return false
	}
	for i := range c.ToDBM {
		if c.ToDBM[i] != other.ToDBM[i] {
			return false
		}
	}
	ok, err := c.DBM.Equivalent(other.DBM)
	return err == nil && ok
}

// ErrNoInitialState is returned when the initial zone built from the
// enabled transitions' static intervals is empty once canonicalised.
var ErrNoInitialState = fmt.Errorf("classgraph: could not build initial class")

// Initial builds the initial state class of net: one clock per transition
// enabled at net.Initial, each constrained by that transition's own static
// firing interval.
func Initial(net *model.Net) (*StateClass, error) {
	enabled := raceEligible(net, enabledAt(net, net.Initial))
	c := &StateClass{
		Marking: net.Initial.Clone(),
		ToDBM:   make([]int, len(net.Tr)),
		FromDBM: make([]int, len(enabled)+1),
	}
	d := dbm.NewUnconstrained(len(enabled))
	idx := 1
	for _, t := range enabled {
		c.ToDBM[t] = idx
		c.FromDBM[idx] = t
		iv := net.Tr[t].Time
		d.AddConstraint(idx, 0, iv.Upper)
		d.AddConstraint(0, idx, bound.Neg(iv.Lower))
		idx++
	}
	d.Canonicalise()
	if d.IsEmpty() {
		return nil, ErrNoInitialState
	}
	c.DBM = d
	return c, nil
}

// enabledAt returns, in increasing order, the transitions of net enabled
// (Cond/Inhib only) at marking.
func enabledAt(net *model.Net, marking model.Marking) []int {
	var out []int
	for t := range net.Tr {
		if net.EnabledDiscrete(marking, t) {
			out = append(out, t)
		}
	}
	return out
}

// raceEligible filters enabled down to the transitions not dominated by a
// higher-priority enabled transition: net.Prio[i] lists every transition
// with lower priority than Tr[i], so t is excluded whenever some other
// enabled i lists t in net.Prio[i].
func raceEligible(net *model.Net, enabled []int) []int {
	if len(net.Prio) == 0 {
		return enabled
	}
	blocked := map[int]bool{}
	for _, i := range enabled {
		if i >= len(net.Prio) {
			continue
		}
		for _, t := range net.Prio[i] {
			blocked[t] = true
		}
	}
	out := enabled[:0:0]
	for _, t := range enabled {
		if !blocked[t] {
			out = append(out, t)
		}
	}
	return out
}

// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package model

import (
	"fmt"
	"math"

	"github.com/dalzilio/tpnv/internal/bound"
)

// ErrNotFireable is returned by Next when the requested transition cannot
// fire from the given state.
var ErrNotFireable = fmt.Errorf("model: transition not fireable")

// ErrDelayExceedsWindow is returned by Delay when d would run past the
// upper time bound of some enabled transition.
var ErrDelayExceedsWindow = fmt.Errorf("model: delay exceeds firing window")

// InitialState builds the initial concrete state of net: the declared
// initial marking, with a fresh (zero) clock for every transition enabled
// at that marking and a Disabled clock for every other transition.
func (net *Net) InitialState() *State {
	s := &State{Marking: net.Initial.Clone(), Clocks: make([]ClockValue, len(net.Tr))}
	s.Discrete = net.markingToDiscrete(s.Marking)
	for t := range net.Tr {
		if net.enabledDiscrete(s.Marking, t) {
			s.Clocks[t] = 0
		} else {
			s.Clocks[t] = Disabled
		}
	}
	s.Deadlocked = allDisabled(s.Clocks)
	return s
}

// markingToDiscrete mirrors m into a VirtualMemory indexed the way a loader
// declares a Petri/TAPN net's Context: one Var per place, at the place's own
// index, so a query's VarRef{Idx: p} reads place p's marking through
// State.EvaluateVar exactly as it would read any other declared variable.
func (net *Net) markingToDiscrete(m Marking) VirtualMemory {
	vm := make(VirtualMemory, len(net.Pl))
	for p := range net.Pl {
		vm[p] = int64(m.Get(p))
	}
	return vm
}

// allDisabled reports whether every clock is Disabled, i.e. no transition
// is enabled: the cached form of Net.IsDeadlocked, computed once when a
// State is built rather than rescanned by every IsDeadlocked call.
func allDisabled(clocks []ClockValue) bool {
	for _, c := range clocks {
		if !c.IsDisabled() {
			return false
		}
	}
	return true
}

func (net *Net) enabledDiscrete(m Marking, t int) bool {
	tr := net.Tr[t]
	if !m.Covers(tr.Cond) {
		return false
	}
	for _, a := range tr.Inhib {
		if a.Mult > 0 && m.Get(a.Pl) >= a.Mult {
			return false
		}
	}
	return true
}

// EnabledDiscrete reports whether transition t is enabled at marking m,
// ignoring time (Cond/Inhib only). Exported for the class-graph successor
// algorithm, which needs to recompute enabling at markings it builds itself
// rather than through a State.
func (net *Net) EnabledDiscrete(m Marking, t int) bool { return net.enabledDiscrete(m, t) }

// Persists reports whether transition k, enabled at marking before, keeps
// its clock across the firing of transition fired (as opposed to being
// newly enabled and reset to zero): true iff reserving k's own input
// tokens at before would still have let fired fire.
func (net *Net) Persists(before Marking, k, fired int) bool {
	return Add(before, net.Tr[k].Pre).Covers(net.Tr[fired].Cond)
}

// AvailableActions returns every transition whose discrete inputs are
// satisfied (Cond/Inhib), ignoring time. Guard evaluation against context
// variables is applied by callers that hold a Context and a discrete memory
// image (AvailableActionsWithGuard).
func (net *Net) AvailableActions(s *State) ActionSet {
	var acts ActionSet
	for t := range net.Tr {
		if !s.Clocks[t].IsDisabled() {
			acts.Add(t)
		}
	}
	return acts
}

// AvailableActionsWithGuard is AvailableActions further filtered by each
// transition's boolean Guard, if any, evaluated against vars.
func (net *Net) AvailableActionsWithGuard(s *State, vars []int64) ActionSet {
	var acts ActionSet
	for t := range net.Tr {
		if s.Clocks[t].IsDisabled() {
			continue
		}
		if g := net.Tr[t].Guard; g != nil && !g.Holds(vars) {
			continue
		}
		acts.Add(t)
	}
	return acts
}

// IsDeadlocked reports whether no transition is enabled at s.
func (net *Net) IsDeadlocked(s *State) bool { return net.AvailableActions(s).IsEmpty() }

// AvailableDelay returns the supremum of the delay the whole net may elapse
// from s before some enabled transition's static upper time bound would be
// crossed.
func (net *Net) AvailableDelay(s *State) bound.Bound {
	up := bound.PlusInf
	for t := range net.Tr {
		if s.Clocks[t].IsDisabled() {
			continue
		}
		// Bound only carries an integer Value, so a fractional clock (as
		// produced by simulate's continuous delays) can't subtract exactly.
		// Round the clock up rather than truncate: a too-large subtrahend
		// only makes remaining an under-estimate, never lets Delay admit a
		// step that would cross the transition's true upper bound.
		remaining, err := bound.Sub(net.Tr[t].Time.Upper, bound.Large(int(math.Ceil(float64(s.Clocks[t])))))
		if err != nil {
			continue
		}
		up = bound.Min(up, remaining)
	}
	return up
}

// Fireable reports whether transition t can fire immediately from s, i.e.
// it is enabled and its elapsed clock lies in its static firing interval.
func (net *Net) Fireable(s *State, t int) bool {
	if s.Clocks[t].IsDisabled() {
		return false
	}
	return net.Tr[t].Time.Contains(float64(s.Clocks[t]))
}

// Delay advances every enabled clock of s by d, failing if d would run past
// AvailableDelay(s).
func (net *Net) Delay(s *State, d float64) (*State, error) {
	if d < 0 {
		return nil, fmt.Errorf("model: negative delay %v", d)
	}
	if !net.AvailableDelay(s).GreaterThan(d) {
		return nil, ErrDelayExceedsWindow
	}
	ns := s.Clone()
	for t := range net.Tr {
		if !ns.Clocks[t].IsDisabled() {
			ns.Clocks[t] += ClockValue(d)
		}
	}
	return ns, nil
}

// Next fires transition t from s, applying the newly-enabled-clock rule: a
// transition k that stays enabled keeps its clock only if it was already
// enabled before firing AND Covers(Add(before, Pre[k]), Cond[t]) holds
// (i.e. reserving k's own input tokens still would have let t fire) —
// otherwise k is considered newly enabled and its clock resets to zero.
func (net *Net) Next(s *State, t int) (*State, error) {
	if !net.Fireable(s, t) {
		return nil, fmt.Errorf("%w: %s", ErrNotFireable, net.Tr[t].Name)
	}
	tr := net.Tr[t]
	before := s.Marking
	after := Add(before, tr.Delta)

	ns := &State{Marking: after, Clocks: make([]ClockValue, len(net.Tr))}
	ns.Discrete = net.markingToDiscrete(after)
	for k := range net.Tr {
		if !net.enabledDiscrete(after, k) {
			ns.Clocks[k] = Disabled
			continue
		}
		if k == t {
			ns.Clocks[k] = 0
			continue
		}
		wasEnabled := net.enabledDiscrete(before, k)
		if wasEnabled && net.Persists(before, k, t) {
			ns.Clocks[k] = s.Clocks[k]
		} else {
			ns.Clocks[k] = 0
		}
	}
	ns.Deadlocked = allDisabled(ns.Clocks)
	return ns, nil
}

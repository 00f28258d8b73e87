// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package model

import "math"

// VirtualMemory is the byte-addressed discrete-state image of a Context:
// in practice one int64 cell per declared variable, at the offset Context
// fixed at declaration time.
type VirtualMemory []int64

// Clone returns a copy of vm.
func (vm VirtualMemory) Clone() VirtualMemory {
	c := make(VirtualMemory, len(vm))
	copy(c, vm)
	return c
}

// ClockValue is the value of a clock: a non-negative elapsed time, or NaN
// to mean "disabled" (the clock has no meaningful value because the
// transition/location it is attached to is not currently enabled).
type ClockValue float64

// Disabled is the ClockValue meaning "this clock currently has no value".
var Disabled = ClockValue(math.NaN())

// IsDisabled reports whether v is Disabled.
func (v ClockValue) IsDisabled() bool { return math.IsNaN(float64(v)) }

// State is the runtime state explored by a run or folded into a state
// class: the discrete half (a VirtualMemory plus, for Petri/TAPN models, a
// Marking and per-place aged-token multisets), a dense clock vector, and a
// cached deadlock flag.
type State struct {
	Discrete VirtualMemory
	Marking  Marking
	Tokens   []AgedMultiset // TAPN only, nil otherwise; indexed like Marking's place indices
	Clocks   []ClockValue
	Location int // TA only

	Deadlocked bool
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := &State{
		Discrete:   s.Discrete.Clone(),
		Marking:    s.Marking.Clone(),
		Clocks:     append([]ClockValue{}, s.Clocks...),
		Location:   s.Location,
		Deadlocked: s.Deadlocked,
	}
	if s.Tokens != nil {
		c.Tokens = make([]AgedMultiset, len(s.Tokens))
		for i, t := range s.Tokens {
			c.Tokens[i] = append(AgedMultiset{}, t...)
		}
	}
	return c
}

// EvaluateVar returns the value of discrete variable idx in s.
func (s *State) EvaluateVar(idx int) int64 { return s.Discrete[idx] }

// EvaluateClock returns the value of clock idx, or NaN if disabled.
func (s *State) EvaluateClock(idx int) float64 { return float64(s.Clocks[idx]) }

// IsDeadlocked reports s's cached deadlock flag.
func (s *State) IsDeadlocked() bool { return s.Deadlocked }

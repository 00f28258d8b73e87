// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Package model holds the data model of nets and automata together with
// their discrete-step/time-delay firing semantics: Petri nets (plain Time
// Petri Nets and Timed-Arc Petri Nets share one representation), Timed
// Automata, the name/variable/clock binding Context, and the runtime State
// that a run or a state-class explores.
package model

import (
	"fmt"

	"github.com/dalzilio/tpnv/internal/bound"
)

// Kind tags which of the three (plus Markov chain, carried for the io
// layer's model-type field but not solved over) model shapes a Model holds,
// replacing runtime type-switches on a polymorphic model object with a
// single tagged variant, per spec's redesign note on "kind polymorphism over
// models".
type Kind uint8

const (
	KindPetri Kind = iota
	KindTAPN
	KindTA
	KindMarkovChain
)

func (k Kind) String() string {
	switch k {
	case KindPetri:
		return "PetriNet"
	case KindTAPN:
		return "TAPN"
	case KindTA:
		return "TimedAutomata"
	case KindMarkovChain:
		return "MarkovChain"
	default:
		return "?"
	}
}

// Model bundles a net or automaton with the Context that resolves its
// variable, clock and action names.
type Model struct {
	Kind      Kind
	Name      string
	Context   *Context
	Net       *Net       // valid for KindPetri, KindTAPN
	Automaton *Automaton // valid for KindTA
}

// Net is the concrete type of (Timed-Arc) Petri nets. A single
// representation serves plain Time Petri Nets and TAPN: a place only
// carries an AgeInvariant and a transition only carries AgeWindows/Transport
// arcs when the owning Model's Kind is KindTAPN, left zero/nil otherwise.
//
// The firing semantics this package implements differ from the classical
// Pre/Post-condition presentation, favouring uniform support for
// inhibitor-arcs and capacities instead:
//
//   - COND: an atom (p, m) in Tr[k].Cond means Tr[k] is enabled at marking
//     M only if M.Get(p) >= m.
//   - INHIB: dually, an atom (p, m) in Tr[k].Inhib (m > 0) means Tr[k] is
//     enabled at M only if M.Get(p) < m.
//   - PRE: Tr[k].Pre records the arcs from an input place to Tr[k]; it is
//     used only to decide whether another transition is newly enabled after
//     Tr[k] fires (see Next's re-initialization rule), not to compute the
//     post-marking.
//   - DELTA: firing Tr[k] at M produces Add(M, Tr[k].Delta).
type Net struct {
	Pl      []Place
	Tr      []Transition
	Initial Marking
	Prio    [][]int // Prio[i] lists, sorted, every transition with lower priority than Tr[i]
}

// Place is a Petri/TAPN place: a name and, for TAPN, an age-invariant
// bounding how long a token may sit in the place before the state becomes
// invalid.
type Place struct {
	Name         string
	Label        string
	AgeInvariant *bound.Interval // nil: no age constraint (plain TPN place)
}

// Transition is a Petri/TAPN transition.
type Transition struct {
	Name  string
	Label string
	Time  bound.Interval // static firing interval [alpha, beta]

	Cond  Marking // enabling condition, pointwise >=
	Inhib Marking // inhibition condition, pointwise <  (a weight of 0 disables the inhibitor on that place)
	Pre   Marking // input-arc weights, used only by the re-initialization rule
	Delta Marking // post - pre, applied pointwise on firing

	AgeWindows map[int]bound.Interval // TAPN: place index -> required age window of consumed tokens
	Transport  []TransportArc         // TAPN: arcs that move a token between places while preserving its age
	Guard      Guard                  // optional boolean guard over context discrete variables, nil if absent
}

// TransportArc moves Weight tokens from place From to place To on firing,
// preserving the age of the moved tokens (as opposed to Delta, which models
// ordinary arcs that produce fresh, zero-aged tokens).
type TransportArc struct {
	From, To int
	Weight   int
}

// Guard is a boolean condition over a Context's discrete variables, checked
// in addition to Cond/Inhib before a transition is considered enabled.
// internal/query's condition AST implements this interface; model does not
// import query to avoid a cycle.
type Guard interface {
	Holds(vars []int64) bool
}

// Marking is a Petri/TAPN marking: a set of Atoms (place index,
// multiplicity), sorted by increasing place index, zero-weight atoms
// omitted. Negative multiplicities are used to encode a transition's Delta.
type Marking []Atom

// Atom pairs a place index (an index into Net.Pl) with a multiplicity.
type Atom struct{ Pl, Mult int }

// AddToPlace returns m with mul added to the multiplicity of place val.
func (m Marking) AddToPlace(val, mul int) Marking {
	if mul == 0 {
		return m
	}
	if m == nil {
		return Marking{Atom{val, mul}}
	}
	for i := range m {
		if m[i].Pl == val {
			m[i].Mult += mul
			if m[i].Mult == 0 {
				return append(m[:i], m[i+1:]...)
			}
			return m
		}
		if m[i].Pl > val {
			return append(m[:i], append(Marking{Atom{val, mul}}, m[i:]...)...)
		}
	}
	return append(m, Atom{val, mul})
}

// Add returns the pointwise sum of m1 and m2.
func Add(m1, m2 Marking) Marking {
	res := Marking{}
	k1, k2 := 0, 0
	for {
		switch {
		case k1 == len(m1):
			return append(res, m2[k2:]...)
		case k2 == len(m2):
			return append(res, m1[k1:]...)
		case m1[k1].Pl == m2[k2].Pl:
			if mult := m1[k1].Mult + m2[k2].Mult; mult != 0 {
				res = append(res, Atom{Pl: m1[k1].Pl, Mult: mult})
			}
			k1++
			k2++
		case m1[k1].Pl < m2[k2].Pl:
			res = append(res, m1[k1])
			k1++
		default:
			res = append(res, m2[k2])
			k2++
		}
	}
}

// Get returns the multiplicity of place v in m, 0 if absent.
func (m Marking) Get(v int) int {
	for _, a := range m {
		if a.Pl == v {
			return a.Mult
		}
		if a.Pl > v {
			return 0
		}
	}
	return 0
}

// Covers reports whether m pointwise dominates cond: m.Get(p) >= mult for
// every atom (p, mult) of cond.
func (m Marking) Covers(cond Marking) bool {
	for _, a := range cond {
		if m.Get(a.Pl) < a.Mult {
			return false
		}
	}
	return true
}

// Clone returns a copy of m.
func (m Marking) Clone() Marking {
	c := make(Marking, len(m))
	copy(c, m)
	return c
}

// Equal reports whether m and n denote the same marking.
func (m Marking) Equal(n Marking) bool {
	if len(m) != len(n) {
		return false
	}
	for i := range m {
		if m[i] != n[i] {
			return false
		}
	}
	return true
}

func setAdd(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return s
		}
		if x > v {
			return append(s[:i], append([]int{v}, s[i:]...)...)
		}
	}
	return append(s, v)
}

func setUnion(a, b []int) []int {
	for _, v := range b {
		a = setAdd(a, v)
	}
	return a
}

func setIncluded(a, b []int) bool {
	for _, v := range a {
		found := false
		for _, w := range b {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func setMember(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// ErrNoMinimalPriority is returned by PrioClosure when every transition
// appears on the right-hand side of some priority relation (no starting
// point for the closure).
var ErrNoMinimalPriority = fmt.Errorf("model: priority relation has no minimal elements")

// ErrCyclicPriority is returned by PrioClosure when the priority relation
// has a cycle.
var ErrCyclicPriority = fmt.Errorf("model: cyclic dependency in priority relation")

// PrioClosure replaces net.Prio by its transitive closure, or fails if the
// relation has a cycle.
func (net *Net) PrioClosure() error {
	done := []int{}
	work := []int{}
	for k, v := range net.Prio {
		if len(v) == 0 {
			done = setAdd(done, k)
		} else {
			work = setAdd(work, k)
		}
	}
	if len(done) == len(net.Tr) {
		return nil
	}
	if len(done) == 0 {
		return ErrNoMinimalPriority
	}
	for {
		if len(work) == 0 {
			return nil
		}
		workn := []int{}
		donen := append([]int{}, done...)
		for _, t := range work {
			if setIncluded(net.Prio[t], done) {
				for _, v := range net.Prio[t] {
					net.Prio[t] = setUnion(net.Prio[t], net.Prio[v])
				}
				donen = setAdd(donen, t)
			} else {
				workn = setAdd(workn, t)
			}
		}
		if len(workn) == len(work) {
			for _, t := range work {
				if setMember(net.Prio[t], t) >= 0 {
					return fmt.Errorf("%w: %s", ErrCyclicPriority, net.Tr[t].Name)
				}
			}
			return ErrCyclicPriority
		}
		work = workn
		done = donen
	}
}

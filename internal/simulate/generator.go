// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Package simulate draws random concrete runs of a model: at each step, a
// delay is sampled from the admissible window and a transition is sampled
// among those that become fireable at that delay, the standard basis for
// statistical model checking (package internal/smc) and for a quick
// `simulate` CLI sanity check of a model.
package simulate

import (
	"context"
	"math/rand/v2"

	"github.com/dalzilio/tpnv/internal/bound"
	"github.com/dalzilio/tpnv/internal/model"
)

// Sample is one point of a run: the state reached, the delay elapsed to
// reach it from the previous sample, and the action fired to reach it
// (-1 for the first sample of a run, which fires nothing).
type Sample struct {
	State  *model.State
	Delay  float64
	Action int
}

// defaultExponentialRate is the rate used to sample a delay when a
// transition's admissible window is unbounded above (+inf), so that an open
// race still terminates almost surely instead of stalling forever.
const defaultExponentialRate = 1.0

// Generator is a pull-model random-run iterator: Go has no native
// lazy-iterator trait pre-range-over-func, so Next is a pull method in the
// style of the teacher's own scanner/parser (scan/unscan one token at a
// time) rather than a callback or channel.
type Generator struct {
	net      *model.Net
	rng      *rand.Rand
	maxSteps int

	started bool
	maximal bool
	current *model.State
	steps   int
}

// NewGenerator returns a Generator over net, seeded deterministically from
// seed, stopping a run after maxSteps steps (0 means unbounded, bounded
// only by a deadlock or invariant violation).
func NewGenerator(net *model.Net, seed uint64, maxSteps int) *Generator {
	return &Generator{
		net:      net,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		maxSteps: maxSteps,
	}
}

// Next pulls the next sample of the run. The first call returns the
// model's initial state with Delay 0 and Action -1. Next returns
// (Sample{}, false) once the run is maximal: deadlocked, step-bounded, or
// unable to schedule a delay.
func (g *Generator) Next(ctx context.Context) (Sample, bool) {
	if g.maximal {
		return Sample{}, false
	}
	if err := ctx.Err(); err != nil {
		g.maximal = true
		return Sample{}, false
	}
	if !g.started {
		g.started = true
		g.current = g.net.InitialState()
		return Sample{State: g.current, Delay: 0, Action: -1}, true
	}

	actions := g.net.AvailableActions(g.current)
	if actions.IsEmpty() {
		g.maximal = true
		return Sample{}, false
	}

	maxDelay := g.net.AvailableDelay(g.current)
	d := g.sampleDelay(maxDelay)
	delayed, err := g.net.Delay(g.current, d)
	if err != nil {
		g.maximal = true
		return Sample{}, false
	}

	var fireable []int
	actions.ForEach(func(a int) {
		if g.net.Fireable(delayed, a) {
			fireable = append(fireable, a)
		}
	})
	if len(fireable) == 0 {
		// The sampled delay fell short of every enabled transition's lower
		// bound; wait instead until the transition closest to becoming
		// fireable reaches its lower bound, and fire that one.
		nearest := nearestToFireable(g.net, g.current, actions)
		d = max(0, float64(g.net.Tr[nearest].Time.Lower.Value)-float64(g.current.Clocks[nearest]))
		delayed, err = g.net.Delay(g.current, d)
		if err != nil {
			g.maximal = true
			return Sample{}, false
		}
		fireable = []int{nearest}
	}

	pick := fireable[g.rng.IntN(len(fireable))]
	next, err := g.net.Next(delayed, pick)
	if err != nil {
		g.maximal = true
		return Sample{}, false
	}
	g.current = next
	g.steps++
	if g.maxSteps > 0 && g.steps >= g.maxSteps {
		g.maximal = true
	}
	return Sample{State: next, Delay: d, Action: pick}, true
}

// IsMaximal reports whether the run has ended.
func (g *Generator) IsMaximal() bool { return g.maximal }

// sampleDelay draws a delay in [0, up]: uniformly if up is finite, from an
// exponential distribution (clipped to stay non-negative) if unbounded.
func (g *Generator) sampleDelay(up bound.Bound) float64 {
	if up.IsInfinite() {
		return g.rng.ExpFloat64() / defaultExponentialRate
	}
	if up.Value <= 0 {
		return 0
	}
	return g.rng.Float64() * float64(up.Value)
}

// nearestToFireable returns, among actions, the transition whose lower
// time bound is smallest, the one the race would resolve to first had the
// delay sampling not undershot it.
func nearestToFireable(net *model.Net, s *model.State, actions model.ActionSet) int {
	best := -1
	var bestLower bound.Bound
	actions.ForEach(func(a int) {
		lower := net.Tr[a].Time.Lower
		if best == -1 || bound.Less(lower, bestLower) {
			best = a
			bestLower = lower
		}
	})
	return best
}

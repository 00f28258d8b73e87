// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package smc

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dalzilio/tpnv/internal/model"
	"github.com/dalzilio/tpnv/internal/simulate"
)

// MaxSeen estimates the maximum total token count reachable in a model by
// running a fixed number of bounded random runs and tracking the largest
// marking sum observed, rather than exploring the full state-class graph.
type MaxSeen struct {
	RunsNeeded int
}

// NewMaxSeen returns a MaxSeen that will sample runs runs.
func NewMaxSeen(runs int) *MaxSeen { return &MaxSeen{RunsNeeded: runs} }

// markingSum totals the tokens across every place of a state's marking.
func markingSum(s *model.State) int {
	total := 0
	for _, a := range s.Marking {
		total += a.Mult
	}
	return total
}

// EstimateMax runs RunsNeeded random simulations of net, each bounded to
// maxSteps steps, and returns the largest total token count seen across
// any of them.
func (m *MaxSeen) EstimateMax(ctx context.Context, net *model.Net, maxSteps int, seed uint64) Result {
	maxSeen := 0
	for i := 0; i < m.RunsNeeded; i++ {
		g := simulate.NewGenerator(net, seed+uint64(i), maxSteps)
		for {
			s, ok := g.Next(ctx)
			if !ok {
				break
			}
			if tokens := markingSum(s.State); tokens > maxSeen {
				maxSeen = tokens
			}
		}
	}
	return IntResult(maxSeen)
}

// ParallelEstimateMax is EstimateMax spread across GOMAXPROCS workers: an
// atomic run counter replaces the teacher's source's Mutex<usize> run
// tally, and errgroup.Group replaces its thread::scope, the idiomatic Go
// equivalent of "N workers race a shared counter down to zero, then join".
func (m *MaxSeen) ParallelEstimateMax(ctx context.Context, net *model.Net, maxSteps int, seed uint64) Result {
	workers := runtime.GOMAXPROCS(0)
	var runsDone atomic.Int64
	var globalMax atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			localMax := 0
			for {
				run := runsDone.Add(1)
				if run > int64(m.RunsNeeded) {
					break
				}
				gen := simulate.NewGenerator(net, seed+uint64(w)*1_000_003+uint64(run), maxSteps)
				for {
					s, ok := gen.Next(ctx)
					if !ok {
						break
					}
					if tokens := markingSum(s.State); tokens > localMax {
						localMax = tokens
					}
				}
			}
			for {
				cur := globalMax.Load()
				if int64(localMax) <= cur || globalMax.CompareAndSwap(cur, int64(localMax)) {
					return nil
				}
			}
		})
	}
	g.Wait()
	return IntResult(int(globalMax.Load()))
}

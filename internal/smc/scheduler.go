// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package smc

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dalzilio/tpnv/internal/model"
	"github.com/dalzilio/tpnv/internal/query"
	"github.com/dalzilio/tpnv/internal/simulate"
)

// Scheduler drives an Estimator by generating random runs of net and
// feeding each one's final VerificationStatus to it, until the estimator
// reports it has enough data.
type Scheduler struct {
	Net      *model.Net
	Query    *query.Query
	MaxSteps int
}

// NewScheduler returns a Scheduler sampling runs of net against q, each
// truncated at maxSteps steps.
func NewScheduler(net *model.Net, q *query.Query, maxSteps int) *Scheduler {
	return &Scheduler{Net: net, Query: q, MaxSteps: maxSteps}
}

// executeRun drives one random run of s.Net through s.Query's condition
// and returns its final verdict, stopping early the moment the run's
// RunState is Done.
func (s *Scheduler) executeRun(ctx context.Context, seed uint64) query.VerificationStatus {
	gen := simulate.NewGenerator(s.Net, seed, s.MaxSteps)
	run := s.Query.NewRun()
	for {
		sample, ok := gen.Next(ctx)
		if !ok {
			return run.Finish()
		}
		status := run.Step(query.Frame{State: sample.State})
		if run.Done() {
			return status
		}
	}
}

// RunOnce drives a single random run of s.Net against s.Query and returns
// its verdict, with no cross-run fold at all — the mode a QuantifierLTL
// query checks itself against, since its condition already folds an
// entire run's worth of states on its own (see query.RunState).
func (s *Scheduler) RunOnce(ctx context.Context, seed uint64) query.VerificationStatus {
	return s.executeRun(ctx, seed)
}

// Verify runs est to completion sequentially, seeding each run
// deterministically from baseSeed plus its run index.
func (s *Scheduler) Verify(ctx context.Context, est Estimator, baseSeed uint64) Result {
	run := uint64(0)
	for est.MustDoAnotherRun() {
		result := s.executeRun(ctx, baseSeed+run)
		est.HandleRunResult(result)
		run++
		if ctx.Err() != nil {
			break
		}
	}
	return est.Result()
}

// ParallelVerify spreads runs across GOMAXPROCS workers: each worker
// executes runs independently and sends its verdict to a shared channel;
// a single goroutine owns est (no locking needed on its state) and stops
// every worker, via ctx cancellation, the moment est says it has enough
// data — the idiomatic Go equivalent of the teacher source's mpsc
// channel plus a Mutex<bool> "must continue" flag.
func (s *Scheduler) ParallelVerify(ctx context.Context, est Estimator, baseSeed uint64) Result {
	workers := runtime.GOMAXPROCS(0)
	results := make(chan query.VerificationStatus, workers)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	g, gctx := errgroup.WithContext(runCtx)
	var nextSeed sync.Mutex
	seed := baseSeed

	for w := 0; w < workers; w++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				nextSeed.Lock()
				mySeed := seed
				seed++
				nextSeed.Unlock()
				result := s.executeRun(gctx, mySeed)
				select {
				case results <- result:
				case <-gctx.Done():
					return nil
				}
			}
		})
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		est.HandleRunResult(result)
		if !est.MustDoAnotherRun() {
			cancel()
		}
	}
	g.Wait()
	return est.Result()
}

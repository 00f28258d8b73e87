// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalzilio/tpnv/internal/classgraph"
	"github.com/dalzilio/tpnv/internal/model"
	"github.com/dalzilio/tpnv/internal/query"
	"github.com/dalzilio/tpnv/internal/smc"
)

// ResultKind tags which field of Result carries a Solver's answer.
type ResultKind uint8

const (
	ResultBool ResultKind = iota
	ResultInt
	ResultFloat
	ResultState
	ResultTrace
	ResultStrategy
)

// Result is the outcome of routing a query to a Solver and solving it.
type Result struct {
	Kind  ResultKind
	Bool  bool
	Int   int
	Float float64
	State *model.State
	Trace []string

	// Status is the tri-valued verdict behind a ResultBool outcome:
	// Bool is Status.Good() already projected down to a plain boolean for
	// callers that only care about the decided case, but cmd/tpnv's exit
	// code needs to tell an exploration bound's Maybe apart from a
	// certain Unverified, which Bool alone can't do.
	Status query.VerificationStatus
}

// Meta describes one Solver: what it answers, and what kind of model and
// query it expects.
type Meta struct {
	Name        string
	Description string
	Problem     ProblemType
	ModelName   string
	ResultType  string
}

// ErrNoSolver is returned by Route when no registered Solver accepts a
// query against a given net.
var ErrNoSolver = errors.New("solver: no compatible solver for this query")

// ErrUnsupported is returned by a Solver's Solve when it accepted a query
// in Compatible but cannot yet produce an answer (a stub).
var ErrUnsupported = errors.New("solver: not yet implemented")

// Solver checks one family of queries against one family of models: a
// compatibility predicate restricting which (net, query) pairs it will
// accept, paired with the procedure that answers the accepted ones.
type Solver interface {
	Meta() Meta
	Compatible(net *model.Net, ctx *model.Context, q *query.Query) bool
	Solve(ctx context.Context, net *model.Net, modelCtx *model.Context, q *query.Query) (Result, error)
}

// Config holds the tunables Solvers whose procedure is a statistical
// estimation (package smc) need beyond the query itself: none of these
// affect an exhaustive class-graph solver, which always runs to an exact
// answer.
type Config struct {
	// MaxSteps bounds every sampled run; required.
	MaxSteps int
	// Confidence and IntervalWidth parametrize a plain Chernoff-Hoeffding
	// estimation (used when Query.Target is zero). Defaults: 0.95, 0.1.
	Confidence, IntervalWidth float64
	// FalsePositives, FalseNegatives, IndifferenceUp, IndifferenceDown
	// parametrize an SPRT test against Query.Target when it is nonzero.
	// Defaults: 0.05, 0.05, 0.01, 0.01.
	FalsePositives, FalseNegatives, IndifferenceUp, IndifferenceDown float64
	// Seed is the base seed for random run generation.
	Seed uint64
	// Parallel runs the estimator's sampling across GOMAXPROCS workers.
	Parallel bool
}

// DefaultConfig returns the Config a CLI invocation uses absent explicit
// overrides.
func DefaultConfig() Config {
	return Config{
		MaxSteps:         10000,
		Confidence:       0.95,
		IntervalWidth:    0.1,
		FalsePositives:   0.05,
		FalseNegatives:   0.05,
		IndifferenceUp:   0.01,
		IndifferenceDown: 0.01,
		Seed:             1,
	}
}

// Registry is an ordered list of Solvers, tried in order by Route: the
// first Compatible one wins, the same "first match" shape the teacher
// source's class-graph/SMC split follows, generalized to an open list
// instead of a hardcoded pair.
type Registry struct {
	Solvers []Solver
}

// NewRegistry returns the standard Registry: an exact class-graph solver
// tried before the statistical one, so an exhaustive answer is preferred
// whenever the query and model make one available.
func NewRegistry(cfg Config) *Registry {
	return &Registry{Solvers: []Solver{
		&ClassGraphReachability{},
		&ClassGraphReachabilitySynthesis{},
		&StatisticalModelChecker{Config: cfg},
	}}
}

// Route returns the first registered Solver willing to accept (net, q),
// along with a description of the verification problem q poses.
func (r *Registry) Route(net *model.Net, modelCtx *model.Context, q *query.Query) (Solver, ProblemType, error) {
	problem := ClassifyProblem(q)
	for _, s := range r.Solvers {
		if s.Compatible(net, modelCtx, q) {
			return s, problem, nil
		}
	}
	return nil, problem, fmt.Errorf("%w: %s", ErrNoSolver, Label(problem))
}

// Solve routes q against net and runs whichever Solver accepts it.
func (r *Registry) Solve(ctx context.Context, net *model.Net, modelCtx *model.Context, q *query.Query) (Result, error) {
	s, _, err := r.Route(net, modelCtx, q)
	if err != nil {
		return Result{}, err
	}
	return s.Solve(ctx, net, modelCtx, q)
}

// fromStatus lifts a fully-resolved query.VerificationStatus into a
// bool Result; callers only use it once the status is no longer Maybe.
func fromStatus(s query.VerificationStatus) Result {
	return Result{Kind: ResultBool, Bool: s.Good(), Status: s}
}

// --- class-graph solvers -------------------------------------------------

// ClassGraphReachability answers pure, clock-free reachability (Exists +
// Finally), safety (ForAll + Globally), liveness (ForAll + Finally), and
// preservability (Exists + Globally) queries by exploring the
// net's full state-class graph, via classgraph.Explore. The first two
// quantifier/shape pairs reduce to a fold of the condition's per-class
// truth value (EF/AG hold at the initial class iff some/every reachable
// class satisfies the condition, since the graph already contains exactly
// the states reachable from it); the latter two do not — AF and EG ask
// about every infinite path through the graph, which a cycle can answer
// either way regardless of how many individual classes satisfy the
// condition — so they run a backward fixpoint over the graph's structure
// instead (forAllFinally/existsGlobally).
type ClassGraphReachability struct{}

func (*ClassGraphReachability) Meta() Meta {
	return Meta{
		Name:        "ClassGraphReachability",
		Description: "Test a reachability, preservability, safety, or liveness query against the state-class graph",
		Problem:     Reachability | Preservability | Safety | Liveness,
		ModelName:   "ClassGraph",
		ResultType:  "bool",
	}
}

func (*ClassGraphReachability) Compatible(net *model.Net, _ *model.Context, q *query.Query) bool {
	shape := shapeOf(q.Condition)
	if shape != shapeFinally && shape != shapeGlobally {
		return false
	}
	if q.Quantifier != query.QuantifierExists && q.Quantifier != query.QuantifierForAll {
		return false
	}
	return !containsClockProposition(q.Condition) && isStateCondition(q.Condition)
}

// Solve dispatches on q's quantifier/shape pair. A bound overrun during
// exploration is not treated as a hard error: per the propagation policy,
// it yields a Maybe verdict. For EF/AG (seedAcc's complete=false seed),
// a decisive witness already turned up among the classes explored before
// the bound hit still stands — one Verified class found is certain
// regardless of how much of the graph remains unexplored. For AF/EG there
// is no such partial answer: an unexplored class could close a cycle that
// flips the fixpoint either way, so a bound overrun always yields Maybe
// outright.
func (*ClassGraphReachability) Solve(ctx context.Context, net *model.Net, _ *model.Context, q *query.Query) (Result, error) {
	g, err := classgraph.Explore(ctx, net, classgraph.Options{})
	complete := true
	if err != nil {
		if !errors.Is(err, classgraph.ErrBoundExceeded) {
			return Result{}, fmt.Errorf("solver: exploring class graph: %w", err)
		}
		complete = false
	}
	inner := innerCondition(q.Condition)
	shape := shapeOf(q.Condition)

	if q.Quantifier == query.QuantifierForAll && shape == shapeFinally {
		if !complete {
			return fromStatus(query.StatusMaybe), nil
		}
		return fromStatus(query.FromBool(forAllFinally(g, classSatisfaction(g, inner)))), nil
	}
	if q.Quantifier == query.QuantifierExists && shape == shapeGlobally {
		if !complete {
			return fromStatus(query.StatusMaybe), nil
		}
		return fromStatus(query.FromBool(existsGlobally(g, classSatisfaction(g, inner)))), nil
	}

	acc := seedAcc(q.Quantifier, complete)
	for _, c := range g.Classes {
		status, _ := inner.Eval(classFrame{c})
		acc = fold(q.Quantifier, acc, status)
	}
	return fromStatus(acc), nil
}

// classSatisfaction evaluates inner at every class of g, collapsing each
// class's tri-valued outcome to a plain bool (Good()): a state condition
// evaluated against a concrete class is always decided, never Maybe.
func classSatisfaction(g *classgraph.Graph, inner query.Condition) []bool {
	sat := make([]bool, len(g.Classes))
	for i, c := range g.Classes {
		status, _ := inner.Eval(classFrame{c})
		sat[i] = status.Good()
	}
	return sat
}

// forAllFinally computes the least fixpoint of the standard backward CTL
// algorithm for AF: a class is good if sat itself, or it has at least one
// successor and every successor is already good. Iterating to a fixpoint
// (monotone, bounded by len(sat)) excludes any class that can stay inside
// a cycle of never-sat classes forever, and excludes deadlocked non-sat
// classes outright (they have no successor to ever become good through).
func forAllFinally(g *classgraph.Graph, sat []bool) bool {
	good := append([]bool(nil), sat...)
	for changed := true; changed; {
		changed = false
		for i, isGood := range good {
			if isGood {
				continue
			}
			succ := g.Successors(i)
			if len(succ) == 0 {
				continue
			}
			all := true
			for _, e := range succ {
				if !good[e.To] {
					all = false
					break
				}
			}
			if all {
				good[i] = true
				changed = true
			}
		}
	}
	return good[g.Initial]
}

// existsGlobally computes the greatest fixpoint of the standard backward
// CTL algorithm for EG: start from every sat class and repeatedly drop one
// that has lost every surviving successor, until stable. What remains is
// exactly the classes from which some infinite sat-only path exists; a
// deadlocked sat class is dropped on the first pass (zero successors), the
// same way a terminating run fails to witness EG.
func existsGlobally(g *classgraph.Graph, sat []bool) bool {
	good := append([]bool(nil), sat...)
	for changed := true; changed; {
		changed = false
		for i, isGood := range good {
			if !isGood {
				continue
			}
			hasGoodSucc := false
			for _, e := range g.Successors(i) {
				if good[e.To] {
					hasGoodSucc = true
					break
				}
			}
			if !hasGoodSucc {
				good[i] = false
				changed = true
			}
		}
	}
	return good[g.Initial]
}

// innerCondition strips the one Finally/Globally wrapper Compatible
// requires, since the class-graph fold already ranges over every
// reachable class: the wrapper's own per-run bookkeeping (needed to check
// a single linear run) is redundant here.
func innerCondition(c query.Condition) query.Condition {
	switch v := c.(type) {
	case query.Finally:
		return v.Inner
	case query.Globally:
		return v.Inner
	default:
		return c
	}
}

// seedAcc is the neutral starting accumulator for fold. When the graph
// being folded over is not fully explored (complete is false), the seed is
// Maybe rather than the quantifier's usual closing value, so an absence of
// evidence in the partial graph reads as "undetermined", not as a false
// certainty that the missing classes would also have agreed with it.
func seedAcc(q query.Quantifier, complete bool) query.VerificationStatus {
	if !complete {
		return query.StatusMaybe
	}
	if q == query.QuantifierForAll {
		return query.StatusVerified
	}
	return query.StatusUnverified
}

func fold(q query.Quantifier, acc, s query.VerificationStatus) query.VerificationStatus {
	if q == query.QuantifierForAll {
		return query.AndStatus(acc, s)
	}
	return query.OrStatus(acc, s)
}

// classFrame adapts a classgraph.StateClass to query.Evaluator: discrete
// variables read the class's marking by place index (a class-graph query
// only ranges over the variables shared with the underlying net, the
// places), clocks are never legal (Compatible rejects any condition that
// references one), and deadlock is the class's own cached emptiness check.
type classFrame struct {
	c *classgraph.StateClass
}

func (f classFrame) Var(idx int) int64 { return int64(f.c.Marking.Get(idx)) }
func (classFrame) Clock(int) float64   { panic("solver: class-graph evaluator has no clock values") }
func (f classFrame) Deadlocked() bool  { return f.c.IsDeadlocked() }

// ClassGraphReachabilitySynthesis is a stub registered for reachability-game
// strategy synthesis over a two-player class graph: Compatible accepts no
// query, and Solve returns ErrUnsupported.
type ClassGraphReachabilitySynthesis struct{}

func (*ClassGraphReachabilitySynthesis) Meta() Meta {
	return Meta{
		Name:        "ClassGraphReachabilitySynthesis",
		Description: "Compute the reachability game strategy for a two-player class graph",
		Problem:     Reachability | Synthesis | TwoPlayers,
		ModelName:   "ClassGraph",
		ResultType:  "Strategy",
	}
}

func (*ClassGraphReachabilitySynthesis) Compatible(_ *model.Net, _ *model.Context, q *query.Query) bool {
	return false
}

func (*ClassGraphReachabilitySynthesis) Solve(context.Context, *model.Net, *model.Context, *query.Query) (Result, error) {
	return Result{}, ErrUnsupported
}

// --- statistical solver ---------------------------------------------------

// StatisticalModelChecker answers probability queries (via Chernoff-
// Hoeffding estimation or an SPRT against Query.Target) and raw LTL
// queries (a single online run, since the condition's own Finally/Globally
// fold already covers a full run) by sampling random bounded runs through
// package smc, without ever building the net's state space.
type StatisticalModelChecker struct {
	Config Config
}

func (*StatisticalModelChecker) Meta() Meta {
	return Meta{
		Name:        "StatisticalModelChecker",
		Description: "Estimate a query's truth by sampling random timed runs",
		Problem:     UnclassifiedProblem,
		ModelName:   "Net",
		ResultType:  "bool|float",
	}
}

func (*StatisticalModelChecker) Compatible(_ *model.Net, _ *model.Context, q *query.Query) bool {
	return q.Quantifier == query.QuantifierProbability || q.Quantifier == query.QuantifierLTL
}

func (s *StatisticalModelChecker) Solve(ctx context.Context, net *model.Net, _ *model.Context, q *query.Query) (Result, error) {
	sched := smc.NewScheduler(net, q, s.Config.MaxSteps)
	if q.Quantifier == query.QuantifierLTL {
		status := sched.RunOnce(ctx, s.Config.Seed)
		return fromStatus(status), nil
	}

	est := s.newEstimator(q)
	var r smc.Result
	if s.Config.Parallel {
		r = sched.ParallelVerify(ctx, est, s.Config.Seed)
	} else {
		r = sched.Verify(ctx, est, s.Config.Seed)
	}
	switch r.Kind {
	case smc.ResultBool:
		return Result{Kind: ResultBool, Bool: r.Bool, Status: query.FromBool(r.Bool)}, nil
	case smc.ResultInt:
		return Result{Kind: ResultInt, Int: r.Int}, nil
	default:
		return Result{Kind: ResultFloat, Float: r.Float}, nil
	}
}

// newEstimator picks a plain Chernoff-Hoeffding estimation when q.Target
// is unset (a simple "estimate the probability" query), or an SPRT
// against q.Target when it is (a "is the probability >= Target" query).
func (s *StatisticalModelChecker) newEstimator(q *query.Query) smc.Estimator {
	if q.Target <= 0 {
		return smc.NewEstimation(s.Config.Confidence, s.Config.IntervalWidth)
	}
	return smc.NewSPRT(q.Target, s.Config.FalsePositives, s.Config.FalseNegatives, s.Config.IndifferenceUp, s.Config.IndifferenceDown)
}

package smc

import (
	"context"
	"testing"

	"github.com/dalzilio/tpnv/internal/bound"
	"github.com/dalzilio/tpnv/internal/model"
	"github.com/dalzilio/tpnv/internal/query"
)

// buildDeadlockingChain always reaches a deadlock after two firings: every
// random run verifies "eventually deadlock".
func buildDeadlockingChain() *model.Net {
	return &model.Net{
		Pl: []model.Place{{Name: "p0"}, {Name: "p1"}, {Name: "p2"}},
		Tr: []model.Transition{
			{
				Name:  "t0",
				Time:  bound.New(bound.Large(0), bound.Large(0)),
				Cond:  model.Marking{{Pl: 0, Mult: 1}},
				Delta: model.Marking{{Pl: 0, Mult: -1}, {Pl: 1, Mult: 1}},
			},
			{
				Name:  "t1",
				Time:  bound.New(bound.Large(1), bound.Large(2)),
				Cond:  model.Marking{{Pl: 1, Mult: 1}},
				Delta: model.Marking{{Pl: 1, Mult: -1}, {Pl: 2, Mult: 1}},
			},
		},
		Initial: model.Marking{{Pl: 0, Mult: 1}},
	}
}

func TestSchedulerVerifyAlwaysReachesDeadlock(t *testing.T) {
	net := buildDeadlockingChain()
	q := &query.Query{Quantifier: query.QuantifierLTL, Condition: query.Finally{Inner: query.Deadlock{}}}
	s := NewScheduler(net, q, 10)
	est := NewEstimation(0.9, 0.5)
	r := s.Verify(context.Background(), est, 1)
	if r.Kind != ResultFloat || r.Float != 1.0 {
		t.Errorf("expected every run to verify eventual deadlock, got %+v", r)
	}
}

func TestSchedulerParallelVerifyAlwaysReachesDeadlock(t *testing.T) {
	net := buildDeadlockingChain()
	q := &query.Query{Quantifier: query.QuantifierLTL, Condition: query.Finally{Inner: query.Deadlock{}}}
	s := NewScheduler(net, q, 10)
	est := NewEstimation(0.9, 0.5)
	r := s.ParallelVerify(context.Background(), est, 100)
	if r.Kind != ResultFloat || r.Float != 1.0 {
		t.Errorf("expected every run to verify eventual deadlock in parallel mode, got %+v", r)
	}
}

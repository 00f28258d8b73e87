package simulate

import (
	"context"
	"testing"

	"github.com/dalzilio/tpnv/internal/bound"
	"github.com/dalzilio/tpnv/internal/model"
)

func buildLoop() *model.Net {
	return &model.Net{
		Pl: []model.Place{{Name: "p0"}, {Name: "p1"}},
		Tr: []model.Transition{
			{
				Name:  "t0",
				Time:  bound.New(bound.Large(1), bound.Large(2)),
				Cond:  model.Marking{{Pl: 0, Mult: 1}},
				Delta: model.Marking{{Pl: 0, Mult: -1}, {Pl: 1, Mult: 1}},
			},
			{
				Name:  "t1",
				Time:  bound.New(bound.Large(1), bound.Large(2)),
				Cond:  model.Marking{{Pl: 1, Mult: 1}},
				Delta: model.Marking{{Pl: 1, Mult: -1}, {Pl: 0, Mult: 1}},
			},
		},
		Initial: model.Marking{{Pl: 0, Mult: 1}},
	}
}

func TestGeneratorFirstSampleIsInitial(t *testing.T) {
	net := buildLoop()
	g := NewGenerator(net, 1, 10)
	s, ok := g.Next(context.Background())
	if !ok {
		t.Fatalf("expected first sample to succeed")
	}
	if s.Action != -1 || s.Delay != 0 {
		t.Errorf("expected Action -1 and Delay 0 for the first sample, got %+v", s)
	}
	if !s.State.Marking.Equal(net.Initial) {
		t.Errorf("expected initial marking, got %v", s.State.Marking)
	}
}

func TestGeneratorStepsUntilBound(t *testing.T) {
	net := buildLoop()
	g := NewGenerator(net, 42, 5)
	n := 0
	for {
		_, ok := g.Next(context.Background())
		if !ok {
			break
		}
		n++
		if n > 100 {
			t.Fatalf("generator did not respect maxSteps")
		}
	}
	if n != 6 { // initial sample + 5 steps
		t.Errorf("expected 6 samples (initial + 5 steps), got %d", n)
	}
	if !g.IsMaximal() {
		t.Errorf("expected generator to be maximal after exhausting maxSteps")
	}
}

func TestGeneratorDeadlockStops(t *testing.T) {
	net := &model.Net{
		Tr:      []model.Transition{{Name: "t0", Time: bound.Invariant(bound.PlusInf), Cond: model.Marking{{Pl: 0, Mult: 1}}}},
		Initial: model.Marking{},
	}
	g := NewGenerator(net, 7, 0)
	g.Next(context.Background()) // initial
	_, ok := g.Next(context.Background())
	if ok {
		t.Fatalf("expected the run to end immediately at a deadlock")
	}
	if !g.IsMaximal() {
		t.Errorf("expected IsMaximal after deadlock")
	}
}

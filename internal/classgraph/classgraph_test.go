package classgraph

import (
	"context"
	"testing"

	"github.com/dalzilio/tpnv/internal/bound"
	"github.com/dalzilio/tpnv/internal/model"
)

// buildChain returns p0 -t0[0,0]-> p1 -t1[2,5]-> p2, a minimal net with one
// immediate transition followed by one genuinely timed transition.
func buildChain() *model.Net {
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
				Time:  bound.New(bound.Large(2), bound.Large(5)),
				Cond:  model.Marking{{Pl: 1, Mult: 1}},
				Delta: model.Marking{{Pl: 1, Mult: -1}, {Pl: 2, Mult: 1}},
			},
		},
		Initial: model.Marking{{Pl: 0, Mult: 1}},
	}
}

func TestInitialClass(t *testing.T) {
	net := buildChain()
	c, err := Initial(net)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Enabled()) != 1 || c.Enabled()[0] != 0 {
		t.Fatalf("expected only t0 enabled initially, got %v", c.Enabled())
	}
}

func TestSuccessorAdvancesMarkingAndClock(t *testing.T) {
	net := buildChain()
	c0, err := Initial(net)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c1, err := Successor(net, c0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c1.Marking.Get(1) != 1 {
		t.Fatalf("expected token in p1, got %v", c1.Marking)
	}
	if len(c1.Enabled()) != 1 || c1.Enabled()[0] != 1 {
		t.Fatalf("expected only t1 enabled after firing t0, got %v", c1.Enabled())
	}
	idx := c1.ToDBM[1]
	if got := c1.DBM.At(idx, 0); got != bound.Large(5) {
		t.Errorf("expected t1's upper bound 5 freshly set, got %v", got)
	}
}

func TestExploreChain(t *testing.T) {
	net := buildChain()
	g, err := Explore(context.Background(), net, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Classes) != 3 {
		t.Fatalf("expected 3 classes (p0, p1, p2 markings), got %d", len(g.Classes))
	}
	if len(g.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(g.Edges))
	}
	var deadlocks int
	for _, c := range g.Classes {
		if c.IsDeadlocked() {
			deadlocks++
		}
	}
	if deadlocks != 1 {
		t.Errorf("expected exactly one deadlocked class (the final p2 marking), got %d", deadlocks)
	}
}

func TestExploreBoundExceeded(t *testing.T) {
	// p0 is a catalytic token (never consumed) that keeps t0 enabled
	// forever while t0 piles up an unbounded count of tokens in p1, so the
	// class graph never closes.
	net := &model.Net{
		Pl: []model.Place{{Name: "p0"}, {Name: "p1"}},
		Tr: []model.Transition{{
			Name:  "t0",
			Time:  bound.New(bound.Large(1), bound.Large(1)),
			Cond:  model.Marking{{Pl: 0, Mult: 1}},
			Delta: model.Marking{{Pl: 1, Mult: 1}},
		}},
		Initial: model.Marking{{Pl: 0, Mult: 1}},
	}
	_, err := Explore(context.Background(), net, Options{MaxClasses: 3})
	if err != ErrBoundExceeded {
		t.Fatalf("expected ErrBoundExceeded, got %v", err)
	}
}

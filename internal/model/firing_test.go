package model

import (
	"testing"

	"github.com/dalzilio/tpnv/internal/bound"
)

// buildMutex returns a two-transition chain p0 -t0[0,3]-> p1 -t1[1,5]-> p2
// with one token in p0, each transition with a distinct firing window, used
// to exercise the newly-enabled-clock rule.
func buildMutex() *Net {
	return &Net{
		Pl: []Place{{Name: "p0"}, {Name: "p1"}, {Name: "p2"}},
		Tr: []Transition{
			{
				Name:  "t0",
				Time:  bound.Invariant(bound.Large(3)),
				Cond:  Marking{Atom{0, 1}},
				Delta: Marking{Atom{0, -1}, Atom{1, 1}},
			},
			{
				Name:  "t1",
				Time:  bound.New(bound.Large(1), bound.Large(5)),
				Cond:  Marking{Atom{1, 1}},
				Delta: Marking{Atom{1, -1}, Atom{2, 1}},
			},
		},
		Initial: Marking{Atom{0, 1}},
	}
}

func TestInitialState(t *testing.T) {
	net := buildMutex()
	s := net.InitialState()
	if s.Clocks[0].IsDisabled() {
		t.Errorf("t0 should be enabled initially")
	}
	if !s.Clocks[1].IsDisabled() {
		t.Errorf("t1 should be disabled initially")
	}
}

func TestFireableRespectsWindow(t *testing.T) {
	net := buildMutex()
	s := net.InitialState()
	if !net.Fireable(s, 0) {
		t.Errorf("t0 should be fireable at clock 0 within [0,3]")
	}
	s2, err := net.Delay(s, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !net.Fireable(s2, 0) {
		t.Errorf("t0 should still be fireable at clock 3, the closed upper bound")
	}
}

func TestDelayThenFire(t *testing.T) {
	net := buildMutex()
	s := net.InitialState()
	s2, err := net.Delay(s, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !net.Fireable(s2, 0) {
		t.Fatalf("t0 should be fireable at clock 2 within [0,3]")
	}
	s3, err := net.Next(s2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s3.Marking.Get(1) != 1 {
		t.Errorf("expected token in p1, got marking %v", s3.Marking)
	}
	if s3.Clocks[1].IsDisabled() {
		t.Errorf("t1 should now be enabled")
	}
	if s3.Clocks[1] != 0 {
		t.Errorf("t1 should have a fresh clock, got %v", s3.Clocks[1])
	}
}

func TestDelayExceedsWindow(t *testing.T) {
	net := buildMutex()
	s := net.InitialState()
	if _, err := net.Delay(s, 10); err != ErrDelayExceedsWindow {
		t.Fatalf("expected ErrDelayExceedsWindow, got %v", err)
	}
}

func TestDeadlock(t *testing.T) {
	net := &Net{
		Tr:      []Transition{{Name: "t0", Time: bound.Invariant(bound.PlusInf), Cond: Marking{Atom{0, 1}}}},
		Initial: Marking{},
	}
	s := net.InitialState()
	if !net.IsDeadlocked(s) {
		t.Errorf("expected deadlock with no tokens")
	}
	if !s.IsDeadlocked() {
		t.Errorf("expected State.Deadlocked to be cached consistently with Net.IsDeadlocked")
	}
}

func TestDeadlockedFlagUpdatesAcrossNext(t *testing.T) {
	net := buildMutex()
	s := net.InitialState()
	if s.IsDeadlocked() {
		t.Fatalf("initial state should not be deadlocked")
	}
	s, err := net.Next(s, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsDeadlocked() {
		t.Fatalf("state after firing t0 should not be deadlocked (t1 is enabled)")
	}
	s, err = net.Delay(s, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err = net.Next(s, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsDeadlocked() {
		t.Errorf("expected deadlock once both t0 and t1 have fired")
	}
}

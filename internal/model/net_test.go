package model

import "testing"

func TestMarkingAddToPlace(t *testing.T) {
	tables := []struct {
		Marking
		pl       int
		mult     int
		expected Marking
	}{
		{Marking{}, 2, 6, Marking{Atom{2, 6}}},
		{Marking{Atom{3, 4}}, 3, 6, Marking{Atom{3, 10}}},
		{Marking{Atom{4, 4}}, 3, 0, Marking{Atom{4, 4}}},
		{Marking{Atom{4, 4}}, 4, -4, Marking{}},
		{Marking{Atom{4, 4}}, 3, 2, Marking{Atom{3, 2}, Atom{4, 4}}},
		{Marking{Atom{0, -1}, Atom{5, 4}}, 5, -1, Marking{Atom{0, -1}, Atom{5, 3}}},
		{Marking{Atom{6, 7}, Atom{8, 7}, Atom{10, 4}}, 8, -7, Marking{Atom{6, 7}, Atom{10, 4}}},
	}
	for _, tt := range tables {
		actual := tt.Marking.AddToPlace(tt.pl, tt.mult)
		if !actual.Equal(tt.expected) {
			t.Errorf("%v.AddToPlace(%d, %d): expected %v, actual %v", tt.Marking, tt.pl, tt.mult, tt.expected, actual)
		}
	}
}

func TestMarkingAdd(t *testing.T) {
	a := Marking{Atom{1, 2}, Atom{3, 4}}
	b := Marking{Atom{1, -2}, Atom{2, 5}}
	got := Add(a, b)
	want := Marking{Atom{2, 5}, Atom{3, 4}}
	if !got.Equal(want) {
		t.Errorf("Add: expected %v, got %v", want, got)
	}
}

func TestMarkingCovers(t *testing.T) {
	m := Marking{Atom{1, 3}, Atom{2, 1}}
	if !m.Covers(Marking{Atom{1, 2}}) {
		t.Errorf("expected m to cover {1:2}")
	}
	if m.Covers(Marking{Atom{1, 4}}) {
		t.Errorf("expected m to not cover {1:4}")
	}
	if !m.Covers(nil) {
		t.Errorf("every marking should cover the empty condition")
	}
}

func TestPrioClosureAcyclic(t *testing.T) {
	net := &Net{
		Tr: []Transition{{Name: "t0"}, {Name: "t1"}, {Name: "t2"}},
		Prio: [][]int{
			{1}, // t0 < t1
			{2}, // t1 < t2
			{},
		},
	}
	if err := net.PrioClosure(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if setMember(net.Prio[0], 2) < 0 {
		t.Errorf("expected transitive priority t0 < t2, got %v", net.Prio[0])
	}
}

func TestPrioClosureCycle(t *testing.T) {
	net := &Net{
		Tr: []Transition{{Name: "t0"}, {Name: "t1"}},
		Prio: [][]int{
			{1},
			{0},
		},
	}
	if err := net.PrioClosure(); err == nil {
		t.Fatalf("expected a cyclic-dependency error")
	}
}

func TestPrioClosureEmpty(t *testing.T) {
	net := &Net{
		Tr:   []Transition{{Name: "t0"}, {Name: "t1"}},
		Prio: [][]int{{}, {}},
	}
	if err := net.PrioClosure(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

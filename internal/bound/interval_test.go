package bound

import "testing"

func TestIntervalIsEmpty(t *testing.T) {
	tables := []struct {
		i        Interval
		expected bool
	}{
		{New(Large(3), Large(5)), false},
		{New(Large(3), Large(3)), false},
		{New(Strict(3), Large(3)), true},
		{New(Large(3), Strict(3)), true},
		{New(Strict(3), Strict(3)), true},
		{New(Large(5), Large(3)), true},
		{Full(), false},
		{Empty(), true},
	}
	for _, tt := range tables {
		if got := tt.i.IsEmpty(); got != tt.expected {
			t.Errorf("%v.IsEmpty(): expected %v, got %v", tt.i, tt.expected, got)
		}
	}
}

func TestIntervalContains(t *testing.T) {
	iv := New(Large(3), Strict(5))
	tables := []struct {
		x        float64
		expected bool
	}{
		{2, false},
		{3, true},
		{4, true},
		{5, false},
		{6, false},
	}
	for _, tt := range tables {
		if got := iv.Contains(tt.x); got != tt.expected {
			t.Errorf("%v.Contains(%v): expected %v, got %v", iv, tt.x, tt.expected, got)
		}
	}
}

func TestIntervalIntersection(t *testing.T) {
	a := New(Large(3), Large(10))
	b := New(Strict(5), Large(20))
	got := a.Intersection(b)
	want := New(Strict(5), Large(10))
	if got != want {
		t.Errorf("Intersection: expected %v, got %v", want, got)
	}
	c := New(Large(11), Large(20))
	if !a.Intersection(c).IsEmpty() {
		t.Errorf("disjoint intervals should intersect to empty")
	}
}

func TestIntervalCovers(t *testing.T) {
	outer := New(Large(0), Large(10))
	inner := New(Strict(2), Large(8))
	if !outer.Covers(inner) {
		t.Errorf("%v should cover %v", outer, inner)
	}
	if inner.Covers(outer) {
		t.Errorf("%v should not cover %v", inner, outer)
	}
}

func TestIntervalUnionTouching(t *testing.T) {
	a := New(Large(0), Large(3))
	b := New(Strict(3), Large(5))
	got := a.Union(b)
	if len(got) != 1 {
		t.Fatalf("expected touching intervals to fuse into one, got %v", got)
	}
	want := New(Large(0), Large(5))
	if got[0] != want {
		t.Errorf("expected %v, got %v", want, got[0])
	}
}

func TestIntervalUnionGap(t *testing.T) {
	a := New(Large(0), Large(3))
	b := New(Large(5), Large(8))
	got := a.Union(b)
	if len(got) != 2 {
		t.Fatalf("expected disjoint pieces, got %v", got)
	}
}

func TestIntervalComplement(t *testing.T) {
	a := New(Large(3), Strict(5))
	got := a.Complement()
	if len(got) != 2 {
		t.Fatalf("expected two pieces, got %v", got)
	}
	if !got[0].Contains(0) || got[0].Contains(4) {
		t.Errorf("left piece wrong: %v", got[0])
	}
	if !got[1].Contains(6) || got[1].Contains(4) {
		t.Errorf("right piece wrong: %v", got[1])
	}
}

func TestIntervalComplementFull(t *testing.T) {
	if got := Full().Complement(); !got.IsEmpty() {
		t.Errorf("complement of Full() should be empty, got %v", got)
	}
}

func TestIntervalDelta(t *testing.T) {
	a := New(Large(3), Large(5))
	got := a.Delta(Large(2))
	want := New(Large(5), Large(7))
	if got != want {
		t.Errorf("Delta: expected %v, got %v", want, got)
	}
	b := New(Large(3), PlusInf)
	if got := b.Delta(Large(2)); got.Upper != PlusInf {
		t.Errorf("Delta should leave +inf untouched, got %v", got)
	}
}

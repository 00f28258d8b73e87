package model

import "testing"

func TestActionSetBasics(t *testing.T) {
	var a ActionSet
	if !a.IsEmpty() {
		t.Fatalf("zero-value ActionSet should be empty")
	}
	a.Add(3)
	a.Add(70)
	if a.IsEmpty() {
		t.Fatalf("expected non-empty")
	}
	if !a.Has(3) || !a.Has(70) {
		t.Fatalf("expected 3 and 70 set, got %v", a.Slice())
	}
	if a.Has(4) {
		t.Fatalf("4 should not be set")
	}
	if a.Len() != 2 {
		t.Fatalf("expected Len 2, got %d", a.Len())
	}
	a.Remove(3)
	if a.Has(3) {
		t.Fatalf("3 should be cleared")
	}
}

func TestActionSetUnionIntersect(t *testing.T) {
	var a, b ActionSet
	a.Add(1)
	a.Add(2)
	b.Add(2)
	b.Add(3)

	u := a.Union(b)
	if !u.Has(1) || !u.Has(2) || !u.Has(3) {
		t.Fatalf("expected union {1,2,3}, got %v", u.Slice())
	}

	i := a.Intersect(b)
	if i.Len() != 1 || !i.Has(2) {
		t.Fatalf("expected intersection {2}, got %v", i.Slice())
	}
}

func TestActionSetEqual(t *testing.T) {
	var a, b ActionSet
	a.Add(5)
	b.Add(5)
	if !a.Equal(b) {
		t.Fatalf("expected equal sets")
	}
	b.Add(6)
	if a.Equal(b) {
		t.Fatalf("expected unequal sets")
	}
}

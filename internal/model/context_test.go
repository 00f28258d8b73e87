package model

import "testing"

func TestContextDeclareAndResolve(t *testing.T) {
	ctx := NewContext()
	vi, err := ctx.DeclareVar("x", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ci, err := ctx.DeclareClock("c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ai, err := ctx.DeclareAction("go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vi != 0 || ci != 0 || ai != 0 {
		t.Fatalf("expected first declaration of each kind to be index 0")
	}

	kind, ok := ctx.Resolve("x")
	if !ok || kind != KindVar {
		t.Errorf("expected x to resolve as a var")
	}
	kind, ok = ctx.Resolve("c")
	if !ok || kind != KindClock {
		t.Errorf("expected c to resolve as a clock")
	}
	kind, ok = ctx.Resolve("go")
	if !ok || kind != KindAction {
		t.Errorf("expected go to resolve as an action")
	}
	if _, ok := ctx.Resolve("nope"); ok {
		t.Errorf("expected nope to be unresolved")
	}
}

func TestContextDuplicateName(t *testing.T) {
	ctx := NewContext()
	if _, err := ctx.DeclareVar("x", 0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ctx.DeclareClock("x"); err == nil {
		t.Fatalf("expected duplicate-name error")
	}
}

func TestContextLayoutAndMemory(t *testing.T) {
	ctx := NewContext()
	ctx.DeclareVar("x", 0, 1)
	ctx.DeclareVar("y", 0, 1)
	if ctx.Layout().Size != 2 {
		t.Fatalf("expected layout size 2, got %d", ctx.Layout().Size)
	}
	mem := ctx.NewMemory()
	if len(mem) != 2 {
		t.Fatalf("expected memory of size 2, got %d", len(mem))
	}
}

package query

import "testing"

// fakeEval is a minimal Evaluator for tests: one variable, one clock.
type fakeEval struct {
	v  int64
	c  float64
	dl bool
}

func (f fakeEval) Var(int) int64    { return f.v }
func (f fakeEval) Clock(int) float64 { return f.c }
func (f fakeEval) Deadlocked() bool { return f.dl }

func TestCompareEval(t *testing.T) {
	cond := Compare{Op: OpGe, Left: VarRef{Idx: 0, Name: "x"}, Right: Const(3)}
	if s, r := cond.Eval(fakeEval{v: 5}); s != StatusVerified || r != nil {
		t.Errorf("expected Verified/nil, got %v/%v", s, r)
	}
	if s, r := cond.Eval(fakeEval{v: 1}); s != StatusUnverified || r != nil {
		t.Errorf("expected Unverified/nil, got %v/%v", s, r)
	}
}

func TestDeadlockEval(t *testing.T) {
	d := Deadlock{}
	if s, _ := d.Eval(fakeEval{dl: true}); s != StatusVerified {
		t.Errorf("expected Verified when deadlocked")
	}
	if s, _ := d.Eval(fakeEval{dl: false}); s != StatusUnverified {
		t.Errorf("expected Unverified when not deadlocked")
	}
}

func TestNotEval(t *testing.T) {
	cond := Not{Inner: Compare{Op: OpEq, Left: VarRef{Name: "x"}, Right: Const(0)}}
	if s, _ := cond.Eval(fakeEval{v: 0}); s != StatusUnverified {
		t.Errorf("expected Unverified, got %v", s)
	}
	if s, _ := cond.Eval(fakeEval{v: 1}); s != StatusVerified {
		t.Errorf("expected Verified, got %v", s)
	}
}

func TestAndOrEval(t *testing.T) {
	p := Compare{Op: OpGt, Left: VarRef{Name: "x"}, Right: Const(0)}
	q := Compare{Op: OpLt, Left: VarRef{Name: "x"}, Right: Const(10)}
	and := And{Left: p, Right: q}
	or := Or{Left: p, Right: q}
	if s, _ := and.Eval(fakeEval{v: 5}); s != StatusVerified {
		t.Errorf("expected And Verified for x=5, got %v", s)
	}
	if s, _ := and.Eval(fakeEval{v: -1}); s != StatusUnverified {
		t.Errorf("expected And Unverified for x=-1, got %v", s)
	}
	if s, _ := or.Eval(fakeEval{v: -1}); s != StatusVerified {
		t.Errorf("expected Or Verified for x=-1 (still < 10), got %v", s)
	}
}

func TestUntilResolvesWhenRightHolds(t *testing.T) {
	p := Compare{Op: OpEq, Left: VarRef{Name: "x"}, Right: Const(0)}
	q := Compare{Op: OpEq, Left: VarRef{Name: "x"}, Right: Const(1)}
	u := Until{Left: p, Right: q}

	s, residual := u.Eval(fakeEval{v: 0})
	if s != StatusMaybe || residual == nil {
		t.Fatalf("expected Maybe with a residual while only Left holds, got %v/%v", s, residual)
	}
	s, residual = residual.Eval(fakeEval{v: 1})
	if s != StatusVerified || residual != nil {
		t.Fatalf("expected Verified/nil once Right holds, got %v/%v", s, residual)
	}
}

func TestUntilFailsWhenLeftBreaksFirst(t *testing.T) {
	p := Compare{Op: OpEq, Left: VarRef{Name: "x"}, Right: Const(0)}
	q := Compare{Op: OpEq, Left: VarRef{Name: "x"}, Right: Const(1)}
	u := Until{Left: p, Right: q}

	_, residual := u.Eval(fakeEval{v: 0})
	s, residual := residual.Eval(fakeEval{v: 2})
	if s != StatusUnverified || residual != nil {
		t.Fatalf("expected Unverified/nil once Left breaks before Right holds, got %v/%v", s, residual)
	}
}

func TestNextDefersOneState(t *testing.T) {
	q := Compare{Op: OpEq, Left: VarRef{Name: "x"}, Right: Const(1)}
	n := Next{Inner: q}

	s, residual := n.Eval(fakeEval{v: 1})
	if s != StatusMaybe || residual == nil {
		t.Fatalf("Next must not evaluate Inner on its own state, got %v/%v", s, residual)
	}
	s, residual = residual.Eval(fakeEval{v: 1})
	if s != StatusVerified || residual != nil {
		t.Fatalf("expected Verified/nil on the deferred state, got %v/%v", s, residual)
	}
}

func TestFinallyAndGlobally(t *testing.T) {
	p := Compare{Op: OpEq, Left: VarRef{Name: "x"}, Right: Const(3)}

	f := Finally{Inner: p}
	s, residual := f.Eval(fakeEval{v: 1})
	if s != StatusMaybe || residual == nil {
		t.Fatalf("expected Finally to stay pending before a hit, got %v/%v", s, residual)
	}
	s, residual = residual.Eval(fakeEval{v: 3})
	if s != StatusVerified || residual != nil {
		t.Fatalf("expected Finally Verified once the witness appears, got %v/%v", s, residual)
	}

	g := Globally{Inner: p}
	s, residual = g.Eval(fakeEval{v: 3})
	if s != StatusMaybe || residual == nil {
		t.Fatalf("expected Globally to stay pending after a single good state, got %v/%v", s, residual)
	}
	s, residual = residual.Eval(fakeEval{v: 4})
	if s != StatusUnverified || residual != nil {
		t.Fatalf("expected Globally Unverified once a counterexample appears, got %v/%v", s, residual)
	}
}

package smc

import (
	"math"
	"testing"

	"github.com/dalzilio/tpnv/internal/query"
)

func TestChernoffHoeffdingBound(t *testing.T) {
	got := chernoffHoeffdingBound(0.95, 0.1)
	want := int(math.Ceil(4.0 * math.Log(2.0/(1.0-0.95)) / (0.1 * 0.1)))
	if got != want {
		t.Errorf("chernoffHoeffdingBound(0.95, 0.1) = %d, want %d", got, want)
	}
}

func TestEstimationRunsUntilSatisfied(t *testing.T) {
	e := NewEstimation(0.95, 0.5) // wide interval -> few runs needed
	if e.RunsNeeded <= 0 {
		t.Fatalf("expected a positive run count, got %d", e.RunsNeeded)
	}
	n := 0
	for e.MustDoAnotherRun() {
		e.HandleRunResult(query.StatusVerified)
		n++
		if n > e.RunsNeeded+1 {
			t.Fatalf("estimation did not stop after RunsNeeded runs")
		}
	}
	if e.ExecutedRuns != e.RunsNeeded {
		t.Errorf("expected ExecutedRuns == RunsNeeded, got %d/%d", e.ExecutedRuns, e.RunsNeeded)
	}
	r := e.Result()
	if r.Kind != ResultFloat || r.Float != 1.0 {
		t.Errorf("expected FloatResult(1.0) when every run verifies, got %+v", r)
	}
}

func TestEstimationMixedResult(t *testing.T) {
	e := NewEstimation(0.9, 0.5)
	for e.MustDoAnotherRun() {
		if e.ExecutedRuns%2 == 0 {
			e.HandleRunResult(query.StatusVerified)
		} else {
			e.HandleRunResult(query.StatusUnverified)
		}
	}
	r := e.Result()
	if r.Float <= 0 || r.Float >= 1 {
		t.Errorf("expected a mixed fraction strictly between 0 and 1, got %v", r.Float)
	}
}

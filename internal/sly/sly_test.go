// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package sly

import (
	"testing"

	"github.com/dalzilio/tpnv/internal/model"
	"github.com/dalzilio/tpnv/internal/query"
)

const petriDoc = `{
  "model-type": "PetriNet",
  "model": {
    "places": [{"name": "p0"}, {"name": "p1"}, {"name": "p2"}],
    "transitions": [
      {"name": "t0", "from": [{"place": "p0"}], "to": [{"place": "p1"}], "interval": [{"<=":0},{"<=":5}]},
      {"name": "t1", "from": [{"place": "p1"}], "to": [{"place": "p2"}]}
    ]
  },
  "initial-state": {"p0": 1},
  "queries": [
    {"quantifier": "E", "logic": "F", "condition": "p2 >= 1"}
  ]
}`

func TestLoadPetriModel(t *testing.T) {
	proj, err := Load([]byte(petriDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Model.Kind != model.KindPetri {
		t.Errorf("expected kind %s, got %s", model.KindPetri, proj.Model.Kind)
	}
	if got := len(proj.Model.Net.Pl); got != 3 {
		t.Fatalf("expected 3 places, got %d", got)
	}
	if got := proj.Model.Net.Initial.Get(0); got != 1 {
		t.Errorf("expected initial marking of p0 = 1, got %d", got)
	}
	if got := proj.Model.Net.Tr[0].Delta.Get(1); got != 1 {
		t.Errorf("expected t0's delta on p1 = +1, got %d", got)
	}
	if got := len(proj.Queries); got != 1 {
		t.Fatalf("expected 1 bundled query, got %d", got)
	}
	if q := proj.Queries[0]; q.Quantifier != query.QuantifierExists {
		t.Errorf("expected an Exists-quantified query, got %v", q.Quantifier)
	}
}

func TestLoadPetriModelReadAndInhibitorArcs(t *testing.T) {
	const doc = `{
  "model-type": "PetriNet",
  "model": {
    "places": [{"name": "p0"}, {"name": "p1"}],
    "transitions": [
      {"name": "t0", "from": [
        {"place": "p0", "weight": 2, "kind": "test"},
        {"place": "p0", "weight": 5, "kind": "inhibitor"}
      ], "to": [{"place": "p1"}]}
    ]
  }
}`
	proj, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tr := proj.Model.Net.Tr[0]
	if got := tr.Cond.Get(0); got != 2 {
		t.Errorf("expected a test-arc threshold of 2, got %d", got)
	}
	if got := tr.Inhib.Get(0); got != 5 {
		t.Errorf("expected an inhibitor threshold of 5, got %d", got)
	}
	if got := tr.Pre.Get(0); got != 0 {
		t.Errorf("expected test/inhibitor arcs to leave Pre untouched, got %d", got)
	}
}

func TestLoadPetriModelWithGuard(t *testing.T) {
	const doc = `{
  "model-type": "PetriNet",
  "model": {
    "places": [{"name": "p0"}],
    "transitions": [{"name": "t0", "guard": "p0 >= 2"}]
  }
}`
	proj, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g := proj.Model.Net.Tr[0].Guard
	if g == nil {
		t.Fatal("expected a non-nil guard")
	}
	if g.Holds([]int64{1}) {
		t.Error("expected guard to reject p0 = 1")
	}
	if !g.Holds([]int64{2}) {
		t.Error("expected guard to accept p0 = 2")
	}
}

func TestLoadRejectsUnknownModelType(t *testing.T) {
	const doc = `{"model-type": "Nonsense", "model": {}}`
	if _, err := Load([]byte(doc)); err == nil {
		t.Error("expected an error for an unknown model-type")
	}
}

func TestLoadRejectsUnknownInitialPlace(t *testing.T) {
	const doc = `{
  "model-type": "PetriNet",
  "model": {"places": [{"name": "p0"}], "transitions": []},
  "initial-state": {"nope": 1}
}`
	if _, err := Load([]byte(doc)); err == nil {
		t.Error("expected an error for an initial-state naming an unknown place")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	proj, err := Load([]byte(petriDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := Save(proj)
	if err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}
	proj2, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error reloading: %v", err)
	}
	if got := len(proj2.Model.Net.Pl); got != 3 {
		t.Errorf("expected 3 places after round-trip, got %d", got)
	}
	if got := proj2.Model.Net.Tr[0].Delta.Get(1); got != 1 {
		t.Errorf("expected t0's delta on p1 = +1 after round-trip, got %d", got)
	}
}

func TestLoadTimedAutomaton(t *testing.T) {
	const doc = `{
  "model-type": "TimedAutomata",
  "model": {
    "clocks": ["x"],
    "locations": [
      {"name": "l0"},
      {"name": "l1", "invariant": {"x": [{"<=":0},{"<=":10}]}}
    ],
    "edges": [
      {"from": "l0", "to": "l1", "guard": {"x": [{"<=":2},"+inf"]}, "resets": ["x"], "action": "a"}
    ],
    "initial": "l0"
  }
}`
	proj, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Model.Kind != model.KindTA {
		t.Fatalf("expected kind %s, got %s", model.KindTA, proj.Model.Kind)
	}
	a := proj.Model.Automaton
	if got := len(a.Locations); got != 2 {
		t.Fatalf("expected 2 locations, got %d", got)
	}
	if a.Initial != 0 {
		t.Errorf("expected initial location index 0, got %d", a.Initial)
	}
	if got := len(a.Edges); got != 1 {
		t.Fatalf("expected 1 edge, got %d", got)
	}
	if got := a.Edges[0].Action; got != 0 {
		t.Errorf("expected action index 0 for %q, got %d", "a", got)
	}
	if got := len(a.Edges[0].Resets); got != 1 || a.Edges[0].Resets[0] != 0 {
		t.Errorf("expected edge to reset clock 0, got %v", a.Edges[0].Resets)
	}
}

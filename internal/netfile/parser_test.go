// Copyright (c) 2021 Silvano DAL ZILIO
//
// GNU Affero GPL v3

package netfile

import (
	"strings"
	"testing"

	"github.com/dalzilio/tpnv/internal/bound"
	"github.com/dalzilio/tpnv/internal/model"
)

func mustParse(t *testing.T, text string) *model.Model {
	t.Helper()
	m, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestParseBasicNet(t *testing.T) {
	const text = `
net demo

pl p0 (1)
pl p1
pl p2

tr t0 [0,5] p0 -> p1
tr t1 p1 -> p2
`
	m := mustParse(t, text)
	if m.Name != "demo" {
		t.Errorf("expected net name %q, got %q", "demo", m.Name)
	}
	if got := len(m.Net.Pl); got != 3 {
		t.Fatalf("expected 3 places, got %d", got)
	}
	if got := len(m.Net.Tr); got != 2 {
		t.Fatalf("expected 2 transitions, got %d", got)
	}
	if got := m.Net.Initial.Get(0); got != 1 {
		t.Errorf("expected initial marking of p0 = 1, got %d", got)
	}
	want := bound.New(bound.Large(0), bound.Large(5))
	if m.Net.Tr[0].Time != want {
		t.Errorf("expected t0's time interval %v, got %v", want, m.Net.Tr[0].Time)
	}
	if got := m.Net.Tr[1].Time; got != bound.New(bound.Large(0), bound.PlusInf) {
		t.Errorf("expected t1's default time interval [0,+inf), got %v", got)
	}
	if got := m.Net.Tr[0].Cond.Get(0); got != 1 {
		t.Errorf("expected t0 to consume 1 token from p0, got %d", got)
	}
	if got := m.Net.Tr[0].Delta.Get(0); got != -1 {
		t.Errorf("expected t0's delta on p0 = -1, got %d", got)
	}
	if got := m.Net.Tr[0].Delta.Get(1); got != 1 {
		t.Errorf("expected t0's delta on p1 = +1, got %d", got)
	}
	if idx, ok := m.Context.VarIndex("p1"); !ok || idx != 1 {
		t.Errorf("expected place p1 to be declared as context var at index 1, got %d, %v", idx, ok)
	}
}

func TestParsePriority(t *testing.T) {
	const text = `
pl p0 (1)
tr t0 p0 *1 -> p0
tr t1 p0 *1 -> p0
pr t0 > t1
`
	m := mustParse(t, text)
	if got := m.Net.Prio[0]; len(got) != 1 || got[0] != 1 {
		t.Errorf("expected t0 to have lower-priority transition [1], got %v", got)
	}
}

func TestParseReadAndInhibitorArcs(t *testing.T) {
	const text = `
pl p0 (3)
pl p1
tr t0 p0 ?2 p0 ?-5 -> p1
`
	m := mustParse(t, text)
	if got := m.Net.Tr[0].Cond.Get(0); got != 2 {
		t.Errorf("expected read-arc to set Cond(p0) = 2, got %d", got)
	}
	if got := m.Net.Tr[0].Inhib.Get(0); got != 5 {
		t.Errorf("expected inhibitor threshold 5, got %d", got)
	}
}

func TestParseMultiplierSuffix(t *testing.T) {
	const text = `
pl p0 (2K)
`
	m := mustParse(t, text)
	if got := m.Net.Initial.Get(0); got != 2000 {
		t.Errorf("expected marking 2000 from '2K', got %d", got)
	}
}

func TestParseRejectsEmptyTimeInterval(t *testing.T) {
	const text = `
pl p0 (1)
tr t0 [5,2] p0 -> p0
`
	if _, err := Parse(strings.NewReader(text)); err == nil {
		t.Errorf("expected an error parsing a transition with an empty time interval")
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	const text = `tr t0 -> ->`
	if _, err := Parse(strings.NewReader(text)); err == nil {
		t.Errorf("expected an error parsing malformed input with two arrows")
	}
}

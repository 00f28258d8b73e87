// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package sly

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/dalzilio/tpnv/internal/bound"
	"github.com/dalzilio/tpnv/internal/model"
	"github.com/dalzilio/tpnv/internal/query"
)

// jsonPlace is one place of a Petri/TAPN model document: a name and,
// for TAPN only, an age invariant bounding how long a token may wait there.
type jsonPlace struct {
	Name      string          `json:"name"`
	Invariant *bound.Interval `json:"invariant,omitempty"`
}

// jsonArc is one input arc of a transition: a place name, a weight and a
// kind selecting which of Cond/Inhib/Pre/Delta it feeds (see net.go's
// comment on Cond/Inhib/Pre/Delta for the semantics each kind implies).
// Age, TAPN only, is the admissible age window a consumed token from this
// place must fall in.
type jsonArc struct {
	Place  string          `json:"place"`
	Weight int             `json:"weight,omitempty"`
	Kind   string          `json:"kind,omitempty"` // "normal" (default), "test", "inhibitor"
	Age    *bound.Interval `json:"age,omitempty"`
}

// jsonTransportArc is a TAPN transport arc: Weight tokens move from From to
// To keeping their age, instead of being consumed and re-created at age 0.
type jsonTransportArc struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight,omitempty"`
}

// jsonTransition is one transition of a Petri/TAPN model document.
type jsonTransition struct {
	Name      string             `json:"name"`
	From      []jsonArc          `json:"from,omitempty"`
	To        []jsonArc          `json:"to,omitempty"`
	Interval  *bound.Interval    `json:"interval,omitempty"`
	Guard     string             `json:"guard,omitempty"`
	Transport []jsonTransportArc `json:"transport,omitempty"`
}

// jsonPriority is one "higher fires before lower" priority relation.
type jsonPriority struct {
	Higher string `json:"higher"`
	Lower  string `json:"lower"`
}

// jsonNet is the "model" payload for model-type "PetriNet"/"TAPN".
type jsonNet struct {
	Places      []jsonPlace      `json:"places"`
	Transitions []jsonTransition `json:"transitions"`
	Priority    []jsonPriority   `json:"priority,omitempty"`
}

func decodePetri(raw json.RawMessage, tapn bool) (*model.Model, error) {
	var jn jsonNet
	if err := json.Unmarshal(raw, &jn); err != nil {
		return nil, fmt.Errorf("sly: invalid %s model: %w", model.KindPetri, err)
	}
	ctx := model.NewContext()
	pl := make(map[string]int, len(jn.Places))
	net := &model.Net{}
	for _, jp := range jn.Places {
		if _, ok := pl[jp.Name]; ok {
			return nil, fmt.Errorf("sly: duplicate place %q", jp.Name)
		}
		idx := len(net.Pl)
		pl[jp.Name] = idx
		net.Pl = append(net.Pl, model.Place{Name: jp.Name, AgeInvariant: jp.Invariant})
		if _, err := ctx.DeclareVar(jp.Name, 0, math.MaxInt64); err != nil {
			return nil, fmt.Errorf("sly: %w", err)
		}
	}
	tr := make(map[string]int, len(jn.Transitions))
	for _, jt := range jn.Transitions {
		if _, ok := tr[jt.Name]; ok {
			return nil, fmt.Errorf("sly: duplicate transition %q", jt.Name)
		}
		tr[jt.Name] = len(net.Tr)
		net.Tr = append(net.Tr, model.Transition{Name: jt.Name})
		net.Prio = append(net.Prio, nil)
	}
	for i, jt := range jn.Transitions {
		t := &net.Tr[i]
		if jt.Interval != nil {
			t.Time = *jt.Interval
		} else {
			t.Time = bound.New(bound.Large(0), bound.PlusInf)
		}
		if tapn {
			t.AgeWindows = map[int]bound.Interval{}
		}
		for _, a := range jt.From {
			p, ok := pl[a.Place]
			if !ok {
				return nil, fmt.Errorf("sly: transition %q references unknown place %q", jt.Name, a.Place)
			}
			w := a.Weight
			if w == 0 {
				w = 1
			}
			switch a.Kind {
			case "test":
				t.Cond = setIfBigger(t.Cond, p, w)
			case "inhibitor":
				t.Inhib = setIfLower(t.Inhib, p, w)
			case "", "normal":
				t.Cond = t.Cond.AddToPlace(p, w)
				t.Delta = t.Delta.AddToPlace(p, -w)
				t.Pre = t.Pre.AddToPlace(p, -w)
			default:
				return nil, fmt.Errorf("sly: transition %q: unknown arc kind %q", jt.Name, a.Kind)
			}
			if tapn && a.Age != nil {
				t.AgeWindows[p] = *a.Age
			}
		}
		for _, a := range jt.To {
			p, ok := pl[a.Place]
			if !ok {
				return nil, fmt.Errorf("sly: transition %q references unknown place %q", jt.Name, a.Place)
			}
			w := a.Weight
			if w == 0 {
				w = 1
			}
			t.Delta = t.Delta.AddToPlace(p, w)
		}
		for _, ta := range jt.Transport {
			from, ok := pl[ta.From]
			if !ok {
				return nil, fmt.Errorf("sly: transition %q: transport from unknown place %q", jt.Name, ta.From)
			}
			to, ok := pl[ta.To]
			if !ok {
				return nil, fmt.Errorf("sly: transition %q: transport to unknown place %q", jt.Name, ta.To)
			}
			w := ta.Weight
			if w == 0 {
				w = 1
			}
			t.Transport = append(t.Transport, model.TransportArc{From: from, To: to, Weight: w})
		}
		if jt.Guard != "" {
			q, err := query.Parse(jt.Guard, ctx)
			if err != nil {
				return nil, fmt.Errorf("sly: transition %q guard: %w", jt.Name, err)
			}
			t.Guard = conditionGuard{q.Condition}
		}
	}
	for _, jp := range jn.Priority {
		hi, ok := tr[jp.Higher]
		if !ok {
			return nil, fmt.Errorf("sly: priority references unknown transition %q", jp.Higher)
		}
		lo, ok := tr[jp.Lower]
		if !ok {
			return nil, fmt.Errorf("sly: priority references unknown transition %q", jp.Lower)
		}
		net.Prio[hi] = appendSorted(net.Prio[hi], lo)
	}
	if err := net.PrioClosure(); err != nil {
		return nil, fmt.Errorf("sly: %w", err)
	}
	kind := model.KindPetri
	if tapn {
		kind = model.KindTAPN
	}
	return &model.Model{Kind: kind, Context: ctx, Net: net}, nil
}

func encodePetri(m *model.Model) (json.RawMessage, error) {
	net := m.Net
	tapn := m.Kind == model.KindTAPN
	jn := jsonNet{
		Places:      make([]jsonPlace, len(net.Pl)),
		Transitions: make([]jsonTransition, len(net.Tr)),
	}
	for i, p := range net.Pl {
		jn.Places[i] = jsonPlace{Name: p.Name, Invariant: p.AgeInvariant}
	}
	for i, t := range net.Tr {
		jt := jsonTransition{Name: t.Name}
		iv := t.Time
		jt.Interval = &iv
		for _, a := range t.Cond {
			if pre := -t.Pre.Get(a.Pl); pre == a.Mult {
				jt.From = append(jt.From, jsonArc{Place: net.Pl[a.Pl].Name, Weight: a.Mult, Kind: "normal"})
			} else {
				jt.From = append(jt.From, jsonArc{Place: net.Pl[a.Pl].Name, Weight: a.Mult, Kind: "test"})
			}
		}
		for _, a := range t.Inhib {
			jt.From = append(jt.From, jsonArc{Place: net.Pl[a.Pl].Name, Weight: a.Mult, Kind: "inhibitor"})
		}
		post := model.Add(t.Cond, t.Delta)
		for _, a := range post {
			jt.To = append(jt.To, jsonArc{Place: net.Pl[a.Pl].Name, Weight: a.Mult})
		}
		if tapn {
			for p, iv := range t.AgeWindows {
				cp := iv
				for i := range jt.From {
					if jt.From[i].Place == net.Pl[p].Name {
						jt.From[i].Age = &cp
					}
				}
			}
			for _, ta := range t.Transport {
				jt.Transport = append(jt.Transport, jsonTransportArc{From: net.Pl[ta.From].Name, To: net.Pl[ta.To].Name, Weight: ta.Weight})
			}
		}
		if t.Guard != nil {
			if g, ok := t.Guard.(conditionGuard); ok {
				jt.Guard = g.c.String()
			}
		}
		jn.Transitions[i] = jt
	}
	for hi, lows := range net.Prio {
		for _, lo := range lows {
			jn.Priority = append(jn.Priority, jsonPriority{Higher: net.Tr[hi].Name, Lower: net.Tr[lo].Name})
		}
	}
	return json.Marshal(jn)
}

func appendSorted(s []int, v int) []int {
	i := sort.SearchInts(s, v)
	if i < len(s) && s[i] == v {
		return s
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func setIfBigger(m model.Marking, pl, mult int) model.Marking {
	if cur := m.Get(pl); mult > cur {
		return m.AddToPlace(pl, mult-cur)
	}
	return m
}

func setIfLower(m model.Marking, pl, mult int) model.Marking {
	if cur := m.Get(pl); cur == 0 || mult < cur {
		return m.AddToPlace(pl, mult-cur)
	}
	return m
}

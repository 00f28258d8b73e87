// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package sly

import (
	"encoding/json"
	"fmt"

	"github.com/dalzilio/tpnv/internal/bound"
	"github.com/dalzilio/tpnv/internal/model"
)

// jsonLocation is one location of a Timed Automaton document.
type jsonLocation struct {
	Name      string                    `json:"name"`
	Invariant map[string]bound.Interval `json:"invariant,omitempty"`
}

// jsonEdge is one edge of a Timed Automaton document.
type jsonEdge struct {
	From   string                    `json:"from"`
	To     string                    `json:"to"`
	Guard  map[string]bound.Interval `json:"guard,omitempty"`
	Resets []string                  `json:"resets,omitempty"`
	Action string                    `json:"action,omitempty"`
}

// jsonTA is the "model" payload for model-type "TimedAutomata".
type jsonTA struct {
	Clocks    []string       `json:"clocks"`
	Locations []jsonLocation `json:"locations"`
	Edges     []jsonEdge     `json:"edges"`
	Initial   string         `json:"initial"`
}

func decodeTA(raw json.RawMessage) (*model.Model, error) {
	var jt jsonTA
	if err := json.Unmarshal(raw, &jt); err != nil {
		return nil, fmt.Errorf("sly: invalid %s model: %w", model.KindTA, err)
	}
	ctx := model.NewContext()
	for _, name := range jt.Clocks {
		if _, err := ctx.DeclareClock(name); err != nil {
			return nil, fmt.Errorf("sly: %w", err)
		}
	}
	loc := make(map[string]int, len(jt.Locations))
	a := &model.Automaton{NumClocks: len(jt.Clocks)}
	for _, jl := range jt.Locations {
		if _, ok := loc[jl.Name]; ok {
			return nil, fmt.Errorf("sly: duplicate location %q", jl.Name)
		}
		idx := len(a.Locations)
		loc[jl.Name] = idx
		l := model.Location{Name: jl.Name}
		if len(jl.Invariant) != 0 {
			l.Invariant = map[int]bound.Interval{}
			for name, iv := range jl.Invariant {
				ci, ok := ctx.ClockIndex(name)
				if !ok {
					return nil, fmt.Errorf("sly: location %q invariant references unknown clock %q", jl.Name, name)
				}
				l.Invariant[ci] = iv
			}
		}
		a.Locations = append(a.Locations, l)
	}
	if jt.Initial == "" {
		return nil, fmt.Errorf("sly: %s model has no initial location", model.KindTA)
	}
	init, ok := loc[jt.Initial]
	if !ok {
		return nil, fmt.Errorf("sly: initial location %q is not declared", jt.Initial)
	}
	a.Initial = init
	for _, je := range jt.Edges {
		from, ok := loc[je.From]
		if !ok {
			return nil, fmt.Errorf("sly: edge references unknown location %q", je.From)
		}
		to, ok := loc[je.To]
		if !ok {
			return nil, fmt.Errorf("sly: edge references unknown location %q", je.To)
		}
		e := model.TAEdge{From: from, To: to, Action: -1}
		if len(je.Guard) != 0 {
			e.Guard = map[int]bound.Interval{}
			for name, iv := range je.Guard {
				ci, ok := ctx.ClockIndex(name)
				if !ok {
					return nil, fmt.Errorf("sly: edge %s->%s guard references unknown clock %q", je.From, je.To, name)
				}
				e.Guard[ci] = iv
			}
		}
		for _, name := range je.Resets {
			ci, ok := ctx.ClockIndex(name)
			if !ok {
				return nil, fmt.Errorf("sly: edge %s->%s resets unknown clock %q", je.From, je.To, name)
			}
			e.Resets = append(e.Resets, ci)
		}
		if je.Action != "" {
			ai, ok := ctx.ActionIndex(je.Action)
			if !ok {
				var err error
				ai, err = ctx.DeclareAction(je.Action)
				if err != nil {
					return nil, fmt.Errorf("sly: %w", err)
				}
			}
			e.Action = ai
		}
		a.Edges = append(a.Edges, e)
	}
	return &model.Model{Kind: model.KindTA, Context: ctx, Automaton: a}, nil
}

func encodeTA(m *model.Model) (json.RawMessage, error) {
	a := m.Automaton
	jt := jsonTA{
		Clocks:    make([]string, len(m.Context.Clocks)),
		Locations: make([]jsonLocation, len(a.Locations)),
		Initial:   a.Locations[a.Initial].Name,
	}
	for i, c := range m.Context.Clocks {
		jt.Clocks[i] = c.Name
	}
	for i, l := range a.Locations {
		jl := jsonLocation{Name: l.Name}
		if len(l.Invariant) != 0 {
			jl.Invariant = map[string]bound.Interval{}
			for ci, iv := range l.Invariant {
				jl.Invariant[m.Context.Clocks[ci].Name] = iv
			}
		}
		jt.Locations[i] = jl
	}
	for _, e := range a.Edges {
		je := jsonEdge{From: a.Locations[e.From].Name, To: a.Locations[e.To].Name}
		if len(e.Guard) != 0 {
			je.Guard = map[string]bound.Interval{}
			for ci, iv := range e.Guard {
				je.Guard[m.Context.Clocks[ci].Name] = iv
			}
		}
		for _, ci := range e.Resets {
			je.Resets = append(je.Resets, m.Context.Clocks[ci].Name)
		}
		if e.Action >= 0 {
			je.Action = m.Context.Actions[e.Action]
		}
		jt.Edges = append(jt.Edges, je)
	}
	return json.Marshal(jt)
}

// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Package sly reads and writes ".sly" project files: a single JSON document
// bundling a model (Petri net, TAPN or Timed Automaton), an optional initial
// marking/valuation override and an optional list of queries to check
// against it. The on-disk shape is generic over the model kind, the same way
// the teacher source's loader dispatches on an embedded "model-type" key
// rather than having one file format per model.
package sly

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dalzilio/tpnv/internal/model"
	"github.com/dalzilio/tpnv/internal/query"
)

const (
	modelTypeKey    = "model-type"
	modelKey        = "model"
	initialStateKey = "initial-state"
	queriesKey      = "queries"
)

// Project is a loaded ".sly" file: the model it describes, together with
// whatever queries were bundled alongside it. An initial-state override, if
// present, has already been folded into Model.Net.Initial by Load.
type Project struct {
	Model   *model.Model
	Queries []*query.Query
}

// ErrUnknownModelType is returned by Load when the model-type key names a
// kind this package cannot build.
var ErrUnknownModelType = fmt.Errorf("sly: unknown model-type")

// document is the raw JSON shape of a .sly file, decoded in two passes: the
// outer keys first (to learn the model kind before committing to one of the
// three model schemas), then modelKey's payload via the schema that kind
// picked.
type document struct {
	ModelType string          `json:"model-type"`
	Model     json.RawMessage `json:"model"`
	Initial   map[string]int  `json:"initial-state,omitempty"`
	Queries   []jsonQuery     `json:"queries,omitempty"`
}

// Load decodes a .sly document from data.
func Load(data []byte) (*Project, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("sly: invalid project file: %w", err)
	}
	var m *model.Model
	var err error
	switch doc.ModelType {
	case model.KindPetri.String():
		m, err = decodePetri(doc.Model, false)
	case model.KindTAPN.String():
		m, err = decodePetri(doc.Model, true)
	case model.KindTA.String():
		m, err = decodeTA(doc.Model)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModelType, doc.ModelType)
	}
	if err != nil {
		return nil, err
	}
	if len(doc.Initial) != 0 {
		if err := applyInitialState(m, doc.Initial); err != nil {
			return nil, err
		}
	}
	queries := make([]*query.Query, 0, len(doc.Queries))
	for i, jq := range doc.Queries {
		q, err := jq.compile(m.Context)
		if err != nil {
			return nil, fmt.Errorf("sly: query %d: %w", i, err)
		}
		queries = append(queries, q)
	}
	return &Project{Model: m, Queries: queries}, nil
}

// applyInitialState overrides m.Net's initial marking (Petri/TAPN) with the
// token counts named in initial, looked up by place name through m.Context
// the same way a netfile/sly place declaration wires a place to its Context
// Var index.
func applyInitialState(m *model.Model, initial map[string]int) error {
	if m.Net == nil {
		return fmt.Errorf("sly: initial-state given for a model with no net (kind %s)", m.Kind)
	}
	names := make([]string, 0, len(initial))
	for name := range initial {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		idx, ok := m.Context.VarIndex(name)
		if !ok {
			return fmt.Errorf("sly: initial-state names unknown place %q", name)
		}
		if cur := m.Net.Initial.Get(idx); cur != 0 {
			m.Net.Initial = m.Net.Initial.AddToPlace(idx, -cur)
		}
		if n := initial[name]; n != 0 {
			m.Net.Initial = m.Net.Initial.AddToPlace(idx, n)
		}
	}
	return nil
}

// Save encodes project back into a .sly document.
func Save(project *Project) ([]byte, error) {
	m := project.Model
	var raw json.RawMessage
	var err error
	switch m.Kind {
	case model.KindPetri, model.KindTAPN:
		raw, err = encodePetri(m)
	case model.KindTA:
		raw, err = encodeTA(m)
	default:
		return nil, fmt.Errorf("sly: cannot write model kind %s", m.Kind)
	}
	if err != nil {
		return nil, err
	}
	doc := document{ModelType: m.Kind.String(), Model: raw}
	if len(project.Queries) != 0 {
		doc.Queries = make([]jsonQuery, len(project.Queries))
		for i, q := range project.Queries {
			doc.Queries[i] = decompileQuery(q)
		}
	}
	return json.Marshal(doc)
}

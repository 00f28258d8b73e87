// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Package report renders a state-class graph or a query's verdict as YAML,
// a human-inspectable alternative to the mandatory ".sly" JSON format for
// `explore`/`check` output.
package report

import (
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dalzilio/tpnv/internal/classgraph"
	"github.com/dalzilio/tpnv/internal/model"
	"github.com/dalzilio/tpnv/internal/solver"
)

// classYAML is one rendered class-graph node: its marking spelled out by
// place name (not index, since a YAML dump is meant to be read by a human
// next to the model file) and the transitions it can fire.
type classYAML struct {
	Index    int        `yaml:"index"`
	Marking  []string   `yaml:"marking,omitempty"`
	Enabled  []string   `yaml:"enabled,omitempty"`
	Outgoing []edgeYAML `yaml:"outgoing,omitempty"`
}

type edgeYAML struct {
	Tr string `yaml:"fires"`
	To int    `yaml:"to"`
}

// graphYAML is the top-level document WriteGraph emits.
type graphYAML struct {
	Initial int         `yaml:"initial"`
	Classes []classYAML `yaml:"classes"`
}

// WriteGraph renders g's classes and edges as YAML on w, resolving place
// and transition indices through net so the dump reads by name.
func WriteGraph(w io.Writer, net *model.Net, g *classgraph.Graph) error {
	doc := graphYAML{Initial: g.Initial, Classes: make([]classYAML, len(g.Classes))}
	outgoing := make([][]edgeYAML, len(g.Classes))
	for _, e := range g.Edges {
		outgoing[e.From] = append(outgoing[e.From], edgeYAML{Tr: net.Tr[e.Tr].Name, To: e.To})
	}
	for i, c := range g.Classes {
		cy := classYAML{Index: i, Outgoing: outgoing[i]}
		for _, a := range c.Marking {
			cy.Marking = append(cy.Marking, marker(net.Pl[a.Pl].Name, a.Mult))
		}
		for _, t := range c.Enabled() {
			cy.Enabled = append(cy.Enabled, net.Tr[t].Name)
		}
		doc.Classes[i] = cy
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}

func marker(name string, mult int) string {
	if mult == 1 {
		return name
	}
	return name + "*" + strconv.Itoa(mult)
}

// resultYAML is the document WriteResult emits: a query's verdict plus
// enough of the routing decision (which solver answered it, and what
// verification problem it was classified as) to make a standalone dump
// self-explanatory.
type resultYAML struct {
	Solver  string   `yaml:"solver"`
	Problem string   `yaml:"problem"`
	Kind    string   `yaml:"kind"`
	Bool    *bool    `yaml:"bool,omitempty"`
	Int     *int     `yaml:"int,omitempty"`
	Float   *float64 `yaml:"float,omitempty"`
}

// WriteResult renders a solver.Result, together with the Meta/ProblemType
// that produced it, as YAML on w.
func WriteResult(w io.Writer, meta solver.Meta, problem solver.ProblemType, res solver.Result) error {
	doc := resultYAML{Solver: meta.Name, Problem: solver.Label(problem)}
	switch res.Kind {
	case solver.ResultBool:
		doc.Kind = "bool"
		doc.Bool = &res.Bool
	case solver.ResultInt:
		doc.Kind = "int"
		doc.Int = &res.Int
	case solver.ResultFloat:
		doc.Kind = "float"
		doc.Float = &res.Float
	default:
		doc.Kind = "other"
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}

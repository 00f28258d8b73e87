// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dalzilio/tpnv/internal/model"
	"github.com/dalzilio/tpnv/internal/netfile"
	"github.com/dalzilio/tpnv/internal/query"
	"github.com/dalzilio/tpnv/internal/sly"
)

// loadProject reads path and parses it as a model, dispatching on the
// file's extension: ".sly" is the JSON interchange format (package
// internal/sly, Timed Automata and Petri/TAPN alike, which may bundle its
// own queries), anything else falls back to the teacher's own Tina-style
// ".net" text format (package internal/netfile), which only ever describes
// a Time Petri Net and never bundles queries.
func loadProject(path string) (*model.Model, []*query.Query, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}
	if isSLY(path) {
		proj, err := sly.Load(data)
		if err != nil {
			return nil, nil, fmt.Errorf("loading %s: %w", path, err)
		}
		return proj.Model, proj.Queries, nil
	}
	m, err := netfile.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return m, nil, nil
}

// loadQuery resolves the <query> CLI argument against an already-loaded
// model: if it names an existing file its contents are parsed as query
// text, otherwise the argument itself is the query text. Either way the
// query is compiled through the same internal/query grammar a bundled
// ".sly" query goes through.
func loadQuery(arg string, ctx *model.Context) (*query.Query, error) {
	text := arg
	if data, err := os.ReadFile(arg); err == nil {
		text = string(data)
	}
	q, err := query.Parse(strings.TrimSpace(text), ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing query %q: %w", arg, err)
	}
	return q, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func isSLY(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".sly")
}

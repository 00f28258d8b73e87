// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package classgraph

import (
	"context"
	"errors"

	"github.com/dalzilio/tpnv/internal/model"
)

// ErrGraphNil is returned when Explore is called with a nil net.
var ErrGraphNil = errors.New("classgraph: nil net")

// ErrBoundExceeded is returned by Explore when the number of classes
// discovered exceeds Options.MaxClasses before the graph closes.
var ErrBoundExceeded = errors.New("classgraph: exploration bound exceeded")

// Edge is one transition of the graph: Class Classes[From] reaches
// Classes[To] by firing transition Tr.
type Edge struct {
	From, To int
	Tr       int
}

// Graph is the explored state-class graph: classes in discovery order, the
// edges between them, and the index of the initial class (always 0 once
// Explore succeeds).
type Graph struct {
	Classes []*StateClass
	Edges   []Edge
	Initial int
}

// Options configures Explore.
type Options struct {
	// MaxClasses bounds the number of classes explored; zero means
	// unbounded. Explore returns ErrBoundExceeded once more than
	// MaxClasses classes are discovered before the graph closes.
	MaxClasses int
}

type queueItem struct {
	classIdx int
}

// Explore builds the full state-class graph of net by breadth-first
// enumeration from its initial class, deduplicating classes by (marking,
// canonical DBM) hash (spec's dedup key) with a worklist/visited-set shape
// modeled on a textbook BFS over integer node keys.
func Explore(ctx context.Context, net *model.Net, opts Options) (*Graph, error) {
	if net == nil {
		return nil, ErrGraphNil
	}
	init, err := Initial(net)
	if err != nil {
		return nil, err
	}

	g := &Graph{Classes: []*StateClass{init}, Initial: 0}
	visited := map[uint64][]int{init.Hash(): {0}}
	queue := []queueItem{{classIdx: 0}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return g, err
		}
		item := queue[0]
		queue = queue[1:]
		c := g.Classes[item.classIdx]

		for _, t := range c.Enabled() {
			succ, err := Successor(net, c, t)
			if err != nil {
				if errors.Is(err, ErrNotFirable) {
					continue
				}
				return g, err
			}
			idx, isNew := dedup(g, visited, succ)
			g.Edges = append(g.Edges, Edge{From: item.classIdx, To: idx, Tr: t})
			if isNew {
				if opts.MaxClasses > 0 && len(g.Classes) > opts.MaxClasses {
					return g, ErrBoundExceeded
				}
				queue = append(queue, queueItem{classIdx: idx})
			}
		}
	}
	return g, nil
}

// dedup looks up succ in visited, appending it as a new class if no equal
// class is already present, and returns its index together with whether it
// was newly added.
func dedup(g *Graph, visited map[uint64][]int, succ *StateClass) (int, bool) {
	h := succ.Hash()
	for _, idx := range visited[h] {
		if g.Classes[idx].Equal(succ) {
			return idx, false
		}
	}
	idx := len(g.Classes)
	g.Classes = append(g.Classes, succ)
	visited[h] = append(visited[h], idx)
	return idx, true
}

// Successors returns the indices of classes directly reachable from
// Classes[from], paired with the transition fired.
func (g *Graph) Successors(from int) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.From == from {
			out = append(out, e)
		}
	}
	return out
}

// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Package solver routes a parsed query to whichever checking engine can
// answer it — a class-graph exploration for pure reachability-style
// properties, a statistical model checker for probabilistic and LTL-style
// ones — and classifies each query by the verification problem it poses.
package solver

import (
	"strings"

	"github.com/dalzilio/tpnv/internal/query"
)

// ProblemType is a bitset of the verification-problem characteristics a
// query exhibits, combined with bitwise OR.
type ProblemType uint16

const (
	UnclassifiedProblem ProblemType = 0
	Liveness            ProblemType = 1 << 0
	Safety              ProblemType = 1 << 1
	Reachability        ProblemType = 1 << 2
	Preservability      ProblemType = 1 << 3
	Boundedness         ProblemType = 1 << 4
	Synthesis           ProblemType = 1 << 5
	TwoPlayers          ProblemType = 1 << 6
)

// HasProblemType reports whether problem carries every characteristic bit
// set in want.
func HasProblemType(problem, want ProblemType) bool {
	return problem&want == want && want != UnclassifiedProblem
}

// outerShape names the temporal operator, if any, directly wrapping a
// query's condition: the only level of nesting ClassifyProblem looks at,
// mirroring how the quantifier/logic pair classified a query upstream.
type outerShape uint8

const (
	shapeOther outerShape = iota
	shapeFinally
	shapeGlobally
)

func shapeOf(c query.Condition) outerShape {
	switch c.(type) {
	case query.Finally:
		return shapeFinally
	case query.Globally:
		return shapeGlobally
	default:
		return shapeOther
	}
}

// ClassifyProblem derives q's ProblemType from its quantifier and the
// outer temporal shape of its condition: (ForAll, Finally) is a liveness
// property, (ForAll, Globally) a safety property, (Exists, Finally) a
// reachability property, (Exists, Globally) a preservability property.
// Any other combination (SMC quantifiers, a bare non-temporal condition,
// ...) is left unclassified by this pairing alone.
func ClassifyProblem(q *query.Query) ProblemType {
	shape := shapeOf(q.Condition)
	switch {
	case q.Quantifier == query.QuantifierForAll && shape == shapeFinally:
		return Liveness
	case q.Quantifier == query.QuantifierForAll && shape == shapeGlobally:
		return Safety
	case q.Quantifier == query.QuantifierExists && shape == shapeFinally:
		return Reachability
	case q.Quantifier == query.QuantifierExists && shape == shapeGlobally:
		return Preservability
	default:
		return UnclassifiedProblem
	}
}

// Label renders problem as a human-readable, pipe-separated list of its
// characteristics, e.g. "Liveness(AF)|Boundedness".
func Label(problem ProblemType) string {
	if problem == UnclassifiedProblem {
		return "()"
	}
	var characteristics []string
	if HasProblemType(problem, Liveness) {
		characteristics = append(characteristics, "Liveness(AF)")
	}
	if HasProblemType(problem, Reachability) {
		characteristics = append(characteristics, "Reachability(EF)")
	}
	if HasProblemType(problem, Preservability) {
		characteristics = append(characteristics, "Preservability(EG)")
	}
	if HasProblemType(problem, Safety) {
		characteristics = append(characteristics, "Safety(AG)")
	}
	if HasProblemType(problem, Boundedness) {
		characteristics = append(characteristics, "Boundedness")
	}
	if HasProblemType(problem, Synthesis) {
		characteristics = append(characteristics, "Synthesis")
	}
	if HasProblemType(problem, TwoPlayers) {
		characteristics = append(characteristics, "TwoPlayers")
	}
	return strings.Join(characteristics, "|")
}

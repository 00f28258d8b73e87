// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package sly

import (
	"fmt"

	"github.com/dalzilio/tpnv/internal/model"
	"github.com/dalzilio/tpnv/internal/query"
)

// jsonQuery is the on-disk shape of one bundled query: a quantifier, the
// temporal wrapper applied to its condition, the condition itself written
// in the text-query grammar package query already parses, and an optional
// run bound. The project file schema names a generic "<cond tree>" for
// condition without fixing its shape; representing it as text reuses the
// one condition grammar this engine has, instead of inventing a second,
// parallel JSON AST that query.Parse would never see.
type jsonQuery struct {
	Quantifier string   `json:"quantifier"`
	Logic      string   `json:"logic"`
	Condition  string   `json:"condition"`
	RunBound   *float64 `json:"run_bound,omitempty"`
}

// compile builds a query.Query from jq, resolving names against ctx.
// Quantifier "P" carries its probability target in RunBound, mirroring the
// text grammar's "Pr(target) ..." form; any other quantifier treats
// RunBound, when given, as an informational run-length hint the caller
// (package solver's Config.MaxSteps) may use, not part of the condition
// text itself.
func (jq jsonQuery) compile(ctx *model.Context) (*query.Query, error) {
	var prefix string
	switch jq.Quantifier {
	case "E":
		prefix = "E "
	case "A":
		prefix = "A "
	case "P":
		target := 0.0
		if jq.RunBound != nil {
			target = *jq.RunBound
		}
		prefix = fmt.Sprintf("Pr(%g) ", target)
	case "LTL", "":
		prefix = ""
	default:
		return nil, fmt.Errorf("sly: unknown query quantifier %q", jq.Quantifier)
	}
	var body string
	switch jq.Logic {
	case "F":
		body = "F " + jq.Condition
	case "G":
		body = "G " + jq.Condition
	case "raw", "":
		body = jq.Condition
	default:
		return nil, fmt.Errorf("sly: unknown query logic %q", jq.Logic)
	}
	return query.Parse(prefix+body, ctx)
}

// decompileQuery renders q back into the on-disk jsonQuery shape. It only
// ever produces "raw" logic: q.Condition.String() already spells out any
// F/G/temporal structure inline, so there is no separate wrapper to peel
// off the way compile built one.
func decompileQuery(q *query.Query) jsonQuery {
	jq := jsonQuery{Condition: q.Condition.String(), Logic: "raw"}
	switch q.Quantifier {
	case query.QuantifierExists:
		jq.Quantifier = "E"
	case query.QuantifierForAll:
		jq.Quantifier = "A"
	case query.QuantifierProbability:
		jq.Quantifier = "P"
		target := q.Target
		jq.RunBound = &target
	default:
		jq.Quantifier = "LTL"
	}
	return jq
}

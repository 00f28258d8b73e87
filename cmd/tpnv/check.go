// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dalzilio/tpnv/internal/query"
	"github.com/dalzilio/tpnv/internal/report"
	"github.com/dalzilio/tpnv/internal/solver"
	"github.com/dalzilio/tpnv/internal/vlog"
)

// runCheck implements "tpnv check <model> <query>": route the query to a
// compatible solver and map its verdict to an exit code.
func runCheck(args []string) int {
	fs := newFlagSet("check")
	yamlOut := fs.Bool("yaml", false, "render the result as YAML instead of a one-line summary")
	maxSteps := fs.Int("max-steps", solver.DefaultConfig().MaxSteps, "bound on sampled run length for statistical checking")
	seed := fs.Uint64("seed", solver.DefaultConfig().Seed, "base seed for random run generation")
	parallel := fs.Bool("parallel", false, "spread statistical sampling across GOMAXPROCS workers")
	timeout := fs.Duration("timeout", 0, "abort the check after this long (0 disables the timeout)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return exitUsage
	}
	modelPath, queryArg := fs.Arg(0), fs.Arg(1)

	m, queries, err := loadProject(modelPath)
	if err != nil {
		return fail("%v", err)
	}

	var q *query.Query
	if len(queries) > 0 && queryArg == "-" {
		q = queries[0]
	} else {
		q, err = loadQuery(queryArg, m.Context)
		if err != nil {
			return fail("%v", err)
		}
	}

	cfg := solver.DefaultConfig()
	cfg.MaxSteps = *maxSteps
	cfg.Seed = *seed
	cfg.Parallel = *parallel
	reg := solver.NewRegistry(cfg)

	s, problem, err := reg.Route(m.Net, m.Context, q)
	if err != nil {
		return fail("%v", err)
	}
	vlog.Pending(fmt.Sprintf("checking %s via %s", solver.Label(problem), s.Meta().Name))

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	res, err := s.Solve(ctx, m.Net, m.Context, q)
	if err != nil {
		return fail("%v", err)
	}

	if *yamlOut {
		if err := report.WriteResult(os.Stdout, s.Meta(), problem, res); err != nil {
			return fail("writing result: %v", err)
		}
	}

	return reportVerdict(s.Meta(), res, *yamlOut)
}

// reportVerdict prints a one-line summary (unless yamlOut already rendered
// the full result) and returns the exit code spec.md §6 fixes for a
// check's outcome: 0/1 for a decided boolean verdict, 2 for Maybe, and 0
// for any non-boolean result (a probability estimate or a count), which
// has no verified/unverified reading to project onto an exit code.
func reportVerdict(meta solver.Meta, res solver.Result, yamlOut bool) int {
	if res.Kind != solver.ResultBool {
		if !yamlOut {
			printScalar(meta, res)
		}
		return exitVerified
	}
	switch res.Status {
	case query.StatusVerified:
		if !yamlOut {
			vlog.Positive(fmt.Sprintf("%s: Verified", meta.Name))
		}
		return exitVerified
	case query.StatusUnverified:
		if !yamlOut {
			vlog.Negative(fmt.Sprintf("%s: Unverified", meta.Name))
		}
		return exitUnverified
	default:
		if !yamlOut {
			vlog.Warning(fmt.Sprintf("%s: Maybe (inconclusive)", meta.Name))
		}
		return exitMaybe
	}
}

func printScalar(meta solver.Meta, res solver.Result) {
	switch res.Kind {
	case solver.ResultInt:
		vlog.Positive(fmt.Sprintf("%s: %d", meta.Name, res.Int))
	case solver.ResultFloat:
		vlog.Positive(fmt.Sprintf("%s: %g", meta.Name, res.Float))
	default:
		vlog.Positive(fmt.Sprintf("%s: done", meta.Name))
	}
}

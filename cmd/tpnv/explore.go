// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dalzilio/tpnv/internal/classgraph"
	"github.com/dalzilio/tpnv/internal/model"
	"github.com/dalzilio/tpnv/internal/pnml"
	"github.com/dalzilio/tpnv/internal/report"
	"github.com/dalzilio/tpnv/internal/vlog"
)

// runExplore implements "tpnv explore <model>": build the full state-class
// graph and dump it as YAML. A bound overrun is reported as a warning, not
// an error — the same Maybe-not-error propagation policy check follows —
// since the (possibly partial) graph explored so far is still printed.
func runExplore(args []string) int {
	fs := newFlagSet("explore")
	maxClasses := fs.Int("max-classes", 0, "bound on the number of classes explored (0 is unbounded)")
	pnmlPath := fs.String("pnml", "", "also write the model's untimed P/T skeleton as PNML to this file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	modelPath := fs.Arg(0)

	m, _, err := loadProject(modelPath)
	if err != nil {
		return fail("%v", err)
	}
	if m.Net == nil {
		return fail("explore: model %q has no Petri-net representation (kind %s)", m.Name, m.Kind)
	}

	if *pnmlPath != "" {
		if err := writePNML(*pnmlPath, m); err != nil {
			return fail("%v", err)
		}
		vlog.Positive(fmt.Sprintf("wrote PNML skeleton to %s", *pnmlPath))
	}

	vlog.Pending(fmt.Sprintf("exploring %s", modelPath))
	g, err := classgraph.Explore(context.Background(), m.Net, classgraph.Options{MaxClasses: *maxClasses})
	if err != nil {
		if !errors.Is(err, classgraph.ErrBoundExceeded) {
			return fail("exploring: %v", err)
		}
		vlog.Warning(fmt.Sprintf("bound exceeded after %d classes; dumping the partial graph", len(g.Classes)))
	}

	if err := report.WriteGraph(os.Stdout, m.Net, g); err != nil {
		return fail("writing graph: %v", err)
	}
	vlog.Positive(fmt.Sprintf("explored %d classes", len(g.Classes)))
	if err != nil {
		return exitMaybe
	}
	return exitVerified
}

// writePNML renders m's net as a PNML P/T-net skeleton to path, the one
// production caller of internal/pnml: a convenience export for feeding the
// explored model into PNML-reading third-party tools, not part of the
// mandatory .sly/.net project formats.
func writePNML(path string, m *model.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := pnml.WriteNet(f, m); err != nil {
		return fmt.Errorf("writing PNML to %s: %w", path, err)
	}
	return nil
}

// Copyright (c) 2021 Silvano DAL ZILIO
//
// GNU Affero GPL v3

package pnml

import (
	"fmt"
	"io"

	"github.com/dalzilio/tpnv/internal/model"
)

// WriteNet marshals m's net into a P/T net in PNML format and writes the
// output on w. Because of limitations in the PNML format, it returns an
// error if the net has inhibitor arcs or m.Net is nil; m.Kind itself is not
// checked. It also drops timing information on transitions, the same
// restriction the teacher's .net-to-PNML export carried, now generalized
// to a net whose transitions are timed.
//
// Names and labels are combined for the naming of places and transitions
// in the PNML file, but ids get a prefix ('pl_' for places and 'tr_' for
// transitions), since a place and a transition may share a name.
func WriteNet(w io.Writer, m *model.Model) error {
	if m.Net == nil {
		return fmt.Errorf("pnml: model %q has no net (kind %s)", m.Name, m.Kind)
	}
	net := m.Net
	for _, tr := range net.Tr {
		if len(tr.Inhib) != 0 {
			return fmt.Errorf("pnml: cannot marshal net with inhibitor arcs; see transition %s", tr.Name)
		}
	}
	places := make([]Place, len(net.Pl))
	trans := make([]Trans, len(net.Tr))
	for k, p := range net.Pl {
		places[k] = Place{
			Name:  p.Name,
			Label: p.Label,
			Init:  net.Initial.Get(k),
		}
	}
	for k, tr := range net.Tr {
		trans[k] = Trans{
			Name:  tr.Name,
			Label: tr.Label,
			In:    []Arc{},
			Out:   []Arc{},
		}
		for _, a := range tr.Cond {
			trans[k].In = append(trans[k].In, Arc{Place: &places[a.Pl], Mult: a.Mult})
		}
		post := model.Add(tr.Cond, tr.Delta)
		for _, a := range post {
			trans[k].Out = append(trans[k].Out, Arc{Place: &places[a.Pl], Mult: a.Mult})
		}
	}
	return Write(w, m.Name, places, trans)
}

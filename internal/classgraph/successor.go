// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package classgraph

import (
	"fmt"

	"github.com/dalzilio/tpnv/internal/bound"
	"github.com/dalzilio/tpnv/internal/dbm"
	"github.com/dalzilio/tpnv/internal/model"
)

// ErrNotFirable is returned by Successor when t cannot be the first
// transition to fire from c (it is not enabled, or the DBM shows another
// race-eligible transition must fire first).
var ErrNotFirable = fmt.Errorf("classgraph: transition cannot fire first in this class")

// Successor computes the state class reached by firing transition t first
// out of c, following the Berthomieu-Diaz construction:
//
//  1. restrict c's DBM to the scenario where t fires before every other
//     race-eligible enabled transition (x_t <= x_j for each such j);
//  2. apply the discrete step to get the new marking;
//  3. re-derive the enabled set at the new marking and classify each
//     transition as persistent (kept its clock, time-shifted to the firing
//     instant) or newly enabled (given a fresh clock, reset to its own
//     static interval).
func Successor(net *model.Net, c *StateClass, t int) (*StateClass, error) {
	tIdx := c.ToDBM[t]
	if tIdx == 0 {
		return nil, fmt.Errorf("%w: %s not enabled", ErrNotFirable, net.Tr[t].Name)
	}

	firing := c.DBM.Clone()
	for _, j := range c.Enabled() {
		if j == t {
			continue
		}
		firing.AddConstraint(tIdx, c.ToDBM[j], bound.Zero)
	}
	firing.Canonicalise()
	if firing.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrNotFirable, net.Tr[t].Name)
	}

	before := c.Marking
	after := model.Add(before, net.Tr[t].Delta)
	newEnabled := raceEligible(net, enabledAt(net, after))

	next := &StateClass{
		Marking: after,
		ToDBM:   make([]int, len(net.Tr)),
		FromDBM: make([]int, len(newEnabled)+1),
	}
	nd := dbm.NewUnconstrained(len(newEnabled))

	type slot struct {
		tr         int
		persistent bool
		oldIdx     int
	}
	slots := make([]slot, 0, len(newEnabled))
	idx := 1
	for _, j := range newEnabled {
		next.ToDBM[j] = idx
		next.FromDBM[idx] = j
		oldIdx := c.ToDBM[j]
		persistent := j != t && oldIdx != 0 && net.EnabledDiscrete(before, j) && net.Persists(before, j, t)
		slots = append(slots, slot{tr: j, persistent: persistent, oldIdx: oldIdx})
		idx++
	}

	for _, s := range slots {
		ni := next.ToDBM[s.tr]
		if s.persistent {
			// time-shift: the remaining delay of a persistent transition,
			// measured from the firing instant, is its old bound against t.
			nd.Set(ni, 0, firing.At(s.oldIdx, tIdx))
			nd.Set(0, ni, firing.At(tIdx, s.oldIdx))
		} else {
			iv := net.Tr[s.tr].Time
			nd.AddConstraint(ni, 0, iv.Upper)
			nd.AddConstraint(0, ni, bound.Neg(iv.Lower))
		}
	}
	// Relations between two persistent transitions are invariant under the
	// time shift (the firing instant cancels out of a difference of two
	// clocks that both existed before firing).
	for _, a := range slots {
		if !a.persistent {
			continue
		}
		for _, b := range slots {
			if !b.persistent || a.tr == b.tr {
				continue
			}
			nd.Set(next.ToDBM[a.tr], next.ToDBM[b.tr], firing.At(a.oldIdx, b.oldIdx))
		}
	}

	nd.Canonicalise()
	if nd.IsEmpty() {
		return nil, fmt.Errorf("classgraph: successor of %s is an empty zone", net.Tr[t].Name)
	}
	next.DBM = nd
	return next, nil
}

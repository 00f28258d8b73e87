// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package bound

import "sort"

// Disjoint is a set of intervals kept sorted and non-overlapping: it is the
// general shape of a firing window once Complement or Union has been
// applied, or of the time-flow cone of a state class restricted by several
// independent constraints.
type Disjoint []Interval

// normalized sorts d by lower bound, drops empty members and fuses any
// members that overlap or touch, restoring the sorted/non-overlapping
// invariant in O(n log n) (the sort dominates; the fuse pass itself is
// O(n)).
func (d Disjoint) normalized() Disjoint {
	var live []Interval
	for _, i := range d {
		if !i.IsEmpty() {
			live = append(live, i)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(a, b int) bool {
		av, an := lowerKey(live[a].Lower)
		bv, bn := lowerKey(live[b].Lower)
		return lessKey(av, an, bv, bn)
	})
	out := Disjoint{live[0]}
	for _, next := range live[1:] {
		out = out.fuse(next)
	}
	return out
}

// fuse inserts i into d, merging it with the last member if they overlap or
// touch, maintaining d's sorted/non-overlapping invariant in O(n) (i is
// compared only against the tail, since d is assumed already sorted and
// i's lower bound is assumed to be >= every member already in d — the
// contract normalized's construction loop relies on).
func (d Disjoint) fuse(i Interval) Disjoint {
	if i.IsEmpty() {
		return d
	}
	if len(d) == 0 {
		return Disjoint{i}
	}
	last := d[len(d)-1]
	if last.Intersects(i) || adjacent(last, i) {
		uv1, un1 := upperKey(last.Upper)
		uv2, un2 := upperKey(i.Upper)
		up := last.Upper
		if lessKey(uv1, un1, uv2, un2) {
			up = i.Upper
		}
		d[len(d)-1] = New(last.Lower, up)
		return d
	}
	return append(d, i)
}

// Contains reports whether x lies in some member of d.
func (d Disjoint) Contains(x float64) bool {
	for _, i := range d {
		if i.Contains(x) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether d denotes no points.
func (d Disjoint) IsEmpty() bool { return len(d) == 0 }

// Intersection returns the intersection of d and e, distributing
// Interval.Intersection pairwise and fusing the result.
func (d Disjoint) Intersection(e Disjoint) Disjoint {
	var out Disjoint
	for _, i := range d {
		for _, j := range e {
			k := i.Intersection(j)
			if !k.IsEmpty() {
				out = append(out, k)
			}
		}
	}
	return out.normalized()
}

// Union returns the union of d and e.
func (d Disjoint) Union(e Disjoint) Disjoint {
	return append(append(Disjoint{}, d...), e...).normalized()
}

// Complement returns the complement of d: intersecting the complements of
// every member, each of which is itself a Disjoint of at most two pieces.
func (d Disjoint) Complement() Disjoint {
	out := Disjoint{Full()}
	for _, i := range d {
		out = out.Intersection(i.Complement())
	}
	return out
}

func (d Disjoint) String() string {
	if len(d) == 0 {
		return "{}"
	}
	s := ""
	for i, iv := range d {
		if i > 0 {
			s += " U "
		}
		s += iv.String()
	}
	return s
}

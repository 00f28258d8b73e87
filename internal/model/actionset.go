// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package model

import "math/bits"

// ActionSet is a bitset over transition/action indices. spec.md §9 flags
// that the original implementation carried two overlapping set types
// (a generic bit_set and a dedicated action_set); this package keeps
// exactly one, used uniformly by AvailableActions, the class-graph's
// enabled-clock bookkeeping, and the query evaluator's action filters.
type ActionSet struct {
	words []uint64
}

const wordBits = 64

func wordIndex(i int) (word, bit int) { return i / wordBits, i % wordBits }

func (a *ActionSet) ensure(word int) {
	for len(a.words) <= word {
		a.words = append(a.words, 0)
	}
}

// Add sets bit i.
func (a *ActionSet) Add(i int) {
	w, b := wordIndex(i)
	a.ensure(w)
	a.words[w] |= 1 << uint(b)
}

// Remove clears bit i.
func (a *ActionSet) Remove(i int) {
	w, b := wordIndex(i)
	if w >= len(a.words) {
		return
	}
	a.words[w] &^= 1 << uint(b)
}

// Has reports whether bit i is set.
func (a ActionSet) Has(i int) bool {
	w, b := wordIndex(i)
	if w >= len(a.words) {
		return false
	}
	return a.words[w]&(1<<uint(b)) != 0
}

// IsEmpty reports whether no bit is set.
func (a ActionSet) IsEmpty() bool {
	for _, w := range a.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Len returns the number of set bits.
func (a ActionSet) Len() int {
	n := 0
	for _, w := range a.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// ForEach calls f with every set bit index, in increasing order.
func (a ActionSet) ForEach(f func(int)) {
	for wi, w := range a.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			f(wi*wordBits + b)
			w &^= 1 << uint(b)
		}
	}
}

// Slice returns the set bits as a sorted slice.
func (a ActionSet) Slice() []int {
	out := make([]int, 0, a.Len())
	a.ForEach(func(i int) { out = append(out, i) })
	return out
}

// Union returns the union of a and b.
func (a ActionSet) Union(b ActionSet) ActionSet {
	n := len(a.words)
	if len(b.words) > n {
		n = len(b.words)
	}
	out := ActionSet{words: make([]uint64, n)}
	for i := range out.words {
		var x, y uint64
		if i < len(a.words) {
			x = a.words[i]
		}
		if i < len(b.words) {
			y = b.words[i]
		}
		out.words[i] = x | y
	}
	return out
}

// Intersect returns the intersection of a and b.
func (a ActionSet) Intersect(b ActionSet) ActionSet {
	n := len(a.words)
	if len(b.words) < n {
		n = len(b.words)
	}
	out := ActionSet{words: make([]uint64, n)}
	for i := range out.words {
		out.words[i] = a.words[i] & b.words[i]
	}
	return out
}

// Equal reports whether a and b hold the same bits.
func (a ActionSet) Equal(b ActionSet) bool {
	n := len(a.words)
	if len(b.words) > n {
		n = len(b.words)
	}
	for i := 0; i < n; i++ {
		var x, y uint64
		if i < len(a.words) {
			x = a.words[i]
		}
		if i < len(b.words) {
			y = b.words[i]
		}
		if x != y {
			return false
		}
	}
	return true
}

// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package model

import (
	"sort"

	"github.com/dalzilio/tpnv/internal/bound"
)

// AgedToken is one token in a TAPN place, carrying the amount of time
// elapsed since it was produced.
type AgedToken struct {
	Age   float64
	Count int // number of indistinguishable tokens sharing this exact age
}

// AgedMultiset is the multiset of tokens in a TAPN place, kept sorted by
// increasing age. A State holds one per place directly, in State.Tokens;
// it is not stored in Cell form.
type AgedMultiset []AgedToken

// Add inserts n tokens of the given age, merging with an existing entry of
// the same age.
func (s AgedMultiset) Add(age float64, n int) AgedMultiset {
	if n == 0 {
		return s
	}
	for i := range s {
		if s[i].Age == age {
			s[i].Count += n
			return s
		}
	}
	s = append(s, AgedToken{Age: age, Count: n})
	sort.Slice(s, func(i, j int) bool { return s[i].Age < s[j].Age })
	return s
}

// Count returns how many tokens in s fall within window.
func (s AgedMultiset) Count(window bound.Interval) int {
	n := 0
	for _, t := range s {
		if window.Contains(t.Age) {
			n += t.Count
		}
	}
	return n
}

// Remove deletes up to n tokens whose age lies in window, youngest first
// (s is scanned in its increasing-age order), and returns the updated
// multiset together with how many tokens were actually removed.
func (s AgedMultiset) Remove(window bound.Interval, n int) (AgedMultiset, int) {
	removed := 0
	out := make(AgedMultiset, 0, len(s))
	for _, t := range s {
		if removed >= n || !window.Contains(t.Age) {
			out = append(out, t)
			continue
		}
		take := n - removed
		if take >= t.Count {
			removed += t.Count
			continue
		}
		out = append(out, AgedToken{Age: t.Age, Count: t.Count - take})
		removed += take
	}
	return out, removed
}

// Delay returns s with every token's age advanced by d.
func (s AgedMultiset) Delay(d float64) AgedMultiset {
	out := make(AgedMultiset, len(s))
	for i, t := range s {
		out[i] = AgedToken{Age: t.Age + d, Count: t.Count}
	}
	return out
}

// Total returns the number of tokens in s.
func (s AgedMultiset) Total() int {
	n := 0
	for _, t := range s {
		n += t.Count
	}
	return n
}

// MaxAge returns the age of the oldest token in s, or -1 if s is empty.
func (s AgedMultiset) MaxAge() float64 {
	if len(s) == 0 {
		return -1
	}
	return s[len(s)-1].Age
}

// ViolatesInvariant reports whether any token in s is older than the
// place's age invariant admits, the condition `delay` must refuse to cross.
func (s AgedMultiset) ViolatesInvariant(inv *bound.Interval) bool {
	if inv == nil {
		return false
	}
	for _, t := range s {
		if !inv.Contains(t.Age) {
			return true
		}
	}
	return false
}

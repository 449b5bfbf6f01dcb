package model

import "sort"

// SampleSet is an unordered set of sample identifiers.
type SampleSet map[string]struct{}

func NewSampleSet(ids ...string) SampleSet {
	s := make(SampleSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SampleSet) Add(id string) {
	s[id] = struct{}{}
}

func (s SampleSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s SampleSet) Len() int {
	return len(s)
}

// Intersect returns a new set holding the members present in both s and o.
func (s SampleSet) Intersect(o SampleSet) SampleSet {
	small, large := s, o
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(SampleSet, len(small))
	for id := range small {
		if large.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Union returns a new set holding the members of s and o.
func (s SampleSet) Union(o SampleSet) SampleSet {
	out := make(SampleSet, len(s)+len(o))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range o {
		out[id] = struct{}{}
	}
	return out
}

// Minus returns the members of s not in o.
func (s SampleSet) Minus(o SampleSet) SampleSet {
	out := make(SampleSet, len(s))
	for id := range s {
		if !o.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

func (s SampleSet) Clone() SampleSet {
	out := make(SampleSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

func (s SampleSet) Equal(o SampleSet) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// Sorted returns the members in lexical order. Used for serialisation and
// display so that output is stable between runs.
func (s SampleSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

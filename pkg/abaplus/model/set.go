package model

import "sort"

// SentenceSet is an immutable, hashable set of sentences. It is the
// "frozenset" the spec's data model calls for: two sets with the same
// members compare equal and produce the same Key, regardless of
// construction order, so they can be used as map keys (supports,
// antecedents, and deduction premises/conclusions are all sets of
// sets at various points in the pipeline).
type SentenceSet struct {
	sorted []Sentence
}

// NewSentenceSet builds a SentenceSet from a slice, deduplicating and
// sorting for a canonical internal representation.
func NewSentenceSet(items ...Sentence) SentenceSet {
	if len(items) == 0 {
		return SentenceSet{}
	}
	seen := make(map[Sentence]struct{}, len(items))
	uniq := make([]Sentence, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		uniq = append(uniq, s)
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i].Less(uniq[j]) })
	return SentenceSet{sorted: uniq}
}

// Len returns the number of distinct sentences in the set.
func (s SentenceSet) Len() int {
	return len(s.sorted)
}

// Contains reports whether sentence is a member of s.
func (s SentenceSet) Contains(sentence Sentence) bool {
	for _, x := range s.sorted {
		if x == sentence {
			return true
		}
	}
	return false
}

// Subset reports whether every member of s is also a member of other —
// the test the deduction engine uses to decide whether a rule fires.
func (s SentenceSet) Subset(other SentenceSet) bool {
	for _, x := range s.sorted {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// Superset reports whether other is a subset of s.
func (s SentenceSet) Superset(other SentenceSet) bool {
	return other.Subset(s)
}

// Union returns the set union of s and other.
func (s SentenceSet) Union(other SentenceSet) SentenceSet {
	merged := make([]Sentence, 0, len(s.sorted)+len(other.sorted))
	merged = append(merged, s.sorted...)
	merged = append(merged, other.sorted...)
	return NewSentenceSet(merged...)
}

// Add returns a new set with sentence inserted.
func (s SentenceSet) Add(sentence Sentence) SentenceSet {
	return s.Union(NewSentenceSet(sentence))
}

// Without returns a new set with sentence removed, if present.
func (s SentenceSet) Without(sentence Sentence) SentenceSet {
	out := make([]Sentence, 0, len(s.sorted))
	for _, x := range s.sorted {
		if x != sentence {
			out = append(out, x)
		}
	}
	return NewSentenceSet(out...)
}

// Slice returns the sorted member sentences. The returned slice must
// not be mutated by callers.
func (s SentenceSet) Slice() []Sentence {
	return s.sorted
}

// Equal reports structural equality: same members, order-independent.
func (s SentenceSet) Equal(other SentenceSet) bool {
	if len(s.sorted) != len(other.sorted) {
		return false
	}
	for i := range s.sorted {
		if s.sorted[i] != other.sorted[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical, order-independent string usable as a map
// key for sets of SentenceSet (e.g. the set of supports S(t), or the
// set of distinct deduction premises in the graph exporter).
func (s SentenceSet) Key() string {
	var b []byte
	for i, x := range s.sorted {
		if i > 0 {
			b = append(b, ',')
		}
		if x.IsContrary {
			b = append(b, '!')
		}
		b = append(b, x.Symbol...)
		b = append(b, '|')
	}
	return string(b)
}

// String renders the set the way format_set did in the reference
// implementation: "{a, !b, c}".
func (s SentenceSet) String() string {
	out := "{"
	for i, x := range s.sorted {
		if i > 0 {
			out += ", "
		}
		out += x.String()
	}
	return out + "}"
}

// SetOfSets is a deduplicated collection of SentenceSet values, keyed
// by SentenceSet.Key so that structurally identical sets collapse into
// one entry regardless of how many times they were produced. This is
// the representation used for S(t), the set of minimal supports.
type SetOfSets struct {
	byKey map[string]SentenceSet
}

// NewSetOfSets builds an empty SetOfSets.
func NewSetOfSets() SetOfSets {
	return SetOfSets{byKey: make(map[string]SentenceSet)}
}

// Add inserts set, deduplicating by structural equality.
func (c *SetOfSets) Add(set SentenceSet) {
	if c.byKey == nil {
		c.byKey = make(map[string]SentenceSet)
	}
	c.byKey[set.Key()] = set
}

// AddAll inserts every set from other.
func (c *SetOfSets) AddAll(other SetOfSets) {
	for _, set := range other.byKey {
		c.Add(set)
	}
}

// Len returns the number of distinct sets.
func (c SetOfSets) Len() int {
	return len(c.byKey)
}

// Slice returns the member sets in no particular order.
func (c SetOfSets) Slice() []SentenceSet {
	out := make([]SentenceSet, 0, len(c.byKey))
	for _, set := range c.byKey {
		out = append(out, set)
	}
	return out
}

// Empty reports whether the collection has no members.
func (c SetOfSets) Empty() bool {
	return len(c.byKey) == 0
}

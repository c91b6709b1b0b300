package model

// Relation is the strength of a declared or derived preference between
// two assumptions. The numeric ordering matters: LessThan < LessEqual
// < NoRelation, so that min(r1, r2) yields the stronger known relation,
// exactly as the preference-closure matrix relaxation requires.
type Relation int

const (
	LessThan Relation = iota
	LessEqual
	NoRelation
)

// Strongest returns whichever of a, b is the stronger (numerically
// smaller) relation.
func Strongest(a, b Relation) Relation {
	if a < b {
		return a
	}
	return b
}

// String renders the relation for diagnostics.
func (r Relation) String() string {
	switch r {
	case LessThan:
		return "<"
	case LessEqual:
		return "<="
	default:
		return "?"
	}
}

// Preference is a declared or derived relation between two assumptions:
// Preference{A1: a, A2: b, Relation: LessThan} represents a < b. Only
// assumptions may appear as A1/A2 — enforced at framework construction,
// not by this type.
type Preference struct {
	A1       Sentence
	A2       Sentence
	Relation Relation
}

// Key identifies a preference by its ordered pair and relation, used
// for deduplication when writing the closure back into the preference
// set.
func (p Preference) Key() string {
	return p.A1.String() + "<" + p.Relation.String() + ">" + p.A2.String()
}

// PreferenceSet is a deduplicated collection of preferences.
type PreferenceSet struct {
	byKey map[string]Preference
}

// NewPreferenceSet builds a PreferenceSet from a slice.
func NewPreferenceSet(prefs ...Preference) PreferenceSet {
	ps := PreferenceSet{byKey: make(map[string]Preference, len(prefs))}
	for _, p := range prefs {
		ps.byKey[p.Key()] = p
	}
	return ps
}

// Add inserts pref, overwriting any existing entry for the same pair
// and relation (preferences are idempotent under re-derivation).
func (ps *PreferenceSet) Add(pref Preference) {
	if ps.byKey == nil {
		ps.byKey = make(map[string]Preference)
	}
	ps.byKey[pref.Key()] = pref
}

// Len returns the number of distinct preferences.
func (ps PreferenceSet) Len() int {
	return len(ps.byKey)
}

// Slice returns the member preferences in no particular order.
func (ps PreferenceSet) Slice() []Preference {
	out := make([]Preference, 0, len(ps.byKey))
	for _, p := range ps.byKey {
		out = append(out, p)
	}
	return out
}

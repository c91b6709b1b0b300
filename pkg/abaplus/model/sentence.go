// Package model defines the value types shared by every stage of the
// ABA+ pipeline: sentences, rules, preferences, deductions, attacks, and
// the flat assumption-based framework that ties them together.
//
// Every type here is a plain value with structural equality. None of
// them carry behavior beyond construction and the predicates the spec
// calls for (contrary, hashing, set membership) — the reasoning lives
// in the sibling packages that consume these types.
package model

// Sentence is a symbol paired with a contrary flag. contrary(contrary(s))
// == s by construction: flipping IsContrary twice returns the original
// symbol/flag pair.
type Sentence struct {
	Symbol     string
	IsContrary bool
}

// NewSentence builds a non-contrary sentence for symbol.
func NewSentence(symbol string) Sentence {
	return Sentence{Symbol: symbol}
}

// Contrary returns the involutive negation of s.
func (s Sentence) Contrary() Sentence {
	return Sentence{Symbol: s.Symbol, IsContrary: !s.IsContrary}
}

// String renders a sentence the way the reference implementation's
// format_sentence did: a contrary is prefixed with "!".
func (s Sentence) String() string {
	if s.IsContrary {
		return "!" + s.Symbol
	}
	return s.Symbol
}

// Less provides a total order over sentences (symbol, then contrary
// flag) used wherever a stable ordering is required: preference-matrix
// indexing, support hashing, and graph-export node ordering.
func (s Sentence) Less(other Sentence) bool {
	if s.Symbol != other.Symbol {
		return s.Symbol < other.Symbol
	}
	return !s.IsContrary && other.IsContrary
}

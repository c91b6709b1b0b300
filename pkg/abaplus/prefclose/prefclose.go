// Package prefclose computes the transitive closure of the preference
// relation over a framework's assumptions and answers preference
// queries in O(1) once closed.
package prefclose

import (
	"github.com/cognicore/abaplus/pkg/abaplus/internalerr"
	"github.com/cognicore/abaplus/pkg/abaplus/model"
)

// Closure is the hash-map-backed index of a closed preference relation,
// answering relation queries in O(1) and avoiding the linear scans over
// Preferences that a naive implementation would do per query. The
// enlarged preference set is returned separately by Close.
type Closure struct {
	byPair map[pairKey]model.Relation
}

type pairKey struct {
	a1, a2 model.Sentence
}

// Close builds the |A|×|A| relation matrix, relaxes it to a transitive
// closure via the standard three-loop relaxation, and fails with a
// CyclicPreference error if any diagonal entry becomes LessThan.
//
// It returns the closure (for queries) and the enlarged preference set
// (for callers that want to inspect or persist the derived relations).
func Close(assumptions model.SentenceSet, prefs model.PreferenceSet) (*Closure, model.PreferenceSet, error) {
	assumps := assumptions.Slice()
	n := len(assumps)

	index := make(map[model.Sentence]int, n)
	for i, a := range assumps {
		index[a] = i
	}

	matrix := make([][]model.Relation, n)
	for i := range matrix {
		matrix[i] = make([]model.Relation, n)
		for j := range matrix[i] {
			if i == j {
				matrix[i][j] = model.LessEqual
			} else {
				matrix[i][j] = model.NoRelation
			}
		}
	}

	for _, p := range prefs.Slice() {
		i, ok1 := index[p.A1]
		j, ok2 := index[p.A2]
		if !ok1 || !ok2 {
			return nil, model.PreferenceSet{}, internalerr.Newf(
				internalerr.InvalidPreference,
				"preference %s %s %s refers to a non-assumption",
				p.A1, p.Relation, p.A2,
			)
		}
		matrix[i][j] = model.Strongest(matrix[i][j], p.Relation)
	}

	closed := transitiveClose(matrix)

	for i := range closed {
		if closed[i][i] == model.LessThan {
			return nil, model.PreferenceSet{}, internalerr.Newf(
				internalerr.CyclicPreference,
				"assumption %s is strictly preferred to itself after closure",
				assumps[i],
			)
		}
	}

	out := model.NewPreferenceSet()
	byPair := make(map[pairKey]model.Relation, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			rel := closed[i][j]
			byPair[pairKey{assumps[i], assumps[j]}] = rel
			if i != j && rel != model.NoRelation {
				out.Add(model.Preference{A1: assumps[i], A2: assumps[j], Relation: rel})
			}
		}
	}

	return &Closure{byPair: byPair}, out, nil
}

// transitiveClose applies the standard Floyd-Warshall-style relaxation:
// for each intermediate k, for each pair (i, j), replace M[i][j] with
// min(M[i][j], min(M[i][k], M[k][j])) when both legs are known.
func transitiveClose(matrix [][]model.Relation) [][]model.Relation {
	n := len(matrix)
	d := make([][]model.Relation, n)
	for i := range matrix {
		d[i] = append([]model.Relation(nil), matrix[i]...)
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				altRel := model.NoRelation
				if d[i][k] != model.NoRelation && d[k][j] != model.NoRelation {
					altRel = model.Strongest(d[i][k], d[k][j])
				}
				d[i][j] = model.Strongest(d[i][j], altRel)
			}
		}
	}

	return d
}

// Relation returns the strongest known relation between a1 and a2. If
// either sentence is unknown to the closure, NoRelation is returned —
// runtime queries never raise (spec.md §7).
func (c *Closure) Relation(a1, a2 model.Sentence) model.Relation {
	if c == nil {
		return model.NoRelation
	}
	if rel, ok := c.byPair[pairKey{a1, a2}]; ok {
		return rel
	}
	return model.NoRelation
}

// IsPreferred reports whether a2 < a1, i.e. a1 is preferred over a2.
func (c *Closure) IsPreferred(a1, a2 model.Sentence) bool {
	return c.Relation(a2, a1) == model.LessThan
}

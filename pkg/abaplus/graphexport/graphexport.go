// Package graphexport renders an attack.Result as the node/edge graph
// the external ASP-based Dung-style solver consumes (spec.md §4.6).
package graphexport

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/abaplus/pkg/abaplus/attack"
	"github.com/cognicore/abaplus/pkg/abaplus/model"
)

// Graph is a stable ordering of distinct supports (deductions sharing
// a premise collapse into one node) and the typed edges between them.
type Graph struct {
	Nodes []model.SentenceSet
	index map[string]int
	Edges []Edge
}

// Edge is a directed, typed arc between two node indices.
type Edge struct {
	From, To int
	Kind     model.AttackKind
}

// NodeIndex returns the stable index assigned to premise, or -1 if
// premise never appeared as a deduction premise in the source result.
func (g *Graph) NodeIndex(premise model.SentenceSet) int {
	if idx, ok := g.index[premise.Key()]; ok {
		return idx
	}
	return -1
}

// Build collapses res.All by premise into a stable, sorted node order
// and assigns a NORMAL/REVERSE/BOTH-typed edge per distinct ordered
// pair of nodes attacked in res.Attacks.
func Build(res attack.Result) *Graph {
	seen := make(map[string]model.SentenceSet)
	for _, d := range res.All.Slice() {
		seen[d.Premise.Key()] = d.Premise
	}

	nodes := make([]model.SentenceSet, 0, len(seen))
	for _, s := range seen {
		nodes = append(nodes, s)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Key() < nodes[j].Key() })

	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.Key()] = i
	}

	kinds := make(map[[2]int]model.AttackKind)
	for _, a := range res.Attacks.Slice() {
		from, ok1 := index[a.Attacker.Premise.Key()]
		to, ok2 := index[a.Attackee.Premise.Key()]
		if !ok1 || !ok2 {
			continue
		}
		pair := [2]int{from, to}
		if existing, ok := kinds[pair]; ok {
			if existing != a.Kind {
				kinds[pair] = model.Both
			}
		} else {
			kinds[pair] = a.Kind
		}
	}

	pairs := make([][2]int, 0, len(kinds))
	for pair := range kinds {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	edges := make([]Edge, 0, len(pairs))
	for _, pair := range pairs {
		edges = append(edges, Edge{From: pair[0], To: pair[1], Kind: kinds[pair]})
	}

	return &Graph{Nodes: nodes, index: index, Edges: edges}
}

// ASPFacts renders the graph as the fact file the solver package feeds
// to the external answer-set solver: one arg(i). per node and one
// att(i,j). per edge, sorted for a reproducible diff across runs.
func (g *Graph) ASPFacts() string {
	var b strings.Builder
	for i := range g.Nodes {
		fmt.Fprintf(&b, "arg(%d).\n", i)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "att(%d,%d).\n", e.From, e.To)
	}
	return b.String()
}

// Writer persists a rendered graph to a destination (file, DB, solver
// stdin pipe) chosen by the caller.
type Writer interface {
	WriteGraph(ctx context.Context, content string) error
}

// Exporter renders a Graph and hands it to Writer.
type Exporter struct {
	Writer Writer
}

// Export builds the graph from res and writes its ASP fact rendering.
func (e *Exporter) Export(ctx context.Context, res attack.Result) (*Graph, error) {
	if e.Writer == nil {
		return nil, fmt.Errorf("graph exporter: nil writer")
	}
	g := Build(res)
	if err := e.Writer.WriteGraph(ctx, g.ASPFacts()); err != nil {
		return nil, err
	}
	return g, nil
}

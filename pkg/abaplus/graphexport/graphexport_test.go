package graphexport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cognicore/abaplus/pkg/abaplus/arggen"
	"github.com/cognicore/abaplus/pkg/abaplus/attack"
	"github.com/cognicore/abaplus/pkg/abaplus/model"
	"github.com/cognicore/abaplus/pkg/abaplus/prefclose"
)

func TestBuildKeepsMutualNormalAttacksNormal(t *testing.T) {
	a, b := model.NewSentence("a"), model.NewSentence("b")
	assumps := model.NewSentenceSet(a, b)
	rules := model.NewRuleSet(
		model.NewRule(a.Contrary(), b),
		model.NewRule(b.Contrary(), a),
	)

	closure, _, err := prefclose.Close(assumps, model.NewPreferenceSet())
	if err != nil {
		t.Fatalf("unexpected closure error: %v", err)
	}
	gen := arggen.New(assumps, rules)
	res := attack.Build(assumps, gen, closure, []model.Sentence{a.Contrary(), b.Contrary()})

	g := Build(res)
	idxA := g.NodeIndex(model.NewSentenceSet(a))
	idxB := g.NodeIndex(model.NewSentenceSet(b))
	if idxA < 0 || idxB < 0 {
		t.Fatalf("expected both {a} and {b} to be nodes, got index %d/%d", idxA, idxB)
	}

	found := false
	for _, e := range g.Edges {
		if e.From == idxA && e.To == idxB {
			found = true
			if e.Kind != model.Normal {
				t.Fatalf("expected a single NORMAL edge a->b, got %v", e.Kind)
			}
		}
	}
	if !found {
		t.Fatal("expected an edge from {a} to {b}")
	}
}

func TestASPFactsRendering(t *testing.T) {
	a, b := model.NewSentence("a"), model.NewSentence("b")
	g := &Graph{
		Nodes: []model.SentenceSet{model.NewSentenceSet(a), model.NewSentenceSet(b)},
		Edges: []Edge{{From: 0, To: 1, Kind: model.Normal}},
	}
	facts := g.ASPFacts()
	if !strings.Contains(facts, "arg(0).\n") || !strings.Contains(facts, "arg(1).\n") {
		t.Fatalf("expected both node facts, got %q", facts)
	}
	if !strings.Contains(facts, "att(0,1).\n") {
		t.Fatalf("expected the edge fact, got %q", facts)
	}
}

type capturingWriter struct {
	content string
}

func (w *capturingWriter) WriteGraph(_ context.Context, content string) error {
	w.content = content
	return nil
}

func TestExportWritesThroughWriter(t *testing.T) {
	a := model.NewSentence("a")
	assumps := model.NewSentenceSet(a)
	closure, _, err := prefclose.Close(assumps, model.NewPreferenceSet())
	if err != nil {
		t.Fatalf("unexpected closure error: %v", err)
	}
	gen := arggen.New(assumps, model.NewRuleSet())
	res := attack.Build(assumps, gen, closure, nil)

	w := &capturingWriter{}
	exp := Exporter{Writer: w}
	g, err := exp.Export(context.Background(), res)
	if err != nil {
		t.Fatalf("unexpected export error: %v", err)
	}
	if len(g.Nodes) != 1 {
		t.Fatalf("expected a single trivial node for {a}, got %d", len(g.Nodes))
	}
	if !strings.Contains(w.content, "arg(0).") {
		t.Fatalf("expected the writer to receive the rendered facts, got %q", w.content)
	}
}

func TestExportRejectsNilWriter(t *testing.T) {
	exp := Exporter{}
	_, err := exp.Export(context.Background(), attack.Result{All: model.NewDeductionSet()})
	if err == nil {
		t.Fatal("expected an error for a nil writer")
	}
	if errors.Is(err, context.Canceled) {
		t.Fatal("sanity check failed: unrelated error type")
	}
}

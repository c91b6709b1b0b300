package solver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/abaplus/pkg/abaplus/graphexport"
	"github.com/cognicore/abaplus/pkg/abaplus/model"
)

// fakeSolverScript writes an executable shell script standing in for
// clingo: it ignores its arguments and prints canned answer-set text,
// so Extensions can be exercised without a real ASP solver installed.
func fakeSolverScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-clingo")
	script := "#!/bin/sh\ncat <<'EOF'\n" + body + "\nEOF\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("writing fake solver script: %v", err)
	}
	return path
}

func TestExtensionsParsesAnswerSets(t *testing.T) {
	a, b := model.NewSentence("a"), model.NewSentence("b")
	g := &graphexport.Graph{
		Nodes: []model.SentenceSet{model.NewSentenceSet(a), model.NewSentenceSet(b)},
	}

	script := fakeSolverScript(t, "Answer: 1\nin(0) in(1)\nSATISFIABLE")
	s := New(Config{ClingoPath: script, EncodingDir: t.TempDir()})

	extensions, err := s.Extensions(context.Background(), g, Admissible)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extensions.Len() != 1 {
		t.Fatalf("expected exactly one extension, got %d: %v", extensions.Len(), extensions.Slice())
	}
	want := model.NewSentenceSet(a, b)
	if !extensions.Slice()[0].Equal(want) {
		t.Fatalf("expected extension {a,b}, got %v", extensions.Slice()[0])
	}
}

func TestExtensionsNoAnswerHeaderYieldsEmpty(t *testing.T) {
	g := &graphexport.Graph{Nodes: []model.SentenceSet{model.NewSentenceSet(model.NewSentence("a"))}}
	script := fakeSolverScript(t, "UNSATISFIABLE")
	s := New(Config{ClingoPath: script, EncodingDir: t.TempDir()})

	extensions, err := s.Extensions(context.Background(), g, Stable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !extensions.Empty() {
		t.Fatalf("expected no extensions when the solver reports UNSATISFIABLE, got %v", extensions.Slice())
	}
}

func TestExtensionsMultipleAnswerSets(t *testing.T) {
	a, b := model.NewSentence("a"), model.NewSentence("b")
	g := &graphexport.Graph{
		Nodes: []model.SentenceSet{model.NewSentenceSet(a), model.NewSentenceSet(b)},
	}
	script := fakeSolverScript(t, "Answer: 1\nin(0)\nAnswer: 2\nin(1)\nSATISFIABLE")
	s := New(Config{ClingoPath: script, EncodingDir: t.TempDir()})

	extensions, err := s.Extensions(context.Background(), g, Admissible)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extensions.Len() != 2 {
		t.Fatalf("expected two distinct extensions, got %d: %v", extensions.Len(), extensions.Slice())
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.ClingoPath != "clingo" || cfg.DlvPath != "dlv" || cfg.EncodingDir != "." {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/abaplus/pkg/abaplus/store"
)

func TestOpenCreatesSchemaAndRoundTripsRun(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	st, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	r := store.Run{
		ID:          "01RUN",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		Source:      "myAsm(a). myAsm(b). contrary(a,ca).",
		RepairRules: []string{"{a,b}|-!c"},
		GraphFacts:  "arg(0).\narg(1).\natt(0,1).\n",
		Semantics:   "preferred",
		Extensions:  []string{"{a}", "{a,b}"},
	}

	if err := st.SaveRun(ctx, r); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, ok, err := st.GetRun(ctx, "01RUN")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !ok {
		t.Fatal("expected run to be found")
	}
	if got.Source != r.Source || got.Semantics != r.Semantics {
		t.Fatalf("round-tripped run mismatch: %+v", got)
	}
	if len(got.RepairRules) != 1 || got.RepairRules[0] != "{a,b}|-!c" {
		t.Fatalf("unexpected repair rules: %v", got.RepairRules)
	}
	if len(got.Extensions) != 2 {
		t.Fatalf("unexpected extensions: %v", got.Extensions)
	}
	if !got.CreatedAt.Equal(r.CreatedAt) {
		t.Fatalf("expected created_at %v, got %v", r.CreatedAt, got.CreatedAt)
	}
}

func TestSaveRunUpsertsOnConflict(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	st, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	id := "01DUP"
	if err := st.SaveRun(ctx, store.Run{ID: id, Source: "first"}); err != nil {
		t.Fatalf("SaveRun (first): %v", err)
	}
	if err := st.SaveRun(ctx, store.Run{ID: id, Source: "second"}); err != nil {
		t.Fatalf("SaveRun (second): %v", err)
	}

	got, ok, err := st.GetRun(ctx, id)
	if err != nil || !ok {
		t.Fatalf("GetRun: ok=%v err=%v", ok, err)
	}
	if got.Source != "second" {
		t.Fatalf("expected upsert to overwrite source, got %q", got.Source)
	}
}

func TestGetRunMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	st, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	_, ok, err := st.GetRun(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a run that was never saved")
	}
}

func TestListRunsOrdersByRecencyAndRespectsLimit(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	st, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	base := time.Now().UTC().Truncate(time.Second)
	ids := []string{"older", "newest", "middle"}
	offsets := []time.Duration{-2 * time.Hour, 0, -1 * time.Hour}
	for i, id := range ids {
		r := store.Run{ID: id, CreatedAt: base.Add(offsets[i])}
		if err := st.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun(%s): %v", id, err)
		}
	}

	runs, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "newest" || runs[1].ID != "middle" {
		t.Fatalf("expected [newest middle], got [%s %s]", runs[0].ID, runs[1].ID)
	}
}

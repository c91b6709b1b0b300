package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cognicore/abaplus/pkg/abaplus/model"
)

func TestFormatRuleAndDeduction(t *testing.T) {
	a, b, c := model.NewSentence("a"), model.NewSentence("b"), model.NewSentence("c")
	rule := model.NewRule(c, a, b)
	if got, want := FormatRule(rule), "{a, b}|-c"; got != want {
		t.Fatalf("FormatRule() = %q, want %q", got, want)
	}

	ded := model.NewDeduction(model.NewSentenceSet(a, b), model.NewSentenceSet(c))
	if got, want := FormatDeduction(ded), "{a, b}|-{c}"; got != want {
		t.Fatalf("FormatDeduction() = %q, want %q", got, want)
	}
}

func TestFormatAttack(t *testing.T) {
	a, b := model.NewSentence("a"), model.NewSentence("b")
	atk := model.Attack{
		Attacker: model.NewDeduction(model.NewSentenceSet(a), model.NewSentenceSet(b.Contrary())),
		Attackee: model.NewDeduction(model.NewSentenceSet(b), model.NewSentenceSet(b)),
		Kind:     model.Normal,
	}
	got := FormatAttack(atk)
	if !strings.Contains(got, "NORMAL") {
		t.Fatalf("expected attack kind NORMAL rendered, got %q", got)
	}
}

func TestReporterUncoloredWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, nil)

	r.WCPCheck(false)
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes writing to a plain buffer, got %q", out)
	}
	if !strings.Contains(out, "WCP: violated") {
		t.Fatalf("expected violation message, got %q", out)
	}
}

func TestReporterForceColor(t *testing.T) {
	var buf bytes.Buffer
	on := true
	r := New(&buf, &on)

	r.WCPCheck(true)
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatal("expected ANSI escapes when color is force-enabled")
	}
}

func TestWCPRepairReportsEachSynthesizedRule(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, nil)

	a, b, c := model.NewSentence("a"), model.NewSentence("b"), model.NewSentence("c")
	added := []model.Rule{model.NewRule(c.Contrary(), a, b)}
	r.WCPRepair(added)

	out := buf.String()
	if !strings.Contains(out, "synthesized 1 rule") {
		t.Fatalf("expected a synthesized-rule count line, got %q", out)
	}
	if !strings.Contains(out, FormatRule(added[0])) {
		t.Fatalf("expected the synthesized rule to be rendered, got %q", out)
	}
}

func TestWCPRepairNoRulesNeeded(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, nil)

	r.WCPRepair(nil)
	if !strings.Contains(buf.String(), "no rules needed") {
		t.Fatalf("expected a no-repair-needed message, got %q", buf.String())
	}
}

func TestJSONReportWrite(t *testing.T) {
	var buf bytes.Buffer
	held := false
	r := JSONReport{WCPHeld: &held, RepairedRules: []string{"{a}|-!b"}}
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"wcp_held": false`) {
		t.Fatalf("expected wcp_held field, got %q", out)
	}
	if !strings.Contains(out, `"{a}|-!b"`) {
		t.Fatalf("expected repaired rule rendered, got %q", out)
	}
}

func TestJSONReportOmitsWCPHeldWhenNil(t *testing.T) {
	var buf bytes.Buffer
	r := JSONReport{Extensions: []string{"{a, b}"}}
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "wcp_held") {
		t.Fatalf("expected no wcp_held field for a solve-only report, got %q", out)
	}
	if !strings.Contains(out, `"{a, b}"`) {
		t.Fatalf("expected extension rendered, got %q", out)
	}
}

func TestSummaryUsesHumaneCounts(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, nil)

	r.Summary(1204, 38)
	if got, want := buf.String(), "1,204 attacks, 38 deductions\n"; got != want {
		t.Fatalf("Summary() wrote %q, want %q", got, want)
	}
}

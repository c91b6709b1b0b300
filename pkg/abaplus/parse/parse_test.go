package parse

import (
	"errors"
	"testing"

	"github.com/cognicore/abaplus/pkg/abaplus/internalerr"
	"github.com/cognicore/abaplus/pkg/abaplus/model"
)

func TestParseBasicFramework(t *testing.T) {
	src := `
		myAsm(a).
		myAsm(b).
		contrary(a, ca).
		contrary(b, cb).
		myRule(ca, [b]).
		myPrefLT(a, b).
	`
	res, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	a, b := model.NewSentence("a"), model.NewSentence("b")
	if !res.Framework.Assumptions.Equal(model.NewSentenceSet(a, b)) {
		t.Fatalf("expected assumptions {a,b}, got %v", res.Framework.Assumptions)
	}

	wantRule := model.NewRule(a.Contrary(), b)
	found := false
	for _, r := range res.Framework.Rules.Slice() {
		if r.Key() == wantRule.Key() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected rule {b}|-!a (ca translated to !a), got %v", res.Framework.Rules.Slice())
	}

	wantPref := model.Preference{A1: a, A2: b, Relation: model.LessThan}
	prefFound := false
	for _, p := range res.Framework.Preferences.Slice() {
		if p.Key() == wantPref.Key() {
			prefFound = true
		}
	}
	if !prefFound {
		t.Fatalf("expected preference a<b, got %v", res.Framework.Preferences.Slice())
	}
}

func TestParseEmptyAntecedentRule(t *testing.T) {
	src := `myAsm(a). myRule(p, []).`
	res, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	p := model.NewSentence("p")
	rules := res.Framework.Rules.DerivingRules(p)
	if len(rules) != 1 || rules[0].Antecedent.Len() != 0 {
		t.Fatalf("expected a fact rule |-p, got %v", rules)
	}
}

func TestParseRejectsSelfContrary(t *testing.T) {
	src := `myAsm(a). contrary(a, a).`
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected an error for a sentence declared as its own contrary")
	}
	var tagged *internalerr.Error
	if !errors.As(err, &tagged) || tagged.Kind != internalerr.DuplicateSymbol {
		t.Fatalf("expected a DuplicateSymbol error, got %v", err)
	}
}

// TestParseRejectsDuplicateContrarySymbol covers spec.md §6's
// constraint that a symbol may be named as the contrary of at most one
// assumption: two assumptions claiming the same contrary symbol is a
// parse error, not silently resolved.
func TestParseRejectsDuplicateContrarySymbol(t *testing.T) {
	src := `
		myAsm(a).
		myAsm(b).
		contrary(a, cc).
		contrary(b, cc).
	`
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected an error for two assumptions claiming the same contrary symbol")
	}
	var tagged *internalerr.Error
	if !errors.As(err, &tagged) || tagged.Kind != internalerr.DuplicateSymbol {
		t.Fatalf("expected a DuplicateSymbol error, got %v", err)
	}
}

// TestParseRejectsAssumptionWithTwoContraries covers the other half of
// the same constraint: each assumption has at most one contrary symbol.
func TestParseRejectsAssumptionWithTwoContraries(t *testing.T) {
	src := `
		myAsm(a).
		contrary(a, ca1).
		contrary(a, ca2).
	`
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected an error for an assumption claiming two contrary symbols")
	}
	var tagged *internalerr.Error
	if !errors.As(err, &tagged) || tagged.Kind != internalerr.DuplicateSymbol {
		t.Fatalf("expected a DuplicateSymbol error, got %v", err)
	}
}

// TestParseRejectsContraryOfNonAssumption covers spec.md §6's
// constraint that only assumption symbols may appear in contrary(·,_).
func TestParseRejectsContraryOfNonAssumption(t *testing.T) {
	_, err := Parse(`myAsm(a). contrary(z, cz).`)
	if err == nil {
		t.Fatal("expected an error for a contrary declaration naming a non-assumption")
	}
	var tagged *internalerr.Error
	if !errors.As(err, &tagged) || tagged.Kind != internalerr.InvalidContraryDeclaration {
		t.Fatalf("expected an InvalidContraryDeclaration error, got %v", err)
	}
}

// TestParseRejectsContrarySymbolEqualToAssumption covers spec.md §6's
// constraint that a contrary symbol cannot equal any assumption symbol.
func TestParseRejectsContrarySymbolEqualToAssumption(t *testing.T) {
	_, err := Parse(`myAsm(a). myAsm(b). contrary(a, b).`)
	if err == nil {
		t.Fatal("expected an error for a contrary symbol that is itself an assumption")
	}
	var tagged *internalerr.Error
	if !errors.As(err, &tagged) || tagged.Kind != internalerr.InvalidContraryDeclaration {
		t.Fatalf("expected an InvalidContraryDeclaration error, got %v", err)
	}
}

// TestParseRejectsPreferenceOverNonAssumption covers spec.md §6's
// constraint that preferences reference only assumption symbols,
// enforced at parse time (InvalidPreferenceDeclaration) rather than
// only later during preference closure.
func TestParseRejectsPreferenceOverNonAssumption(t *testing.T) {
	_, err := Parse(`myAsm(a). myPrefLT(a, z).`)
	if err == nil {
		t.Fatal("expected an error for a preference referencing a non-assumption")
	}
	var tagged *internalerr.Error
	if !errors.As(err, &tagged) || tagged.Kind != internalerr.InvalidPreferenceDeclaration {
		t.Fatalf("expected an InvalidPreferenceDeclaration error, got %v", err)
	}
}

func TestParseMalformedPreferenceIsRejected(t *testing.T) {
	_, err := Parse(`myPrefLT(,b).`)
	if err == nil {
		t.Fatal("expected an error for a malformed preference declaration")
	}
	var tagged *internalerr.Error
	if !errors.As(err, &tagged) || tagged.Kind != internalerr.InvalidPreferenceDeclaration {
		t.Fatalf("expected InvalidPreferenceDeclaration, got %v", err)
	}
}

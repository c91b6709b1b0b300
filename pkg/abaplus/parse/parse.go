// Package parse reads the textual surface grammar for ABA+ frameworks
// (myAsm/contrary/myRule/myPrefLT/myPrefLE declarations) and produces
// a model.Framework, restoring the concrete parser the distilled spec
// only describes at the interface level (spec.md §6, §7).
package parse

import (
	"regexp"
	"strings"

	"github.com/cognicore/abaplus/pkg/abaplus/internalerr"
	"github.com/cognicore/abaplus/pkg/abaplus/model"
)

var (
	assumpRE = regexp.MustCompile(`^myAsm\((.+)\)$`)
	contrRE  = regexp.MustCompile(`^contrary\((.+),(.+)\)$`)
	ruleRE   = regexp.MustCompile(`^myRule\((.+),\[(.*)\]\)$`)
	ltRE     = regexp.MustCompile(`^myPrefLT\((.+),(.+)\)$`)
	leRE     = regexp.MustCompile(`^myPrefLE\((.+),(.+)\)$`)
)

// Result is the parsed framework plus the map from each assumption to
// the contrary symbol declared for it in the source text.
type Result struct {
	Framework model.Framework
	Contrary  map[string]string
}

// Parse reads the full declaration text and builds a Result, or an
// *internalerr.Error of kind InvalidContraryDeclaration,
// DuplicateSymbol, or InvalidPreferenceDeclaration on malformed input.
func Parse(input string) (Result, error) {
	cleaned := strings.NewReplacer("\r", "", "\n", "").Replace(input)
	decls := strings.Split(cleaned, ".")

	assumptions := parseAssumptions(selectDecls(decls, "myAsm"))

	contrMap, err := buildContraryMap(selectDecls(decls, "contrary"), assumptions)
	if err != nil {
		return Result{}, err
	}

	rules := parseRules(selectDecls(decls, "myRule"), contrMap)

	prefs, err := parsePreferences(selectDeclsAny(decls, "myPrefLT", "myPrefLE"), assumptions)
	if err != nil {
		return Result{}, err
	}

	fw := model.Framework{Assumptions: assumptions, Preferences: prefs, Rules: rules}

	exported := make(map[string]string, len(contrMap.bySymbol))
	for k, v := range contrMap.bySymbol {
		exported[k] = v
	}

	return Result{Framework: fw, Contrary: exported}, nil
}

func selectDecls(decls []string, predicate string) []string {
	return selectDeclsAny(decls, predicate)
}

func selectDeclsAny(decls []string, predicates ...string) []string {
	var out []string
	for _, d := range decls {
		for _, p := range predicates {
			if strings.Contains(d, p) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

func cleanDecl(decl string) string {
	return strings.Join(strings.Fields(decl), "")
}

func parseAssumptions(decls []string) model.SentenceSet {
	var symbols []model.Sentence
	for _, decl := range decls {
		m := assumpRE.FindStringSubmatch(cleanDecl(decl))
		if m == nil {
			continue
		}
		symbols = append(symbols, model.NewSentence(m[1]))
	}
	return model.NewSentenceSet(symbols...)
}

// contraryMap tracks symbol -> contrary-of mappings.
type contraryMap struct {
	bySymbol map[string]string
}

func newContraryMap() *contraryMap {
	return &contraryMap{bySymbol: make(map[string]string)}
}

// buildContraryMap parses "contrary(sentence, contrary)." declarations
// into a symbol -> contrary-of map, enforcing spec.md §6's three
// contrary-declaration constraints: the sentence named must be an
// assumption, the contrary symbol must not itself be an assumption
// symbol, and neither a contrary symbol nor an assumption may be
// claimed by more than one contrary declaration.
func buildContraryMap(decls []string, assumptions model.SentenceSet) (*contraryMap, error) {
	m := newContraryMap()
	contraryOwner := make(map[string]string) // contrary symbol -> owning assumption

	for _, decl := range decls {
		match := contrRE.FindStringSubmatch(cleanDecl(decl))
		if match == nil {
			continue
		}
		sentence, contrary := match[1], match[2]
		if sentence == "" || contrary == "" {
			return nil, internalerr.Newf(
				internalerr.InvalidContraryDeclaration, "malformed contrary declaration: %q", decl)
		}
		if sentence == contrary {
			return nil, internalerr.Newf(
				internalerr.DuplicateSymbol, "sentence %q cannot be declared as its own contrary", sentence)
		}
		if !assumptions.Contains(model.NewSentence(sentence)) {
			return nil, internalerr.Newf(
				internalerr.InvalidContraryDeclaration,
				"contrary declaration %q names %q, which is not an assumption", decl, sentence)
		}
		if assumptions.Contains(model.NewSentence(contrary)) {
			return nil, internalerr.Newf(
				internalerr.InvalidContraryDeclaration,
				"contrary symbol %q in %q cannot equal an assumption symbol", contrary, decl)
		}
		if owner, ok := contraryOwner[contrary]; ok && owner != sentence {
			return nil, internalerr.Newf(
				internalerr.DuplicateSymbol,
				"contrary symbol %q is claimed by both %q and %q", contrary, owner, sentence)
		}
		if existing, ok := m.bySymbol[sentence]; ok && existing != contrary {
			return nil, internalerr.Newf(
				internalerr.DuplicateSymbol,
				"assumption %q already has contrary symbol %q, cannot also claim %q", sentence, existing, contrary)
		}

		contraryOwner[contrary] = sentence
		m.bySymbol[sentence] = contrary
	}

	return m, nil
}

func translateSymbol(symbol string, contrMap *contraryMap) model.Sentence {
	for assumption, contrary := range contrMap.bySymbol {
		if contrary == symbol {
			return model.Sentence{Symbol: assumption, IsContrary: true}
		}
	}
	return model.NewSentence(symbol)
}

func parseRules(decls []string, contrMap *contraryMap) model.RuleSet {
	rules := model.NewRuleSet()
	for _, decl := range decls {
		match := ruleRE.FindStringSubmatch(cleanDecl(decl))
		if match == nil {
			continue
		}
		consequent := translateSymbol(match[1], contrMap)

		var antecedent []model.Sentence
		if match[2] != "" {
			for _, sym := range strings.Split(match[2], ",") {
				antecedent = append(antecedent, translateSymbol(sym, contrMap))
			}
		}
		rules.Add(model.NewRule(consequent, antecedent...))
	}
	return rules
}

func parsePreferences(decls []string, assumptions model.SentenceSet) (model.PreferenceSet, error) {
	prefs := model.NewPreferenceSet()
	for _, decl := range decls {
		cleaned := cleanDecl(decl)

		relation := model.NoRelation
		var match []string
		if m := ltRE.FindStringSubmatch(cleaned); m != nil {
			relation, match = model.LessThan, m
		} else if m := leRE.FindStringSubmatch(cleaned); m != nil {
			relation, match = model.LessEqual, m
		} else {
			return model.PreferenceSet{}, internalerr.Newf(
				internalerr.InvalidPreferenceDeclaration, "malformed preference declaration: %q", decl)
		}

		a1, a2 := model.NewSentence(match[1]), model.NewSentence(match[2])
		if !assumptions.Contains(a1) || !assumptions.Contains(a2) {
			return model.PreferenceSet{}, internalerr.Newf(
				internalerr.InvalidPreferenceDeclaration,
				"preference declaration %q references a non-assumption symbol", decl)
		}

		prefs.Add(model.Preference{A1: a1, A2: a2, Relation: relation})
	}
	return prefs, nil
}

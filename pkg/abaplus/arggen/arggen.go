// Package arggen enumerates arguments: for a target sentence, the set
// of minimal assumption sets ("supports") that deduce it, treating
// rule application as an AND/OR graph with a cycle guard over the
// rule-activation path.
package arggen

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cognicore/abaplus/pkg/abaplus/model"
)

// DefaultCacheSize bounds the per-Generator memoization table. The
// recursion is referentially transparent given a fixed (assumptions,
// rules) pair (spec.md §5), so caching results by (target, guard) is
// sound and bounds the blowup of recomputing S(x) for antecedents
// shared across several rules.
const DefaultCacheSize = 4096

// Generator enumerates S(t) over a fixed framework snapshot.
// Constructing a new Generator after WCP auto-repair enlarges R is the
// caller's responsibility — a Generator never observes rule additions
// made after it was built.
type Generator struct {
	assumptions model.SentenceSet
	rules       model.RuleSet
	cache       *lru.Cache[string, model.SetOfSets]
}

// New builds a Generator over assumptions and rules, memoizing results
// in an LRU cache of DefaultCacheSize entries.
func New(assumptions model.SentenceSet, rules model.RuleSet) *Generator {
	cache, _ := lru.New[string, model.SetOfSets](DefaultCacheSize)
	return &Generator{assumptions: assumptions, rules: rules, cache: cache}
}

// Generate returns S(target), the set of minimal supports deducing
// target, per spec.md §4.3.
func (g *Generator) Generate(target model.Sentence) model.SetOfSets {
	return g.generate(target, guard{})
}

// GenerateMany returns Generate for every sentence in targets, as a
// map keyed by the target sentence.
func (g *Generator) GenerateMany(targets []model.Sentence) map[model.Sentence]model.SetOfSets {
	out := make(map[model.Sentence]model.SetOfSets, len(targets))
	for _, t := range targets {
		out[t] = g.Generate(t)
	}
	return out
}

func (g *Generator) generate(target model.Sentence, gd guard) model.SetOfSets {
	if g.assumptions.Contains(target) {
		sos := model.NewSetOfSets()
		sos.Add(model.NewSentenceSet(target))
		return sos
	}

	key := cacheKey(target, gd)
	if g.cache != nil {
		if cached, ok := g.cache.Get(key); ok {
			return cached
		}
	}

	results := model.NewSetOfSets()
	for _, rule := range g.rules.DerivingRules(target) {
		ruleKey := rule.Key()
		if gd.contains(ruleKey) {
			// already on the activation path: skip to keep the
			// recursion terminating over cyclic rule graphs.
			continue
		}

		if rule.Antecedent.Len() == 0 {
			results.Add(model.NewSentenceSet())
			continue
		}

		nextGuard := gd.push(ruleKey)
		factors := make([]model.SetOfSets, 0, rule.Antecedent.Len())
		viable := true
		for _, ant := range rule.Antecedent.Slice() {
			sub := g.generate(ant, nextGuard)
			if sub.Empty() {
				viable = false
				break
			}
			factors = append(factors, sub)
		}
		if !viable {
			continue
		}
		results.AddAll(SetCombinations(factors))
	}

	if g.cache != nil {
		g.cache.Add(key, results)
	}
	return results
}

// SetCombinations is the cross-product primitive of spec.md §4.3:
// given sets of supports C1..Cn, produce { s1 ∪ .. ∪ sn : si ∈ Ci }.
// Base cases: n=0 yields no combinations, n=1 yields C1 unchanged.
func SetCombinations(factors []model.SetOfSets) model.SetOfSets {
	if len(factors) == 0 {
		return model.NewSetOfSets()
	}
	if len(factors) == 1 {
		return factors[0]
	}

	rest := SetCombinations(factors[1:])
	result := model.NewSetOfSets()
	for _, s := range factors[0].Slice() {
		for _, r := range rest.Slice() {
			result.Add(s.Union(r))
		}
	}
	return result
}

// guard is the copy-on-branch set of rules currently on the
// activation path. Each push clones the underlying map rather than
// mutating it in place, so sibling branches in the AND/OR recursion
// never observe each other's guard (spec.md §9).
type guard struct {
	seen map[string]struct{}
}

func (g guard) contains(ruleKey string) bool {
	_, ok := g.seen[ruleKey]
	return ok
}

func (g guard) push(ruleKey string) guard {
	next := make(map[string]struct{}, len(g.seen)+1)
	for k := range g.seen {
		next[k] = struct{}{}
	}
	next[ruleKey] = struct{}{}
	return guard{seen: next}
}

func cacheKey(target model.Sentence, gd guard) string {
	keys := make([]string, 0, len(gd.seen))
	for k := range gd.seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(target.String())
	b.WriteByte('#')
	b.WriteString(strings.Join(keys, "\x00"))
	return b.String()
}

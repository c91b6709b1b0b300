// Package dedengine implements the forward-chaining fixed point that
// the rest of the pipeline uses to decide whether a sentence can be
// derived from a starting set: the same one-rule-per-pass scan backs
// both Exists (early-exit) and GenerateAll (full closure).
package dedengine

import "github.com/cognicore/abaplus/pkg/abaplus/model"

// Exists reports whether target can be deduced from seeds by
// repeatedly firing rules whose antecedent is already satisfied. Each
// rule fires at most once per call (rules_applied in the reference
// implementation); a full pass that fires no new rule ends the search,
// which terminates because every iteration consumes at least one rule.
func Exists(rules model.RuleSet, target model.Sentence, seeds model.SentenceSet) bool {
	if seeds.Contains(target) {
		return true
	}

	all := rules.Slice()
	used := make([]bool, len(all))
	deduced := seeds

	for {
		progressed := false
		for i, r := range all {
			if used[i] {
				continue
			}
			if !r.Antecedent.Subset(deduced) {
				continue
			}
			used[i] = true
			progressed = true
			if r.Consequent == target {
				return true
			}
			deduced = deduced.Add(r.Consequent)
		}
		if !progressed {
			return false
		}
	}
}

// GenerateAll returns the full deduction closure of seeds: every
// sentence reachable by repeatedly firing satisfied rules.
func GenerateAll(rules model.RuleSet, seeds model.SentenceSet) model.SentenceSet {
	all := rules.Slice()
	used := make([]bool, len(all))
	deduced := seeds

	for {
		progressed := false
		for i, r := range all {
			if used[i] {
				continue
			}
			if !r.Antecedent.Subset(deduced) {
				continue
			}
			used[i] = true
			progressed = true
			deduced = deduced.Add(r.Consequent)
		}
		if !progressed {
			return deduced
		}
	}
}

// Package attack derives the normal and reverse attack relation
// between deductions from a framework's supports and preference
// closure (spec.md §4.4).
package attack

import (
	"github.com/cognicore/abaplus/pkg/abaplus/arggen"
	"github.com/cognicore/abaplus/pkg/abaplus/model"
	"github.com/cognicore/abaplus/pkg/abaplus/prefclose"
)

// Successful reports whether support successfully attacks assumption
// a: support derives a's contrary (the caller is expected to have
// already confirmed that by construction — support came from
// Generate(a.Contrary())) and no member of support is strictly less
// preferred than a.
func Successful(closure *prefclose.Closure, support model.SentenceSet, a model.Sentence) bool {
	for _, x := range support.Slice() {
		if closure.IsPreferred(a, x) {
			return false
		}
	}
	return true
}

// LessPreferredMembers returns the subset of support whose members are
// strictly less preferred than attackee — the candidate culprits the
// WCP checker minimizes over.
func LessPreferredMembers(closure *prefclose.Closure, support model.SentenceSet, attackee model.Sentence) model.SentenceSet {
	var out []model.Sentence
	for _, x := range support.Slice() {
		if closure.IsPreferred(attackee, x) {
			out = append(out, x)
		}
	}
	return model.NewSentenceSet(out...)
}

// Result bundles everything spec.md §4.4's construction produces: the
// deductions generated per target sentence, the full attack set, and
// the flattened collection of every distinct deduction (the graph
// exporter's node source).
type Result struct {
	Deductions map[model.Sentence][]model.Deduction
	Attacks    model.AttackSet
	All        model.DeductionSet
}

// Build runs the construction of spec.md §4.4 for every sentence in
// targets (typically the contrary of every assumption): trivial
// deductions for all assumptions, supports for each target, normal or
// reverse attacks against the trivial deduction of an attacked
// assumption, then propagation of each attack into every deduction
// whose premise relates to the attacking/attacked side.
func Build(assumptions model.SentenceSet, gen *arggen.Generator, closure *prefclose.Closure, targets []model.Sentence) Result {
	deductions := make(map[model.Sentence][]model.Deduction)
	all := model.NewDeductionSet()

	for _, a := range assumptions.Slice() {
		trivial := model.NewDeduction(model.NewSentenceSet(a), model.NewSentenceSet(a))
		deductions[a] = append(deductions[a], trivial)
		all.Add(trivial)
	}

	attacks := model.NewAttackSet()
	normalAttackers := make(map[model.Sentence]model.SetOfSets)
	reverseGroups := make(map[string]*reverseGroup)

	for _, t := range targets {
		supports := gen.Generate(t)
		if supports.Empty() {
			continue
		}
		for _, support := range supports.Slice() {
			d := model.NewDeduction(support, model.NewSentenceSet(t))
			deductions[t] = append(deductions[t], d)
			all.Add(d)

			if !t.IsContrary {
				continue
			}
			a := t.Contrary()
			if !assumptions.Contains(a) {
				continue
			}
			trivial := model.NewDeduction(model.NewSentenceSet(a), model.NewSentenceSet(a))

			if Successful(closure, support, a) {
				attacks.Add(model.Attack{Attacker: d, Attackee: trivial, Kind: model.Normal})
				bySupports := normalAttackers[a]
				bySupports.Add(support)
				normalAttackers[a] = bySupports
			} else {
				attacks.Add(model.Attack{Attacker: trivial, Attackee: d, Kind: model.Reverse})
				group, ok := reverseGroups[support.Key()]
				if !ok {
					group = &reverseGroup{support: support, assumptions: make(map[model.Sentence]struct{})}
					reverseGroups[support.Key()] = group
				}
				group.assumptions[a] = struct{}{}
			}
		}
	}

	allDeds := all.Slice()

	for a, supports := range normalAttackers {
		attackees := dedsWithMember(allDeds, a)
		for _, support := range supports.Slice() {
			attackers := dedsWithPremiseSuperset(allDeds, support)
			for _, attackee := range attackees {
				for _, attacker := range attackers {
					attacks.Add(model.Attack{Attacker: attacker, Attackee: attackee, Kind: model.Normal})
				}
			}
		}
	}

	for _, group := range reverseGroups {
		attackees := dedsWithPremiseSuperset(allDeds, group.support)
		for a := range group.assumptions {
			attackers := dedsWithMember(allDeds, a)
			for _, attackee := range attackees {
				for _, attacker := range attackers {
					attacks.Add(model.Attack{Attacker: attacker, Attackee: attackee, Kind: model.Reverse})
				}
			}
		}
	}

	return Result{Deductions: deductions, Attacks: attacks, All: all}
}

// reverseGroup accumulates the set of assumptions that reverse-attack
// a given support, so the propagation pass below mirrors the
// reference implementation's reverse_atk_map grouping.
type reverseGroup struct {
	support     model.SentenceSet
	assumptions map[model.Sentence]struct{}
}

func dedsWithMember(all []model.Deduction, s model.Sentence) []model.Deduction {
	var out []model.Deduction
	for _, d := range all {
		if d.Premise.Contains(s) {
			out = append(out, d)
		}
	}
	return out
}

func dedsWithPremiseSuperset(all []model.Deduction, sub model.SentenceSet) []model.Deduction {
	var out []model.Deduction
	for _, d := range all {
		if d.Premise.Superset(sub) {
			out = append(out, d)
		}
	}
	return out
}

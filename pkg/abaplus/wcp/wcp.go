// Package wcp checks the Weak Contraposition Property over a
// framework's attacks and, where requested, repairs violations by
// synthesizing contrapositive rules (spec.md §4.5).
package wcp

import (
	"sort"

	"github.com/cognicore/abaplus/pkg/abaplus/arggen"
	"github.com/cognicore/abaplus/pkg/abaplus/attack"
	"github.com/cognicore/abaplus/pkg/abaplus/dedengine"
	"github.com/cognicore/abaplus/pkg/abaplus/model"
	"github.com/cognicore/abaplus/pkg/abaplus/prefclose"
)

// Check reports whether WCP holds for every assumption: for every
// support X of an assumption's contrary, at least one <-minimal
// culprit of X must have a witness deduction of its own contrary from
// (X ∪ {a}) \ {c}.
func Check(assumptions model.SentenceSet, rules model.RuleSet, gen *arggen.Generator, closure *prefclose.Closure) bool {
	for _, a := range assumptions.Slice() {
		for _, support := range gen.Generate(a.Contrary()).Slice() {
			culprits := attack.LessPreferredMembers(closure, support, a)
			if culprits.Empty() {
				continue
			}
			minimal := minimalCulprits(closure, culprits)
			if !anyFulfilled(rules, minimal, a, support) {
				return false
			}
		}
	}
	return true
}

// Repair runs a single sweep synthesizing one contrapositive rule per
// violating support, and returns the enlarged rule set plus the added
// rules for reporting. A second sweep is never required: repairing one
// attack cannot invalidate a previously-satisfied one, since no
// preferences change (spec.md §4.5).
func Repair(assumptions model.SentenceSet, rules model.RuleSet, gen *arggen.Generator, closure *prefclose.Closure) (model.RuleSet, []model.Rule) {
	repaired := rules.Clone()
	var added []model.Rule

	for _, a := range assumptions.Slice() {
		for _, support := range gen.Generate(a.Contrary()).Slice() {
			culprits := attack.LessPreferredMembers(closure, support, a)
			if culprits.Empty() {
				continue
			}
			minimal := minimalCulprits(closure, culprits)
			if anyFulfilled(rules, minimal, a, support) {
				continue
			}

			cMin := minimal.Slice()[0]
			antecedent := support.Add(a).Without(cMin)
			newRule := model.NewRule(cMin.Contrary(), antecedent.Slice()...)
			if repaired.Add(newRule) {
				added = append(added, newRule)
			}
		}
	}

	return repaired, added
}

// minimalCulprits returns the <-minimal elements of culprits: those
// with no other member of culprits strictly less preferred than them.
// Given a transitively-closed preference relation this coincides with
// scanning all of support rather than just culprits (spec.md §4.5).
func minimalCulprits(closure *prefclose.Closure, culprits model.SentenceSet) model.SentenceSet {
	var minimal []model.Sentence
	for _, c := range culprits.Slice() {
		dominated := false
		for _, d := range culprits.Slice() {
			if d != c && closure.IsPreferred(c, d) {
				dominated = true
				break
			}
		}
		if !dominated {
			minimal = append(minimal, c)
		}
	}
	out := model.NewSentenceSet(minimal...)
	sorted := out.Slice()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	return out
}

// fulfilled reports whether contradictor's contrary is deducible from
// (antecedent ∪ {assumption}) \ {contradictor}, the witness WCP
// requires.
func fulfilled(rules model.RuleSet, contradictor, assumption model.Sentence, antecedent model.SentenceSet) bool {
	deduceFrom := antecedent.Add(assumption).Without(contradictor)
	return dedengine.Exists(rules, contradictor.Contrary(), deduceFrom)
}

func anyFulfilled(rules model.RuleSet, minimal model.SentenceSet, assumption model.Sentence, antecedent model.SentenceSet) bool {
	for _, c := range minimal.Slice() {
		if fulfilled(rules, c, assumption, antecedent) {
			return true
		}
	}
	return false
}

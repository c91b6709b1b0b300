package model

// Rule is body ⊢ head: a set of antecedent sentences and a single
// consequent. An empty antecedent is a fact and fires unconditionally.
// Equality is structural on both sides; RuleSet below hashes on the
// same basis (order-independent over the antecedent).
type Rule struct {
	Antecedent SentenceSet
	Consequent Sentence
}

// NewRule builds a rule from a (possibly empty) antecedent slice.
func NewRule(consequent Sentence, antecedent ...Sentence) Rule {
	return Rule{Antecedent: NewSentenceSet(antecedent...), Consequent: consequent}
}

// Key returns a canonical string identity for the rule, used as a map
// key in RuleSet and as the basis for the cycle-guard path set in the
// argument generator.
func (r Rule) Key() string {
	return r.Antecedent.Key() + "=>" + r.Consequent.String()
}

// String renders the rule for diagnostics.
func (r Rule) String() string {
	return r.Antecedent.String() + " |- " + r.Consequent.String()
}

// RuleSet is a deduplicated collection of rules, keyed by Rule.Key.
// The WCP auto-repair step grows a RuleSet; everything else treats it
// as immutable.
type RuleSet struct {
	byKey map[string]Rule
}

// NewRuleSet builds a RuleSet from a slice of rules.
func NewRuleSet(rules ...Rule) RuleSet {
	rs := RuleSet{byKey: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		rs.byKey[r.Key()] = r
	}
	return rs
}

// Add inserts rule, returning true if it was not already present.
func (rs *RuleSet) Add(rule Rule) bool {
	if rs.byKey == nil {
		rs.byKey = make(map[string]Rule)
	}
	if _, ok := rs.byKey[rule.Key()]; ok {
		return false
	}
	rs.byKey[rule.Key()] = rule
	return true
}

// Len returns the number of distinct rules.
func (rs RuleSet) Len() int {
	return len(rs.byKey)
}

// Slice returns the member rules in no particular order.
func (rs RuleSet) Slice() []Rule {
	out := make([]Rule, 0, len(rs.byKey))
	for _, r := range rs.byKey {
		out = append(out, r)
	}
	return out
}

// DerivingRules returns the subset of rules whose consequent equals
// target — D(t) in the spec's argument-generator algorithm.
func (rs RuleSet) DerivingRules(target Sentence) []Rule {
	var out []Rule
	for _, r := range rs.byKey {
		if r.Consequent == target {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a shallow copy whose Add calls do not affect rs.
func (rs RuleSet) Clone() RuleSet {
	cp := NewRuleSet()
	for _, r := range rs.byKey {
		cp.Add(r)
	}
	return cp
}

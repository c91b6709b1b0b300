package model

// Framework is the triple (A, P, R) the rest of the pipeline operates
// over: a set of assumptions, a (closed) set of preferences between
// them, and a set of rules. Framework itself carries no validation —
// construction and invariant checking (flatness, preference domain,
// closure consistency) live in the top-level package, which is the
// only place allowed to grow R via WCP auto-repair.
type Framework struct {
	Assumptions SentenceSet
	Preferences PreferenceSet
	Rules       RuleSet
}

// WithRules returns a copy of f with rules replacing f.Rules. Used by
// the WCP auto-repair step to produce the enlarged, still-immutable
// framework without mutating the original in place.
func (f Framework) WithRules(rules RuleSet) Framework {
	return Framework{Assumptions: f.Assumptions, Preferences: f.Preferences, Rules: rules}
}

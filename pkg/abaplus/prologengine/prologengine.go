// Package prologengine is an alternate deduction backend: it compiles
// a RuleSet into Horn clauses and answers deducibility queries with a
// real resolution engine (github.com/ichiban/prolog) instead of the
// hand-rolled forward-chaining fixed point in dedengine. The teacher's
// inference.Engine interface names this swap explicitly ("simple Go
// engine, golog, SWI-Prolog bridge, etc.") without ever implementing
// it; this package is that implementation.
package prologengine

import (
	"fmt"
	"io"
	"strings"

	"github.com/ichiban/prolog"

	"github.com/cognicore/abaplus/pkg/abaplus/model"
)

// Engine holds a framework's rules compiled into holds/1 Horn clauses.
// A fresh interpreter is built per Deducible call (seeded with these
// clauses plus that call's seed facts) so queries stay pure functions
// of (rules, target, seeds), the same contract dedengine.Exists makes.
type Engine struct {
	clauses string
}

// New compiles rules into Prolog clause text.
func New(rules model.RuleSet) (*Engine, error) {
	var b strings.Builder
	for _, r := range rules.Slice() {
		b.WriteString(renderClause(r))
		b.WriteByte('\n')
	}
	return &Engine{clauses: b.String()}, nil
}

// Deducible reports whether target can be proven from seeds: each seed
// is loaded as a fact alongside the compiled rules and the resulting
// program is queried for holds(target).
func (e *Engine) Deducible(target model.Sentence, seeds model.SentenceSet) (bool, error) {
	interp := prolog.New(nil, io.Discard)

	var program strings.Builder
	program.WriteString(e.clauses)
	for _, s := range seeds.Slice() {
		fmt.Fprintf(&program, "holds(%s).\n", atom(s))
	}
	if program.Len() > 0 {
		if err := interp.Exec(program.String()); err != nil {
			return false, fmt.Errorf("prologengine: loading program: %w", err)
		}
	}

	sols, err := interp.Query(fmt.Sprintf("holds(%s).", atom(target)))
	if err != nil {
		return false, fmt.Errorf("prologengine: querying %s: %w", target, err)
	}
	defer sols.Close()

	return sols.Next(), sols.Err()
}

// renderClause compiles a Rule into a holds/1 Horn clause: a fact when
// the antecedent is empty, otherwise a conjunction of holds/1 goals.
func renderClause(r model.Rule) string {
	head := fmt.Sprintf("holds(%s)", atom(r.Consequent))
	if r.Antecedent.Len() == 0 {
		return head + "."
	}
	goals := make([]string, 0, r.Antecedent.Len())
	for _, a := range r.Antecedent.Slice() {
		goals = append(goals, fmt.Sprintf("holds(%s)", atom(a)))
	}
	return head + " :- " + strings.Join(goals, ", ") + "."
}

// atom renders a Sentence as a quoted Prolog atom, tagging contraries
// with a "not_" prefix so they occupy a distinct predicate space from
// their underlying sentence (holds('a') and holds('not_a') are
// unrelated facts to the Prolog engine, exactly as they are unrelated
// deducibility questions to dedengine).
func atom(s model.Sentence) string {
	name := s.Symbol
	if s.IsContrary {
		name = "not_" + name
	}
	escaped := strings.ReplaceAll(name, "'", "\\'")
	return "'" + escaped + "'"
}

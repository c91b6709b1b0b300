// Package abaplus is the facade tying framework construction, support
// generation, attack derivation, WCP checking/repair, graph export,
// and external solving into one entry point, mirroring
// pkg/korel.Korel's Options/New/method-per-operation shape.
package abaplus

import (
	"context"
	"fmt"

	"github.com/cognicore/abaplus/pkg/abaplus/arggen"
	"github.com/cognicore/abaplus/pkg/abaplus/attack"
	"github.com/cognicore/abaplus/pkg/abaplus/dedengine"
	"github.com/cognicore/abaplus/pkg/abaplus/graphexport"
	"github.com/cognicore/abaplus/pkg/abaplus/internalerr"
	"github.com/cognicore/abaplus/pkg/abaplus/model"
	"github.com/cognicore/abaplus/pkg/abaplus/prefclose"
	"github.com/cognicore/abaplus/pkg/abaplus/prologengine"
	"github.com/cognicore/abaplus/pkg/abaplus/solver"
	"github.com/cognicore/abaplus/pkg/abaplus/store"
	"github.com/cognicore/abaplus/pkg/abaplus/wcp"
)

// DeductionBackend selects which engine answers deducibility queries.
type DeductionBackend int

const (
	// NativeBackend is the hand-rolled forward-chaining fixed point in
	// dedengine (the default).
	NativeBackend DeductionBackend = iota
	// PrologBackend compiles rules into Horn clauses and resolves
	// deducibility with an embedded Prolog interpreter (prologengine).
	PrologBackend
)

// Options configures an ABAPlus instance.
type Options struct {
	Store            store.Store
	Solver           *solver.Solver
	DeductionBackend DeductionBackend
}

// ABAPlus is the reasoning-engine facade.
type ABAPlus struct {
	store   store.Store
	solver  *solver.Solver
	backend DeductionBackend
}

// New builds an ABAPlus instance. A zero Options uses the native
// deduction backend and no persistence or external solver.
func New(opts Options) *ABAPlus {
	return &ABAPlus{store: opts.Store, solver: opts.Solver, backend: opts.DeductionBackend}
}

// Close releases the underlying store, if any.
func (ab *ABAPlus) Close() error {
	if ab.store == nil {
		return nil
	}
	return ab.store.Close()
}

// Framework wraps a validated, immutable model.Framework with its
// preference closure, ready for support/attack/WCP operations.
type Framework struct {
	Value   model.Framework
	Closure *prefclose.Closure
}

// Build validates fw (flatness, preference domain, closure
// consistency — spec.md's three construction-time checks) and returns
// a Framework carrying the derived preference closure.
func Build(fw model.Framework) (*Framework, error) {
	if err := checkFlat(fw); err != nil {
		return nil, err
	}

	closure, closedPrefs, err := prefclose.Close(fw.Assumptions, fw.Preferences)
	if err != nil {
		return nil, err
	}

	closed := model.Framework{Assumptions: fw.Assumptions, Preferences: closedPrefs, Rules: fw.Rules}
	return &Framework{Value: closed, Closure: closure}, nil
}

// checkFlat enforces spec.md's flatness invariant: no rule's
// consequent may be an assumption.
func checkFlat(fw model.Framework) error {
	for _, r := range fw.Rules.Slice() {
		if fw.Assumptions.Contains(r.Consequent) {
			return internalerr.Newf(internalerr.NonFlat,
				"rule %s has an assumption as its consequent", r)
		}
	}
	return nil
}

// contraries returns the contrary of every assumption, the target set
// attack.Build and the deduction engine operate over.
func (f *Framework) contraries() []model.Sentence {
	out := make([]model.Sentence, 0, f.Value.Assumptions.Len())
	for _, a := range f.Value.Assumptions.Slice() {
		out = append(out, a.Contrary())
	}
	return out
}

// Attacks runs support generation and attack derivation over f.
func (ab *ABAPlus) Attacks(f *Framework) attack.Result {
	gen := arggen.New(f.Value.Assumptions, f.Value.Rules)
	return attack.Build(f.Value.Assumptions, gen, f.Closure, f.contraries())
}

// CheckWCP reports whether f satisfies the Weak Contraposition
// Property.
func (ab *ABAPlus) CheckWCP(f *Framework) bool {
	gen := arggen.New(f.Value.Assumptions, f.Value.Rules)
	return wcp.Check(f.Value.Assumptions, f.Value.Rules, gen, f.Closure)
}

// RepairWCP synthesizes contraposition rules until f satisfies WCP,
// returning a new Framework (the original is left untouched per
// spec.md's immutability rule) and the rules that were added.
func (ab *ABAPlus) RepairWCP(f *Framework) (*Framework, []model.Rule) {
	gen := arggen.New(f.Value.Assumptions, f.Value.Rules)
	repaired, added := wcp.Repair(f.Value.Assumptions, f.Value.Rules, gen, f.Closure)
	return &Framework{Value: f.Value.WithRules(repaired), Closure: f.Closure}, added
}

// ExportGraph renders f's attack graph for an external solver.
func (ab *ABAPlus) ExportGraph(f *Framework) *graphexport.Graph {
	return graphexport.Build(ab.Attacks(f))
}

// Solve runs ab's configured external solver against f's attack graph
// and returns one extension per answer set. Returns an error if no
// solver was configured.
func (ab *ABAPlus) Solve(ctx context.Context, f *Framework, sem solver.Semantics) (model.SetOfSets, error) {
	if ab.solver == nil {
		return model.SetOfSets{}, fmt.Errorf("abaplus: no solver configured")
	}
	return ab.solver.Extensions(ctx, ab.ExportGraph(f), sem)
}

// Deducible reports whether target follows from seeds under f's
// rules, using ab's configured deduction backend.
func (ab *ABAPlus) Deducible(f *Framework, target model.Sentence, seeds model.SentenceSet) (bool, error) {
	if ab.backend == PrologBackend {
		eng, err := prologengine.New(f.Value.Rules)
		if err != nil {
			return false, err
		}
		return eng.Deducible(target, seeds)
	}
	return dedengine.Exists(f.Value.Rules, target, seeds), nil
}

// SaveRun persists run through ab's configured store. A nil store
// makes this a no-op, so callers can call SaveRun unconditionally.
func (ab *ABAPlus) SaveRun(ctx context.Context, run store.Run) error {
	if ab.store == nil {
		return nil
	}
	return ab.store.SaveRun(ctx, run)
}

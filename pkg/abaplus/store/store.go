// Package store persists solve runs: the framework's source text, the
// rules auto-repair added, the exported attack graph, and any
// extensions an external solver returned (spec.md §4.6, SOLVER/WCP
// supplements). Grounded on pkg/korel/store's Store interface and
// Doc/Card value-type shape.
package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Run is one solve invocation against a framework's source text.
type Run struct {
	ID          string
	CreatedAt   time.Time
	Source      string
	RepairRules []string
	GraphFacts  string
	Semantics   string
	Extensions  []string
}

// Store is the persistence interface for solve runs.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// IDGenerator produces monotonically increasing ULIDs for new runs,
// mirroring pkg/korel/cards.Builder's entropy source.
type IDGenerator struct {
	entropy *ulid.MonotonicEntropy
}

// NewIDGenerator creates an IDGenerator seeded from crypto/rand.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a fresh ULID string for the given timestamp.
func (g *IDGenerator) New(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), g.entropy).String()
}

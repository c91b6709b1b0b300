// Package sqlite implements store.Store using modernc.org/sqlite,
// mirroring pkg/korel/store/sqlite's WAL-mode/schema-init/upsert shape.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/abaplus/pkg/abaplus/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database at path with WAL mode enabled and
// initializes the runs schema if it does not already exist.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	source TEXT NOT NULL,
	repair_rules TEXT,
	graph_facts TEXT,
	semantics TEXT,
	extensions TEXT
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts or replaces a run, keyed by ID.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	repairRules, err := json.Marshal(r.RepairRules)
	if err != nil {
		return err
	}
	extensions, err := json.Marshal(r.Extensions)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs (id, created_at, source, repair_rules, graph_facts, semantics, extensions)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	created_at=excluded.created_at,
	source=excluded.source,
	repair_rules=excluded.repair_rules,
	graph_facts=excluded.graph_facts,
	semantics=excluded.semantics,
	extensions=excluded.extensions;
`, r.ID, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.Source, string(repairRules), r.GraphFacts, r.Semantics, string(extensions))
	return err
}

// GetRun retrieves a run by ID.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, created_at, source, repair_rules, graph_facts, semantics, extensions
FROM runs WHERE id = ?;
`, id)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	return r, true, nil
}

// ListRuns returns up to limit runs, most recently created first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, source, repair_rules, graph_facts, semantics, extensions
FROM runs ORDER BY created_at DESC LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (store.Run, error) {
	var (
		r                       store.Run
		createdAt               string
		repairRules, extensions string
	)
	if err := row.Scan(&r.ID, &createdAt, &r.Source, &repairRules, &r.GraphFacts, &r.Semantics, &extensions); err != nil {
		return store.Run{}, err
	}

	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		r.CreatedAt = parsed
	}
	if repairRules != "" {
		if err := json.Unmarshal([]byte(repairRules), &r.RepairRules); err != nil {
			return store.Run{}, err
		}
	}
	if extensions != "" {
		if err := json.Unmarshal([]byte(extensions), &r.Extensions); err != nil {
			return store.Run{}, err
		}
	}
	return r, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/lexaard/internal/ir"
)

// StoredDefinition is a definition together with its storage metadata.
type StoredDefinition struct {
	ir.Definition
	Hash string
	Seq  int64
}

// LoadDefinitions returns every stored definition ordered by seq ASC,
// name ASC COLLATE BINARY. Returns an empty slice (not nil) for an empty
// store.
func (s *Store) LoadDefinitions(ctx context.Context) ([]StoredDefinition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT body, hash, seq
		FROM definitions
		ORDER BY seq ASC, name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query definitions: %w", err)
	}
	defer rows.Close()

	defs := []StoredDefinition{}
	for rows.Next() {
		d, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate definitions: %w", err)
	}
	return defs, nil
}

// LoadDefinition returns the definition stored under name.
// The bool is false when no such name exists.
func (s *Store) LoadDefinition(ctx context.Context, name string) (StoredDefinition, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT body, hash, seq
		FROM definitions
		WHERE name = ?
	`, name)

	d, err := scanDefinition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredDefinition{}, false, nil
	}
	if err != nil {
		return StoredDefinition{}, false, err
	}
	return d, true, nil
}

// Runs returns logged evaluations ordered by seq ASC, id ASC COLLATE
// BINARY. An empty session selects every session.
func (s *Store) Runs(ctx context.Context, session string) ([]ir.RunRecord, error) {
	query := `
		SELECT id, session, target, input, accepted, seq
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`
	args := []any{}
	if session != "" {
		query = `
			SELECT id, session, target, input, accepted, seq
			FROM runs
			WHERE session = ?
			ORDER BY seq ASC, id COLLATE BINARY ASC
		`
		args = append(args, session)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.RunRecord{}
	for rows.Next() {
		var rec ir.RunRecord
		var accepted int
		if err := rows.Scan(&rec.ID, &rec.Session, &rec.Target, &rec.Input, &accepted, &rec.Seq); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Accepted = accepted != 0
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Sessions returns the distinct session tokens in the run log, ordered by
// the seq of their first run.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session
		FROM runs
		GROUP BY session
		ORDER BY MIN(seq) ASC, session COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []string{}
	for rows.Next() {
		var session string
		if err := rows.Scan(&session); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDefinition(row rowScanner) (StoredDefinition, error) {
	var body string
	var d StoredDefinition
	if err := row.Scan(&body, &d.Hash, &d.Seq); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredDefinition{}, err
		}
		return StoredDefinition{}, fmt.Errorf("scan definition: %w", err)
	}
	def, err := unmarshalDefinition(body)
	if err != nil {
		return StoredDefinition{}, err
	}
	d.Definition = def
	return d, nil
}

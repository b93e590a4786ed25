package store

import (
	"context"
	"fmt"

	"github.com/roach88/lexaard/internal/ir"
)

// SaveDefinition stores def under its name at the given seq.
//
// Any previous definition with the same name is replaced, whatever its
// kind. Saving identical content again only moves the seq forward.
func (s *Store) SaveDefinition(ctx context.Context, def ir.Definition, seq int64) error {
	if err := def.Check(); err != nil {
		return fmt.Errorf("save definition: %w", err)
	}

	body, hash, err := marshalDefinition(def)
	if err != nil {
		return fmt.Errorf("save definition: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO definitions (name, kind, body, hash, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			kind = excluded.kind,
			body = excluded.body,
			hash = excluded.hash,
			seq  = excluded.seq
	`,
		def.Name,
		string(def.Kind),
		body,
		hash,
		seq,
	)
	if err != nil {
		return fmt.Errorf("save definition %q: %w", def.Name, err)
	}
	return nil
}

// DeleteDefinition removes the definition registered under name.
// It reports whether a row was removed.
func (s *Store) DeleteDefinition(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM definitions WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("delete definition %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete definition %q: %w", name, err)
	}
	return n > 0, nil
}

// RecordRun appends an evaluation to the run log.
//
// An empty ID is filled in with ir.RunID. Uses ON CONFLICT(id) DO NOTHING,
// so writing the same run twice is a no-op. The stored record is returned.
func (s *Store) RecordRun(ctx context.Context, rec ir.RunRecord) (ir.RunRecord, error) {
	if rec.Session == "" {
		return ir.RunRecord{}, fmt.Errorf("record run: empty session")
	}
	if rec.ID == "" {
		id, err := ir.RunID(rec.Session, rec.Target, rec.Input, rec.Seq)
		if err != nil {
			return ir.RunRecord{}, fmt.Errorf("record run: %w", err)
		}
		rec.ID = id
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, session, target, input, accepted, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Session,
		rec.Target,
		rec.Input,
		boolToInt(rec.Accepted),
		rec.Seq,
	)
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("record run: %w", err)
	}
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

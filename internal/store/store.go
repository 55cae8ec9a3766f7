// Package store is the durable side of league persistence: a Postgres-backed
// object store holding every league collection as JSONB rows, plus the league
// registry and process-wide meta attributes. The in-memory cache is the unit
// of truth during a session; the store only sees whole-batch flushes.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/mcdev12/courtside/internal/sqlutil"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrLeagueNotFound is returned when a league ID is not in the registry.
var ErrLeagueNotFound = errors.New("league not found")

// Record is one stored object: its primary key within a collection and the
// JSON document.
type Record struct {
	Key  string
	Data []byte
}

// Put is a pending upsert in a flush batch.
type Put struct {
	Collection string
	Key        string
	Data       []byte
}

// Delete is a pending deletion in a flush batch.
type Delete struct {
	Collection string
	Key        string
}

// Batch is the full set of writes from one cache flush. It is applied in a
// single transaction: either every row lands or none do.
type Batch struct {
	Puts    []Put
	Deletes []Delete
}

// Empty reports whether the batch contains no work.
func (b Batch) Empty() bool { return len(b.Puts) == 0 && len(b.Deletes) == 0 }

// LeagueMeta is a row in the league registry.
type LeagueMeta struct {
	ID         uuid.UUID
	Name       string
	TID        int
	PhaseText  string
	TeamName   string
	TeamRegion string
	Difficulty float64
	CreatedAt  time.Time
}

// Store wraps the Postgres connection.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// New returns a Store over an open database handle.
func New(db *sql.DB, log zerolog.Logger) *Store {
	return &Store{db: db, log: log}
}

// Migrate applies pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// CreateLeague registers a new league.
func (s *Store) CreateLeague(ctx context.Context, meta LeagueMeta) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leagues (id, name, tid, phase_text, team_name, team_region, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		meta.ID, meta.Name, meta.TID, meta.PhaseText, meta.TeamName, meta.TeamRegion, meta.Difficulty,
	)
	if err != nil {
		return fmt.Errorf("insert league %s: %w", meta.ID, err)
	}
	return nil
}

// DeleteLeague removes a league and, via cascade, all of its objects.
func (s *Store) DeleteLeague(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leagues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete league %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrLeagueNotFound
	}
	s.log.Info().Str("league_id", id.String()).Msg("deleted league")
	return nil
}

// Leagues lists all registered leagues, newest first.
func (s *Store) Leagues(ctx context.Context) ([]LeagueMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, tid, phase_text, team_name, team_region, difficulty, created_at
		FROM leagues ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	defer rows.Close()

	var out []LeagueMeta
	for rows.Next() {
		var m LeagueMeta
		if err := rows.Scan(&m.ID, &m.Name, &m.TID, &m.PhaseText, &m.TeamName, &m.TeamRegion, &m.Difficulty, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan league: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// League returns one registry row.
func (s *Store) League(ctx context.Context, id uuid.UUID) (LeagueMeta, error) {
	var m LeagueMeta
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, tid, phase_text, team_name, team_region, difficulty, created_at
		FROM leagues WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.TID, &m.PhaseText, &m.TeamName, &m.TeamRegion, &m.Difficulty, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return LeagueMeta{}, ErrLeagueNotFound
	}
	if err != nil {
		return LeagueMeta{}, fmt.Errorf("get league %s: %w", id, err)
	}
	return m, nil
}

// UpdateLeagueMeta refreshes the registry's display fields after the user
// team or phase changes.
func (s *Store) UpdateLeagueMeta(ctx context.Context, id uuid.UUID, phaseText, teamName, teamRegion string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE leagues SET phase_text = $2, team_name = $3, team_region = $4 WHERE id = $1`,
		id, phaseText, teamName, teamRegion)
	if err != nil {
		return fmt.Errorf("update league meta %s: %w", id, err)
	}
	return nil
}

// LoadCollection reads every record of one collection for a league.
func (s *Store) LoadCollection(ctx context.Context, id uuid.UUID, collection string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, data FROM league_objects
		WHERE league_id = $1 AND collection = $2`, id, collection)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Key, &r.Data); err != nil {
			return nil, fmt.Errorf("scan %s record: %w", collection, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ApplyBatch applies one cache flush atomically. A failure rolls the whole
// batch back so a retry replays it from scratch; the durable store never sees
// a partial flush.
func (s *Store) ApplyBatch(ctx context.Context, id uuid.UUID, batch Batch) error {
	if batch.Empty() {
		return nil
	}
	start := time.Now()
	err := sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		upsert, err := tx.PrepareContext(ctx, `
			INSERT INTO league_objects (league_id, collection, key, data)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (league_id, collection, key) DO UPDATE SET data = EXCLUDED.data`)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer upsert.Close()

		for _, p := range batch.Puts {
			if _, err := upsert.ExecContext(ctx, id, p.Collection, p.Key, p.Data); err != nil {
				return fmt.Errorf("upsert %s/%s: %w", p.Collection, p.Key, err)
			}
		}
		for _, d := range batch.Deletes {
			if _, err := tx.ExecContext(ctx, `
				DELETE FROM league_objects
				WHERE league_id = $1 AND collection = $2 AND key = $3`,
				id, d.Collection, d.Key); err != nil {
				return fmt.Errorf("delete %s/%s: %w", d.Collection, d.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Debug().
		Str("league_id", id.String()).
		Int("puts", len(batch.Puts)).
		Int("deletes", len(batch.Deletes)).
		Dur("elapsed", time.Since(start)).
		Msg("applied flush batch")
	return nil
}

// MetaAttributeInt reads a process-wide integer attribute, returning 0 when
// unset.
func (s *Store) MetaAttributeInt(ctx context.Context, key string) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx,
		`SELECT value::int FROM meta_attributes WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read meta attribute %q: %w", key, err)
	}
	return v, nil
}

// SetMetaAttributeInt writes a process-wide integer attribute.
func (s *Store) SetMetaAttributeInt(ctx context.Context, key string, v int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meta_attributes (key, value) VALUES ($1, $2::text)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, v)
	if err != nil {
		return fmt.Errorf("write meta attribute %q: %w", key, err)
	}
	return nil
}

package league

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mcdev12/courtside/internal/cache"
	"github.com/mcdev12/courtside/internal/lock"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/random"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/store"
	"github.com/mcdev12/courtside/internal/team"
)

// Manager owns the durable side of league lifecycle: the registry, cache
// construction, and deletion. One worker process keeps at most one league
// open at a time; the gateway is responsible for closing the previous league
// before opening another.
type Manager struct {
	store *store.Store
	clock clockwork.Clock
	log   zerolog.Logger
}

// NewManager wires a Manager over the durable store.
func NewManager(st *store.Store, clock clockwork.Clock, log zerolog.Logger) *Manager {
	return &Manager{store: st, clock: clock, log: log}
}

// Create bootstraps a new league, registers it, and flushes the initial state
// in one batch. The returned league context is live but its auto-flusher is
// not started; the caller starts it under its own lifetime context.
func (m *Manager) Create(ctx context.Context, opts CreateOptions) (*state.League, error) {
	id := uuid.New()
	c := cache.New(id, m.store, m.clock, m.log)
	seed := m.clock.Now().UnixNano()
	ls := state.NewLeague(id, c, lock.NewRegistry(), random.NewSource(seed), m.log)
	ls.Meta = m.store

	c.Acquire()
	defer c.Release()

	if err := CreateWithoutSaving(ls, opts); err != nil {
		return nil, fmt.Errorf("bootstrap league: %w", err)
	}
	g := ls.G()

	// An imported file that pins the phase is resumed exactly as exported;
	// otherwise rosters get an initial sort.
	if !fileSetsPhase(opts.File) {
		for _, t := range ls.Cache.Teams.All() {
			team.RosterAutoSort(ls, t.TID)
		}
	}

	meta := store.LeagueMeta{
		ID:         id,
		Name:       opts.Name,
		TID:        g.UserTID,
		PhaseText:  fmt.Sprintf("%d %s", g.Season, g.Phase),
		TeamName:   g.TeamNamesCache[g.UserTID],
		TeamRegion: g.TeamRegionsCache[g.UserTID],
		Difficulty: g.Difficulty,
	}
	if err := m.store.CreateLeague(ctx, meta); err != nil {
		return nil, err
	}

	if err := c.Flush(ctx); err != nil {
		if derr := m.store.DeleteLeague(ctx, id); derr != nil {
			m.log.Error().Err(derr).Str("league_id", id.String()).Msg("cleanup after failed initial flush")
		}
		return nil, fmt.Errorf("initial flush: %w", err)
	}

	m.log.Info().
		Str("league_id", id.String()).
		Str("name", opts.Name).
		Int("user_tid", g.UserTID).
		Msg("created league")
	return ls, nil
}

// Open loads a registered league into a fresh cache.
func (m *Manager) Open(ctx context.Context, id uuid.UUID) (*state.League, error) {
	if _, err := m.store.League(ctx, id); err != nil {
		return nil, err
	}

	c := cache.New(id, m.store, m.clock, m.log)
	ls := state.NewLeague(id, c, lock.NewRegistry(), random.NewSource(m.clock.Now().UnixNano()), m.log)
	ls.Meta = m.store

	c.Acquire()
	defer c.Release()
	if err := c.Fill(ctx); err != nil {
		return nil, fmt.Errorf("open league %s: %w", id, err)
	}
	return ls, nil
}

// Delete removes a league and all its objects from the durable store. The
// caller must have closed the league first if it was open.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	return m.store.DeleteLeague(ctx, id)
}

// Leagues lists the registry, newest first.
func (m *Manager) Leagues(ctx context.Context) ([]store.LeagueMeta, error) {
	return m.store.Leagues(ctx)
}

// Close flushes and detaches an open league. Safe to call with a stopped
// auto-flusher.
func (m *Manager) Close(ctx context.Context, ls *state.League) error {
	ls.Cache.StopAutoFlush()
	ls.Cache.Acquire()
	defer ls.Cache.Release()
	if err := ls.Cache.Flush(ctx); err != nil {
		return fmt.Errorf("final flush: %w", err)
	}
	ls.Locks.Reset()
	return nil
}

// ParseLeagueFile decodes and sanity-checks an uploaded league file.
func ParseLeagueFile(data []byte) (*models.LeagueFile, error) {
	var file models.LeagueFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode league file: %w", err)
	}

	if file.HasTeams() && len(file.Teams) < 2 {
		return nil, fmt.Errorf("league file has %d teams, need at least 2", len(file.Teams))
	}
	if len(file.GameAttributes) > 0 {
		probe := models.DefaultGameAttributes()
		if err := json.Unmarshal(file.GameAttributes, probe); err != nil {
			return nil, fmt.Errorf("decode gameAttributes: %w", err)
		}
	}
	for i := range file.Players {
		p := &file.Players[i]
		if len(p.Ratings) == 0 {
			return nil, fmt.Errorf("player %d (%s) has no ratings", i, p.Name())
		}
	}
	return &file, nil
}

func fileSetsPhase(file *models.LeagueFile) bool {
	if file == nil || len(file.GameAttributes) == 0 {
		return false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(file.GameAttributes, &probe); err != nil {
		return false
	}
	_, ok := probe["phase"]
	return ok
}

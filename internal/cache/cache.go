// Package cache is the write-through persistence cache that mediates every
// read and write of league data during an active session. All entity state
// lives here between flushes; Flush is the only place memory becomes durable,
// and it applies the whole pending batch in one transaction.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/store"
)

// AutoFlushInterval is how often the background flusher runs while a league
// is open.
const AutoFlushInterval = 30 * time.Second

// Backend defines what the cache needs from the durable store.
type Backend interface {
	LoadCollection(ctx context.Context, id uuid.UUID, collection string) ([]store.Record, error)
	ApplyBatch(ctx context.Context, id uuid.UUID, batch store.Batch) error
}

type flushable interface {
	collection() string
	load(recs []store.Record) error
	collect(batch *store.Batch) error
	clearPending()
	pending() int
	reset()
}

// Cache holds one open league. Exactly one league is attached per worker
// process; switching leagues flushes and detaches the old cache first.
//
// Concurrency: the worker serializes commands, and each command wraps its
// whole mutation in Acquire/Release. The auto-flush goroutine takes the same
// lock, so a flush never observes a half-applied command.
type Cache struct {
	leagueID uuid.UUID
	backend  Backend
	clock    clockwork.Clock
	log      zerolog.Logger

	mu sync.Mutex

	Players             *Table[models.Player]
	Teams               *Table[models.Team]
	TeamSeasons         *Table[models.TeamSeason]
	TeamStats           *Table[models.TeamStats]
	DraftPicks          *Table[models.DraftPick]
	DraftLotteryResults *Table[models.DraftLotteryResult]
	Schedule            *Table[models.ScheduleGame]
	PlayoffSeries       *Table[models.PlayoffSeries]
	Trade               *Table[models.Trade]
	Negotiations        *Table[models.Negotiation]
	Messages            *Table[models.Message]
	Games               *Table[models.Game]
	Events              *Table[models.Event]
	ReleasedPlayers     *Table[models.ReleasedPlayer]
	Awards              *Table[models.Award]
	PlayerFeats         *Table[models.PlayerFeat]

	gameAttrs *models.GameAttributes
	gaDirty   bool

	tables []flushable

	autoflushCancel context.CancelFunc
	autoflushDone   chan struct{}
}

// New builds an empty cache attached to a league in the durable store.
func New(leagueID uuid.UUID, backend Backend, clock clockwork.Clock, log zerolog.Logger) *Cache {
	c := &Cache{
		leagueID: leagueID,
		backend:  backend,
		clock:    clock,
		log:      log.With().Str("league_id", leagueID.String()).Logger(),

		Players: NewTable("players",
			func(p *models.Player) int { return p.PID },
			func(p *models.Player, k int) { p.PID = k },
		).WithIndex(func(p *models.Player) int { return int(p.TID) }),
		Teams: NewTable("teams",
			func(t *models.Team) int { return t.TID }, nil),
		TeamSeasons: NewTable("teamSeasons",
			func(ts *models.TeamSeason) int { return ts.RID },
			func(ts *models.TeamSeason, k int) { ts.RID = k },
		).WithIndex(func(ts *models.TeamSeason) int { return ts.Season }),
		TeamStats: NewTable("teamStats",
			func(ts *models.TeamStats) int { return ts.RID },
			func(ts *models.TeamStats, k int) { ts.RID = k },
		).WithIndex(func(ts *models.TeamStats) int { return ts.Season }),
		DraftPicks: NewTable("draftPicks",
			func(dp *models.DraftPick) int { return dp.DPID },
			func(dp *models.DraftPick, k int) { dp.DPID = k }),
		DraftLotteryResults: NewTable("draftLotteryResults",
			func(r *models.DraftLotteryResult) int { return r.Season }, nil),
		Schedule: NewTable("schedule",
			func(g *models.ScheduleGame) int { return g.GID },
			func(g *models.ScheduleGame, k int) { g.GID = k }),
		PlayoffSeries: NewTable("playoffSeries",
			func(ps *models.PlayoffSeries) int { return ps.Season }, nil),
		Trade: NewTable("trade",
			func(t *models.Trade) int { return t.RID }, nil),
		Negotiations: NewTable("negotiations",
			func(n *models.Negotiation) int { return n.PID }, nil),
		Messages: NewTable("messages",
			func(m *models.Message) int { return m.MID },
			func(m *models.Message, k int) { m.MID = k }),
		Games: NewTable("games",
			func(g *models.Game) int { return g.GID },
			func(g *models.Game, k int) { g.GID = k }),
		Events: NewTable("events",
			func(e *models.Event) int { return e.EID },
			func(e *models.Event, k int) { e.EID = k }),
		ReleasedPlayers: NewTable("releasedPlayers",
			func(rp *models.ReleasedPlayer) int { return rp.RID },
			func(rp *models.ReleasedPlayer, k int) { rp.RID = k }),
		Awards: NewTable("awards",
			func(a *models.Award) int { return a.Season }, nil),
		PlayerFeats: NewTable("playerFeats",
			func(f *models.PlayerFeat) int { return f.FID },
			func(f *models.PlayerFeat, k int) { f.FID = k }),

		gameAttrs: models.DefaultGameAttributes(),
	}

	c.tables = []flushable{
		c.Players, c.Teams, c.TeamSeasons, c.TeamStats, c.DraftPicks,
		c.DraftLotteryResults, c.Schedule, c.PlayoffSeries, c.Trade,
		c.Negotiations, c.Messages, c.Games, c.Events, c.ReleasedPlayers,
		c.Awards, c.PlayerFeats,
	}
	return c
}

// LeagueID returns the attached league's ID.
func (c *Cache) LeagueID() uuid.UUID { return c.leagueID }

// Acquire takes the cache lock for the duration of one command.
func (c *Cache) Acquire() { c.mu.Lock() }

// Release drops the cache lock.
func (c *Cache) Release() { c.mu.Unlock() }

// GameAttributes returns the league's mutable configuration record. Callers
// that change it must follow with PutGameAttributes.
func (c *Cache) GameAttributes() *models.GameAttributes { return c.gameAttrs }

// PutGameAttributes marks the configuration record for the next flush.
func (c *Cache) PutGameAttributes(g *models.GameAttributes) {
	c.gameAttrs = g
	c.gaDirty = true
}

// PlayersByTeam returns all players whose tid equals the given slot, in
// primary-key order, straight from the in-memory index.
func (c *Cache) PlayersByTeam(slot models.RosterSlot) []*models.Player {
	return c.Players.ByIndex(int(slot))
}

// Fill loads the league's durable state into memory. The caller must hold
// the cache lock.
func (c *Cache) Fill(ctx context.Context) error {
	for _, t := range c.tables {
		recs, err := c.backend.LoadCollection(ctx, c.leagueID, t.collection())
		if err != nil {
			return fmt.Errorf("fill %s: %w", t.collection(), err)
		}
		if err := t.load(recs); err != nil {
			return fmt.Errorf("fill %s: %w", t.collection(), err)
		}
	}

	recs, err := c.backend.LoadCollection(ctx, c.leagueID, "gameAttributes")
	if err != nil {
		return fmt.Errorf("fill gameAttributes: %w", err)
	}
	// Unknown keys from older schemas fall back to defaults rather than
	// failing the load.
	ga := models.DefaultGameAttributes()
	if len(recs) > 0 {
		if err := json.Unmarshal(recs[0].Data, ga); err != nil {
			return fmt.Errorf("decode gameAttributes: %w", err)
		}
	}
	if len(ga.UserTIDs) == 0 {
		ga.UserTIDs = []int{ga.UserTID}
	}
	c.gameAttrs = ga
	c.gaDirty = false
	return nil
}

// Dirty reports whether any writes are pending.
func (c *Cache) Dirty() bool {
	if c.gaDirty {
		return true
	}
	for _, t := range c.tables {
		if t.pending() > 0 {
			return true
		}
	}
	return false
}

// Flush makes all pending writes durable in one transaction. On failure the
// pending sets are kept so the next flush retries the whole batch; the
// durable store is never left partially written. The caller must hold the
// cache lock.
func (c *Cache) Flush(ctx context.Context) error {
	var batch store.Batch
	for _, t := range c.tables {
		if err := t.collect(&batch); err != nil {
			return err
		}
	}
	if c.gaDirty {
		data, err := json.Marshal(c.gameAttrs)
		if err != nil {
			return fmt.Errorf("encode gameAttributes: %w", err)
		}
		batch.Puts = append(batch.Puts, store.Put{
			Collection: "gameAttributes",
			Key:        "0",
			Data:       data,
		})
	}
	if batch.Empty() {
		return nil
	}

	if err := c.backend.ApplyBatch(ctx, c.leagueID, batch); err != nil {
		return fmt.Errorf("flush league %s: %w", c.leagueID, err)
	}
	for _, t := range c.tables {
		t.clearPending()
	}
	c.gaDirty = false
	return nil
}

// StartAutoFlush begins periodic background flushes. Safe to call once per
// attached cache.
func (c *Cache) StartAutoFlush(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.autoflushCancel = cancel
	c.autoflushDone = make(chan struct{})

	go func() {
		defer close(c.autoflushDone)
		ticker := c.clock.NewTicker(AutoFlushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				c.Acquire()
				err := c.Flush(ctx)
				c.Release()
				if err != nil && ctx.Err() == nil {
					// Durable I/O failures are transient; the batch stays
					// pending and the next tick retries it.
					c.log.Error().Err(err).Msg("auto-flush failed; will retry")
				}
			}
		}
	}()
}

// StopAutoFlush stops the background flusher and waits for it to exit.
func (c *Cache) StopAutoFlush() {
	if c.autoflushCancel == nil {
		return
	}
	c.autoflushCancel()
	<-c.autoflushDone
	c.autoflushCancel = nil
	c.autoflushDone = nil
}

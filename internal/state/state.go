// Package state carries the per-league context threaded through every
// engine call: the open cache, the lock registry, the seeded RNG, and the
// logger. There is no ambient global league state; closing a league discards
// its context and attaching another builds a fresh one.
package state

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mcdev12/courtside/internal/cache"
	"github.com/mcdev12/courtside/internal/lock"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/random"
)

// MetaStore reads and writes process-wide attributes that outlive any single
// league, like how often the user has been nagged about feedback.
type MetaStore interface {
	MetaAttributeInt(ctx context.Context, key string) (int, error)
	SetMetaAttributeInt(ctx context.Context, key string, v int) error
}

// League is the context of the one open league in this worker process.
type League struct {
	ID    uuid.UUID
	Cache *cache.Cache
	Locks *lock.Registry
	Rand  *random.Source
	Log   zerolog.Logger

	// Meta is optional; a nil Meta disables the cross-league counters.
	Meta MetaStore

	// AutoPlaySeasons counts remaining auto-played seasons. While positive,
	// the auto-sign pass also acts for the user's teams.
	AutoPlaySeasons int
}

// NewLeague assembles a league context and wires the lock registry's
// negotiation probe to the cache.
func NewLeague(id uuid.UUID, c *cache.Cache, locks *lock.Registry, rng *random.Source, log zerolog.Logger) *League {
	ls := &League{
		ID:    id,
		Cache: c,
		Locks: locks,
		Rand:  rng,
		Log:   log.With().Str("league_id", id.String()).Logger(),
	}
	locks.SetNegotiationChecker(negotiationProbe{c})
	return ls
}

// G returns the league's mutable configuration record.
func (l *League) G() *models.GameAttributes { return l.Cache.GameAttributes() }

type negotiationProbe struct {
	c *cache.Cache
}

func (p negotiationProbe) AnyNonResigningNegotiation() bool {
	for _, n := range p.c.Negotiations.All() {
		if !n.Resigning {
			return true
		}
	}
	return false
}

// Package gateway is the worker's command surface: a JSON command registry
// over HTTP, league lifecycle routes, and a WebSocket push channel for
// update events. Commands run one at a time against the single open league.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mcdev12/courtside/internal/events"
	"github.com/mcdev12/courtside/internal/league"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/store"
)

// LeagueService is what the gateway needs from the league lifecycle layer.
// *league.Manager implements it.
type LeagueService interface {
	Create(ctx context.Context, opts league.CreateOptions) (*state.League, error)
	Open(ctx context.Context, id uuid.UUID) (*state.League, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Leagues(ctx context.Context) ([]store.LeagueMeta, error)
	Close(ctx context.Context, ls *state.League) error
}

// ErrNoLeagueOpen is returned when a command arrives with no league attached.
var ErrNoLeagueOpen = fmt.Errorf("no league open")

// Gateway serializes commands against the one open league and fans results
// out to WebSocket clients and the notifier.
type Gateway struct {
	leagues  LeagueService
	hub      *ConnectionManager
	notifier Notifier
	log      zerolog.Logger

	// lifetime outlives any single request; the auto-flusher of an opened
	// league runs under it.
	lifetime context.Context

	mu   sync.Mutex
	open *state.League
}

// New assembles a gateway. Call Start before serving requests.
func New(leagues LeagueService, notifier Notifier, log zerolog.Logger) *Gateway {
	return &Gateway{
		leagues:  leagues,
		hub:      NewConnectionManager(DefaultConnectionConfig(), log),
		notifier: notifier,
		log:      log,
		lifetime: context.Background(),
	}
}

// Start launches the WebSocket hub and pins the lifetime context used for
// background flushers of opened leagues.
func (gw *Gateway) Start(ctx context.Context) {
	gw.lifetime = ctx
	go gw.hub.Run(ctx)
}

// Shutdown closes the open league, if any, flushing its final state.
func (gw *Gateway) Shutdown(ctx context.Context) error {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	return gw.closeOpenLocked(ctx)
}

// OpenLeague returns the currently attached league, or nil.
func (gw *Gateway) OpenLeague() *state.League {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	return gw.open
}

// attachLocked makes ls the open league and starts its background flusher.
// The caller holds gw.mu and has already closed the previous league.
func (gw *Gateway) attachLocked(ls *state.League) {
	ls.Cache.StartAutoFlush(gw.lifetime)
	gw.open = ls
}

func (gw *Gateway) closeOpenLocked(ctx context.Context) error {
	if gw.open == nil {
		return nil
	}
	if err := gw.leagues.Close(ctx, gw.open); err != nil {
		return err
	}
	gw.open = nil
	return nil
}

// RunCommand executes one named command against the open league. The whole
// mutation runs under the cache lock; update events are pushed to WebSocket
// clients and the notifier after the command succeeds.
func (gw *Gateway) RunCommand(ctx context.Context, name string, args json.RawMessage) (any, error) {
	handler, ok := commands[name]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", name)
	}

	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.open == nil {
		return nil, ErrNoLeagueOpen
	}
	ls := gw.open

	ls.Cache.Acquire()
	result, updates, err := handler(ctx, ls, args)
	ls.Cache.Release()
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		gw.publish(ls.ID, updates)
	}
	return result, nil
}

func (gw *Gateway) publish(leagueID uuid.UUID, updates []events.UpdateEvent) {
	gw.hub.BroadcastUpdates(leagueID, updates)
	if err := gw.notifier.PublishUpdates(leagueID, updates); err != nil {
		gw.log.Error().Err(err).Str("league_id", leagueID.String()).Msg("publish update events")
	}
}

package main

import (
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/mcdev12/courtside/internal/gateway"
	"github.com/mcdev12/courtside/internal/league"
	"github.com/mcdev12/courtside/internal/store"
)

// Services holds the worker's wired components.
type Services struct {
	Store   *store.Store
	Manager *league.Manager
	Gateway *gateway.Gateway

	nats *nats.Conn
}

// setupServices wires the dependency chain: database, object store, league
// manager, notifier, gateway. NATS is optional; without a URL the notifier
// is a no-op.
func setupServices(database *sql.DB, config *Config, log zerolog.Logger) (*Services, error) {
	st := store.New(database, log)
	manager := league.NewManager(st, clockwork.NewRealClock(), log)

	var notifier gateway.Notifier = gateway.NoopNotifier{}
	var nc *nats.Conn
	if url := getEnv("NATS_URL", config.NATS.URL); url != "" {
		var err error
		nc, err = nats.Connect(url, nats.Name("courtside-worker"))
		if err != nil {
			return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
		}
		notifier = gateway.NewNATSNotifier(nc, config.NATS.Subject)
		log.Info().Str("url", url).Msg("connected to NATS")
	}

	gw := gateway.New(manager, notifier, log)

	return &Services{
		Store:   st,
		Manager: manager,
		Gateway: gw,
		nats:    nc,
	}, nil
}

// Close drains outbound notifications.
func (s *Services) Close() {
	if s.nats != nil {
		s.nats.Drain()
	}
}

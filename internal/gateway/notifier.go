package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/mcdev12/courtside/internal/events"
)

// Notifier publishes update-event notifications for consumers outside the
// worker process.
type Notifier interface {
	PublishUpdates(leagueID uuid.UUID, evs []events.UpdateEvent) error
}

// updateNotification is the published payload.
type updateNotification struct {
	LeagueID string               `json:"leagueId"`
	Events   []events.UpdateEvent `json:"updateEvents"`
	At       time.Time            `json:"at"`
}

// NATSNotifier publishes update events to a per-league NATS subject.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
}

// NewNATSNotifier wires a notifier over an open NATS connection. subject is
// the prefix; the league ID is appended as the final token.
func NewNATSNotifier(conn *nats.Conn, subject string) *NATSNotifier {
	return &NATSNotifier{conn: conn, subject: subject}
}

func (n *NATSNotifier) PublishUpdates(leagueID uuid.UUID, evs []events.UpdateEvent) error {
	data, err := json.Marshal(updateNotification{
		LeagueID: leagueID.String(),
		Events:   evs,
		At:       time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode update notification: %w", err)
	}
	subj := fmt.Sprintf("%s.%s", n.subject, leagueID)
	if err := n.conn.Publish(subj, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subj, err)
	}
	return nil
}

// NoopNotifier drops all notifications. Used when NATS is not configured.
type NoopNotifier struct{}

func (NoopNotifier) PublishUpdates(uuid.UUID, []events.UpdateEvent) error { return nil }

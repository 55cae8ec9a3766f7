package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mcdev12/courtside/internal/events"
)

// ConnectionConfig holds WebSocket tuning knobs.
type ConnectionConfig struct {
	// WriteWait is the time allowed to write a message to the peer.
	WriteWait time.Duration
	// PongWait is the time allowed to read the next pong from the peer.
	PongWait time.Duration
	// PingPeriod is how often pings are sent. Must be less than PongWait.
	PingPeriod time.Duration
	// MaxMessageSize is the maximum inbound message size in bytes.
	MaxMessageSize int64

	ReadBufferSize  int
	WriteBufferSize int

	CheckOrigin func(r *http.Request) bool
}

// DefaultConnectionConfig returns production defaults.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteWait:       10 * time.Second,
		PongWait:        60 * time.Second,
		PingPeriod:      54 * time.Second,
		MaxMessageSize:  512,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
}

// updateFrame is the JSON message pushed to UI clients after a command
// changes league state.
type updateFrame struct {
	Type     string               `json:"type"`
	LeagueID string               `json:"leagueId"`
	Events   []events.UpdateEvent `json:"updateEvents"`
}

// Connection is one WebSocket client subscribed to a league's updates.
type Connection struct {
	ID       uuid.UUID
	LeagueID uuid.UUID
	ws       *websocket.Conn
	send     chan []byte
	manager  *ConnectionManager
}

type broadcastMessage struct {
	leagueID uuid.UUID
	data     []byte
}

// ConnectionManager tracks WebSocket clients per league and fans update
// frames out to them. Clients that cannot keep up are dropped rather than
// allowed to block the broadcast loop.
type ConnectionManager struct {
	config   ConnectionConfig
	upgrader websocket.Upgrader
	log      zerolog.Logger

	mu          sync.RWMutex
	connections map[uuid.UUID]map[*Connection]bool

	register    chan *Connection
	unregister  chan *Connection
	broadcastCh chan broadcastMessage
}

// NewConnectionManager builds a manager with the given config.
func NewConnectionManager(config ConnectionConfig, log zerolog.Logger) *ConnectionManager {
	return &ConnectionManager{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		log:         log,
		connections: make(map[uuid.UUID]map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcastCh: make(chan broadcastMessage, 1000),
	}
}

// Run processes register, unregister, and broadcast requests until the
// context is canceled, then closes every connection.
func (cm *ConnectionManager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			cm.closeAll()
			return

		case conn := <-cm.register:
			cm.mu.Lock()
			if cm.connections[conn.LeagueID] == nil {
				cm.connections[conn.LeagueID] = make(map[*Connection]bool)
			}
			cm.connections[conn.LeagueID][conn] = true
			cm.mu.Unlock()
			cm.log.Debug().
				Str("conn_id", conn.ID.String()).
				Str("league_id", conn.LeagueID.String()).
				Msg("websocket client connected")

		case conn := <-cm.unregister:
			cm.removeConnection(conn)

		case msg := <-cm.broadcastCh:
			cm.mu.RLock()
			conns := cm.connections[msg.leagueID]
			var slow []*Connection
			for conn := range conns {
				select {
				case conn.send <- msg.data:
				default:
					slow = append(slow, conn)
				}
			}
			cm.mu.RUnlock()
			for _, conn := range slow {
				cm.log.Warn().
					Str("conn_id", conn.ID.String()).
					Msg("dropping slow websocket client")
				cm.removeConnection(conn)
			}
		}
	}
}

// BroadcastUpdates pushes an update-event frame to every client watching the
// league. Non-blocking; frames are dropped if the broadcast queue is full.
func (cm *ConnectionManager) BroadcastUpdates(leagueID uuid.UUID, evs []events.UpdateEvent) {
	data, err := json.Marshal(updateFrame{
		Type:     "updateEvents",
		LeagueID: leagueID.String(),
		Events:   evs,
	})
	if err != nil {
		cm.log.Error().Err(err).Msg("encode update frame")
		return
	}
	select {
	case cm.broadcastCh <- broadcastMessage{leagueID: leagueID, data: data}:
	default:
		cm.log.Warn().Str("league_id", leagueID.String()).Msg("broadcast queue full, dropping frame")
	}
}

// HandleWebSocket upgrades an HTTP request into a league-scoped connection.
func (cm *ConnectionManager) HandleWebSocket(w http.ResponseWriter, r *http.Request, leagueID uuid.UUID) {
	ws, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		cm.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := &Connection{
		ID:       uuid.New(),
		LeagueID: leagueID,
		ws:       ws,
		send:     make(chan []byte, 256),
		manager:  cm,
	}
	cm.register <- conn

	go conn.writePump()
	go conn.readPump()
}

func (cm *ConnectionManager) removeConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	conns := cm.connections[conn.LeagueID]
	if conns == nil || !conns[conn] {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(cm.connections, conn.LeagueID)
	}
	close(conn.send)
}

func (cm *ConnectionManager) closeAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	for leagueID, conns := range cm.connections {
		for conn := range conns {
			close(conn.send)
		}
		delete(cm.connections, leagueID)
	}
}

// writePump drains the send channel to the peer and keeps the connection
// alive with pings. One writePump per connection; the WebSocket write side
// is never touched elsewhere.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.manager.config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(c.manager.config.WriteWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(c.manager.config.WriteWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages and watches for pongs and closure.
// Commands arrive over HTTP, not the WebSocket; the socket is push-only.
func (c *Connection) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.ws.Close()
	}()

	c.ws.SetReadLimit(c.manager.config.MaxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(c.manager.config.PongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(c.manager.config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.manager.log.Debug().Err(err).Str("conn_id", c.ID.String()).Msg("websocket read error")
			}
			return
		}
	}
}

// Package ws pushes draft snapshots to websocket clients. Clients subscribe to one league's
// draft for one game and receive the full draft state after every change.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/KirkDiggler/lightthelamp/internal/services/draft"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MessageType identifies a websocket message
type MessageType string

// MsgSnapshot is sent once when a client connects. Every later message carries the draft
// event type that produced it.
const MsgSnapshot MessageType = "snapshot"

// DefaultSendBuffer is how many messages a client may fall behind before it is dropped
const DefaultSendBuffer = 16

// Message is the websocket envelope
type Message struct {
	Type    MessageType        `json:"type"`
	EventID string             `json:"event_id,omitempty"`
	State   *models.DraftState `json:"state"`
}

// StateLoader derives a draft's current state
type StateLoader interface {
	GetDraftState(ctx context.Context, input *draft.GetDraftStateInput) (*draft.GetDraftStateOutput, error)
}

// Connection is one subscribed client
type Connection struct {
	LeagueID string
	GameID   string
	Send     chan []byte

	// picks in the last state sent; owned by the hub's dispatch loop
	picks int
}

// NewConnection creates a connection subscribed to a league's draft for a game
func NewConnection(leagueID, gameID string, buffer int) *Connection {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Connection{
		LeagueID: leagueID,
		GameID:   gameID,
		Send:     make(chan []byte, buffer),
	}
}

func (c *Connection) key() string {
	return draftKey(c.LeagueID, c.GameID)
}

func draftKey(leagueID, gameID string) string {
	return fmt.Sprintf("%d:%s:%s", len(leagueID), leagueID, gameID)
}

type broadcastMessage struct {
	key   string
	data  []byte
	picks int
}

type directMessage struct {
	conn  *Connection
	data  []byte
	picks int
}

// HubConfig holds configuration for the hub
type HubConfig struct {
	// Loader is used for events that carry no state, such as membership changes. Optional;
	// see SetLoader.
	Loader StateLoader
}

// Hub tracks subscribed connections per draft and fans draft events out to them. It
// implements events.Publisher.
type Hub struct {
	// draft key -> connections
	conns  map[string]map[*Connection]struct{}
	loader StateLoader
	mu     sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *broadcastMessage
	direct     chan *directMessage

	done      chan struct{}
	closeOnce sync.Once
	logger    zerolog.Logger
}

// NewHub creates a hub and starts its dispatch loop
func NewHub(cfg *HubConfig) *Hub {
	if cfg == nil {
		cfg = &HubConfig{}
	}

	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		loader:     cfg.Loader,
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *broadcastMessage, 256),
		direct:     make(chan *directMessage),
		done:       make(chan struct{}),
		logger:     log.With().Str("component", "ws_hub").Logger(),
	}
	go h.run()
	return h
}

// SetLoader sets the state loader. It must be called before the hub receives events.
func (h *Hub) SetLoader(loader StateLoader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loader = loader
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			key := conn.key()
			if h.conns[key] == nil {
				h.conns[key] = make(map[*Connection]struct{})
			}
			h.conns[key][conn] = struct{}{}
			h.mu.Unlock()

			h.logger.Debug().
				Str("league_id", conn.LeagueID).
				Str("game_id", conn.GameID).
				Msg("Client subscribed")

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.conns[msg.key] {
				h.deliver(conn, msg.data, msg.picks)
			}
			h.mu.Unlock()

		case msg := <-h.direct:
			h.mu.Lock()
			if _, ok := h.conns[msg.conn.key()][msg.conn]; ok {
				h.deliver(msg.conn, msg.data, msg.picks)
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.conns {
				for conn := range conns {
					h.remove(conn)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// deliver queues data for conn unless the client already has a state with more picks. Picks
// are append-only, so a state with fewer picks is stale. Slow clients are dropped. Must be
// called with mu held.
func (h *Hub) deliver(conn *Connection, data []byte, picks int) {
	if picks < conn.picks {
		return
	}

	select {
	case conn.Send <- data:
		conn.picks = picks
	default:
		h.logger.Warn().
			Str("league_id", conn.LeagueID).
			Str("game_id", conn.GameID).
			Msg("Dropping slow client")
		h.remove(conn)
	}
}

// remove must be called with mu held
func (h *Hub) remove(conn *Connection) {
	key := conn.key()
	conns, ok := h.conns[key]
	if !ok {
		return
	}
	if _, ok := conns[conn]; !ok {
		return
	}

	delete(conns, conn)
	close(conn.Send)
	if len(conns) == 0 {
		delete(h.conns, key)
	}
}

// Register subscribes a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection and closes its send channel
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Snapshot sends state to one registered connection. Events delivered since the connection
// registered are not overwritten by an older snapshot.
func (h *Hub) Snapshot(ctx context.Context, conn *Connection, state *models.DraftState) error {
	data, err := json.Marshal(&Message{
		Type:  MsgSnapshot,
		State: state,
	})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	select {
	case h.direct <- &directMessage{conn: conn, data: data, picks: len(state.Picks)}:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribers returns how many clients follow a league's draft for a game
func (h *Hub) Subscribers(leagueID, gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[draftKey(leagueID, gameID)])
}

// Close disconnects every client and stops the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// Publish pushes the state after an event to the draft's subscribers. Membership events
// affect every game of the league, so each subscribed game's state is reloaded.
func (h *Hub) Publish(ctx context.Context, event *models.DraftEvent) error {
	if event.GameID != "" {
		state := event.State
		if state == nil {
			var err error
			if state, err = h.load(ctx, event.LeagueID, event.GameID); err != nil {
				return err
			}
		}
		return h.send(ctx, event, state)
	}

	for _, gameID := range h.subscribedGames(event.LeagueID) {
		state, err := h.load(ctx, event.LeagueID, gameID)
		if err != nil {
			return err
		}
		if err := h.send(ctx, event, state); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hub) subscribedGames(leagueID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var games []string
	seen := make(map[string]bool)
	for _, conns := range h.conns {
		for conn := range conns {
			if conn.LeagueID == leagueID && !seen[conn.GameID] {
				seen[conn.GameID] = true
				games = append(games, conn.GameID)
			}
			break
		}
	}
	return games
}

func (h *Hub) load(ctx context.Context, leagueID, gameID string) (*models.DraftState, error) {
	h.mu.RLock()
	loader := h.loader
	h.mu.RUnlock()

	if loader == nil {
		return nil, ErrNoLoader
	}

	output, err := loader.GetDraftState(ctx, &draft.GetDraftStateInput{
		LeagueID: leagueID,
		GameID:   gameID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load draft state: %w", err)
	}
	return output.State, nil
}

func (h *Hub) send(ctx context.Context, event *models.DraftEvent, state *models.DraftState) error {
	data, err := json.Marshal(&Message{
		Type:    MessageType(event.Type),
		EventID: event.ID,
		State:   state,
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}

	select {
	case h.broadcast <- &broadcastMessage{key: draftKey(state.LeagueID, state.GameID), data: data, picks: len(state.Picks)}:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

package ws

import (
	"net/http"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/services/draft"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandlerConfig holds configuration for the websocket handler
type HandlerConfig struct {
	Hub    *Hub
	Loader StateLoader

	// SendBuffer defaults to DefaultSendBuffer
	SendBuffer int
}

// Handler upgrades draft subscriptions to websockets
type Handler struct {
	hub        *Hub
	loader     StateLoader
	sendBuffer int
	logger     zerolog.Logger
}

// NewHandler creates a new websocket handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Hub == nil {
		return nil, ErrNilHub
	}
	if cfg.Loader == nil {
		return nil, ErrNilLoader
	}

	return &Handler{
		hub:        cfg.Hub,
		loader:     cfg.Loader,
		sendBuffer: cfg.SendBuffer,
		logger:     log.With().Str("component", "ws_handler").Logger(),
	}, nil
}

// ServeDraft handles GET /v1/leagues/{leagueID}/games/{gameID}/ws
func (h *Handler) ServeDraft(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	gameID := chi.URLParam(r, "gameID")

	// Subscribe before loading so no event between the load and the subscription is missed
	conn := NewConnection(leagueID, gameID, h.sendBuffer)
	h.hub.Register(conn)

	output, err := h.loader.GetDraftState(r.Context(), &draft.GetDraftStateInput{
		LeagueID: leagueID,
		GameID:   gameID,
	})
	if err != nil {
		h.hub.Unregister(conn)
		h.logger.Error().Err(err).Str("league_id", leagueID).Str("game_id", gameID).Msg("Failed to load draft state")
		http.Error(w, "draft state unavailable", http.StatusServiceUnavailable)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.hub.Unregister(conn)
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	if err := h.hub.Snapshot(r.Context(), conn, output.State); err != nil {
		h.logger.Warn().Err(err).Str("league_id", leagueID).Str("game_id", gameID).Msg("Failed to queue snapshot")
	}

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

// readPump only services control frames; clients never send draft commands here
func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := wsConn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug().Err(err).Str("league_id", conn.LeagueID).Msg("WebSocket closed")
			}
			return
		}
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

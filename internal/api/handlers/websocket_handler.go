package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	ws "github.com/mgavilanes/campline-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles upgrading HTTP connections to WebSocket
// connections for the live announcement and stats feeds.
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request. It supports both
// the global feed (/ws) and per-department feeds
// (/ws/departments/{id}).
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	departmentID := chi.URLParam(r, "id")
	client := ws.NewClient(h.hub, conn, departmentID)
	h.hub.Register <- client

	go client.WritePump()
	go func() {
		// The feeds are push-only; unknown inbound actions get an
		// error notice back.
		client.ReadPump(func(c *ws.Client, message []byte) {
			log.Warn().Bytes("message", message).Msg("Unexpected websocket message received")
			c.Send <- ws.NewErrorMessage("this feed does not accept messages")
		})
		h.hub.Unregister <- client
	}()
}

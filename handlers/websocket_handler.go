package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/team-manager/feed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin уже проверил CORS, а сам токен передаётся в ?token=
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub *feed.Hub
}

func NewWebSocketHandler(hub *feed.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs godoc
// @Summary Лента событий команды
// @Tags feed
// @Description WebSocket: новые тренировки, матчи, счёт, заявки. Токен передаётся в параметре token.
// @Param token query string true "JWT"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string "unauthorized"
// @Router /ws [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой
		slog.Warn("failed to upgrade feed connection", slog.Int("user_id", session.UserID), slog.Any("error", err))
		return
	}

	client := feed.NewClient(h.hub, conn, session.UserID)
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/tournament-manager/notify"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin проверяет CORS-слой, здесь разрешаем все.
	CheckOrigin: func(r *http.Request) bool { return true },
}

var knownRooms = map[string]bool{
	notify.RoomAll:      true,
	notify.RoomTeams:    true,
	notify.RoomGroups:   true,
	notify.RoomLeague:   true,
	notify.RoomKnockout: true,
	notify.RoomHistory:  true,
}

type WebSocketHandler struct {
	hub    *notify.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *notify.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeWs godoc
// @Summary Подписка на изменения турнира
// @Description Сервер шлет события STATE_UPDATED и CHAMPION_DECIDED. Комнаты: all, teams, groups, league, knockout, history.
// @Tags realtime
// @Param room query string false "Комната, по умолчанию all"
// @Success 101
// @Failure 400 {object} map[string]string "Неизвестная комната"
// @Router /ws [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("room")
	if room == "" {
		room = notify.RoomAll
	}
	if !knownRooms[room] {
		errorResponse(w, r, http.StatusBadRequest, "unknown room")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой.
		h.logger.Warn("websocket upgrade failed", "room", room, "error", err)
		return
	}

	client := notify.NewClient(h.hub, conn, room)
	if !h.hub.Subscribe(client) {
		h.logger.Info("websocket hub stopped, rejecting client", "room", room)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

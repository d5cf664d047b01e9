package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minefield/internal/game"
)

// ConnectWS speaks the line protocol of game.ParseCommand over a websocket.
// Every text frame may carry several newline separated commands which are
// applied together; the session is sent back after each frame.
func (h *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	gameSessionId, err := parseSessionId(r)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	if _, err := h.store.FetchGameSession(r.Context(), gameSessionId); err != nil {
		sendError(w, h.logger, err)
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	logger := h.logger.With(slog.Int64("game_session_id", gameSessionId))

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		reply, err := h.runLines(r, gameSessionId, string(message))
		if err != nil {
			if statusFor(err) == http.StatusInternalServerError {
				logger.Error("unable to process command", slog.Any("error", err))
				return
			}
			reply = wrapError(err)
		}
		if err := c.WriteJSON(reply); err != nil {
			logger.Error("unable to write json", slog.Any("error", err))
			return
		}
	}
}

// runLines parses the whole frame before touching the session, so a bad
// line rejects the frame and nothing is saved.
func (h *GameHandler) runLines(r *http.Request, gameSessionId int64, text string) (any, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cmds := make([]game.Command, 0, len(lines))
	for _, line := range lines {
		cmd, err := game.ParseCommand(line)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	g, err := h.apply(r.Context(), gameSessionId, cmds...)
	if err != nil {
		return nil, err
	}
	return NewGameSessionDTO(gameSessionId, g), nil
}

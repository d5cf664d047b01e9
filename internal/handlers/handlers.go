package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/repository"
)

var (
	ErrBadRequest    = errors.New("bad request")
	ErrUsernameTaken = errors.New("username taken")
	ErrUnauthorized  = errors.New("invalid username or password")
	ErrForbidden     = errors.New("game session belongs to another player")
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	return SendJSONStatus(w, http.StatusOK, v)
}

// SendJSONStatus writes v with the given status. Content-Type is set before
// the header is flushed.
func SendJSONStatus(w http.ResponseWriter, status int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	sendJSONStatusOrLog(w, logger, http.StatusOK, v)
}

func sendJSONStatusOrLog(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	_, err := SendJSONStatus(w, status, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, config.ErrBoardTooLarge),
		errors.Is(err, game.ErrUnknownCommand),
		errors.Is(err, game.ErrBadArguments),
		mines.IsValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// sendError replies with the status matching err. Internal errors are
// logged and their text is not sent to the client.
func sendError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", slog.Any("error", err))
		w.WriteHeader(status)
		return
	}
	sendJSONStatusOrLog(w, logger, status, wrapError(err))
}

func parseSessionId(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, errors.Join(ErrBadRequest, err)
	}
	return id, nil
}

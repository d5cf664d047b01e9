package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vancomm/minefield/internal/repository"
)

type HighscoreStore interface {
	GetHighscores(ctx context.Context, filter repository.HighscoreFilter) ([]repository.Highscore, error)
}

type Highscores struct {
	logger *slog.Logger
	store  HighscoreStore
}

func NewHighscores(logger *slog.Logger, store HighscoreStore) *Highscores {
	return &Highscores{logger: logger, store: store}
}

func (h *Highscores) List(w http.ResponseWriter, r *http.Request) {
	var dto HighscoresDTO
	if err := decode(&dto, r.URL.Query()); err != nil {
		sendError(w, h.logger, err)
		return
	}
	filter, err := dto.Filter()
	if err != nil {
		sendError(w, h.logger, err)
		return
	}

	highscores, err := h.store.GetHighscores(r.Context(), filter)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	if highscores == nil {
		highscores = []repository.Highscore{}
	}
	sendJSONOrLog(w, h.logger, highscores)
}

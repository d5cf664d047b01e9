package handlers

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"slices"
	"sync"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/repository"
)

const sessionLockStripes = 64

type GameStore interface {
	CreateGameSession(ctx context.Context, g *game.Game, playerId *int64) (*repository.GameSession, error)
	FetchGameSession(ctx context.Context, gameSessionId int64) (*repository.GameSession, error)
	UpdateGameSession(ctx context.Context, gameSessionId int64, g *game.Game) (*repository.GameSession, error)
}

type GameHandler struct {
	logger *slog.Logger
	store  GameStore
	limits *config.Game
	ws     *config.WebSocket

	rndMu sync.Mutex
	rnd   *rand.Rand

	// moves on one session are serialized; sessions share a stripe by id
	locks [sessionLockStripes]sync.Mutex
}

func NewGameHandler(
	logger *slog.Logger,
	store GameStore,
	limits *config.Game,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		logger: logger,
		store:  store,
		limits: limits,
		ws:     ws,
		rnd:    limits.Rand(),
	}

	return handler
}

func (h *GameHandler) lock(gameSessionId int64) func() {
	mu := &h.locks[uint64(gameSessionId)%sessionLockStripes]
	mu.Lock()
	return mu.Unlock
}

func (h *GameHandler) execute(g *game.Game, cmd game.Command) error {
	h.rndMu.Lock()
	defer h.rndMu.Unlock()
	return g.Execute(cmd, h.rnd)
}

// authorize rejects changes to a session owned by a player other than the
// one making the request. Anonymous sessions are open to anyone.
func authorize(ctx context.Context, session *repository.GameSession) error {
	if session.PlayerId == nil {
		return nil
	}
	claims, ok := middleware.PlayerClaims(ctx)
	if !ok || claims.PlayerId != *session.PlayerId {
		return ErrForbidden
	}
	return nil
}

// apply runs cmds in order against the stored session and persists the
// outcome once. If any command fails nothing is saved.
func (h *GameHandler) apply(
	ctx context.Context, gameSessionId int64, cmds ...game.Command,
) (*game.Game, error) {
	defer h.lock(gameSessionId)()

	session, err := h.store.FetchGameSession(ctx, gameSessionId)
	if err != nil {
		return nil, err
	}
	g, err := session.Game()
	if err != nil {
		return nil, err
	}
	cmds = slices.DeleteFunc(cmds, func(cmd game.Command) bool {
		return cmd.Kind == game.Noop
	})
	if len(cmds) == 0 {
		return g, nil
	}
	if err := authorize(ctx, session); err != nil {
		return nil, err
	}

	before := g.Status
	for _, cmd := range cmds {
		if err := h.execute(g, cmd); err != nil {
			return nil, err
		}
	}
	if _, err := h.store.UpdateGameSession(ctx, gameSessionId, g); err != nil {
		return nil, err
	}
	if g.Status != before {
		h.logger.Info(
			"game status changed",
			slog.Int64("game_session_id", gameSessionId),
			slog.String("from", before.String()),
			slog.String("to", g.Status.String()),
		)
	}
	return g, nil
}

func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	params, err := dto.Params()
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	if err := h.limits.Admit(params); err != nil {
		sendError(w, h.logger, err)
		return
	}

	g, err := game.New(params)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}

	var playerId *int64
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		playerId = &claims.PlayerId
	}

	session, err := h.store.CreateGameSession(r.Context(), g, playerId)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}

	h.logger.Debug(
		"created game session",
		slog.Int64("game_session_id", session.GameSessionId),
		slog.String("seed", params.Seed()),
		slog.Bool("anonymous", playerId == nil),
	)
	sendJSONStatusOrLog(w, h.logger, http.StatusCreated, NewGameSessionDTO(session.GameSessionId, g))
}

func (h *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	h.handleCommand(w, r, func() (game.Command, error) {
		return game.Command{Kind: game.Noop}, nil
	})
}

func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	h.handleCommand(w, r, func() (game.Command, error) {
		dto, err := ParseMoveDTO(r.URL.Query())
		if err != nil {
			return game.Command{}, err
		}
		return dto.Command()
	})
}

func (h *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	h.handleCommand(w, r, func() (game.Command, error) {
		return game.Command{Kind: game.Forfeit}, nil
	})
}

func (h *GameHandler) handleCommand(
	w http.ResponseWriter, r *http.Request, parse func() (game.Command, error),
) {
	gameSessionId, err := parseSessionId(r)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	cmd, err := parse()
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	g, err := h.apply(r.Context(), gameSessionId, cmd)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSONOrLog(w, h.logger, NewGameSessionDTO(gameSessionId, g))
}

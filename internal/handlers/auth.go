package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/repository"
)

// bcrypt ignores anything past 72 bytes
const maxPasswordBytes = 72

type PlayerStore interface {
	CreatePlayer(ctx context.Context, params repository.CreatePlayerParams) (*repository.Player, error)
	FetchPlayer(ctx context.Context, username string) (*repository.Player, error)
}

type Auth struct {
	logger  *slog.Logger
	store   PlayerStore
	cookies *config.Cookies
	cost    int
}

func NewAuth(logger *slog.Logger, store PlayerStore, cookies *config.Cookies) *Auth {
	auth := &Auth{
		logger:  logger,
		store:   store,
		cookies: cookies,
		cost:    bcrypt.DefaultCost,
	}

	return auth
}

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func (a *Auth) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		a.cookies.Clear(w)
		sendJSONOrLog(w, a.logger, Status{LoggedIn: false})
		return
	}
	if err := a.cookies.Refresh(w, claims); err != nil {
		sendError(w, a.logger, err)
		return
	}
	sendJSONOrLog(w, a.logger, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerId, claims.Username},
	})
}

type credentials struct {
	Username string `schema:"username,required"`
	Password string `schema:"password,required"`
}

func parseCredentials(r *http.Request) (credentials, error) {
	var creds credentials
	if err := r.ParseForm(); err != nil {
		return creds, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if err := decode(&creds, r.PostForm); err != nil {
		return creds, err
	}
	if creds.Username == "" || creds.Password == "" {
		return creds, fmt.Errorf("%w: username and password must not be empty", ErrBadRequest)
	}
	if len(creds.Password) > maxPasswordBytes {
		return creds, fmt.Errorf("%w: password too long", ErrBadRequest)
	}
	return creds, nil
}

func (a *Auth) login(w http.ResponseWriter, player *repository.Player) {
	claims := config.NewPlayerClaims(player.PlayerId, player.Username)
	if err := a.cookies.Refresh(w, claims); err != nil {
		sendError(w, a.logger, err)
		return
	}
	sendJSONOrLog(w, a.logger, PlayerInfo{player.PlayerId, player.Username})
}

func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	creds, err := parseCredentials(r)
	if err != nil {
		sendError(w, a.logger, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), a.cost)
	if err != nil {
		sendError(w, a.logger, fmt.Errorf("unable to hash password: %w", err))
		return
	}

	player, err := a.store.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     creds.Username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendError(w, a.logger, ErrUsernameTaken)
		return
	}
	if err != nil {
		sendError(w, a.logger, fmt.Errorf("unable to insert player: %w", err))
		return
	}

	a.logger.Info("player registered", slog.Int64("player_id", player.PlayerId))
	a.login(w, player)
}

func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	creds, err := parseCredentials(r)
	if err != nil {
		sendError(w, a.logger, err)
		return
	}

	player, err := a.store.FetchPlayer(r.Context(), creds.Username)
	if errors.Is(err, repository.ErrNotFound) {
		sendError(w, a.logger, ErrUnauthorized)
		return
	}
	if err != nil {
		sendError(w, a.logger, err)
		return
	}

	err = bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(creds.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		sendError(w, a.logger, ErrUnauthorized)
		return
	}
	if err != nil {
		sendError(w, a.logger, fmt.Errorf("bcrypt compare: %w", err))
		return
	}

	a.login(w, player)
}

func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

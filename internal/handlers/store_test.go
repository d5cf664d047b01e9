package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/repository"
)

type memoryStore struct {
	mu         sync.Mutex
	nextId     int64
	updates    int
	sessions   map[int64]repository.GameSession
	players    map[string]repository.Player
	highscores []repository.Highscore
	filters    []repository.HighscoreFilter
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions: map[int64]repository.GameSession{},
		players:  map[string]repository.Player{},
	}
}

func (s *memoryStore) put(id int64, g *game.Game, playerId *int64) (*repository.GameSession, error) {
	state, err := g.Bytes()
	if err != nil {
		return nil, err
	}
	session := repository.GameSession{
		GameSessionId: id,
		PlayerId:      playerId,
		Width:         g.Params.Width,
		Height:        g.Params.Height,
		MineCount:     g.Params.MineCount,
		Status:        int16(g.Status),
		State:         state,
		UpdatedAt:     time.Now(),
	}
	s.sessions[id] = session
	return &session, nil
}

func (s *memoryStore) CreateGameSession(
	ctx context.Context, g *game.Game, playerId *int64,
) (*repository.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	return s.put(s.nextId, g, playerId)
}

func (s *memoryStore) FetchGameSession(
	ctx context.Context, gameSessionId int64,
) (*repository.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[gameSessionId]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &session, nil
}

func (s *memoryStore) UpdateGameSession(
	ctx context.Context, gameSessionId int64, g *game.Game,
) (*repository.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[gameSessionId]
	if !ok {
		return nil, repository.ErrNotFound
	}
	s.updates++
	return s.put(gameSessionId, g, session.PlayerId)
}

func (s *memoryStore) CreatePlayer(
	ctx context.Context, params repository.CreatePlayerParams,
) (*repository.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[params.Username]; ok {
		return nil, &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	s.nextId++
	player := repository.Player{
		PlayerId:     s.nextId,
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
	}
	s.players[params.Username] = player
	return &player, nil
}

func (s *memoryStore) FetchPlayer(ctx context.Context, username string) (*repository.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &player, nil
}

func (s *memoryStore) GetHighscores(
	ctx context.Context, filter repository.HighscoreFilter,
) ([]repository.Highscore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = append(s.filters, filter)
	return s.highscores, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minefield/internal/game"
)

type GameSession struct {
	GameSessionId int64      `db:"game_session_id"`
	PlayerId      *int64     `db:"player_id"`
	Width         int        `db:"width"`
	Height        int        `db:"height"`
	MineCount     int        `db:"mine_count"`
	Status        int16      `db:"status"`
	State         []byte     `db:"state"`
	StartedAt     *time.Time `db:"started_at"`
	EndedAt       *time.Time `db:"ended_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Game decodes the stored game state.
func (s GameSession) Game() (*game.Game, error) {
	g, err := game.Decode(s.State)
	if err != nil {
		return nil, fmt.Errorf("session %d holds invalid state: %w", s.GameSessionId, err)
	}
	return g, nil
}

func gameArgs(g *game.Game) (pgx.NamedArgs, error) {
	state, err := g.Bytes()
	if err != nil {
		return nil, fmt.Errorf("unable to encode game state: %w", err)
	}
	args := pgx.NamedArgs{
		"width":      g.Params.Width,
		"height":     g.Params.Height,
		"mine_count": g.Params.MineCount,
		"status":     int16(g.Status),
		"state":      state,
		"started_at": nullTime(g.StartedAt),
		"ended_at":   nullTime(g.EndedAt),
	}
	return args, nil
}

func (q *Queries) CreateGameSession(
	ctx context.Context, g *game.Game, playerId *int64,
) (*GameSession, error) {
	args, err := gameArgs(g)
	if err != nil {
		return nil, err
	}
	args["player_id"] = playerId

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, width, height, mine_count, status, state, started_at, ended_at
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @status, @state, @started_at, @ended_at
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q *Queries) FetchGameSession(ctx context.Context, gameSessionId int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	session, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
	return session, notFound(err)
}

func (q *Queries) UpdateGameSession(
	ctx context.Context, gameSessionId int64, g *game.Game,
) (*GameSession, error) {
	args, err := gameArgs(g)
	if err != nil {
		return nil, err
	}
	args["game_session_id"] = gameSessionId

	rows, _ := q.db.Query(
		ctx,
		`UPDATE game_session SET
			status = @status,
			state = @state,
			started_at = @started_at,
			ended_at = @ended_at,
			updated_at = now()
		WHERE game_session_id = @game_session_id
		RETURNING *;`,
		args,
	)
	session, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
	return session, notFound(err)
}

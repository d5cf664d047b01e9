package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/repository"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func decode(dst any, src map[string][]string) error {
	if err := decoder.Decode(dst, src); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

type NewGameDTO struct {
	Width      *int   `schema:"width"`
	Height     *int   `schema:"height"`
	MineCount  *int   `schema:"mine_count"`
	Difficulty string `schema:"difficulty"`
}

// Params resolves a named difficulty, the explicit dimensions, or the easy
// preset when the request names neither.
func (d NewGameDTO) Params() (mines.GameParams, error) {
	if d.Difficulty != "" {
		difficulty, err := mines.ParseDifficulty(d.Difficulty)
		if err != nil {
			return mines.GameParams{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		return difficulty.Params(), nil
	}
	return explicitParams(d.Width, d.Height, d.MineCount, mines.Easy.Params())
}

// explicitParams builds params from all three dimensions, or returns
// fallback when none is given.
func explicitParams(width, height, mineCount *int, fallback mines.GameParams) (mines.GameParams, error) {
	if width == nil && height == nil && mineCount == nil {
		return fallback, nil
	}
	if width == nil || height == nil || mineCount == nil {
		return mines.GameParams{}, fmt.Errorf(
			"%w: width, height and mine_count go together", ErrBadRequest,
		)
	}
	return mines.GameParams{Width: *width, Height: *height, MineCount: *mineCount}, nil
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decode(&dto, src)
	return dto, err
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	X    int    `schema:"x,required"`
	Y    int    `schema:"y,required"`
}

func (d MoveDTO) Command() (game.Command, error) {
	cmd := game.Command{X: d.X, Y: d.Y}
	switch strings.ToLower(d.Move) {
	case "open":
		cmd.Kind = game.Open
	case "flag":
		cmd.Kind = game.Flag
	default:
		return game.Command{}, fmt.Errorf("%w %q", game.ErrUnknownCommand, d.Move)
	}
	return cmd, nil
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	err := decode(&dto, src)
	return dto, err
}

type HighscoresDTO struct {
	Username  string `schema:"username"`
	Seed      string `schema:"seed"`
	Width     *int   `schema:"width"`
	Height    *int   `schema:"height"`
	MineCount *int   `schema:"mine_count"`
	Limit     int    `schema:"limit"`
}

// Filter narrows highscores to a player and to one board setup, given
// either as a seed or as width, height and mine_count.
func (d HighscoresDTO) Filter() (repository.HighscoreFilter, error) {
	filter := repository.HighscoreFilter{Limit: d.Limit}
	if d.Username != "" {
		filter.Username = &d.Username
	}
	if d.Seed != "" {
		params, err := mines.ParseSeed(d.Seed)
		if err != nil {
			return filter, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		filter.GameParams = params
		return filter, nil
	}
	params, err := explicitParams(d.Width, d.Height, d.MineCount, mines.GameParams{})
	if err != nil {
		return filter, err
	}
	if params != (mines.GameParams{}) {
		filter.GameParams = &params
	}
	return filter, nil
}

type GameSessionDTO struct {
	GameSessionId string `json:"game_session_id"`
	Seed          string `json:"seed"`
	game.Snapshot
	StartedAt *int64 `json:"started_at,omitempty"`
	EndedAt   *int64 `json:"ended_at,omitempty"`
}

func unixMilli(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func NewGameSessionDTO(gameSessionId int64, g *game.Game) GameSessionDTO {
	return GameSessionDTO{
		GameSessionId: strconv.FormatInt(gameSessionId, 10),
		Seed:          g.Params.Seed(),
		Snapshot:      g.Snapshot(),
		StartedAt:     unixMilli(g.StartedAt),
		EndedAt:       unixMilli(g.EndedAt),
	}
}

// Package game drives a single minefield session through its lifecycle:
// mines are placed lazily on the first reveal, and once the game is won or
// lost no further moves are accepted.
package game

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/vancomm/minefield/internal/mines"
)

var ErrGameOver = errors.New("game is over")

// now is replaced in tests.
var now = time.Now

type Status int8

const (
	NotStarted Status = iota
	Ongoing
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Status) Over() bool {
	return s == Won || s == Lost
}

type Game struct {
	Params    mines.GameParams
	Board     *mines.Board
	Status    Status
	StartedAt time.Time
	EndedAt   time.Time
}

// New creates a game with an empty board. Mines are placed on the first
// reveal so that the first opened cell and its neighbours are always safe.
func New(params mines.GameParams) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	board, err := mines.CreateBoard(params.Width, params.Height)
	if err != nil {
		return nil, err
	}
	g := &Game{
		Params: params,
		Board:  board,
		Status: NotStarted,
	}
	return g, nil
}

func (g *Game) Reveal(x, y int, r *rand.Rand) error {
	if g.Status.Over() {
		return ErrGameOver
	}

	cell, err := g.Board.Cell(x, y)
	if err != nil {
		return err
	}
	if cell.IsFlagged || cell.IsRevealed {
		return nil
	}

	board := g.Board
	if !board.Populated() {
		board, err = mines.PlaceMines(board, g.Params.MineCount, x, y, r)
		if err != nil {
			return err
		}
	}
	board, err = mines.RevealCell(board, x, y)
	if err != nil {
		return err
	}

	g.Board = board
	if g.Status == NotStarted {
		g.Status = Ongoing
		g.StartedAt = now().UTC()
	}

	// loss takes precedence over win
	switch {
	case mines.CheckLoss(g.Board):
		g.end(Lost)
	case mines.CheckWin(g.Board):
		g.end(Won)
	}

	return nil
}

func (g *Game) ToggleFlag(x, y int) error {
	if g.Status.Over() {
		return ErrGameOver
	}
	board, err := mines.ToggleFlag(g.Board, x, y)
	if err != nil {
		return err
	}
	g.Board = board
	return nil
}

// Forfeit ends a running game as lost. Finished games are left untouched.
func (g *Game) Forfeit() {
	if !g.Status.Over() {
		g.end(Lost)
	}
}

func (g *Game) end(status Status) {
	g.Status = status
	g.EndedAt = now().UTC()
}

func (g *Game) FlagsPlaced() int {
	return g.Board.FlagCount()
}

// MinesRemaining is the mine count minus placed flags; it goes negative
// when the player over-flags.
func (g *Game) MinesRemaining() int {
	return g.Params.MineCount - g.FlagsPlaced()
}

// Elapsed is the play time up to at, or up to the end of a finished game.
func (g *Game) Elapsed(at time.Time) time.Duration {
	if g.StartedAt.IsZero() {
		return 0
	}
	if !g.EndedAt.IsZero() {
		at = g.EndedAt
	}
	return at.Sub(g.StartedAt)
}

func Decode(buf []byte) (*Game, error) {
	var g Game
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&g); err != nil {
		return nil, err
	}
	if g.Board == nil {
		return nil, errors.New("decoded game has no board")
	}
	return &g, nil
}

func (g Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

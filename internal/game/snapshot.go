package game

import "github.com/vancomm/minefield/internal/mines"

// Snapshot is everything a presentation layer needs to draw a game.
type Snapshot struct {
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	MineCount      int        `json:"mine_count"`
	Status         Status     `json:"status"`
	Grid           mines.Grid `json:"grid"`
	FlagsPlaced    int        `json:"flags_placed"`
	MinesRemaining int        `json:"mines_remaining"`
	ElapsedMs      int64      `json:"elapsed_ms"`
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Width:          g.Params.Width,
		Height:         g.Params.Height,
		MineCount:      g.Params.MineCount,
		Status:         g.Status,
		Grid:           g.Board.PlayerGrid(g.Status.Over()),
		FlagsPlaced:    g.FlagsPlaced(),
		MinesRemaining: g.MinesRemaining(),
		ElapsedMs:      g.Elapsed(now()).Milliseconds(),
	}
}

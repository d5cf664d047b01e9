package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellStatus is what a player is allowed to know about a cell.
type CellStatus int8

const (
	Unknown       CellStatus = -2
	Flag          CellStatus = -1
	CorrectFlag   CellStatus = 64 // post-game-over
	ExplodedMine  CellStatus = 65
	WrongFlag     CellStatus = 66
	UnflaggedMine CellStatus = 67
	// 0-8 for an open cell with given number of mined neighbors
)

func (s CellStatus) String() string {
	switch s {
	case Unknown:
		return "-"
	case Flag, CorrectFlag:
		return "F"
	case ExplodedMine:
		return "X"
	case WrongFlag:
		return "x"
	case UnflaggedMine:
		return "*"
	case 0:
		return "."
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellStatus

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// PlayerGrid hides everything the player has not uncovered. Once the game
// is over, mines and flags are exposed.
func (b *Board) PlayerGrid(gameOver bool) Grid {
	grid := make(Grid, len(b.cells))
	for i, c := range b.cells {
		switch {
		case c.IsRevealed && c.IsMine:
			grid[i] = ExplodedMine
		case c.IsRevealed:
			grid[i] = CellStatus(c.AdjacentMines)
		case c.IsFlagged && gameOver && c.IsMine:
			grid[i] = CorrectFlag
		case c.IsFlagged && gameOver:
			grid[i] = WrongFlag
		case c.IsFlagged:
			grid[i] = Flag
		case gameOver && c.IsMine:
			grid[i] = UnflaggedMine
		default:
			grid[i] = Unknown
		}
	}
	return grid
}

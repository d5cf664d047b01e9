package mines

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
)

var Log *slog.Logger = slog.Default()

// Cell is a single square of the field.
type Cell struct {
	IsMine        bool `json:"is_mine"`
	IsRevealed    bool `json:"is_revealed"`
	IsFlagged     bool `json:"is_flagged"`
	AdjacentMines int  `json:"adjacent_mines"`
}

type Point struct {
	X, Y int
}

// Board owns every cell of a width x height field. Cells are stored row by
// row; the cell at (x, y) lives at index y*width+x.
//
// Operations on a Board never modify it in place: RevealCell, ToggleFlag and
// PlaceMines return a new Board and leave their argument untouched.
type Board struct {
	width, height int
	cells         []Cell
	populated     bool
}

// CreateBoard allocates an empty, unpopulated board.
func CreateBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, InvalidDimensionsError{width, height}
	}
	b := &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	return b, nil
}

// NewBoardWithMines builds a populated board with mines at exactly the given
// positions.
func NewBoardWithMines(width, height int, mines []Point) (*Board, error) {
	b, err := CreateBoard(width, height)
	if err != nil {
		return nil, err
	}
	for _, p := range mines {
		if err := b.checkBounds(p.X, p.Y); err != nil {
			return nil, err
		}
		cell := &b.cells[b.index(p.X, p.Y)]
		if cell.IsMine {
			return nil, fmt.Errorf("%w at (%d, %d)", ErrDuplicateMine, p.X, p.Y)
		}
		cell.IsMine = true
	}
	b.populate()
	return b, nil
}

func (b *Board) Width() int      { return b.width }
func (b *Board) Height() int     { return b.height }
func (b *Board) Populated() bool { return b.populated }

func (b *Board) MineCount() int     { return b.countCells(isMine) }
func (b *Board) FlagCount() int     { return b.countCells(isFlagged) }
func (b *Board) RevealedCount() int { return b.countCells(isRevealed) }

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.width && 0 <= y && y < b.height
}

// Cell returns a copy of the cell at (x, y).
func (b *Board) Cell(x, y int) (Cell, error) {
	if err := b.checkBounds(x, y); err != nil {
		return Cell{}, err
	}
	return b.cells[b.index(x, y)], nil
}

// Rows returns a copy of the grid as height rows of width cells.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.height)
	for y := range b.height {
		rows[y] = slices.Clone(b.cells[y*b.width : (y+1)*b.width])
	}
	return rows
}

func (b *Board) index(x, y int) int {
	return y*b.width + x
}

func (b *Board) checkBounds(x, y int) error {
	if !b.InBounds(x, y) {
		return OutOfBoundsError{X: x, Y: y, Width: b.width, Height: b.height}
	}
	return nil
}

func (b *Board) clone() *Board {
	c := *b
	c.cells = slices.Clone(b.cells)
	return &c
}

// neighbors yields the in-bounds cells at Chebyshev distance 1 of (x, y).
func (b *Board) neighbors(x, y int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				xx, yy := x+dx, y+dy
				if (dx == 0 && dy == 0) || !b.InBounds(xx, yy) {
					continue
				}
				if !yield(Point{xx, yy}) {
					return
				}
			}
		}
	}
}

// populate computes adjacency counts and seals the board against further
// mine placement.
func (b *Board) populate() {
	for y := range b.height {
		for x := range b.width {
			n := 0
			for p := range b.neighbors(x, y) {
				if b.cells[b.index(p.X, p.Y)].IsMine {
					n++
				}
			}
			b.cells[b.index(x, y)].AdjacentMines = n
		}
	}
	b.populated = true
}

func (b *Board) countCells(pred func(Cell) bool) (n int) {
	for _, c := range b.cells {
		if pred(c) {
			n++
		}
	}
	return
}

func isMine(c Cell) bool     { return c.IsMine }
func isFlagged(c Cell) bool  { return c.IsFlagged }
func isRevealed(c Cell) bool { return c.IsRevealed }

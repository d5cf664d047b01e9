package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func revealed(b *Board) map[Point]bool {
	m := make(map[Point]bool)
	for y, row := range b.Rows() {
		for x, c := range row {
			if c.IsRevealed {
				m[Point{x, y}] = true
			}
		}
	}
	return m
}

func TestRevealNumberedCellDoesNotCascade(t *testing.T) {
	b := diagonalBoard(t)

	b, err := RevealCell(b, 1, 1)
	require.NoError(t, err)

	c, err := b.Cell(1, 1)
	require.NoError(t, err)
	assert.True(t, c.IsRevealed)
	assert.Equal(t, 2, c.AdjacentMines)
	assert.Equal(t, map[Point]bool{{1, 1}: true}, revealed(b))
	assert.False(t, CheckLoss(b))
	assert.False(t, CheckWin(b))
}

func TestRevealZeroCellOpensRegionAndBorder(t *testing.T) {
	b := diagonalBoard(t)

	b, err := RevealCell(b, 2, 0)
	require.NoError(t, err)

	want := map[Point]bool{{2, 0}: true, {1, 0}: true, {1, 1}: true, {2, 1}: true}
	assert.Equal(t, want, revealed(b))
}

func TestRevealStopsAtMineWall(t *testing.T) {
	wall := make([]Point, 0, 5)
	for y := range 5 {
		wall = append(wall, Point{2, y})
	}
	b, err := NewBoardWithMines(5, 5, wall)
	require.NoError(t, err)

	b, err = RevealCell(b, 0, 0)
	require.NoError(t, err)

	got := revealed(b)
	assert.Len(t, got, 10)
	for p := range got {
		assert.Less(t, p.X, 2, "revealed beyond the wall: %v", p)
	}
	assert.False(t, CheckLoss(b))
	assert.False(t, CheckWin(b))
}

func TestRevealEmptyBoardWins(t *testing.T) {
	tests := []struct {
		name       string
		w, h, x, y int
	}{
		{"1x1", 1, 1, 0, 0},
		{"5x5 center", 5, 5, 2, 2},
		{"7x3 corner", 7, 3, 6, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := NewBoardWithMines(test.w, test.h, nil)
			require.NoError(t, err)
			assert.False(t, CheckWin(b))

			b, err = RevealCell(b, test.x, test.y)
			require.NoError(t, err)

			assert.Equal(t, test.w*test.h, b.RevealedCount())
			assert.True(t, CheckWin(b))
			assert.False(t, CheckLoss(b))
		})
	}
}

func TestRevealLargeBoard(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	b, err := NewBoardWithMines(500, 500, []Point{{499, 499}})
	require.NoError(t, err)

	b, err = RevealCell(b, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 500*500-1, b.RevealedCount())
	assert.True(t, CheckWin(b))
}

func TestRevealMineLoses(t *testing.T) {
	b := diagonalBoard(t)

	b, err := RevealCell(b, 2, 2)
	require.NoError(t, err)

	assert.True(t, CheckLoss(b))
	assert.False(t, CheckWin(b))
}

func TestRevealFlaggedIsNoop(t *testing.T) {
	b := diagonalBoard(t)
	b, err := ToggleFlag(b, 1, 1)
	require.NoError(t, err)

	after, err := RevealCell(b, 1, 1)
	require.NoError(t, err)
	assert.Same(t, b, after)
	assert.Empty(t, revealed(after))

	// unflag, then reveal
	b, err = ToggleFlag(b, 1, 1)
	require.NoError(t, err)
	b, err = RevealCell(b, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, map[Point]bool{{1, 1}: true}, revealed(b))
}

func TestCascadeSkipsFlaggedCells(t *testing.T) {
	b, err := NewBoardWithMines(5, 5, nil)
	require.NoError(t, err)
	b, err = ToggleFlag(b, 4, 4)
	require.NoError(t, err)

	b, err = RevealCell(b, 0, 0)
	require.NoError(t, err)

	c, err := b.Cell(4, 4)
	require.NoError(t, err)
	assert.False(t, c.IsRevealed)
	assert.True(t, c.IsFlagged)
	assert.Equal(t, 24, b.RevealedCount())
	assert.False(t, CheckWin(b))
}

func TestRevealIsIdempotent(t *testing.T) {
	b := diagonalBoard(t)

	once, err := RevealCell(b, 0, 2)
	require.NoError(t, err)
	twice, err := RevealCell(once, 0, 2)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, once.Rows(), twice.Rows())
}

func TestRevealDoesNotMutateInput(t *testing.T) {
	b := diagonalBoard(t)
	before := b.Rows()

	_, err := RevealCell(b, 0, 2)
	require.NoError(t, err)
	_, err = ToggleFlag(b, 2, 0)
	require.NoError(t, err)

	assert.Equal(t, before, b.Rows())
}

func TestRevealErrors(t *testing.T) {
	empty, err := CreateBoard(3, 3)
	require.NoError(t, err)

	_, err = RevealCell(empty, 1, 1)
	assert.ErrorIs(t, err, ErrNotPopulated)

	var oob OutOfBoundsError
	_, err = RevealCell(diagonalBoard(t), -1, 1)
	assert.ErrorAs(t, err, &oob)
	_, err = ToggleFlag(diagonalBoard(t), 1, 3)
	assert.ErrorAs(t, err, &oob)
}

func TestToggleFlagOnRevealedIsNoop(t *testing.T) {
	b := diagonalBoard(t)
	b, err := RevealCell(b, 1, 1)
	require.NoError(t, err)

	after, err := ToggleFlag(b, 1, 1)
	require.NoError(t, err)
	assert.Same(t, b, after)

	c, err := after.Cell(1, 1)
	require.NoError(t, err)
	assert.False(t, c.IsFlagged)
}

func TestPlayerGrid(t *testing.T) {
	b := diagonalBoard(t)
	b, err := ToggleFlag(b, 0, 0)
	require.NoError(t, err)
	b, err = ToggleFlag(b, 1, 0)
	require.NoError(t, err)
	b, err = RevealCell(b, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, Grid{
		Flag, Flag, Unknown,
		Unknown, 2, Unknown,
		Unknown, Unknown, Unknown,
	}, b.PlayerGrid(false))

	// the mine has no mined neighbours, so its border opens too
	b, err = RevealCell(b, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, Grid{
		CorrectFlag, WrongFlag, Unknown,
		Unknown, 2, 1,
		Unknown, 1, ExplodedMine,
	}, b.PlayerGrid(true))

	assert.Equal(t, "F x - \n- 2 1 \n- 1 X \n", b.PlayerGrid(true).ToString(3))
}

package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/mines"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func freezeTime(t *testing.T, at time.Time) *time.Time {
	t.Helper()
	current := at
	prev := now
	now = func() time.Time { return current }
	t.Cleanup(func() { now = prev })
	return &current
}

// ongoing game over a hand-built 3x3 board with mines at (0,0) and (2,2)
func diagonalGame(t *testing.T) *Game {
	t.Helper()
	board, err := mines.NewBoardWithMines(3, 3, []mines.Point{{X: 0, Y: 0}, {X: 2, Y: 2}})
	require.NoError(t, err)
	return &Game{
		Params:    mines.GameParams{Width: 3, Height: 3, MineCount: 2},
		Board:     board,
		Status:    Ongoing,
		StartedAt: now().UTC(),
	}
}

func TestNewGame(t *testing.T) {
	g, err := New(mines.Easy.Params())
	require.NoError(t, err)

	assert.Equal(t, NotStarted, g.Status)
	assert.False(t, g.Board.Populated())
	assert.Equal(t, 10, g.MinesRemaining())
	assert.Zero(t, g.Elapsed(time.Now()))

	_, err = New(mines.GameParams{Width: 3, Height: 3, MineCount: 1})
	assert.True(t, mines.IsValidationError(err))
}

func TestFirstRevealIsSafe(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	freezeTime(t, start)

	r := newRand()
	params := mines.Hard.Params()
	for sx := range params.Width {
		for sy := range params.Height {
			g, err := New(params)
			require.NoError(t, err)

			require.NoError(t, g.Reveal(sx, sy, r))

			assert.True(t, g.Board.Populated())
			assert.Equal(t, params.MineCount, g.Board.MineCount())
			assert.NotEqual(t, Lost, g.Status)
			assert.Equal(t, start, g.StartedAt)

			c, err := g.Board.Cell(sx, sy)
			require.NoError(t, err)
			assert.True(t, c.IsRevealed)
			assert.Zero(t, c.AdjacentMines, "first click always opens a region")
		}
	}
}

func TestSingleCellGameWinsImmediately(t *testing.T) {
	g, err := New(mines.GameParams{Width: 1, Height: 1, MineCount: 0})
	require.NoError(t, err)

	require.NoError(t, g.Reveal(0, 0, newRand()))

	assert.Equal(t, Won, g.Status)
	assert.False(t, g.EndedAt.IsZero())
}

func TestEmptyBoardCascadesToWin(t *testing.T) {
	g, err := New(mines.GameParams{Width: 5, Height: 5, MineCount: 0})
	require.NoError(t, err)

	require.NoError(t, g.Reveal(2, 2, newRand()))

	assert.Equal(t, Won, g.Status)
	assert.Equal(t, 25, g.Board.RevealedCount())
}

func TestRevealMineLoses(t *testing.T) {
	clock := freezeTime(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	g := diagonalGame(t)

	*clock = clock.Add(90 * time.Second)
	require.NoError(t, g.Reveal(0, 0, newRand()))

	assert.Equal(t, Lost, g.Status)
	assert.Equal(t, 90*time.Second, g.Elapsed(clock.Add(time.Hour)))

	assert.ErrorIs(t, g.Reveal(2, 0, newRand()), ErrGameOver)
	assert.ErrorIs(t, g.ToggleFlag(2, 0), ErrGameOver)

	c, err := g.Board.Cell(2, 0)
	require.NoError(t, err)
	assert.False(t, c.IsRevealed)
}

func TestWinByRevealingEverySafeCell(t *testing.T) {
	g := diagonalGame(t)
	r := newRand()

	safe := []mines.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 2}}
	for i, p := range safe {
		require.NoError(t, g.Reveal(p.X, p.Y, r))
		if i < len(safe)-1 && g.Status == Won {
			t.Fatalf("won too early after %v", p)
		}
	}
	assert.Equal(t, Won, g.Status)
	assert.ErrorIs(t, g.ToggleFlag(0, 0), ErrGameOver)
}

func TestFlagBeforeFirstReveal(t *testing.T) {
	g, err := New(mines.Easy.Params())
	require.NoError(t, err)

	require.NoError(t, g.ToggleFlag(4, 4))
	assert.Equal(t, NotStarted, g.Status)
	assert.Equal(t, 1, g.FlagsPlaced())
	assert.Equal(t, 9, g.MinesRemaining())

	// opening a flagged cell does nothing, not even start the game
	require.NoError(t, g.Reveal(4, 4, newRand()))
	assert.Equal(t, NotStarted, g.Status)
	assert.False(t, g.Board.Populated())

	require.NoError(t, g.ToggleFlag(4, 4))
	require.NoError(t, g.Reveal(4, 4, newRand()))
	assert.Contains(t, []Status{Ongoing, Won}, g.Status)
}

func TestMinesRemainingGoesNegative(t *testing.T) {
	g := diagonalGame(t)
	for _, p := range []mines.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}} {
		require.NoError(t, g.ToggleFlag(p.X, p.Y))
	}
	assert.Equal(t, 3, g.FlagsPlaced())
	assert.Equal(t, -1, g.MinesRemaining())
}

func TestRevealOutOfBounds(t *testing.T) {
	g, err := New(mines.Easy.Params())
	require.NoError(t, err)

	err = g.Reveal(10, 0, newRand())
	var oob mines.OutOfBoundsError
	assert.ErrorAs(t, err, &oob)
	assert.Equal(t, NotStarted, g.Status)
	assert.False(t, g.Board.Populated())
}

func TestForfeit(t *testing.T) {
	g := diagonalGame(t)
	g.Forfeit()
	assert.Equal(t, Lost, g.Status)
	ended := g.EndedAt

	g.Forfeit()
	assert.Equal(t, ended, g.EndedAt)

	snap := g.Snapshot()
	assert.Equal(t, mines.UnflaggedMine, snap.Grid[0])
	assert.Equal(t, mines.UnflaggedMine, snap.Grid[8])
}

func TestSnapshotHidesMinesWhilePlaying(t *testing.T) {
	g := diagonalGame(t)
	require.NoError(t, g.Reveal(1, 1, newRand()))

	snap := g.Snapshot()
	assert.Equal(t, Ongoing, snap.Status)
	assert.Equal(t, mines.Grid{
		mines.Unknown, mines.Unknown, mines.Unknown,
		mines.Unknown, 2, mines.Unknown,
		mines.Unknown, mines.Unknown, mines.Unknown,
	}, snap.Grid)
	assert.Equal(t, 2, snap.MinesRemaining)
}

func TestEncodeDecodeGame(t *testing.T) {
	g := diagonalGame(t)
	require.NoError(t, g.Reveal(2, 0, newRand()))
	require.NoError(t, g.ToggleFlag(0, 0))

	buf, err := g.Bytes()
	require.NoError(t, err)

	decoded, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, g.Params, decoded.Params)
	assert.Equal(t, g.Status, decoded.Status)
	assert.True(t, g.StartedAt.Equal(decoded.StartedAt))
	assert.Equal(t, g.Board.Rows(), decoded.Board.Rows())

	_, err = Decode([]byte("garbage"))
	assert.Error(t, err)
}

func TestStatusText(t *testing.T) {
	b, err := Won.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "won", string(b))
	assert.Equal(t, "not started", NotStarted.String())
	assert.True(t, Lost.Over())
	assert.False(t, Ongoing.Over())
}

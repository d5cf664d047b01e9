package mines

import (
	"log/slog"
	"math/rand/v2"
)

func absDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

// PlaceMines scatters mineCount mines over the board, none of which is at
// (safeX, safeY) or within one square of it, and computes adjacency counts.
// Mines are drawn uniformly at random from r. mineCount may equal the number
// of eligible cells, in which case every one of them holds a mine.
func PlaceMines(
	board *Board, mineCount, safeX, safeY int, r *rand.Rand,
) (*Board, error) {
	if board.populated {
		return nil, ErrAlreadyPopulated
	}
	if err := board.checkBounds(safeX, safeY); err != nil {
		return nil, err
	}

	candidates := make([]int, 0, len(board.cells))
	for y := range board.height {
		for x := range board.width {
			if absDiff(safeX, x) > 1 || absDiff(safeY, y) > 1 {
				candidates = append(candidates, board.index(x, y))
			}
		}
	}

	if mineCount < 0 || mineCount > len(candidates) {
		return nil, OverPopulationError{
			MineCount: mineCount, Available: len(candidates),
		}
	}

	b := board.clone()

	// pick without replacement: swap the chosen candidate out of the window
	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		b.cells[candidates[i]].IsMine = true
		k--
		candidates[i] = candidates[k]
	}

	b.populate()

	Log.Debug(
		"placed mines",
		slog.Int("width", b.width),
		slog.Int("height", b.height),
		slog.Int("mineCount", mineCount),
		slog.Int("safeX", safeX),
		slog.Int("safeY", safeY),
	)

	return b, nil
}

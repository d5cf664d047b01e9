package mines

// RevealCell opens the cell at (x, y). Revealed and flagged cells are left
// alone and the board is returned as is. When the opened cell has no
// adjacent mines, the reveal spreads over the connected zero region and its
// numbered border.
//
// Revealing a mine is allowed; use CheckLoss to detect it.
func RevealCell(board *Board, x, y int) (*Board, error) {
	if err := board.checkBounds(x, y); err != nil {
		return nil, err
	}
	if !board.populated {
		return nil, ErrNotPopulated
	}
	if c := board.cells[board.index(x, y)]; c.IsRevealed || c.IsFlagged {
		return board, nil
	}

	b := board.clone()

	// A cell is marked revealed as soon as it is queued, so the revealed
	// flag doubles as the visited set and nothing is queued twice.
	b.cells[b.index(x, y)].IsRevealed = true
	todo := []Point{{x, y}}
	for len(todo) > 0 {
		p := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		if b.cells[b.index(p.X, p.Y)].AdjacentMines != 0 {
			continue
		}
		for n := range b.neighbors(p.X, p.Y) {
			nc := &b.cells[b.index(n.X, n.Y)]
			if nc.IsRevealed || nc.IsFlagged {
				continue
			}
			nc.IsRevealed = true
			todo = append(todo, n)
		}
	}

	return b, nil
}

// ToggleFlag flips the flag on a hidden cell. Revealed cells cannot be
// flagged; the board is returned unchanged.
func ToggleFlag(board *Board, x, y int) (*Board, error) {
	if err := board.checkBounds(x, y); err != nil {
		return nil, err
	}
	i := board.index(x, y)
	if board.cells[i].IsRevealed {
		return board, nil
	}
	b := board.clone()
	b.cells[i].IsFlagged = !b.cells[i].IsFlagged
	return b, nil
}

// CheckLoss reports whether a mine has been revealed.
func CheckLoss(board *Board) bool {
	for _, c := range board.cells {
		if c.IsRevealed && c.IsMine {
			return true
		}
	}
	return false
}

// CheckWin reports whether every non-mine cell has been revealed.
func CheckWin(board *Board) bool {
	for _, c := range board.cells {
		if !c.IsRevealed && !c.IsMine {
			return false
		}
	}
	return true
}

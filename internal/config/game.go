package config

import (
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"

	"github.com/vancomm/minefield/internal/mines"
)

const defaultMaxSide = 64

var ErrBoardTooLarge = errors.New("board too large")

// Game bounds the boards the service agrees to host and seeds mine
// placement.
type Game struct {
	MaxWidth  int
	MaxHeight int
	seed      *[2]uint64
}

func NewGame() (*Game, error) {
	maxWidth, err := intEnv("MINES_MAX_WIDTH", defaultMaxSide)
	if err != nil {
		return nil, err
	}
	maxHeight, err := intEnv("MINES_MAX_HEIGHT", defaultMaxSide)
	if err != nil {
		return nil, err
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("board limits must be positive (got %dx%d)", maxWidth, maxHeight)
	}

	g := &Game{MaxWidth: maxWidth, MaxHeight: maxHeight}

	if s, ok := os.LookupEnv("MINES_SEED"); ok {
		var seed [2]uint64
		if _, err := fmt.Sscanf(s, "%d:%d", &seed[0], &seed[1]); err != nil {
			return nil, fmt.Errorf(`MINES_SEED must look like "1:2": %w`, err)
		}
		g.seed = &seed
	}

	return g, nil
}

// Rand returns a fixed-seed source when MINES_SEED is set, a random one
// otherwise.
func (g Game) Rand() *rand.Rand {
	if g.seed != nil {
		return rand.New(rand.NewPCG(g.seed[0], g.seed[1]))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (g Game) Admit(p mines.GameParams) error {
	if p.Width > g.MaxWidth || p.Height > g.MaxHeight {
		return fmt.Errorf(
			"%w: %dx%d exceeds the %dx%d limit",
			ErrBoardTooLarge, p.Width, p.Height, g.MaxWidth, g.MaxHeight,
		)
	}
	return p.Validate()
}

package mines

import (
	"fmt"
	"strings"
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// MaxMines is the largest mine count that can be placed whatever the first
// click is: an interior click excludes a full 3x3 safe zone.
func (p GameParams) MaxMines() int {
	return p.Width*p.Height - min(p.Width, 3)*min(p.Height, 3)
}

// Validate accepts MineCount up to and including MaxMines.
func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return InvalidDimensionsError{p.Width, p.Height}
	}
	if p.MineCount < 0 || p.MineCount > p.MaxMines() {
		return OverPopulationError{MineCount: p.MineCount, Available: p.MaxMines()}
	}
	return nil
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var difficulties = map[Difficulty]GameParams{
	Easy:   {Width: 10, Height: 10, MineCount: 10},
	Medium: {Width: 10, Height: 10, MineCount: 20},
	Hard:   {Width: 10, Height: 10, MineCount: 30},
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := difficulties[d]; !ok {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// Params returns the preset for d. Unknown difficulties fall back to Easy.
func (d Difficulty) Params() GameParams {
	if p, ok := difficulties[d]; ok {
		return p
	}
	return difficulties[Easy]
}

package mines

import (
	"bytes"
	"encoding/gob"
)

type boardState struct {
	Width, Height int
	Cells         []Cell
	Populated     bool
}

// [Board] implements [gob.GobEncoder]
func (b *Board) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(boardState{
		Width:     b.width,
		Height:    b.height,
		Cells:     b.cells,
		Populated: b.populated,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// [Board] implements [gob.GobDecoder]
func (b *Board) GobDecode(data []byte) error {
	var s boardState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	if s.Width <= 0 || s.Height <= 0 || len(s.Cells) != s.Width*s.Height {
		return InvalidDimensionsError{s.Width, s.Height}
	}
	b.width, b.height = s.Width, s.Height
	b.cells = s.Cells
	b.populated = s.Populated
	return nil
}

func (b *Board) Bytes() ([]byte, error) {
	return b.GobEncode()
}

func DecodeBoard(buf []byte) (*Board, error) {
	b := &Board{}
	if err := b.GobDecode(buf); err != nil {
		return nil, err
	}
	return b, nil
}

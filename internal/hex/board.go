package hex

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a coordinate does not fit on the board.
var ErrOutOfRange = errors.New("coordinate outside board")

// Board is a dense cube of cells indexed [q][r][s], each axis shifted by sideLen-1 so that the
// range [-(sideLen-1), sideLen-1] maps onto array indices.
type Board struct {
	sideLen int
	cells   [][][]Coordinate
}

// NewBoard allocates a board for the given side length with every cell set to Sentinel.
func NewBoard(sideLen int) (*Board, error) {
	if sideLen < 1 {
		return nil, fmt.Errorf("invalid side length %d", sideLen)
	}
	n := 2*sideLen - 1
	cells := make([][][]Coordinate, n)
	for q := range cells {
		cells[q] = make([][]Coordinate, n)
		for r := range cells[q] {
			row := make([]Coordinate, n)
			for s := range row {
				row[s] = Sentinel
			}
			cells[q][r] = row
		}
	}
	return &Board{sideLen: sideLen, cells: cells}, nil
}

// SideLen is the number of cells along one edge.
func (b *Board) SideLen() int {
	return b.sideLen
}

func (b *Board) index(c Coordinate) (q, r, s int, err error) {
	if !c.Valid() {
		return 0, 0, 0, fmt.Errorf("%w: %v breaks q+r+s=0", ErrOutOfRange, c)
	}
	shift := b.sideLen - 1
	q, r, s = c.Q+shift, c.R+shift, c.S+shift
	n := len(b.cells)
	if q < 0 || q >= n || r < 0 || r >= n || s < 0 || s >= n {
		return 0, 0, 0, fmt.Errorf("%w: %v with side length %d", ErrOutOfRange, c, b.sideLen)
	}
	return q, r, s, nil
}

// Update writes every cell, last write wins. The whole batch is rejected when any cell is out
// of range, so a bad scan never leaves a partial write behind.
func (b *Board) Update(cells []Coordinate) error {
	type slot struct{ q, r, s int }
	slots := make([]slot, len(cells))
	for i, c := range cells {
		q, r, s, err := b.index(c)
		if err != nil {
			return err
		}
		slots[i] = slot{q, r, s}
	}
	for i, c := range cells {
		b.cells[slots[i].q][slots[i].r][slots[i].s] = c
	}
	return nil
}

// At returns the stored cell, or Sentinel when the coordinate is not on the board.
func (b *Board) At(q, r, s int) Coordinate {
	iq, ir, is, err := b.index(Coordinate{Q: q, R: r, S: s})
	if err != nil {
		return Sentinel
	}
	return b.cells[iq][ir][is]
}

// Known counts written cells.
func (b *Board) Known() int {
	known := 0
	for _, plane := range b.cells {
		for _, row := range plane {
			for _, c := range row {
				if c != Sentinel {
					known++
				}
			}
		}
	}
	return known
}

// Package scan turns a scan reply into located cells, enemy positions and wall positions.
package scan

import (
	"github.com/hexclash/tankagent/internal/hex"
)

// Result is the interpretation of one scan payload. A new Result is built for every scan.
type Result struct {
	shape   hex.Shape
	cells   []hex.Coordinate
	enemies []int
	walls   []int
}

// NewResult returns an empty result that lays cells out with the given shape.
func NewResult(shape hex.Shape) *Result {
	return &Result{shape: shape}
}

// Parse interprets payload with shape.
func Parse(payload string, shape hex.Shape) *Result {
	r := NewResult(shape)
	r.Entry(payload)
	return r
}

// Entry replaces the content of r with the interpretation of payload. Every non-separator
// character is one cell, left to right. Spaces, tabs and slashes separate row tokens and are
// skipped.
func (r *Result) Entry(payload string) {
	r.cells = r.cells[:0]
	r.enemies = nil
	r.walls = nil

	index := 0
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if isSeparator(c) {
			continue
		}
		switch {
		case hex.IsTeamColor(c):
			r.enemies = append(r.enemies, index)
		case c == hex.Wall:
			r.walls = append(r.walls, index)
		}
		r.cells = append(r.cells, r.shape.Cell(index, c))
		index++
	}
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '/':
		return true
	}
	return false
}

// Shape is the layout used to place cells.
func (r *Result) Shape() hex.Shape { return r.shape }

// Cells returns the located cells in scan order.
func (r *Result) Cells() []hex.Coordinate { return r.cells }

// Enemies returns the scan indices holding a team colour, ascending.
func (r *Result) Enemies() []int { return r.enemies }

// Walls returns the scan indices holding a wall, ascending.
func (r *Result) Walls() []int { return r.walls }

// EnemyDetected reports whether any enemy was seen.
func (r *Result) EnemyDetected() bool { return len(r.enemies) > 0 }

// WallDetected reports whether any wall was seen.
func (r *Result) WallDetected() bool { return len(r.walls) > 0 }

// HasWall reports whether scan index i is a wall.
func (r *Result) HasWall(i int) bool { return contains(r.walls, i) }

// HasEnemy reports whether scan index i holds an enemy.
func (r *Result) HasEnemy(i int) bool { return contains(r.enemies, i) }

// Blocked reports whether index i is a wall or an enemy.
func (r *Result) Blocked(i int) bool { return r.HasWall(i) || r.HasEnemy(i) }

// Occupant returns the scanned character at index i, or hex.Unset when the scan was shorter.
func (r *Result) Occupant(i int) byte {
	if i < 0 || i >= len(r.cells) {
		return hex.Unset
	}
	return r.cells[i].Occupant
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

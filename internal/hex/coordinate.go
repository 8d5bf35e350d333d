// Package hex implements the cube-coordinate model of the battle board.
//
// Coordinates follow the q+r+s=0 cube convention described at
// https://www.redblobgames.com/grids/hexagons/.
package hex

import "fmt"

// Occupant letters with a fixed meaning in scan payloads.
const (
	Wall  byte = 'W'
	Unset byte = ' '
)

// TeamColors are the six team letters. A scanned cell carrying one of them holds an enemy tank.
var TeamColors = [...]byte{'R', 'O', 'Y', 'G', 'B', 'V'}

// IsTeamColor reports whether c is one of the six team letters.
func IsTeamColor(c byte) bool {
	for _, t := range TeamColors {
		if c == t {
			return true
		}
	}
	return false
}

// Coordinate is a single hex cell.
type Coordinate struct {
	Q, R, S   int
	Elevation int  // -1 when unknown
	Occupant  byte // terrain letter, Wall, or a team color
}

// Sentinel is the value of every board cell that was never written.
var Sentinel = Coordinate{Q: -1, R: -1, S: -1, Elevation: -1, Occupant: Unset}

// New builds a coordinate from axial (q, r); s is derived.
func New(q, r int, occupant byte) Coordinate {
	return Coordinate{Q: q, R: r, S: -q - r, Elevation: -1, Occupant: occupant}
}

// Valid reports whether the cube constraint holds.
func (c Coordinate) Valid() bool {
	return c.Q+c.R+c.S == 0
}

// Translate returns c moved by the displacement. The caller keeps dq+dr+ds = 0.
func (c Coordinate) Translate(dq, dr, ds int) Coordinate {
	c.Q += dq
	c.R += dr
	c.S += ds
	return c
}

// Rotate turns c by n steps of 60 degrees around the origin. Positive n shifts the axes
// q<-r<-s<-q, negative n shifts the other way, and an odd step count also negates the result.
func (c Coordinate) Rotate(n int) Coordinate {
	steps := n
	if steps < 0 {
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		if n > 0 {
			c.Q, c.R, c.S = c.R, c.S, c.Q
		} else {
			c.Q, c.R, c.S = c.S, c.Q, c.R
		}
	}
	if steps%2 == 1 {
		c.Q, c.R, c.S = -c.Q, -c.R, -c.S
	}
	return c
}

// SameCell compares position only, ignoring elevation and occupant.
func (c Coordinate) SameCell(o Coordinate) bool {
	return c.Q == o.Q && c.R == o.R && c.S == o.S
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d,%d)%c", c.Q, c.R, c.S, c.Occupant)
}

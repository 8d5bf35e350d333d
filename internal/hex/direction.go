package hex

import "fmt"

// Direction is one of the six compass headings a tank can face, in clockwise order.
type Direction int

const (
	North Direction = iota
	NorthEast
	SouthEast
	South
	SouthWest
	NorthWest
)

var directionNames = [...]string{"N", "NE", "SE", "S", "SW", "NW"}

// Directions lists every heading clockwise from North.
var Directions = [...]Direction{North, NorthEast, SouthEast, South, SouthWest, NorthWest}

func (d Direction) String() string {
	if d < North || d > NorthWest {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection maps a protocol label such as "NE" to a Direction.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return North, fmt.Errorf("unknown direction %q", s)
}

// Clockwise returns the heading n sixth-turns clockwise from d. Negative n turns counter-clockwise.
func (d Direction) Clockwise(n int) Direction {
	return Direction(((int(d)+n)%6 + 6) % 6)
}

// Opposite returns the heading facing the other way.
func (d Direction) Opposite() Direction {
	return d.Clockwise(3)
}

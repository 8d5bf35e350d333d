package hex

// Offset is an axial (q, r) displacement of a scanned cell relative to the scanning tank.
type Offset struct {
	Q, R int
}

// Shape is the index -> offset table of one scan layout.
type Shape struct {
	Name    string
	Offsets []Offset
	// tail rule for indices past the table: q = index - tailQ, r = tailR
	tailQ, tailR int
}

// Standard is the 11-cell layout of light and heavy tanks (abc efghi jkl rows).
// The values are the server-calibrated constants and are not derivable from a formula.
var Standard = Shape{
	Name: "standard",
	Offsets: []Offset{
		{-1, 0}, {0, -1}, {1, -1},
		{-3, 0}, {-2, -1}, {-1, -2}, {0, -2}, {1, -2},
		{0, 0}, {0, -2}, {1, -3},
	},
	tailQ: 9,
	tailR: -3,
}

// Scout is the 15-cell layout of scouts (abc efghi jklmn opq rows).
var Scout = Shape{
	Name: "scout",
	Offsets: []Offset{
		{-12, 0}, {-11, -1}, {-10, -1},
		{-9, 0}, {-8, -1}, {-7, -2}, {-6, -2}, {-5, -2},
		{-4, -1}, {-3, -2}, {-2, -3}, {-1, -3}, {0, -3},
		{1, -3}, {2, -3},
	},
	tailQ: 12,
	tailR: -3,
}

// ShapeFor picks the layout by unit kind.
func ShapeFor(scout bool) Shape {
	if scout {
		return Scout
	}
	return Standard
}

// Len is the number of cells a full scan of this shape reports.
func (s Shape) Len() int {
	return len(s.Offsets)
}

// OffsetAt returns the offset for a scan index.
func (s Shape) OffsetAt(index int) Offset {
	if index >= 0 && index < len(s.Offsets) {
		return s.Offsets[index]
	}
	return Offset{Q: index - s.tailQ, R: s.tailR}
}

// Cell builds the coordinate of scan index with the scanned character as occupant.
func (s Shape) Cell(index int, occupant byte) Coordinate {
	o := s.OffsetAt(index)
	return New(o.Q, o.R, occupant)
}

package hex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotate_SixStepsIsIdentity(t *testing.T) {
	start := New(2, -3, 'a')
	c := start
	for i := 0; i < 6; i++ {
		c = c.Rotate(1)
		require.True(t, c.Valid(), "rotation %d broke the cube constraint: %v", i+1, c)
	}
	assert.Equal(t, start, c)
}

func TestRotate_ThreeStepsIsInversion(t *testing.T) {
	c := New(2, -3, 'a')
	got := c.Rotate(3)
	assert.Equal(t, -c.Q, got.Q)
	assert.Equal(t, -c.R, got.R)
	assert.Equal(t, -c.S, got.S)
	assert.Equal(t, c.Occupant, got.Occupant)
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want Coordinate
	}{
		{"zero", 0, Coordinate{Q: 1, R: -1, S: 0}},
		{"one clockwise", 1, Coordinate{Q: 1, R: 0, S: -1}},
		{"one counter clockwise", -1, Coordinate{Q: 0, R: -1, S: 1}},
		{"two", 2, Coordinate{Q: 0, R: 1, S: -1}},
		{"minus six", -6, Coordinate{Q: 1, R: -1, S: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coordinate{Q: 1, R: -1, S: 0}.Rotate(tt.n)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRotate_InverseUndoes(t *testing.T) {
	c := New(3, -1, 'x')
	for n := -7; n <= 7; n++ {
		assert.Equal(t, c, c.Rotate(n).Rotate(-n), "n=%d", n)
	}
}

func TestTranslate(t *testing.T) {
	c := New(1, -1, 'a').Translate(2, -1, -1)
	assert.Equal(t, 3, c.Q)
	assert.Equal(t, -2, c.R)
	assert.Equal(t, -1, c.S)
	assert.True(t, c.Valid())
}

func TestDirection(t *testing.T) {
	d, err := ParseDirection("SW")
	require.NoError(t, err)
	assert.Equal(t, SouthWest, d)
	assert.Equal(t, "SW", d.String())
	assert.Equal(t, NorthWest, North.Clockwise(-1))
	assert.Equal(t, NorthEast, NorthWest.Clockwise(2))
	assert.Equal(t, South, North.Opposite())

	_, err = ParseDirection("E")
	assert.Error(t, err)
}

func TestShape_StandardTable(t *testing.T) {
	want := []Offset{
		{-1, 0}, {0, -1}, {1, -1},
		{-3, 0}, {-2, -1}, {-1, -2}, {0, -2}, {1, -2},
		{0, 0}, {0, -2}, {1, -3},
	}
	require.Equal(t, 11, Standard.Len())
	for i, o := range want {
		assert.Equal(t, o, Standard.OffsetAt(i), "index %d", i)
	}
	assert.Equal(t, Offset{2, -3}, Standard.OffsetAt(11))
}

func TestShape_ScoutTable(t *testing.T) {
	require.Equal(t, 15, Scout.Len())
	assert.Equal(t, Offset{-12, 0}, Scout.OffsetAt(0))
	assert.Equal(t, Offset{-4, -1}, Scout.OffsetAt(8))
	assert.Equal(t, Offset{2, -3}, Scout.OffsetAt(14))
	assert.Equal(t, Scout, ShapeFor(true))
	assert.Equal(t, Standard, ShapeFor(false))
}

func TestShape_CellsAreValid(t *testing.T) {
	for _, shape := range []Shape{Standard, Scout} {
		for i := 0; i < shape.Len(); i++ {
			c := shape.Cell(i, 'a')
			assert.True(t, c.Valid(), "%s index %d", shape.Name, i)
			assert.Equal(t, -1, c.Elevation)
		}
	}
}

func TestNewBoard_FilledWithSentinel(t *testing.T) {
	b, err := NewBoard(5)
	require.NoError(t, err)
	assert.Equal(t, 5, b.SideLen())
	assert.Equal(t, 0, b.Known())
	assert.Equal(t, Sentinel, b.At(0, 0, 0))

	_, err = NewBoard(0)
	assert.Error(t, err)
}

func TestBoard_UpdateLastWriteWins(t *testing.T) {
	b, err := NewBoard(5)
	require.NoError(t, err)

	require.NoError(t, b.Update([]Coordinate{New(1, -1, 'a'), New(0, 0, 'b')}))
	assert.Equal(t, byte('a'), b.At(1, -1, 0).Occupant)

	require.NoError(t, b.Update([]Coordinate{New(1, -1, 'W')}))
	assert.Equal(t, byte('W'), b.At(1, -1, 0).Occupant)
	assert.Equal(t, 2, b.Known())
}

func TestBoard_RejectsOutOfRange(t *testing.T) {
	b, err := NewBoard(3)
	require.NoError(t, err)

	err = b.Update([]Coordinate{New(0, 0, 'a'), New(-3, 0, 'b')})
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 0, b.Known(), "a rejected batch must not be partially written")

	err = b.Update([]Coordinate{{Q: 1, R: 1, S: 1}})
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.Equal(t, Sentinel, b.At(9, -9, 0))
}

func TestBoard_StandardScanFitsFromSideFour(t *testing.T) {
	b, err := NewBoard(4)
	require.NoError(t, err)
	cells := make([]Coordinate, Standard.Len())
	for i := range cells {
		cells[i] = Standard.Cell(i, 'a')
	}
	assert.NoError(t, b.Update(cells))
}

func TestIsTeamColor(t *testing.T) {
	for _, c := range []byte("ROYGBV") {
		assert.True(t, IsTeamColor(c))
	}
	assert.False(t, IsTeamColor('W'))
	assert.False(t, IsTeamColor('a'))
}

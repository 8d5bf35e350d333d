// Package geo places hex cells on a plane so scans can be stored as geometry.
package geo

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/hexclash/tankagent/pkg/core"
)

// Hexes are pointy-top with unit size. Coordinates stay relative to the scanning unit.
var sqrt3 = math.Sqrt(3)

func centerXY(q, r int) (x, y float64) {
	return sqrt3*float64(q) + sqrt3/2*float64(r), 1.5 * float64(r)
}

// HexCenter returns the planar centre of the hex at axial (q, r).
func HexCenter(q, r int) geom.Point {
	x, y := centerXY(q, r)
	return geom.NewPoint(geom.Coordinates{XY: geom.XY{X: x, Y: y}, Type: geom.DimXY})
}

// Footprint joins the centres of the scanned cells in scan order. Fewer than two cells give an
// empty line.
func Footprint(cells []core.ScannedCell) geom.LineString {
	if len(cells) < 2 {
		return geom.LineString{}
	}
	flat := make([]float64, 0, 2*len(cells))
	for _, c := range cells {
		x, y := centerXY(c.Q, c.R)
		flat = append(flat, x, y)
	}
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
}

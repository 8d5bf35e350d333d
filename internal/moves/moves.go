// Package moves maps scan indices to DRIVE and SHOOT commands for a given facing.
package moves

import (
	"github.com/hexclash/tankagent/internal/hex"
	"github.com/hexclash/tankagent/internal/scan"
)

// driveTable lists, per facing, the heading reached by driving into scan index 0, 1 and 2.
var driveTable = map[hex.Direction][3]string{
	hex.North:     {"NW", "N", "NE"},
	hex.NorthEast: {"N", "NE", "SE"},
	hex.NorthWest: {"SW", "NW", "N"},
	hex.South:     {"SW", "S", "SE"},
	hex.SouthEast: {"NE", "SE", "S"},
	hex.SouthWest: {"SE", "S", "SW"},
}

// shootTable lists, per facing, the target of scan indices 0 to 7. Indices 3 and up are two
// cells away and take a chained direction.
var shootTable = map[hex.Direction][8]string{
	hex.North:     {"NW", "N", "NE", "NW-NW", "NW-N", "N-N", "N-NE", "NE-NE"},
	hex.NorthEast: {"N", "NE", "SE", "N-N", "N-NE", "NE-NE", "NE-SE", "SE-SE"},
	hex.NorthWest: {"SW", "NW", "N", "SW-SW", "SW-NW", "NW-NW", "NW-N", "N-N"},
	hex.South:     {"SE", "S", "SW", "SE-SE", "S-SE", "S-S", "S-SW", "SW-SW"},
	hex.SouthEast: {"NE", "SE", "S", "NE-NE", "NE-SE", "SE-SE", "SE-S", "S-S"},
	hex.SouthWest: {"S", "SW", "NW", "S-S", "S-SW", "SW-SW", "SW-NW", "NW-NW"},
}

// ShootRange is the number of scan indices that can be targeted.
const ShootRange = 8

// DriveCandidates returns the headings of the open front cells, in table order.
func DriveCandidates(facing hex.Direction, r *scan.Result) []string {
	row, ok := driveTable[facing]
	if !ok {
		return nil
	}
	var out []string
	for i, dir := range row {
		if r != nil && r.Blocked(i) {
			continue
		}
		out = append(out, dir)
	}
	return out
}

// DriveMoves returns a "DRIVE <dir>" command for every open front cell.
func DriveMoves(facing hex.Direction, r *scan.Result) []string {
	dirs := DriveCandidates(facing, r)
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, "DRIVE "+d)
	}
	return out
}

// ShootMove returns the SHOOT command that hits scan index from facing. The second value is
// false when the index is out of range or the facing is unknown.
func ShootMove(facing hex.Direction, index int) (string, bool) {
	row, ok := shootTable[facing]
	if !ok || index < 0 || index >= ShootRange {
		return "", false
	}
	return "SHOOT " + row[index], true
}

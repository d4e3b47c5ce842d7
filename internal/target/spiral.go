// internal/target/spiral.go
package target

import (
	"go-hex-tactics/internal/config"
	"go-hex-tactics/internal/types"
	"go-hex-tactics/pkg/hexmap"
)

// Spiral ring-walk conventions. Team A scans each ring clockwise starting
// just past the upper-right bearing; team B counter-clockwise starting
// just past the lower-left one. The exact orders are fixed literals of
// the game, pinned by golden tests. Do not re-derive them.
var (
	teamASpiralOrder = [6]int{hexmap.DirNE, hexmap.DirE, hexmap.DirSE, hexmap.DirSW, hexmap.DirW, hexmap.DirNW}
	teamBSpiralOrder = [6]int{hexmap.DirSW, hexmap.DirSE, hexmap.DirE, hexmap.DirNE, hexmap.DirNW, hexmap.DirW}
)

func spiralOrder(team types.Team) [6]int {
	if team == types.TeamA {
		return teamASpiralOrder
	}
	return teamBSpiralOrder
}

// Spiral walks rings of increasing radius around the source tile in the
// source team's angular order and returns the first tile occupied by the
// target team. It is the fallback strategy when no direct probe (such as
// the mirror tile) produced a target, never the primary one.
func (r *Resolver) Spiral(srcTileID int, srcTeam, targetTeam types.Team, includeCompanions bool) (Info, bool) {
	src, err := r.board.TileByID(srcTileID)
	if err != nil {
		return Info{}, false
	}
	order := spiralOrder(srcTeam)
	for radius := 1; radius <= config.MaxSpiralRadius; radius++ {
		for _, coord := range ringWalk(src.Coord, radius, order) {
			tile, err := r.board.Tile(coord)
			if err != nil {
				continue
			}
			if !tile.Occupied || tile.Team != targetTeam {
				continue
			}
			if tile.Unit.IsCompanion() && !includeCompanions {
				continue
			}
			return Info{TileID: tile.ID, Unit: tile.Unit, Moves: radius}, true
		}
	}
	return Info{}, false
}

// FreeDeployTile finds the nearest free deployment tile of a team,
// walking rings outward from the given tile in the team's spiral order.
// Companion spawns use it so the chosen tile is deterministic.
func (r *Resolver) FreeDeployTile(team types.Team, fromTileID int) (int, bool) {
	from, err := r.board.TileByID(fromTileID)
	if err != nil {
		return 0, false
	}
	order := spiralOrder(team)
	for radius := 1; radius <= config.MaxSpiralRadius; radius++ {
		for _, coord := range ringWalk(from.Coord, radius, order) {
			tile, err := r.board.Tile(coord)
			if err != nil {
				continue
			}
			if tile.CanHost(team) {
				return tile.ID, true
			}
		}
	}
	return 0, false
}

// ringWalk enumerates the 6*radius hexes at exactly the given distance
// from center, starting at the corner in order[0] and proceeding along
// the ring in the rotational sense the order encodes.
func ringWalk(center hexmap.Hex, radius int, order [6]int) []hexmap.Hex {
	out := make([]hexmap.Hex, 0, 6*radius)
	cur := center.Add(hexmap.NeighborDirections[order[0]].Scale(radius))
	for side := 0; side < 6; side++ {
		step := hexmap.NeighborDirections[order[(side+2)%6]]
		for i := 0; i < radius; i++ {
			out = append(out, cur)
			cur = cur.Add(step)
		}
	}
	return out
}

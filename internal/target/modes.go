// internal/target/modes.go
package target

import (
	"go-hex-tactics/internal/types"
)

// Frontmost returns the target team's unit nearest its front line,
// judged purely by position ID: team A deploys on the high-ID side, so
// its front unit holds the minimum ID, while team B's holds the maximum.
// No distance computation is involved.
func (r *Resolver) Frontmost(targetTeam types.Team, includeCompanions bool) (Info, bool) {
	return r.extremeByID(targetTeam, includeCompanions, targetTeam == types.TeamA)
}

// Rearmost is the exact opposite of Frontmost.
func (r *Resolver) Rearmost(targetTeam types.Team, includeCompanions bool) (Info, bool) {
	return r.extremeByID(targetTeam, includeCompanions, targetTeam != types.TeamA)
}

func (r *Resolver) extremeByID(team types.Team, includeCompanions, min bool) (Info, bool) {
	pool := r.Pool(team, includeCompanions)
	if len(pool) == 0 {
		return Info{}, false
	}
	winner := pool[0]
	if !min {
		winner = pool[len(pool)-1]
	}
	return r.info(winner, 0), true
}

// Mirror probes the tile reflected across the board's central dividing
// line from the source. If the mirrored tile holds a unit of the target
// team, that unit wins; otherwise the spiral fallback takes over.
func (r *Resolver) Mirror(srcTileID int, srcTeam, targetTeam types.Team, includeCompanions bool) (Info, bool) {
	src, err := r.board.TileByID(srcTileID)
	if err != nil {
		return Info{}, false
	}
	mirror, err := r.board.TileByID(src.MirrorID)
	if err == nil && mirror.Occupied && mirror.Team == targetTeam {
		if !mirror.Unit.IsCompanion() || includeCompanions {
			return Info{TileID: mirror.ID, Unit: mirror.Unit, Moves: src.Coord.Distance(mirror.Coord)}, true
		}
	}
	return r.Spiral(srcTileID, srcTeam, targetTeam, includeCompanions)
}

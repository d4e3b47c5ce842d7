// internal/target/resolver.go
package target

import (
	"sort"

	"go-hex-tactics/internal/types"
	"go-hex-tactics/pkg/hexmap"
)

// Info is the outcome of a resolution: the winning tile, its occupant and
// the movement distance at which it became reachable (raw hex distance
// for the modes that do not move). It is derived state, recomputed on
// demand after every board change and never persisted.
type Info struct {
	TileID int
	Unit   types.UnitID
	Moves  int
}

// Resolver selects exactly one target from a candidate pool using the
// fixed deterministic rules. Repeated calls on an unchanged board always
// produce the same winner; skills rely on this to re-derive their targets
// after every mutation.
type Resolver struct {
	board *hexmap.Board
	paths *hexmap.Pathfinder
}

// NewResolver builds a resolver over the given board and pathfinder.
func NewResolver(board *hexmap.Board, paths *hexmap.Pathfinder) *Resolver {
	return &Resolver{board: board, paths: paths}
}

// Pool returns the occupied position IDs of a team, ordered by ID.
// Companion units are excluded unless includeCompanions is set.
func (r *Resolver) Pool(team types.Team, includeCompanions bool) []int {
	var pool []int
	for _, unit := range r.board.TeamUnits(team) {
		if unit.IsCompanion() && !includeCompanions {
			continue
		}
		if id, ok := r.board.UnitTile(unit, team); ok {
			pool = append(pool, id)
		}
	}
	sort.Ints(pool)
	return pool
}

// Closest picks the candidate reachable in the fewest moves from the
// source tile, given the source's attack range. Ties at the minimal
// movement distance fall through the fixed tie-break pipeline.
func (r *Resolver) Closest(srcTileID int, srcTeam types.Team, rng int, pool []int) (Info, bool) {
	src, err := r.board.TileByID(srcTileID)
	if err != nil || len(pool) == 0 {
		return Info{}, false
	}
	result, ok := r.paths.MinMovesToRange(src.Coord, pool, rng, nil)
	if !ok {
		return Info{}, false
	}
	winner := r.tieBreak(src, srcTeam, result.Targets)
	return r.info(winner, result.Moves), true
}

// Furthest picks the candidate at the greatest raw hex distance from the
// source tile; no movement search is involved. Ties use the position-ID
// preference of the source team.
func (r *Resolver) Furthest(srcTileID int, srcTeam types.Team, pool []int) (Info, bool) {
	src, err := r.board.TileByID(srcTileID)
	if err != nil || len(pool) == 0 {
		return Info{}, false
	}
	best := -1
	var ties []int
	for _, id := range pool {
		tile, err := r.board.TileByID(id)
		if err != nil {
			continue
		}
		d := src.Coord.Distance(tile.Coord)
		switch {
		case d > best:
			best = d
			ties = ties[:0]
			ties = append(ties, id)
		case d == best:
			ties = append(ties, id)
		}
	}
	if best < 0 {
		return Info{}, false
	}
	winner := idPreference(srcTeam, ties)
	return r.info(winner, best), true
}

// tieBreak reduces equally reachable candidates to one winner:
//  1. a candidate sharing the source's Q axis wins ("vertical alignment");
//  2. candidates all on one diagonal row resolve by position-ID
//     preference, mirrored between the teams;
//  3. otherwise the smaller raw hex distance wins, remaining ties falling
//     back to the rule-2 ID preference.
func (r *Resolver) tieBreak(src *hexmap.Tile, srcTeam types.Team, ties []int) int {
	if len(ties) == 1 {
		return ties[0]
	}
	candidates := make([]*hexmap.Tile, 0, len(ties))
	for _, id := range ties {
		if tile, err := r.board.TileByID(id); err == nil {
			candidates = append(candidates, tile)
		}
	}

	var aligned []*hexmap.Tile
	for _, c := range candidates {
		if c.Coord.Q == src.Coord.Q {
			aligned = append(aligned, c)
		}
	}
	if len(aligned) > 0 {
		candidates = aligned
	}
	if len(candidates) == 1 {
		return candidates[0].ID
	}

	sameDiag := true
	for _, c := range candidates[1:] {
		if c.DiagRow != candidates[0].DiagRow {
			sameDiag = false
			break
		}
	}
	if sameDiag {
		return idPreference(srcTeam, tileIDs(candidates))
	}

	best := src.Coord.Distance(candidates[0].Coord)
	nearest := []*hexmap.Tile{candidates[0]}
	for _, c := range candidates[1:] {
		d := src.Coord.Distance(c.Coord)
		switch {
		case d < best:
			best = d
			nearest = nearest[:0]
			nearest = append(nearest, c)
		case d == best:
			nearest = append(nearest, c)
		}
	}
	if len(nearest) == 1 {
		return nearest[0].ID
	}
	return idPreference(srcTeam, tileIDs(nearest))
}

// idPreference applies the mirrored position-ID rule: team A sources
// prefer the higher ID, team B sources the lower one.
func idPreference(srcTeam types.Team, ids []int) int {
	winner := ids[0]
	for _, id := range ids[1:] {
		if srcTeam == types.TeamA {
			if id > winner {
				winner = id
			}
		} else if id < winner {
			winner = id
		}
	}
	return winner
}

func (r *Resolver) info(tileID, moves int) Info {
	tile, err := r.board.TileByID(tileID)
	if err != nil {
		return Info{TileID: tileID, Moves: moves}
	}
	return Info{TileID: tileID, Unit: tile.Unit, Moves: moves}
}

func tileIDs(tiles []*hexmap.Tile) []int {
	ids := make([]int, len(tiles))
	for i, t := range tiles {
		ids[i] = t.ID
	}
	return ids
}

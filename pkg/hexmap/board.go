// pkg/hexmap/board.go
package hexmap

import (
	"errors"
	"fmt"
	"sort"

	"go-hex-tactics/internal/config"
	"go-hex-tactics/internal/types"
)

// ErrTileNotFound is returned for coordinates or position IDs outside the
// board preset. Hitting it is a programmer error, never an expected
// gameplay outcome.
var ErrTileNotFound = errors.New("hexmap: tile not found")

// TileState is the occupancy state of a board tile.
type TileState int

const (
	StateDefault TileState = iota
	StateBlocked
	StateBlockedBreakable
	StateAvailableTeamA
	StateAvailableTeamB
	StateOccupiedTeamA
	StateOccupiedTeamB
	stateCount
)

func (s TileState) String() string {
	switch s {
	case StateDefault:
		return "Default"
	case StateBlocked:
		return "Blocked"
	case StateBlockedBreakable:
		return "BlockedBreakable"
	case StateAvailableTeamA:
		return "AvailableTeamA"
	case StateAvailableTeamB:
		return "AvailableTeamB"
	case StateOccupiedTeamA:
		return "OccupiedTeamA"
	case StateOccupiedTeamB:
		return "OccupiedTeamB"
	}
	return fmt.Sprintf("TileState(%d)", int(s))
}

// Traversable reports whether units may path through a tile in this state.
func (s TileState) Traversable() bool {
	return s != StateBlocked && s != StateBlockedBreakable
}

func availableState(team types.Team) TileState {
	if team == types.TeamA {
		return StateAvailableTeamA
	}
	return StateAvailableTeamB
}

func occupiedState(team types.Team) TileState {
	if team == types.TeamA {
		return StateOccupiedTeamA
	}
	return StateOccupiedTeamB
}

// Tile is one cell of the battlefield. Exactly one tile exists per
// coordinate; Unit is meaningful only while Occupied is true.
type Tile struct {
	Coord    Hex
	ID       int
	MirrorID int
	DiagRow  int
	State    TileState
	Unit     types.UnitID
	Team     types.Team
	Occupied bool
}

// CanHost reports whether a unit of the given team may be placed here
// right now (the tile is that team's free deployment tile).
func (t *Tile) CanHost(team types.Team) bool {
	return t.State == availableState(team)
}

type companionKey struct {
	Main types.UnitID
	Team types.Team
}

// Board owns all tile and team-membership state. Units are referenced by
// ID only; nothing above this layer holds a tile pointer across mutations.
type Board struct {
	tiles    map[Hex]*Tile
	byID     map[int]*Tile
	units    [types.TeamCount]map[types.UnitID]int // unit -> position ID
	capacity [types.TeamCount]int
	links    map[companionKey]map[types.UnitID]struct{}
	preset   *Preset
	revision uint64
}

// NewBoard builds a board from a preset. The preset is kept so ClearAll
// can restore the authored initial states.
func NewBoard(preset *Preset) (*Board, error) {
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	b := &Board{
		tiles:  make(map[Hex]*Tile, len(preset.Tiles)),
		byID:   make(map[int]*Tile, len(preset.Tiles)),
		links:  make(map[companionKey]map[types.UnitID]struct{}),
		preset: preset,
	}
	for _, tp := range preset.Tiles {
		tile := &Tile{
			Coord:    tp.Coord,
			ID:       tp.ID,
			MirrorID: tp.MirrorID,
			DiagRow:  tp.DiagRow,
			State:    tp.State,
		}
		b.tiles[tp.Coord] = tile
		b.byID[tp.ID] = tile
	}
	for team := types.Team(0); team < types.TeamCount; team++ {
		b.units[team] = make(map[types.UnitID]int)
		b.capacity[team] = config.DefaultTeamSize
	}
	return b, nil
}

// Revision increases on every mutation; callers key caches on it.
func (b *Board) Revision() uint64 {
	return b.revision
}

func (b *Board) bump() {
	b.revision++
}

// Tile returns the tile at the given coordinate.
func (b *Board) Tile(coord Hex) (*Tile, error) {
	tile, ok := b.tiles[coord]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTileNotFound, coord.Key())
	}
	return tile, nil
}

// TileByID returns the tile with the given board-position ID.
func (b *Board) TileByID(id int) (*Tile, error) {
	tile, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrTileNotFound, id)
	}
	return tile, nil
}

// Contains reports whether the coordinate is on the board.
func (b *Board) Contains(coord Hex) bool {
	_, ok := b.tiles[coord]
	return ok
}

// AllTiles returns every tile ordered by position ID.
func (b *Board) AllTiles() []*Tile {
	out := make([]*Tile, 0, len(b.byID))
	for _, tile := range b.byID {
		out = append(out, tile)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TileCount returns the number of tiles on the board.
func (b *Board) TileCount() int {
	return len(b.byID)
}

// SetState overwrites a tile's occupancy state, the map-editor paint
// surface. It refuses out-of-range state values without mutating. When an
// occupied tile is painted into a non-occupied state, the occupant is
// dropped from team membership to keep the membership invariant.
func (b *Board) SetState(coord Hex, state TileState) bool {
	if state < StateDefault || state >= stateCount {
		return false
	}
	tile, ok := b.tiles[coord]
	if !ok {
		return false
	}
	if tile.Occupied && state != occupiedState(tile.Team) {
		delete(b.units[tile.Team], tile.Unit)
		tile.Unit = types.UnitID{}
		tile.Occupied = false
	}
	tile.State = state
	b.bump()
	return true
}

// PlaceUnit puts a unit on the tile with the given position ID. It fails
// without mutating when the tile cannot host the team, the tile is
// already occupied, the unit is already placed on that team, or (for a
// new placement) the team is at capacity. Moves of an already counted
// unit pass isNew=false to skip the capacity check.
func (b *Board) PlaceUnit(tileID int, unit types.UnitID, team types.Team, isNew bool) bool {
	tile, ok := b.byID[tileID]
	if !ok || unit.Zero() || !team.Valid() {
		return false
	}
	if tile.State != availableState(team) {
		return false
	}
	if _, placed := b.units[team][unit]; placed {
		return false
	}
	if isNew && len(b.units[team]) >= b.capacity[team] {
		return false
	}
	tile.State = occupiedState(team)
	tile.Unit = unit
	tile.Team = team
	tile.Occupied = true
	b.units[team][unit] = tileID
	b.bump()
	return true
}

// RemoveUnit clears the occupant of a tile, reverting it to the matching
// Available state. It reports false for an empty tile.
func (b *Board) RemoveUnit(tileID int) bool {
	tile, ok := b.byID[tileID]
	if !ok || !tile.Occupied {
		return false
	}
	delete(b.units[tile.Team], tile.Unit)
	tile.State = availableState(tile.Team)
	tile.Unit = types.UnitID{}
	tile.Occupied = false
	b.bump()
	return true
}

// UnitTile returns the position ID a unit occupies for the given team.
func (b *Board) UnitTile(unit types.UnitID, team types.Team) (int, bool) {
	if !team.Valid() {
		return 0, false
	}
	id, ok := b.units[team][unit]
	return id, ok
}

// TeamUnits returns the units placed for a team, ordered by position ID.
func (b *Board) TeamUnits(team types.Team) []types.UnitID {
	if !team.Valid() {
		return nil
	}
	out := make([]types.UnitID, 0, len(b.units[team]))
	for unit := range b.units[team] {
		out = append(out, unit)
	}
	sort.Slice(out, func(i, j int) bool {
		return b.units[team][out[i]] < b.units[team][out[j]]
	})
	return out
}

// TeamSize returns the number of placed units for a team.
func (b *Board) TeamSize(team types.Team) int {
	if !team.Valid() {
		return 0
	}
	return len(b.units[team])
}

// Capacity returns the team's current maximum size.
func (b *Board) Capacity(team types.Team) int {
	if !team.Valid() {
		return 0
	}
	return b.capacity[team]
}

// SetCapacity changes a team's maximum size. The new value may not drop
// below the number of currently placed units nor exceed the tile count;
// invalid requests fail without mutating.
func (b *Board) SetCapacity(team types.Team, n int) bool {
	if !team.Valid() || n < len(b.units[team]) || n > len(b.byID) {
		return false
	}
	b.capacity[team] = n
	b.bump()
	return true
}

// AdjustCapacity shifts a team's maximum size by delta, with the same
// bounds as SetCapacity.
func (b *Board) AdjustCapacity(team types.Team, delta int) bool {
	if !team.Valid() {
		return false
	}
	return b.SetCapacity(team, b.capacity[team]+delta)
}

// LinkCompanion records that comp is lifecycle-bound to (main, team).
func (b *Board) LinkCompanion(main types.UnitID, team types.Team, comp types.UnitID) {
	key := companionKey{Main: main.Main(), Team: team}
	set, ok := b.links[key]
	if !ok {
		set = make(map[types.UnitID]struct{})
		b.links[key] = set
	}
	set[comp] = struct{}{}
	b.bump()
}

// UnlinkCompanion removes a single companion link.
func (b *Board) UnlinkCompanion(main types.UnitID, team types.Team, comp types.UnitID) {
	key := companionKey{Main: main.Main(), Team: team}
	if set, ok := b.links[key]; ok {
		delete(set, comp)
		if len(set) == 0 {
			delete(b.links, key)
		}
		b.bump()
	}
}

// Companions returns the companions linked to (main, team), ordered by
// companion sequence.
func (b *Board) Companions(main types.UnitID, team types.Team) []types.UnitID {
	set, ok := b.links[companionKey{Main: main.Main(), Team: team}]
	if !ok {
		return nil
	}
	out := make([]types.UnitID, 0, len(set))
	for comp := range set {
		out = append(out, comp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// ClearAll removes every unit and companion link and restores the
// preset's initial tile states and the default team capacities.
func (b *Board) ClearAll() {
	for _, tp := range b.preset.Tiles {
		tile := b.byID[tp.ID]
		tile.State = tp.State
		tile.Unit = types.UnitID{}
		tile.Occupied = false
	}
	for team := types.Team(0); team < types.TeamCount; team++ {
		b.units[team] = make(map[types.UnitID]int)
		b.capacity[team] = config.DefaultTeamSize
	}
	b.links = make(map[companionKey]map[types.UnitID]struct{})
	b.bump()
}

// pkg/hexmap/preset.go
package hexmap

import (
	"fmt"

	"go-hex-tactics/internal/config"
	"go-hex-tactics/internal/types"
)

// TilePreset describes one tile of an authored battlefield: its axial
// coordinate, the stable board-position ID, the mirrored position across
// the central dividing line, the diagonal-row class used for targeting
// tie-breaks, and the initial occupancy state.
type TilePreset struct {
	Coord    Hex
	ID       int
	MirrorID int
	DiagRow  int
	State    TileState
}

// Preset is an authored battlefield layout. Position IDs, mirror pairs
// and diagonal classes are fixed conventions of the preset, validated by
// golden tests rather than derived at runtime.
type Preset struct {
	Tiles []TilePreset
}

// Validate checks the structural invariants of the preset: IDs unique and
// positive, coordinates unique, mirror links pointing at existing tiles.
func (p *Preset) Validate() error {
	byID := make(map[int]Hex, len(p.Tiles))
	byCoord := make(map[Hex]int, len(p.Tiles))
	for _, t := range p.Tiles {
		if t.ID <= 0 {
			return fmt.Errorf("preset tile %v: non-positive id %d", t.Coord, t.ID)
		}
		if prev, dup := byID[t.ID]; dup {
			return fmt.Errorf("preset id %d claimed by both %v and %v", t.ID, prev, t.Coord)
		}
		if prev, dup := byCoord[t.Coord]; dup {
			return fmt.Errorf("preset coordinate %v claimed by ids %d and %d", t.Coord, prev, t.ID)
		}
		byID[t.ID] = t.Coord
		byCoord[t.Coord] = t.ID
	}
	for _, t := range p.Tiles {
		if _, ok := byID[t.MirrorID]; !ok {
			return fmt.Errorf("preset id %d: mirror %d not on board", t.ID, t.MirrorID)
		}
	}
	return nil
}

// DefaultPreset builds the standard battlefield: BoardRows rows of
// BoardCols tiles in odd-r offset layout. Position IDs snake through the
// rows (even rows left to right, odd rows right to left), starting at 1.
// Team B deploys on the top DeployRows rows, team A on the bottom ones;
// the middle rows stay neutral. The mirror of a tile is the tile in the
// vertically reflected row at the same column.
func DefaultPreset() *Preset {
	p := &Preset{Tiles: make([]TilePreset, 0, config.BoardRows*config.BoardCols)}
	for row := 0; row < config.BoardRows; row++ {
		for col := 0; col < config.BoardCols; col++ {
			coord := offsetToAxial(row, col)
			state := StateDefault
			switch {
			case row < config.DeployRows:
				state = StateAvailableTeamB
			case row >= config.BoardRows-config.DeployRows:
				state = StateAvailableTeamA
			}
			p.Tiles = append(p.Tiles, TilePreset{
				Coord:    coord,
				ID:       positionID(row, col),
				MirrorID: positionID(config.BoardRows-1-row, col),
				DiagRow:  coord.S(),
				State:    state,
			})
		}
	}
	return p
}

// DeployTeam returns the team whose deployment zone a preset state
// belongs to, if any.
func DeployTeam(state TileState) (types.Team, bool) {
	switch state {
	case StateAvailableTeamA, StateOccupiedTeamA:
		return types.TeamA, true
	case StateAvailableTeamB, StateOccupiedTeamB:
		return types.TeamB, true
	}
	return 0, false
}

func offsetToAxial(row, col int) Hex {
	return Hex{Q: col - row/2, R: row}
}

// positionID implements the serpentine numbering convention of the
// default board: 1-based, row-major, odd rows numbered right to left.
func positionID(row, col int) int {
	base := row*config.BoardCols + 1
	if row%2 == 1 {
		return base + (config.BoardCols - 1 - col)
	}
	return base + col
}

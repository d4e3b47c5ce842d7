// internal/share/codec.go
package share

import (
	"encoding/base64"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"go-hex-tactics/internal/types"
	"go-hex-tactics/pkg/hexmap"
)

// TileRecord is the shared portion of one tile: occupancy plus occupant.
// Tiles still in their preset state are omitted from share codes.
type TileRecord struct {
	ID    int `msgpack:"i"`
	State int `msgpack:"s"`
	Num   int `msgpack:"n,omitempty"`
	Seq   int `msgpack:"q,omitempty"`
	Team  int `msgpack:"t,omitempty"`
}

// Snapshot is everything a share link carries: per-tile occupancy and two
// free-form artifact slots. Nothing from pathfinding or skill internals
// is shared; receivers re-derive all of that.
type Snapshot struct {
	Version   int          `msgpack:"v"`
	Tiles     []TileRecord `msgpack:"tiles"`
	Artifacts [2]string    `msgpack:"art"`
}

const codecVersion = 1

// Encode packs the board's current occupancy into a compact URL-safe
// share code.
func Encode(board *hexmap.Board, artifacts [2]string) (string, error) {
	snap := Snapshot{Version: codecVersion, Artifacts: artifacts}
	for _, tile := range board.AllTiles() {
		rec := TileRecord{ID: tile.ID, State: int(tile.State)}
		if tile.Occupied {
			rec.Num = tile.Unit.Num
			rec.Seq = tile.Unit.Seq
			rec.Team = int(tile.Team)
		}
		snap.Tiles = append(snap.Tiles, rec)
	}
	raw, err := msgpack.Marshal(&snap)
	if err != nil {
		return "", fmt.Errorf("share: encode: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode unpacks a share code back into a snapshot.
func Decode(code string) (*Snapshot, error) {
	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("share: bad code: %w", err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("share: decode: %w", err)
	}
	if snap.Version != codecVersion {
		return nil, fmt.Errorf("share: unsupported version %d", snap.Version)
	}
	return &snap, nil
}

// Restore replays a snapshot onto a cleared board: paint the recorded
// tile states, then place the recorded units. Companion links and skill
// state are deliberately not shared; callers wanting live skills should
// re-place units through the transactional surface instead.
func Restore(board *hexmap.Board, snap *Snapshot) error {
	board.ClearAll()
	// Companion-heavy snapshots can exceed the default capacity; widen it
	// up front so the replacements below cannot be rejected for size.
	var counts [types.TeamCount]int
	for _, rec := range snap.Tiles {
		if rec.Num != 0 {
			// The snapshot crossed the sharing boundary; its team field is
			// untrusted input, not an invariant.
			if !types.Team(rec.Team).Valid() {
				return fmt.Errorf("share: tile %d: bad team %d", rec.ID, rec.Team)
			}
			counts[types.Team(rec.Team)]++
		}
	}
	for team := types.Team(0); team < types.TeamCount; team++ {
		if counts[team] > board.Capacity(team) {
			if !board.SetCapacity(team, counts[team]) {
				return fmt.Errorf("share: team %s: cannot fit %d units", team, counts[team])
			}
		}
	}
	for _, rec := range snap.Tiles {
		tile, err := board.TileByID(rec.ID)
		if err != nil {
			return err
		}
		state := hexmap.TileState(rec.State)
		occupied := rec.Num != 0
		if occupied {
			// Paint the deployment variant first; PlaceUnit flips it to
			// the occupied one.
			team := types.Team(rec.Team)
			if team == types.TeamA {
				state = hexmap.StateAvailableTeamA
			} else {
				state = hexmap.StateAvailableTeamB
			}
		}
		if !board.SetState(tile.Coord, state) {
			return fmt.Errorf("share: tile %d: bad state %d", rec.ID, rec.State)
		}
		if occupied {
			unit := types.UnitID{Num: rec.Num, Seq: rec.Seq}
			if !board.PlaceUnit(rec.ID, unit, types.Team(rec.Team), true) {
				return fmt.Errorf("share: tile %d: cannot restore %s", rec.ID, unit)
			}
		}
	}
	return nil
}

// internal/app/unit_management.go
package app

import (
	"fmt"

	"go-hex-tactics/internal/event"
	"go-hex-tactics/internal/skill"
	"go-hex-tactics/internal/types"
)

// PlaceUnit deploys a catalog unit onto the tile with the given position
// ID and activates its skill. Both happen in one transaction: a skill
// that cannot come up (say, a companion spawn with no free tile) takes
// the placement down with it.
func (g *Game) PlaceUnit(tileID int, num int, team types.Team) error {
	if _, ok := g.Registry.Unit(num); !ok {
		return fmt.Errorf("unknown unit catalog number %d", num)
	}
	unit := types.MainUnit(num)

	tx := NewTx()
	tx.Append("place",
		func() error {
			if !g.Board.PlaceUnit(tileID, unit, team, true) {
				return ErrRejected
			}
			return nil
		},
		func() { g.Board.RemoveUnit(tileID) },
	)
	tx.Append("activate-skill",
		func() error { return g.Skills.Activate(unit, team, tileID) },
		func() { g.Skills.Deactivate(unit, team) },
	)
	return g.run(tx, event.Event{Type: event.UnitPlaced, Data: tileID})
}

// RemoveUnit clears the occupant of a tile. Removing a main unit first
// deactivates its skill, which cascades to owned companions and restores
// any raised capacity; removing a companion only severs its link.
func (g *Game) RemoveUnit(tileID int) error {
	tile, err := g.Board.TileByID(tileID)
	if err != nil {
		return err
	}
	if !tile.Occupied {
		return fmt.Errorf("%w: tile %d is empty", ErrRejected, tileID)
	}
	unit := tile.Unit
	team := tile.Team

	tx := NewTx()
	if unit.IsCompanion() {
		main := unit.Main()
		tx.Append("unlink-companion",
			func() error { g.Board.UnlinkCompanion(main, team, unit); return nil },
			func() { g.Board.LinkCompanion(main, team, unit) },
		)
	} else {
		var snap *skill.Snapshot
		tx.Append("deactivate-skill",
			func() error { snap = g.Skills.Deactivate(unit, team); return nil },
			func() { g.Skills.Reactivate(snap) },
		)
	}
	tx.Append("remove",
		func() error {
			if !g.Board.RemoveUnit(tileID) {
				return ErrRejected
			}
			return nil
		},
		func() { g.Board.PlaceUnit(tileID, unit, team, true) },
	)
	return g.run(tx, event.Event{Type: event.UnitRemoved, Data: tileID})
}

// MoveUnit relocates a unit between tiles as remove+place. Moving onto
// the opposing team's deployment tile changes sides: the skill is torn
// down on the old team and reactivated on the new one, all inside the
// same transaction.
func (g *Game) MoveUnit(from, to int) error {
	fromTile, err := g.Board.TileByID(from)
	if err != nil {
		return err
	}
	toTile, err := g.Board.TileByID(to)
	if err != nil {
		return err
	}
	if !fromTile.Occupied {
		return fmt.Errorf("%w: tile %d is empty", ErrRejected, from)
	}
	unit := fromTile.Unit
	team := fromTile.Team
	cross := !toTile.CanHost(team) && toTile.CanHost(team.Opponent())
	if cross && unit.IsCompanion() {
		return fmt.Errorf("%w: companion %s cannot change sides", ErrRejected, unit)
	}

	tx := NewTx()
	newTeam := team
	if cross {
		newTeam = team.Opponent()
		var snap *skill.Snapshot
		tx.Append("deactivate-skill",
			func() error { snap = g.Skills.Deactivate(unit, team); return nil },
			func() { g.Skills.Reactivate(snap) },
		)
	}
	tx.Append("remove",
		func() error {
			if !g.Board.RemoveUnit(from) {
				return ErrRejected
			}
			return nil
		},
		func() { g.Board.PlaceUnit(from, unit, team, true) },
	)
	tx.Append("place",
		func() error {
			if !g.Board.PlaceUnit(to, unit, newTeam, cross) {
				return ErrRejected
			}
			return nil
		},
		func() { g.Board.RemoveUnit(to) },
	)
	if cross {
		tx.Append("activate-skill",
			func() error { return g.Skills.Activate(unit, newTeam, to) },
			func() { g.Skills.Deactivate(unit, newTeam) },
		)
	}
	return g.run(tx, event.Event{Type: event.UnitMoved, Data: [2]int{from, to}})
}

// SwapUnits exchanges the occupants of two tiles: remove both, place
// both. Any failing step rolls the whole exchange back, so a swap across
// incompatible deployment zones leaves the board untouched.
func (g *Game) SwapUnits(a, b int) error {
	tileA, err := g.Board.TileByID(a)
	if err != nil {
		return err
	}
	tileB, err := g.Board.TileByID(b)
	if err != nil {
		return err
	}
	if !tileA.Occupied || !tileB.Occupied {
		return fmt.Errorf("%w: swap needs two occupied tiles", ErrRejected)
	}
	unitA, teamA := tileA.Unit, tileA.Team
	unitB, teamB := tileB.Unit, tileB.Team

	tx := NewTx()
	tx.Append("remove-a",
		func() error {
			if !g.Board.RemoveUnit(a) {
				return ErrRejected
			}
			return nil
		},
		func() { g.Board.PlaceUnit(a, unitA, teamA, true) },
	)
	tx.Append("remove-b",
		func() error {
			if !g.Board.RemoveUnit(b) {
				return ErrRejected
			}
			return nil
		},
		func() { g.Board.PlaceUnit(b, unitB, teamB, true) },
	)
	tx.Append("place-b-at-a",
		func() error {
			if !g.Board.PlaceUnit(a, unitB, teamB, false) {
				return ErrRejected
			}
			return nil
		},
		func() { g.Board.RemoveUnit(a) },
	)
	tx.Append("place-a-at-b",
		func() error {
			if !g.Board.PlaceUnit(b, unitA, teamA, false) {
				return ErrRejected
			}
			return nil
		},
		func() { g.Board.RemoveUnit(b) },
	)
	return g.run(tx, event.Event{Type: event.UnitsSwapped, Data: [2]int{a, b}})
}

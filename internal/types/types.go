// internal/types/types.go
package types

import "fmt"

// Team identifies one of the two sides of the battlefield.
type Team int

const (
	TeamA Team = iota
	TeamB
	TeamCount
)

func (t Team) String() string {
	switch t {
	case TeamA:
		return "A"
	case TeamB:
		return "B"
	}
	return fmt.Sprintf("Team(%d)", int(t))
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// Valid reports whether t is one of the two playable teams.
func (t Team) Valid() bool {
	return t == TeamA || t == TeamB
}

// UnitID identifies a placed unit. Num is the catalog number of the main
// unit; Seq is 0 for the main unit itself and 1..n for companions spawned
// by its skill. The tagged form replaces the old "main number + 10000"
// convention, so a companion can never collide with a real catalog number.
type UnitID struct {
	Num int
	Seq int
}

// MainUnit returns the identifier of a main (non-companion) unit.
func MainUnit(num int) UnitID {
	return UnitID{Num: num}
}

// CompanionUnit returns the identifier of the seq-th companion of main.
func CompanionUnit(main UnitID, seq int) UnitID {
	return UnitID{Num: main.Num, Seq: seq}
}

// IsCompanion reports whether u was spawned by another unit's skill.
func (u UnitID) IsCompanion() bool {
	return u.Seq > 0
}

// Main returns the owning main unit (itself for a main unit).
func (u UnitID) Main() UnitID {
	return UnitID{Num: u.Num}
}

// Zero reports whether u is the zero identifier (no unit).
func (u UnitID) Zero() bool {
	return u.Num == 0 && u.Seq == 0
}

func (u UnitID) String() string {
	if u.IsCompanion() {
		return fmt.Sprintf("u%dc%d", u.Num, u.Seq)
	}
	return fmt.Sprintf("u%d", u.Num)
}

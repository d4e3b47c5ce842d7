// internal/skill/state.go
package skill

import (
	"image/color"

	"go-hex-tactics/internal/defs"
	"go-hex-tactics/internal/target"
	"go-hex-tactics/internal/types"
)

// Key identifies one skill state. Multi-target skills hold one state per
// target slot under the same (unit, team) pair; Slot is always 0 for
// single-target skills.
type Key struct {
	Unit types.UnitID
	Team types.Team
	Slot int
}

// ModifierKind classifies a visual modifier.
type ModifierKind int

const (
	ModifierSelf ModifierKind = iota
	ModifierCompanion
	ModifierTile // hint on the currently resolved target tile
)

// Modifier is a color hint registered by an active skill for the
// rendering collaborator. The engine only bookkeeps these; drawing is
// entirely the renderer's business.
type Modifier struct {
	Kind   ModifierKind
	Unit   types.UnitID
	TileID int
	Color  color.RGBA
}

// State is the per-key runtime state of an active skill. Target is
// derived and recomputed after every board change; the companion and
// capacity fields are activation bookkeeping used for deactivation and
// rollback.
type State struct {
	Key           Key
	Def           defs.SkillDefinition
	Target        *target.Info
	Companions    []types.UnitID
	CapacityDelta int
	Modifiers     []Modifier
}

func (s *State) clone() *State {
	cp := *s
	if s.Target != nil {
		t := *s.Target
		cp.Target = &t
	}
	cp.Companions = append([]types.UnitID(nil), s.Companions...)
	cp.Modifiers = append([]Modifier(nil), s.Modifiers...)
	return &cp
}

// placedCompanion records where a companion stood when its owner's skill
// was deactivated, so a transaction rollback can put it back.
type placedCompanion struct {
	Unit   types.UnitID
	TileID int
}

// Snapshot captures everything a Deactivate tore down. Reactivate
// replays it verbatim; it exists purely as the paired rollback action of
// the remove transaction step.
type Snapshot struct {
	Unit          types.UnitID
	Team          types.Team
	States        []*State
	Companions    []placedCompanion
	CapacityDelta int
}

func skillColor(def defs.SkillDefinition) color.RGBA {
	c := def.Color
	if c == [4]uint8{} {
		return color.RGBA{255, 255, 0, 200}
	}
	return color.RGBA{c[0], c[1], c[2], c[3]}
}

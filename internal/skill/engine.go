// internal/skill/engine.go
package skill

import (
	"errors"
	"fmt"
	"sort"

	"go-hex-tactics/internal/defs"
	"go-hex-tactics/internal/target"
	"go-hex-tactics/internal/types"
	"go-hex-tactics/pkg/hexmap"
)

// ErrActivationFailed marks a skill that could not come up, most commonly
// a companion spawn with no free deployment tile. The transaction running
// the activation turns it into a full rollback.
var ErrActivationFailed = errors.New("skill: activation failed")

// Engine drives the per-unit skill state machine: Inactive -> Active on
// placement, recompute on every board change, Active -> Inactive on
// removal. All lookups go through the injected registry; the engine keeps
// no global tables.
type Engine struct {
	registry *defs.Registry
	board    *hexmap.Board
	resolver *target.Resolver
	states   map[Key]*State
}

// NewEngine builds an engine over the given collaborators.
func NewEngine(registry *defs.Registry, board *hexmap.Board, resolver *target.Resolver) *Engine {
	return &Engine{
		registry: registry,
		board:    board,
		resolver: resolver,
		states:   make(map[Key]*State),
	}
}

// Active reports whether any skill state exists for (unit, team).
func (e *Engine) Active(unit types.UnitID, team types.Team) bool {
	for key := range e.states {
		if key.Unit == unit && key.Team == team {
			return true
		}
	}
	return false
}

// States returns the active skill states in deterministic key order.
func (e *Engine) States() []*State {
	out := make([]*State, 0, len(e.states))
	for _, st := range e.states {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return keyLess(out[i].Key, out[j].Key) })
	return out
}

// Modifiers returns every registered visual modifier, in state order.
func (e *Engine) Modifiers() []Modifier {
	var out []Modifier
	for _, st := range e.States() {
		out = append(out, st.Modifiers...)
	}
	return out
}

// Activate brings up the skill of a freshly placed unit. Units without a
// skill are a no-op. A companion skill raises the team capacity and
// spawns its companions; any failure there unwinds the partial work and
// returns ErrActivationFailed so the enclosing transaction rolls back.
// Targeting skills compute their initial TargetInfo; an empty board
// simply leaves it cleared, which is not a failure.
func (e *Engine) Activate(unit types.UnitID, team types.Team, tileID int) error {
	def, ok := e.registry.UnitSkill(unit.Num)
	if !ok || unit.IsCompanion() {
		return nil
	}
	if e.Active(unit, team) {
		return fmt.Errorf("%w: %s already active for team %s", ErrActivationFailed, unit, team)
	}
	if def.Strategy == defs.StrategyCompanion {
		return e.activateCompanion(unit, team, tileID, def)
	}
	for slot := 0; slot < def.Slots(); slot++ {
		st := &State{
			Key: Key{Unit: unit, Team: team, Slot: slot},
			Def: def,
		}
		if slot == 0 {
			st.Modifiers = []Modifier{{Kind: ModifierSelf, Unit: unit, Color: skillColor(def)}}
		}
		e.states[st.Key] = st
	}
	e.refreshUnit(unit, team)
	return nil
}

func (e *Engine) activateCompanion(unit types.UnitID, team types.Team, tileID int, def defs.SkillDefinition) error {
	if !e.board.AdjustCapacity(team, def.Companions) {
		return fmt.Errorf("%w: cannot raise team %s capacity by %d", ErrActivationFailed, team, def.Companions)
	}
	st := &State{
		Key:           Key{Unit: unit, Team: team},
		Def:           def,
		CapacityDelta: def.Companions,
		Modifiers:     []Modifier{{Kind: ModifierSelf, Unit: unit, Color: skillColor(def)}},
	}
	for seq := 1; seq <= def.Companions; seq++ {
		comp := types.CompanionUnit(unit, seq)
		spawnTile, ok := e.resolver.FreeDeployTile(team, tileID)
		if !ok || !e.board.PlaceUnit(spawnTile, comp, team, true) {
			e.unwindCompanions(st, team)
			return fmt.Errorf("%w: no free tile for companion %s", ErrActivationFailed, comp)
		}
		e.board.LinkCompanion(unit, team, comp)
		st.Companions = append(st.Companions, comp)
		st.Modifiers = append(st.Modifiers, Modifier{Kind: ModifierCompanion, Unit: comp, Color: skillColor(def)})
	}
	e.states[st.Key] = st
	return nil
}

// unwindCompanions undoes a partially applied companion activation.
func (e *Engine) unwindCompanions(st *State, team types.Team) {
	for i := len(st.Companions) - 1; i >= 0; i-- {
		comp := st.Companions[i]
		if tileID, ok := e.board.UnitTile(comp, team); ok {
			e.board.RemoveUnit(tileID)
		}
		e.board.UnlinkCompanion(st.Key.Unit, team, comp)
	}
	st.Companions = nil
	e.board.AdjustCapacity(team, -st.CapacityDelta)
}

// Deactivate tears down every state of (unit, team): visual modifiers
// are dropped, owned companions are removed from the board in cascade,
// and any raised capacity is restored. The returned snapshot replays the
// teardown in reverse and is the paired rollback action for transaction
// steps; callers that cannot fail afterwards may discard it.
func (e *Engine) Deactivate(unit types.UnitID, team types.Team) *Snapshot {
	snap := &Snapshot{Unit: unit, Team: team}
	for _, key := range e.unitKeys(unit, team) {
		st := e.states[key]
		snap.States = append(snap.States, st.clone())
		for _, comp := range st.Companions {
			if tileID, ok := e.board.UnitTile(comp, team); ok {
				snap.Companions = append(snap.Companions, placedCompanion{Unit: comp, TileID: tileID})
				e.board.RemoveUnit(tileID)
			}
			e.board.UnlinkCompanion(unit, team, comp)
		}
		if st.CapacityDelta != 0 {
			e.board.AdjustCapacity(team, -st.CapacityDelta)
			snap.CapacityDelta = st.CapacityDelta
		}
		delete(e.states, key)
	}
	return snap
}

// Reactivate restores a deactivated skill from its snapshot: capacity
// first, then companions on their previous tiles, then the saved states.
// Companions are re-placed, never re-spawned, so the board ends exactly
// where it was.
func (e *Engine) Reactivate(snap *Snapshot) {
	if snap == nil {
		return
	}
	if snap.CapacityDelta != 0 {
		e.board.AdjustCapacity(snap.Team, snap.CapacityDelta)
	}
	for _, pc := range snap.Companions {
		e.board.PlaceUnit(pc.TileID, pc.Unit, snap.Team, true)
		e.board.LinkCompanion(snap.Unit, snap.Team, pc.Unit)
	}
	for _, st := range snap.States {
		e.states[st.Key] = st
	}
}

// Refresh recomputes the TargetInfo of every active state. It runs after
// each mutating transaction and touches nothing but targets: companions
// are never re-spawned here.
func (e *Engine) Refresh() {
	byOwner := make(map[Key][]Key)
	for key := range e.states {
		owner := Key{Unit: key.Unit, Team: key.Team}
		byOwner[owner] = append(byOwner[owner], key)
	}
	owners := make([]Key, 0, len(byOwner))
	for owner := range byOwner {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool { return keyLess(owners[i], owners[j]) })
	for _, owner := range owners {
		e.refreshUnit(owner.Unit, owner.Team)
	}
}

// Reset drops every state without touching the board. ClearAll uses it
// after the board itself has been wiped.
func (e *Engine) Reset() {
	e.states = make(map[Key]*State)
}

// refreshUnit recomputes targets for all slots of one unit, threading the
// lower slots' picks through as exclusions so a multi-target skill never
// selects the same candidate twice. The tile modifier follows the resolved
// target; the self and companion modifiers are activation-scoped and stay.
func (e *Engine) refreshUnit(unit types.UnitID, team types.Team) {
	excluded := make(map[int]struct{})
	for _, key := range e.unitKeys(unit, team) {
		st := e.states[key]
		st.Modifiers = dropTileModifiers(st.Modifiers)
		info, ok := e.compute(st, excluded)
		if !ok {
			st.Target = nil
			continue
		}
		st.Target = &info
		st.Modifiers = append(st.Modifiers, Modifier{
			Kind:   ModifierTile,
			TileID: info.TileID,
			Color:  skillColor(st.Def),
		})
		excluded[info.TileID] = struct{}{}
	}
}

func dropTileModifiers(mods []Modifier) []Modifier {
	out := mods[:0]
	for _, m := range mods {
		if m.Kind != ModifierTile {
			out = append(out, m)
		}
	}
	return out
}

// compute runs the state's strategy against the current board.
func (e *Engine) compute(st *State, excluded map[int]struct{}) (target.Info, bool) {
	unit := st.Key.Unit
	team := st.Key.Team
	srcTile, onBoard := e.board.UnitTile(unit, team)
	if !onBoard {
		return target.Info{}, false
	}
	unitDef, ok := e.registry.Unit(unit.Num)
	if !ok {
		return target.Info{}, false
	}
	targetTeam := team
	if st.Def.Side != defs.SideAlly {
		targetTeam = team.Opponent()
	}

	switch st.Def.Strategy {
	case defs.StrategyClosest, defs.StrategyFurthest:
		pool := e.resolver.Pool(targetTeam, st.Def.IncludeCompanions)
		pool = filterPool(pool, srcTile, excluded)
		if st.Def.Strategy == defs.StrategyClosest {
			return e.resolver.Closest(srcTile, team, unitDef.Range, pool)
		}
		return e.resolver.Furthest(srcTile, team, pool)
	case defs.StrategyFrontmost:
		return e.resolver.Frontmost(targetTeam, st.Def.IncludeCompanions)
	case defs.StrategyRearmost:
		return e.resolver.Rearmost(targetTeam, st.Def.IncludeCompanions)
	case defs.StrategyMirror:
		return e.resolver.Mirror(srcTile, team, targetTeam, st.Def.IncludeCompanions)
	case defs.StrategySpiral:
		return e.resolver.Spiral(srcTile, team, targetTeam, st.Def.IncludeCompanions)
	}
	return target.Info{}, false
}

func (e *Engine) unitKeys(unit types.UnitID, team types.Team) []Key {
	var keys []Key
	for key := range e.states {
		if key.Unit == unit && key.Team == team {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Slot < keys[j].Slot })
	return keys
}

func filterPool(pool []int, srcTile int, excluded map[int]struct{}) []int {
	out := pool[:0]
	for _, id := range pool {
		if id == srcTile {
			continue
		}
		if _, skip := excluded[id]; skip {
			continue
		}
		out = append(out, id)
	}
	return out
}

func keyLess(a, b Key) bool {
	if a.Team != b.Team {
		return a.Team < b.Team
	}
	if a.Unit.Num != b.Unit.Num {
		return a.Unit.Num < b.Unit.Num
	}
	if a.Unit.Seq != b.Unit.Seq {
		return a.Unit.Seq < b.Unit.Seq
	}
	return a.Slot < b.Slot
}

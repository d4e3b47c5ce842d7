// internal/app/game_test.go
package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-hex-tactics/internal/config"
	"go-hex-tactics/internal/defs"
	"go-hex-tactics/internal/event"
	"go-hex-tactics/internal/types"
	"go-hex-tactics/pkg/hexmap"
)

func testRegistry(t *testing.T) *defs.Registry {
	t.Helper()
	units := []defs.UnitDefinition{
		{Num: 1, ID: "UNIT_HUNTER", Name: "Hunter", Range: 1, SkillID: "SKILL_CLOSEST"},
		{Num: 2, ID: "UNIT_SUMMONER", Name: "Summoner", Range: 1, SkillID: "SKILL_PACK"},
		{Num: 3, ID: "UNIT_PLAIN", Name: "Plain", Range: 1},
	}
	skills := []defs.SkillDefinition{
		{ID: "SKILL_CLOSEST", Name: "Hunt", Strategy: defs.StrategyClosest, Side: defs.SideEnemy},
		{ID: "SKILL_PACK", Name: "Pack", Strategy: defs.StrategyCompanion, Side: defs.SideAlly, Companions: 2},
	}
	registry, err := defs.NewRegistry(units, skills)
	require.NoError(t, err)
	return registry
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(testRegistry(t), hexmap.DefaultPreset())
	require.NoError(t, err)
	return g
}

// boardFingerprint captures everything a rollback must preserve.
func boardFingerprint(g *Game) map[int]hexmap.Tile {
	out := make(map[int]hexmap.Tile)
	for _, tile := range g.Board.AllTiles() {
		out[tile.ID] = *tile
	}
	return out
}

func TestPlaceUnknownCatalogNumber(t *testing.T) {
	g := newTestGame(t)
	require.Error(t, g.PlaceUnit(50, 99, types.TeamA))
	require.Equal(t, 0, g.Board.TeamSize(types.TeamA))
}

func TestPlaceAndRemoveRoundTrip(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(47, 1, types.TeamA))
	require.True(t, g.Skills.Active(types.MainUnit(1), types.TeamA))

	require.NoError(t, g.RemoveUnit(47))
	require.False(t, g.Skills.Active(types.MainUnit(1), types.TeamA))
	tile, _ := g.Board.TileByID(47)
	require.False(t, tile.Occupied)
	require.Equal(t, hexmap.StateAvailableTeamA, tile.State)
}

func TestPlaceIntoWrongZoneRollsBack(t *testing.T) {
	g := newTestGame(t)
	before := boardFingerprint(g)
	err := g.PlaceUnit(28, 1, types.TeamA) // neutral tile
	require.ErrorIs(t, err, ErrTransactionFailed)
	require.Equal(t, before, boardFingerprint(g))
}

func TestPlaceSummonerSpawnsCompanions(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(50, 2, types.TeamA))
	require.Equal(t, 3, g.Board.TeamSize(types.TeamA))
	require.Equal(t, config.DefaultTeamSize+2, g.Board.Capacity(types.TeamA))
}

func TestPlaceSummonerWithoutRoomRollsBack(t *testing.T) {
	g := newTestGame(t)
	for _, tile := range g.Board.AllTiles() {
		if tile.ID != 50 && tile.CanHost(types.TeamA) {
			require.True(t, g.Board.SetState(tile.Coord, hexmap.StateDefault))
		}
	}
	before := boardFingerprint(g)

	err := g.PlaceUnit(50, 2, types.TeamA)
	require.ErrorIs(t, err, ErrTransactionFailed)
	// The placement itself is gone too: all or nothing.
	require.Equal(t, before, boardFingerprint(g))
	require.Equal(t, 0, g.Board.TeamSize(types.TeamA))
	require.Equal(t, config.DefaultTeamSize, g.Board.Capacity(types.TeamA))
}

func TestRemoveMainCascadesToCompanions(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(50, 2, types.TeamA))
	require.NoError(t, g.RemoveUnit(50))

	require.Equal(t, 0, g.Board.TeamSize(types.TeamA))
	require.Equal(t, config.DefaultTeamSize, g.Board.Capacity(types.TeamA))
	require.Empty(t, g.Skills.States())
}

func TestRemoveCompanionOnlySeversLink(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(50, 2, types.TeamA))
	main := types.MainUnit(2)
	comps := g.Board.Companions(main, types.TeamA)
	require.Len(t, comps, 2)
	compTile, ok := g.Board.UnitTile(comps[0], types.TeamA)
	require.True(t, ok)

	require.NoError(t, g.RemoveUnit(compTile))
	require.Equal(t, 2, g.Board.TeamSize(types.TeamA)) // main + one companion
	require.Len(t, g.Board.Companions(main, types.TeamA), 1)
	require.True(t, g.Skills.Active(main, types.TeamA))
}

func TestRemoveEmptyTile(t *testing.T) {
	g := newTestGame(t)
	require.ErrorIs(t, g.RemoveUnit(50), ErrRejected)
}

func TestMoveWithinZone(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(47, 1, types.TeamA))
	require.NoError(t, g.MoveUnit(47, 53))

	from, _ := g.Board.TileByID(47)
	to, _ := g.Board.TileByID(53)
	require.False(t, from.Occupied)
	require.True(t, to.Occupied)
	require.Equal(t, types.MainUnit(1), to.Unit)
	require.True(t, g.Skills.Active(types.MainUnit(1), types.TeamA))
}

func TestMoveAcrossTeamsSwitchesSides(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(47, 1, types.TeamA))
	require.NoError(t, g.MoveUnit(47, 5)) // team B's zone

	to, _ := g.Board.TileByID(5)
	require.True(t, to.Occupied)
	require.Equal(t, types.TeamB, to.Team)
	require.False(t, g.Skills.Active(types.MainUnit(1), types.TeamA))
	require.True(t, g.Skills.Active(types.MainUnit(1), types.TeamB))
	require.Equal(t, 0, g.Board.TeamSize(types.TeamA))
	require.Equal(t, 1, g.Board.TeamSize(types.TeamB))
}

func TestMoveCompanionAcrossTeamsRejected(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(50, 2, types.TeamA))
	comps := g.Board.Companions(types.MainUnit(2), types.TeamA)
	compTile, _ := g.Board.UnitTile(comps[0], types.TeamA)

	before := boardFingerprint(g)
	require.ErrorIs(t, g.MoveUnit(compTile, 5), ErrRejected)
	require.Equal(t, before, boardFingerprint(g))
}

func TestMoveOntoOccupiedTileRollsBack(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(47, 1, types.TeamA))
	require.NoError(t, g.PlaceUnit(53, 3, types.TeamA))

	before := boardFingerprint(g)
	require.ErrorIs(t, g.MoveUnit(47, 53), ErrTransactionFailed)
	require.Equal(t, before, boardFingerprint(g))
}

func TestSwapIsSelfInverse(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(47, 1, types.TeamA))
	require.NoError(t, g.PlaceUnit(53, 3, types.TeamA))

	require.NoError(t, g.SwapUnits(47, 53))
	a, _ := g.Board.TileByID(47)
	b, _ := g.Board.TileByID(53)
	require.Equal(t, types.MainUnit(3), a.Unit)
	require.Equal(t, types.MainUnit(1), b.Unit)

	require.NoError(t, g.SwapUnits(47, 53))
	require.Equal(t, types.MainUnit(1), a.Unit)
	require.Equal(t, types.MainUnit(3), b.Unit)
}

func TestSwapAcrossZonesRollsBack(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(47, 1, types.TeamA))
	require.NoError(t, g.PlaceUnit(5, 3, types.TeamB))

	before := boardFingerprint(g)
	require.ErrorIs(t, g.SwapUnits(47, 5), ErrTransactionFailed)
	require.Equal(t, before, boardFingerprint(g))
}

func TestSwapNeedsTwoOccupiedTiles(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(47, 1, types.TeamA))
	require.ErrorIs(t, g.SwapUnits(47, 53), ErrRejected)
}

func TestTargetsFollowBoardChanges(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(47, 1, types.TeamA))
	require.NoError(t, g.PlaceUnit(5, 3, types.TeamB))

	states := g.Skills.States()
	require.Len(t, states, 1)
	require.NotNil(t, states[0].Target)
	require.Equal(t, 5, states[0].Target.TileID)

	// The enemy moves; the hunter's target follows without any explicit
	// refresh call.
	require.NoError(t, g.MoveUnit(5, 16))
	require.Equal(t, 16, g.Skills.States()[0].Target.TileID)
}

type countingListener struct{ n int }

func (l *countingListener) OnEvent(event.Event) { l.n++ }

func TestEventsOnlyOnCommit(t *testing.T) {
	g := newTestGame(t)
	placed := &countingListener{}
	changed := &countingListener{}
	g.Dispatcher.Subscribe(event.UnitPlaced, placed)
	g.Dispatcher.Subscribe(event.BoardChanged, changed)

	require.NoError(t, g.PlaceUnit(47, 1, types.TeamA))
	require.Equal(t, 1, placed.n)
	require.Equal(t, 1, changed.n)

	require.Error(t, g.PlaceUnit(28, 1, types.TeamA))
	require.Equal(t, 1, placed.n)
	require.Equal(t, 1, changed.n)
}

func TestPaint(t *testing.T) {
	g := newTestGame(t)
	require.True(t, g.Paint(hexmap.Hex{Q: 4, R: 2}, hexmap.StateBlocked))
	tile, _ := g.Board.TileByID(28)
	require.Equal(t, hexmap.StateBlocked, tile.State)
	require.False(t, g.Paint(hexmap.Hex{Q: 4, R: 2}, hexmap.TileState(99)))
}

func TestClearAll(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.PlaceUnit(50, 2, types.TeamA))
	require.NoError(t, g.PlaceUnit(5, 3, types.TeamB))

	g.ClearAll()
	require.Equal(t, 0, g.Board.TeamSize(types.TeamA))
	require.Equal(t, 0, g.Board.TeamSize(types.TeamB))
	require.Equal(t, config.DefaultTeamSize, g.Board.Capacity(types.TeamA))
	require.Empty(t, g.Skills.States())
}

func TestSetMaxTeamSize(t *testing.T) {
	g := newTestGame(t)
	require.True(t, g.SetMaxTeamSize(types.TeamA, 8))
	require.Equal(t, 8, g.Board.Capacity(types.TeamA))
	require.False(t, g.SetMaxTeamSize(types.TeamA, -1))
}

// internal/target/spiral_test.go
package target

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-hex-tactics/internal/types"
	"go-hex-tactics/pkg/hexmap"
)

// Tile 28 is the board's center; tiles 17 and 40 lie on its first ring.
// Team A's clockwise walk meets tile 17 first, team B's counter-clockwise
// walk meets tile 40 first. These orders are fixed conventions, so the
// expectations are literal.
func TestSpiralOrderIsTeamSpecific(t *testing.T) {
	r, board := newResolver(t)
	occupy(t, board, 17, types.MainUnit(1), types.TeamB)
	occupy(t, board, 40, types.MainUnit(2), types.TeamB)

	info, ok := r.Spiral(28, types.TeamA, types.TeamB, false)
	require.True(t, ok)
	require.Equal(t, 17, info.TileID)
	require.Equal(t, 1, info.Moves)

	info, ok = r.Spiral(28, types.TeamB, types.TeamB, false)
	require.True(t, ok)
	require.Equal(t, 40, info.TileID)
}

func TestSpiralRingOne(t *testing.T) {
	board, err := hexmap.NewBoard(hexmap.DefaultPreset())
	require.NoError(t, err)
	center, err := board.TileByID(28)
	require.NoError(t, err)

	toIDs := func(order [6]int) []int {
		var ids []int
		for _, coord := range ringWalk(center.Coord, 1, order) {
			tile, err := board.Tile(coord)
			require.NoError(t, err)
			ids = append(ids, tile.ID)
		}
		return ids
	}
	require.Equal(t, []int{17, 29, 39, 40, 27, 18}, toIDs(teamASpiralOrder))
	require.Equal(t, []int{40, 39, 29, 17, 18, 27}, toIDs(teamBSpiralOrder))
}

func TestRingWalkCoversRing(t *testing.T) {
	center := hexmap.Hex{Q: 0, R: 0}
	for radius := 1; radius <= 3; radius++ {
		ring := ringWalk(center, radius, teamASpiralOrder)
		require.Len(t, ring, 6*radius)
		seen := make(map[hexmap.Hex]bool)
		for _, h := range ring {
			require.Equal(t, radius, center.Distance(h))
			require.False(t, seen[h], "hex %v repeated", h)
			seen[h] = true
		}
	}
}

func TestSpiralSkipsCompanions(t *testing.T) {
	r, board := newResolver(t)
	main := types.MainUnit(4)
	occupy(t, board, 17, types.CompanionUnit(main, 1), types.TeamB)
	occupy(t, board, 40, main, types.TeamB)

	info, ok := r.Spiral(28, types.TeamA, types.TeamB, false)
	require.True(t, ok)
	require.Equal(t, 40, info.TileID)

	info, ok = r.Spiral(28, types.TeamA, types.TeamB, true)
	require.True(t, ok)
	require.Equal(t, 17, info.TileID)
}

func TestSpiralNoTarget(t *testing.T) {
	r, _ := newResolver(t)
	_, ok := r.Spiral(28, types.TeamA, types.TeamB, false)
	require.False(t, ok)
}

func TestFreeDeployTile(t *testing.T) {
	r, _ := newResolver(t)

	// From the center, team A's walk reaches its zone first at tile 39,
	// team B's at tile 17.
	id, ok := r.FreeDeployTile(types.TeamA, 28)
	require.True(t, ok)
	require.Equal(t, 39, id)

	id, ok = r.FreeDeployTile(types.TeamB, 28)
	require.True(t, ok)
	require.Equal(t, 17, id)
}

func TestFreeDeployTileSkipsOccupied(t *testing.T) {
	r, board := newResolver(t)
	require.True(t, board.PlaceUnit(39, types.MainUnit(1), types.TeamA, true))

	id, ok := r.FreeDeployTile(types.TeamA, 28)
	require.True(t, ok)
	require.Equal(t, 40, id)
}

func TestFreeDeployTileNoneLeft(t *testing.T) {
	r, board := newResolver(t)
	for _, tile := range board.AllTiles() {
		if tile.CanHost(types.TeamA) {
			require.True(t, board.SetState(tile.Coord, hexmap.StateDefault))
		}
	}
	_, ok := r.FreeDeployTile(types.TeamA, 28)
	require.False(t, ok)
}

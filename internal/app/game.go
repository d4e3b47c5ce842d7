// internal/app/game.go
package app

import (
	"go-hex-tactics/internal/defs"
	"go-hex-tactics/internal/event"
	"go-hex-tactics/internal/skill"
	"go-hex-tactics/internal/target"
	"go-hex-tactics/internal/types"
	"go-hex-tactics/pkg/hexmap"
)

// Game wires the board, searches, resolver and skill engine together and
// owns the sole mutation path. Everything mutating goes through a
// transaction; read-only queries may interleave freely between them.
type Game struct {
	Board      *hexmap.Board
	Paths      *hexmap.Pathfinder
	Resolver   *target.Resolver
	Skills     *skill.Engine
	Registry   *defs.Registry
	Dispatcher *event.Dispatcher
}

// skillRefresher re-derives every active skill target after a board
// change. It subscribes to BoardChanged so refresh ordering is uniform no
// matter which operation mutated the board.
type skillRefresher struct {
	skills *skill.Engine
}

func (l *skillRefresher) OnEvent(event.Event) {
	l.skills.Refresh()
}

// NewGame builds a game over a registry and board preset.
func NewGame(registry *defs.Registry, preset *hexmap.Preset) (*Game, error) {
	board, err := hexmap.NewBoard(preset)
	if err != nil {
		return nil, err
	}
	paths := hexmap.NewPathfinder(board)
	resolver := target.NewResolver(board, paths)
	dispatcher := event.NewDispatcher()
	g := &Game{
		Board:      board,
		Paths:      paths,
		Resolver:   resolver,
		Skills:     skill.NewEngine(registry, board, resolver),
		Registry:   registry,
		Dispatcher: dispatcher,
	}
	dispatcher.Subscribe(event.BoardChanged, &skillRefresher{skills: g.Skills})
	return g, nil
}

// run executes a transaction and settles the aftermath: caches are
// invalidated exactly once whether the transaction committed or rolled
// back, and only a commit dispatches events (the rollback case left the
// board as it was).
func (g *Game) run(tx *Tx, events ...event.Event) error {
	err := tx.Run()
	g.Paths.Invalidate()
	if err != nil {
		return err
	}
	for _, e := range events {
		g.Dispatcher.Dispatch(e)
	}
	g.Dispatcher.Dispatch(event.Event{Type: event.BoardChanged})
	return nil
}

// Paint is the map-editor surface: it overwrites one tile's occupancy
// state directly. Out-of-range states are refused.
func (g *Game) Paint(coord hexmap.Hex, state hexmap.TileState) bool {
	if !g.Board.SetState(coord, state) {
		return false
	}
	g.Paths.Invalidate()
	g.Dispatcher.Dispatch(event.Event{Type: event.BoardChanged})
	return true
}

// SetMaxTeamSize changes a team's capacity within the legal bounds.
func (g *Game) SetMaxTeamSize(team types.Team, n int) bool {
	if !g.Board.SetCapacity(team, n) {
		return false
	}
	g.Paths.Invalidate()
	g.Dispatcher.Dispatch(event.Event{Type: event.CapacityChanged, Data: team})
	g.Dispatcher.Dispatch(event.Event{Type: event.BoardChanged})
	return true
}

// ClearAll wipes units, links and capacities back to the preset.
func (g *Game) ClearAll() {
	g.Board.ClearAll()
	g.Skills.Reset()
	g.Paths.Invalidate()
	g.Dispatcher.Dispatch(event.Event{Type: event.BoardCleared})
	g.Dispatcher.Dispatch(event.Event{Type: event.BoardChanged})
}

// cmd/game/main.go
package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-hex-tactics/internal/app"
	"go-hex-tactics/internal/config"
	"go-hex-tactics/internal/defs"
	"go-hex-tactics/internal/share"
	"go-hex-tactics/internal/types"
	"go-hex-tactics/pkg/hexmap"
	"go-hex-tactics/pkg/render"
)

// AppGame is the interactive sandbox around the positioning engine:
// click a deployment tile to place the next roster unit, click a unit
// then a destination to move or swap, right-click to remove. C clears
// the board, X copies a share code to the clipboard.
type AppGame struct {
	game     *app.Game
	renderer *render.BoardRenderer
	roster   []int
	nextUnit [types.TeamCount]int
	selected int // position ID of the selected unit tile, 0 when none
}

func (a *AppGame) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.leftClick(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		a.rightClick(float64(x), float64(y))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.game.ClearAll()
		a.selected = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		a.copyShareCode()
	}
	return nil
}

func (a *AppGame) leftClick(x, y float64) {
	coord := a.renderer.HexAt(x, y)
	tile, err := a.game.Board.Tile(coord)
	if err != nil {
		a.selected = 0
		return
	}

	if a.selected != 0 {
		from := a.selected
		a.selected = 0
		if tile.ID == from {
			return
		}
		var opErr error
		if tile.Occupied {
			opErr = a.game.SwapUnits(from, tile.ID)
		} else {
			opErr = a.game.MoveUnit(from, tile.ID)
		}
		if opErr != nil {
			log.Printf("move/swap %d -> %d: %v", from, tile.ID, opErr)
		}
		return
	}

	if tile.Occupied {
		a.selected = tile.ID
		return
	}
	team, ok := hexmap.DeployTeam(tile.State)
	if !ok {
		return
	}
	num := a.roster[a.nextUnit[team]%len(a.roster)]
	if err := a.game.PlaceUnit(tile.ID, num, team); err != nil {
		if !errors.Is(err, app.ErrTransactionFailed) {
			log.Printf("place u%d at %d: %v", num, tile.ID, err)
		}
		return
	}
	a.nextUnit[team]++
}

func (a *AppGame) rightClick(x, y float64) {
	coord := a.renderer.HexAt(x, y)
	tile, err := a.game.Board.Tile(coord)
	if err != nil || !tile.Occupied {
		return
	}
	if err := a.game.RemoveUnit(tile.ID); err != nil {
		log.Printf("remove at %d: %v", tile.ID, err)
	}
	if a.selected == tile.ID {
		a.selected = 0
	}
}

func (a *AppGame) copyShareCode() {
	code, err := share.Encode(a.game.Board, [2]string{})
	if err != nil {
		log.Printf("share: %v", err)
		return
	}
	if err := share.CopyToClipboard(code); err != nil {
		log.Printf("clipboard: %v", err)
		return
	}
	log.Printf("share code copied (%d chars)", len(code))
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	a.renderer.Draw(screen, a.game.Skills)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func demoRegistry() *defs.Registry {
	units := []defs.UnitDefinition{
		{Num: 1, ID: "UNIT_VANGUARD", Name: "Vanguard", Faction: "Dawn", Class: "Warrior", Range: 1, SkillID: "SKILL_CLOSEST"},
		{Num: 2, ID: "UNIT_SNIPER", Name: "Sniper", Faction: "Dawn", Class: "Ranger", Range: 3, SkillID: "SKILL_REARMOST"},
		{Num: 3, ID: "UNIT_ADEPT", Name: "Mirror Adept", Faction: "Dusk", Class: "Mage", Range: 2, SkillID: "SKILL_MIRROR"},
		{Num: 4, ID: "UNIT_BEASTCALLER", Name: "Beastcaller", Faction: "Wild", Class: "Summoner", Range: 1, SkillID: "SKILL_PACK"},
		{Num: 5, ID: "UNIT_TWINFLAME", Name: "Twin Flame", Faction: "Dusk", Class: "Mage", Range: 2, SkillID: "SKILL_TWIN"},
		{Num: 6, ID: "UNIT_SEEKER", Name: "Seeker", Faction: "Wild", Class: "Scout", Range: 1, SkillID: "SKILL_SPIRAL"},
		{Num: 7, ID: "UNIT_WARDEN", Name: "Warden", Faction: "Dawn", Class: "Guardian", Range: 1, SkillID: "SKILL_FRONTMOST"},
	}
	skills := []defs.SkillDefinition{
		{ID: "SKILL_CLOSEST", Name: "Hunt", Strategy: defs.StrategyClosest, Side: defs.SideEnemy, Color: [4]uint8{255, 80, 80, 220}},
		{ID: "SKILL_REARMOST", Name: "Longshot", Strategy: defs.StrategyRearmost, Side: defs.SideEnemy, Color: [4]uint8{255, 180, 60, 220}},
		{ID: "SKILL_MIRROR", Name: "Reflection", Strategy: defs.StrategyMirror, Side: defs.SideEnemy, Color: [4]uint8{120, 200, 255, 220}},
		{ID: "SKILL_PACK", Name: "Call of the Pack", Strategy: defs.StrategyCompanion, Side: defs.SideAlly, Companions: 2, Color: [4]uint8{120, 255, 120, 220}},
		{ID: "SKILL_TWIN", Name: "Twin Strike", Strategy: defs.StrategyClosest, Side: defs.SideEnemy, Targets: 2, Color: [4]uint8{255, 120, 255, 220}},
		{ID: "SKILL_SPIRAL", Name: "Prowl", Strategy: defs.StrategySpiral, Side: defs.SideEnemy, Color: [4]uint8{200, 200, 120, 220}},
		{ID: "SKILL_FRONTMOST", Name: "Challenge", Strategy: defs.StrategyFrontmost, Side: defs.SideEnemy, Color: [4]uint8{255, 255, 255, 220}},
	}
	registry, err := defs.NewRegistry(units, skills)
	if err != nil {
		log.Fatal(err)
	}
	return registry
}

func main() {
	registry := demoRegistry()
	game, err := app.NewGame(registry, hexmap.DefaultPreset())
	if err != nil {
		log.Fatal(err)
	}
	a := &AppGame{
		game:     game,
		renderer: render.NewBoardRenderer(game.Board, config.HexSize, config.ScreenWidth, config.ScreenHeight),
		roster:   []int{1, 2, 3, 4, 5, 6, 7},
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Hex Tactics Sandbox")
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}

// pkg/render/board_renderer.go
package render

import (
	"image/color"
	"log"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"go-hex-tactics/internal/config"
	"go-hex-tactics/internal/skill"
	"go-hex-tactics/internal/types"
	"go-hex-tactics/internal/ui"
	"go-hex-tactics/pkg/hexmap"
)

// BoardRenderer draws the battlefield: tile fills by occupancy state,
// position-ID labels, unit markers and the active skill indicators.
type BoardRenderer struct {
	board     *hexmap.Board
	hexSize   float64
	offsetX   float64
	offsetY   float64
	fillImg   *ebiten.Image
	fillVs    []ebiten.Vertex
	fillIs    []uint16
	fontFace  font.Face
	indicator *ui.TargetIndicator
}

// NewBoardRenderer builds a renderer centered on the screen.
func NewBoardRenderer(board *hexmap.Board, hexSize float64, screenWidth, screenHeight int) *BoardRenderer {
	fillImg := ebiten.NewImage(1, 1)
	fillImg.Fill(color.White)

	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    11,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Fatal(err)
	}

	r := &BoardRenderer{
		board:     board,
		hexSize:   hexSize,
		fillImg:   fillImg,
		fillVs:    make([]ebiten.Vertex, 0, 18),
		fillIs:    make([]uint16, 0, 18),
		fontFace:  face,
		indicator: ui.NewTargetIndicator(),
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, tile := range board.AllTiles() {
		x, y := tile.Coord.ToPixel(hexSize)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	r.offsetX = float64(screenWidth)/2 - (minX+maxX)/2
	r.offsetY = float64(screenHeight)/2 - (minY+maxY)/2
	return r
}

// TileCenter returns the screen position of a tile's center.
func (r *BoardRenderer) TileCenter(tile *hexmap.Tile) (float64, float64) {
	x, y := tile.Coord.ToPixel(r.hexSize)
	return x + r.offsetX, y + r.offsetY
}

// HexAt converts a screen position back to a board coordinate.
func (r *BoardRenderer) HexAt(x, y float64) hexmap.Hex {
	return hexmap.PixelToHex(x-r.offsetX, y-r.offsetY, r.hexSize)
}

// Draw renders the whole board plus skill indicators for this frame.
func (r *BoardRenderer) Draw(screen *ebiten.Image, skills *skill.Engine) {
	for _, tile := range r.board.AllTiles() {
		r.drawTile(screen, tile)
	}
	for _, tile := range r.board.AllTiles() {
		if tile.Occupied {
			r.drawUnit(screen, tile)
		}
	}
	r.drawIndicators(screen, skills)
}

func (r *BoardRenderer) drawTile(target *ebiten.Image, tile *hexmap.Tile) {
	x, y := r.TileCenter(tile)

	path := vector.Path{}
	for i := 0; i < 6; i++ {
		angle := math.Pi/3*float64(i) + math.Pi/6
		px := x + (r.hexSize-1)*math.Cos(angle)
		py := y + (r.hexSize-1)*math.Sin(angle)
		if i == 0 {
			path.MoveTo(float32(px), float32(py))
		} else {
			path.LineTo(float32(px), float32(py))
		}
	}
	path.Close()

	fillColor := tileColor(tile.State)
	r.fillVs, r.fillIs = path.AppendVerticesAndIndicesForFilling(r.fillVs[:0], r.fillIs[:0])
	for i := range r.fillVs {
		r.fillVs[i].ColorR = float32(fillColor.R) / 255
		r.fillVs[i].ColorG = float32(fillColor.G) / 255
		r.fillVs[i].ColorB = float32(fillColor.B) / 255
		r.fillVs[i].ColorA = float32(fillColor.A) / 255
	}
	target.DrawTriangles(r.fillVs, r.fillIs, r.fillImg, &ebiten.DrawTrianglesOptions{AntiAlias: true})

	label := strconv.Itoa(tile.ID)
	bounds := text.BoundString(r.fontFace, label)
	textColor := config.TextLightColor
	if (int(fillColor.R)+int(fillColor.G)+int(fillColor.B))/3 > 128 {
		textColor = config.TextDarkColor
	}
	text.Draw(target, label, r.fontFace,
		int(x)-bounds.Dx()/2,
		int(y+r.hexSize)-bounds.Dy(),
		textColor)
}

func (r *BoardRenderer) drawUnit(target *ebiten.Image, tile *hexmap.Tile) {
	x, y := r.TileCenter(tile)
	unitColor := config.TeamAUnitColor
	if tile.Team == types.TeamB {
		unitColor = config.TeamBUnitColor
	}
	radius := r.hexSize * 0.45
	if tile.Unit.IsCompanion() {
		radius = r.hexSize * 0.3
	}
	vector.DrawFilledCircle(target, float32(x), float32(y), float32(radius), unitColor, true)

	label := tile.Unit.String()
	bounds := text.BoundString(r.fontFace, label)
	text.Draw(target, label, r.fontFace, int(x)-bounds.Dx()/2, int(y)+bounds.Dy()/2, config.TextDarkColor)
}

func (r *BoardRenderer) drawIndicators(target *ebiten.Image, skills *skill.Engine) {
	if skills == nil {
		return
	}
	for _, st := range skills.States() {
		if st.Target == nil {
			continue
		}
		srcID, ok := r.board.UnitTile(st.Key.Unit, st.Key.Team)
		if !ok {
			continue
		}
		srcTile, err := r.board.TileByID(srcID)
		if err != nil {
			continue
		}
		dstTile, err := r.board.TileByID(st.Target.TileID)
		if err != nil {
			continue
		}
		sx, sy := r.TileCenter(srcTile)
		dx, dy := r.TileCenter(dstTile)
		clr := config.IndicatorColor
		if len(st.Modifiers) > 0 {
			clr = st.Modifiers[0].Color
		}
		r.indicator.Draw(target, sx, sy, dx, dy, clr)
	}
}

func tileColor(state hexmap.TileState) color.RGBA {
	switch state {
	case hexmap.StateBlocked:
		return config.BlockedColor
	case hexmap.StateBlockedBreakable:
		return config.BreakableColor
	case hexmap.StateAvailableTeamA, hexmap.StateOccupiedTeamA:
		return config.TeamAZoneColor
	case hexmap.StateAvailableTeamB, hexmap.StateOccupiedTeamB:
		return config.TeamBZoneColor
	}
	return config.DefaultTileColor
}

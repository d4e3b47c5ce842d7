// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-hex-tactics/internal/config"
)

// TargetIndicator draws the source-to-target marker of an active skill:
// a line between the two tiles and a softly pulsing ring on the target.
// The color always comes from the caller; the indicator has no opinion
// on what a skill should look like.
type TargetIndicator struct {
	start time.Time
}

func NewTargetIndicator() *TargetIndicator {
	return &TargetIndicator{start: time.Now()}
}

// Draw renders one indicator for this frame.
func (ti *TargetIndicator) Draw(screen *ebiten.Image, fromX, fromY, toX, toY float64, clr color.RGBA) {
	vector.StrokeLine(screen,
		float32(fromX), float32(fromY),
		float32(toX), float32(toY),
		float32(config.StrokeWidth), clr, true)

	elapsed := time.Since(ti.start).Seconds()
	pulse := 1.0 + 0.2*math.Sin(elapsed*4)
	radius := float32(config.HexSize * 0.55 * pulse)
	vector.StrokeCircle(screen, float32(toX), float32(toY), radius, float32(config.StrokeWidth), clr, true)
}

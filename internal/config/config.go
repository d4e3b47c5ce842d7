// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	HexSize      = 34.0

	// Default battlefield: 5 rows of 11 tiles, odd rows shifted.
	BoardRows = 5
	BoardCols = 11

	// Deployment zone depth per team, counted from each board edge.
	DeployRows = 2

	DefaultTeamSize = 5

	// Search ceilings. A* gives up after MaxAStarExpansions node
	// expansions; the ring searches never walk deeper than MaxSearchDepth
	// moves or wider than MaxSpiralRadius rings.
	MaxAStarExpansions = 1000
	MaxSearchDepth     = 20
	MaxSpiralRadius    = 8

	PathCacheSize   = 500
	TargetCacheSize = 100
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}

	DefaultTileColor = color.RGBA{70, 100, 120, 220}
	BlockedColor     = color.RGBA{150, 70, 70, 220}
	BreakableColor   = color.RGBA{170, 120, 70, 220}
	TeamAZoneColor   = color.RGBA{60, 110, 80, 220}
	TeamBZoneColor   = color.RGBA{80, 70, 130, 220}
	TeamAUnitColor   = color.RGBA{50, 255, 120, 255}
	TeamBUnitColor   = color.RGBA{180, 80, 255, 255}

	TextLightColor = color.RGBA{240, 240, 240, 255}
	TextDarkColor  = color.RGBA{20, 20, 30, 255}

	IndicatorColor = color.RGBA{255, 255, 0, 200}
	StrokeWidth    = 2.0
)

package config

import "image/color"

// Shared RGBA color constants
var (
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow      = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	BrightGreen = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightGreen  = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	LightRed    = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	ArenaFloor  = color.RGBA{R: 24, G: 28, B: 36, A: 255}
	WallGray    = color.RGBA{R: 110, G: 110, B: 120, A: 255}
)

// RemoteColors cycles across remote actors by id.
var RemoteColors = []color.RGBA{
	{R: 0, G: 100, B: 255, A: 255},
	{R: 255, G: 140, B: 0, A: 255},
	{R: 128, G: 0, B: 255, A: 255},
	{R: 255, G: 0, B: 255, A: 255},
	{R: 100, G: 180, B: 255, A: 255},
}

package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes holds the themes shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme defines the color palette for the editor UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the canvas
	Foreground color.RGBA

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextDisabled    color.RGBA
	ButtonBorder          color.RGBA

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA
	WarningText      color.RGBA

	// Canvas
	CheckerLight   color.RGBA
	CheckerDark    color.RGBA
	CanvasBorder   color.RGBA
	SelectionDash  color.RGBA // Marching-ants colors
	SelectionGap   color.RGBA
	HandleFill     color.RGBA
	HandleBorder   color.RGBA
	FragmentShadow color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{236, 236, 236, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{52, 58, 64, 255},
		ButtonBackground:      color.RGBA{73, 80, 87, 255},
		ButtonBackgroundHover: color.RGBA{96, 104, 112, 255},
		ButtonBackgroundPress: color.RGBA{33, 37, 41, 255},
		ButtonText:            color.RGBA{255, 255, 255, 255},
		ButtonTextDisabled:    color.RGBA{134, 142, 150, 255},
		ButtonBorder:          color.RGBA{33, 37, 41, 255},
		StatusBackground:      color.RGBA{248, 249, 250, 255},
		StatusText:            color.RGBA{33, 37, 41, 255},
		WarningText:           color.RGBA{176, 42, 55, 255},
		CheckerLight:          color.RGBA{255, 255, 255, 255},
		CheckerDark:           color.RGBA{221, 221, 221, 255},
		CanvasBorder:          color.RGBA{173, 181, 189, 255},
		SelectionDash:         color.RGBA{0, 0, 0, 255},
		SelectionGap:          color.RGBA{255, 255, 255, 255},
		HandleFill:            color.RGBA{255, 255, 255, 255},
		HandleBorder:          color.RGBA{0, 123, 255, 255},
		FragmentShadow:        color.RGBA{0, 0, 0, 96},
	}
}

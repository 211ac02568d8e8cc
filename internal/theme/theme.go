package theme

import (
	"image/color"
	"sort"
	"strings"
)

// Theme defines the colours of the board chrome. The canvas itself uses the
// scene background.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // Behind the canvas
	Foreground color.RGBA // Status text

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonActive          color.RGBA // Current tool
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Canvas overlays
	Selection       color.RGBA
	CanvasFrame     color.RGBA
	ToastBackground color.RGBA
	ToastText       color.RGBA
}

// Default returns the light theme.
func Default() *Theme {
	return &Theme{
		Name:                  "default",
		Background:            color.RGBA{229, 231, 235, 255},
		Foreground:            color.RGBA{17, 24, 39, 255},
		ToolbarBackground:     color.RGBA{243, 244, 246, 255},
		ButtonBackground:      color.RGBA{255, 255, 255, 255},
		ButtonBackgroundHover: color.RGBA{219, 234, 254, 255},
		ButtonBackgroundPress: color.RGBA{191, 219, 254, 255},
		ButtonActive:          color.RGBA{37, 99, 235, 255},
		ButtonText:            color.RGBA{17, 24, 39, 255},
		ButtonBorder:          color.RGBA{156, 163, 175, 255},
		Selection:             color.RGBA{37, 99, 235, 255},
		CanvasFrame:           color.RGBA{156, 163, 175, 255},
		ToastBackground:       color.RGBA{17, 24, 39, 230},
		ToastText:             color.RGBA{255, 255, 255, 255},
	}
}

// Dark returns the dark theme.
func Dark() *Theme {
	return &Theme{
		Name:                  "dark",
		Background:            color.RGBA{17, 24, 39, 255},
		Foreground:            color.RGBA{229, 231, 235, 255},
		ToolbarBackground:     color.RGBA{31, 41, 55, 255},
		ButtonBackground:      color.RGBA{55, 65, 81, 255},
		ButtonBackgroundHover: color.RGBA{75, 85, 99, 255},
		ButtonBackgroundPress: color.RGBA{107, 114, 128, 255},
		ButtonActive:          color.RGBA{96, 165, 250, 255},
		ButtonText:            color.RGBA{243, 244, 246, 255},
		ButtonBorder:          color.RGBA{107, 114, 128, 255},
		Selection:             color.RGBA{251, 191, 36, 255},
		CanvasFrame:           color.RGBA{75, 85, 99, 255},
		ToastBackground:       color.RGBA{243, 244, 246, 230},
		ToastText:             color.RGBA{17, 24, 39, 255},
	}
}

var builtin = map[string]func() *Theme{
	"default": Default,
	"light":   Default,
	"dark":    Dark,
}

// Builtin returns a copy of a compiled-in theme.
func Builtin(name string) (*Theme, bool) {
	fn, ok := builtin[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// BuiltinNames lists the compiled-in theme names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

package theme

import (
	"image/color"

	"git.lost.host/meutraa/hopedit/internal/game"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) NoteColor(denom int) color.RGBA {
	col, ok := noteColors[denom]
	if !ok {
		return noteColors[-1]
	}
	return col
}

func (t *DefaultTheme) TickColor(kind game.TickKind) color.RGBA {
	return tickColors[kind]
}

func (t *DefaultTheme) SelectedColor() color.RGBA { return color.RGBA{0, 255, 200, 255} }
func (t *DefaultTheme) ToastColor() color.RGBA    { return color.RGBA{0, 255, 200, 255} }
func (t *DefaultTheme) ErrorColor() color.RGBA    { return color.RGBA{236, 30, 0, 255} }

func (t *DefaultTheme) NoteSym(selected bool) string {
	if selected {
		return selectedSym
	}
	return noteSym
}

func (t *DefaultTheme) TickSym(kind game.TickKind) string {
	return tickSyms[kind]
}

func (t *DefaultTheme) PointSym() string    { return pointSym }
func (t *DefaultTheme) BookmarkSym() string { return bookmarkSym }

const (
	noteSym     = "⬤"
	selectedSym = "◉"
	pointSym    = "♩"
	bookmarkSym = "⚑"
)

var (
	tickSyms = map[game.TickKind]string{
		game.BeatTick: "━",
		game.HalfTick: "─",
		game.SubTick:  "╌",
	}
	tickColors = map[game.TickKind]color.RGBA{
		game.BeatTick: {255, 255, 255, 255},
		game.HalfTick: {173, 173, 173, 255},
		game.SubTick:  {106, 106, 106, 255},
	}
	// Keyed by subdivisions of a beat
	noteColors = map[int]color.RGBA{
		1:  {236, 30, 0, 255},    // 1/4 red
		2:  {0, 118, 236, 255},   // 1/8 blue
		3:  {106, 0, 236, 255},   // 1/12 purple
		4:  {236, 195, 0, 255},   // 1/16 yellow
		6:  {236, 0, 106, 255},   // 1/24 pink
		8:  {236, 128, 0, 255},   // 1/32 orange
		12: {173, 236, 236, 255}, // 1/48 light blue
		16: {0, 236, 128, 255},   // 1/64 green
		24: {106, 106, 106, 255}, // 1/96 grey
		32: {106, 106, 106, 255}, // 1/128 grey
		48: {110, 147, 89, 255},  // 1/192 olive
		64: {106, 106, 106, 255}, // 1/256 grey
		-1: {255, 255, 255, 255}, // other white
	}
)

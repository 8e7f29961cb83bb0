package theme

import (
	"image/color"

	"git.lost.host/meutraa/hopedit/internal/game"
)

type Theme interface {
	// NoteColor colours a note by the finest beat fraction it sits on
	NoteColor(denom int) color.RGBA
	TickColor(kind game.TickKind) color.RGBA
	SelectedColor() color.RGBA
	ToastColor() color.RGBA
	ErrorColor() color.RGBA

	NoteSym(selected bool) string
	TickSym(kind game.TickKind) string
	PointSym() string
	BookmarkSym() string
}

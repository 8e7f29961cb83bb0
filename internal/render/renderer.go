package render

import (
	"git.lost.host/meutraa/hopedit/internal/editor"
)

type Renderer interface {
	Toast(message string)
	Error(message string)
	Status(ctx *editor.Context, name string, saved bool)
	// Timeline draws rows grid lines from the playback position onwards
	Timeline(ctx *editor.Context, rows int)
	Flush() error
}

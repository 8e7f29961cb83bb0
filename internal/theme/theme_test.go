package theme

import (
	"image/color"
	"testing"

	"git.lost.host/meutraa/hopedit/internal/game"
	"github.com/stretchr/testify/assert"
)

var noteColorTests = map[int]color.RGBA{
	1:  {236, 30, 0, 255},
	4:  {236, 195, 0, 255},
	0:  {255, 255, 255, 255},
	5:  {255, 255, 255, 255},
	48: {110, 147, 89, 255},
}

func TestNoteColor(t *testing.T) {
	th := &DefaultTheme{}
	for denom, expected := range noteColorTests {
		assert.Equal(t, expected, th.NoteColor(denom), "denom %v", denom)
	}
}

func TestTickKinds(t *testing.T) {
	th := &DefaultTheme{}
	for _, kind := range []game.TickKind{game.BeatTick, game.HalfTick, game.SubTick} {
		assert.NotEmpty(t, th.TickSym(kind), kind.String())
		assert.NotZero(t, th.TickColor(kind).A, kind.String())
	}
	assert.NotEqual(t, th.NoteSym(true), th.NoteSym(false))
}

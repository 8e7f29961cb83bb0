package editor

import (
	"errors"
	"math"

	"git.lost.host/meutraa/hopedit/internal/game"
	"git.lost.host/meutraa/hopedit/internal/parser"
)

var ErrNoTempo = errors.New("no tempo at the playback position")

// BindPattern describes the selected notes as a reusable pattern.
func (c *Context) BindPattern() (string, error) {
	notes := c.Selected()
	if len(notes) == 0 {
		return "", ErrNoSelection
	}
	return parser.FormatPattern(notes), nil
}

// CreatePattern places a bound pattern at the playback position, one grid
// step per pattern step.
func (c *Context) CreatePattern(pattern string) error {
	entries, err := parser.ParsePattern(pattern)
	if nil != err {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	t := c.Timing()
	notes := make([]game.Note, len(entries))
	for i, e := range entries {
		ms := t.ClosestBeatInDirection(math.Round(c.Settings.CurrentTime), false, e.Steps)
		if ms < 0 {
			return ErrNoTempo
		}
		notes[i] = game.NewNote(e.Lane, ms)
	}
	return c.push("ADD PATTERN", Edit{Kind: NoteEdit, After: game.Chart{Notes: notes}})
}

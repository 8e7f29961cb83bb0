package editor

import (
	"errors"
	"fmt"

	"git.lost.host/meutraa/hopedit/internal/game"
	"git.lost.host/meutraa/hopedit/internal/history"
	"golang.org/x/exp/slices"
)

// Kind selects the list an Edit changes.
type Kind int

const (
	NoteEdit Kind = iota
	PointEdit
	BookmarkEdit
)

var ErrMissing = errors.New("edit target no longer exists")

// Edit replaces the Before items of one list with the After items. Both sides
// are captured when the edit is made, so undoing is applying the reverse.
type Edit struct {
	Kind   Kind
	Before game.Chart
	After  game.Chart
	Select bool // Select the inserted items
}

func (e Edit) Reverse() Edit {
	return Edit{Kind: e.Kind, Before: e.After, After: e.Before, Select: e.Select}
}

// Apply runs the edit against the context. Nothing changes unless every
// Before item is found.
func (c *Context) Apply(e Edit) error {
	switch e.Kind {
	case NoteEdit:
		return c.applyNotes(e)
	case PointEdit:
		return c.applyPoints(e)
	case BookmarkEdit:
		return c.applyBookmarks(e)
	}
	return fmt.Errorf("unknown edit kind %d", e.Kind)
}

func (c *Context) applyNotes(e Edit) error {
	notes := slices.Clone(c.Chart.Notes)
	for _, n := range e.Before.Notes {
		i := game.IndexOfNote(notes, n)
		if i < 0 {
			return fmt.Errorf("note %v at %dms: %w", n.Lane, n.Ms, ErrMissing)
		}
		notes = slices.Delete(notes, i, i+1)
	}
	if e.Select && len(e.After.Notes) > 0 {
		for i := range notes {
			notes[i].Selected = false
		}
	}
	for _, n := range e.After.Notes {
		n.Selected = e.Select
		notes = append(notes, n)
	}
	game.SortNotes(notes)
	c.Chart.Notes = notes
	return nil
}

func (c *Context) applyPoints(e Edit) error {
	points := slices.Clone(c.Chart.TimingPoints)
	for _, p := range e.Before.TimingPoints {
		i := game.IndexOfTimingPoint(points, p.Ms)
		if i < 0 || points[i] != p {
			return fmt.Errorf("point %v bpm at %dms: %w", p.BPM, p.Ms, ErrMissing)
		}
		points = slices.Delete(points, i, i+1)
	}
	for _, p := range e.After.TimingPoints {
		points = game.InsertTimingPoint(points, p)
	}
	c.Chart.TimingPoints = points
	if sel := c.SelectedPoint; nil != sel && game.IndexOfTimingPoint(points, sel.Ms) < 0 {
		c.SelectedPoint = nil
	}
	if e.Select && len(e.After.TimingPoints) > 0 {
		p := e.After.TimingPoints[len(e.After.TimingPoints)-1]
		c.SelectedPoint = &p
	}
	return nil
}

func (c *Context) applyBookmarks(e Edit) error {
	bookmarks := slices.Clone(c.Chart.Bookmarks)
	for _, b := range e.Before.Bookmarks {
		i := game.IndexOfBookmark(bookmarks, b)
		if i < 0 {
			return fmt.Errorf("bookmark %q: %w", b.Label, ErrMissing)
		}
		bookmarks = slices.Delete(bookmarks, i, i+1)
	}
	bookmarks = append(bookmarks, e.After.Bookmarks...)
	game.SortBookmarks(bookmarks)
	c.Chart.Bookmarks = bookmarks
	return nil
}

// step is one direction of an edit bound to a context.
type step struct {
	ctx  *Context
	edit Edit
}

func (s step) Do() error { return s.ctx.Apply(s.edit) }

// Command wraps an edit for the history.
func (c *Context) Command(label string, e Edit) history.Command {
	return history.Command{Label: label, Undo: step{c, e.Reverse()}, Redo: step{c, e}}
}

// push applies the edit now and records it.
func (c *Context) push(label string, e Edit) error {
	cmd := c.Command(label, e)
	return c.History.Push(cmd.Label, cmd.Undo, cmd.Redo, true, false)
}

// Record is the serializable form of a command. Commands that were not made
// from an Edit have no Edit and cannot be replayed.
type Record struct {
	Label string
	Edit  *Edit `json:",omitempty"`
}

func editOf(cmd history.Command) (Edit, bool) {
	s, ok := cmd.Redo.(step)
	return s.edit, ok
}

func Records(commands []history.Command) []Record {
	records := make([]Record, len(commands))
	for i, cmd := range commands {
		records[i].Label = cmd.Label
		if e, ok := editOf(cmd); ok {
			records[i].Edit = &e
		}
	}
	return records
}

// Replayable checks a saved history against the chart it led to, which must
// already be in the context. Commands up to index are undone one by one on a
// copy of the chart, and the ones after it are redone on another copy. A
// command that does not apply, or has no actions, is dropped and reported.
// The returned index is shifted for the dropped commands before it.
func (c *Context) Replayable(commands []history.Command, index int) ([]history.Command, int, []error) {
	index = min(index, len(commands)-1)
	ok := make([]bool, len(commands))
	var errs []error
	check := func(scratch *Context, i int, undo bool) {
		cmd := commands[i]
		if nil == cmd.Undo || nil == cmd.Redo {
			errs = append(errs, fmt.Errorf("command %d %q: %w", i, cmd.Label, history.ErrInvalidCommand))
			return
		}
		e, isEdit := editOf(cmd)
		if !isEdit {
			ok[i] = true
			return
		}
		if undo {
			e = e.Reverse()
		}
		if err := scratch.Apply(e); nil != err {
			errs = append(errs, fmt.Errorf("command %d %q: %w", i, cmd.Label, err))
			return
		}
		ok[i] = true
	}

	back := &Context{Chart: c.Chart.Clone()}
	for i := index; i >= 0; i-- {
		check(back, i, true)
	}
	forward := &Context{Chart: c.Chart.Clone()}
	for i := index + 1; i < len(commands); i++ {
		check(forward, i, false)
	}

	kept := make([]history.Command, 0, len(commands))
	keptIndex := index
	for i, cmd := range commands {
		if ok[i] {
			kept = append(kept, cmd)
		} else if i <= index {
			keptIndex--
		}
	}
	return kept, keptIndex, errs
}

// Commands binds records to the context. A record without an edit becomes a
// command without actions, which the history refuses.
func (c *Context) Commands(records []Record) []history.Command {
	commands := make([]history.Command, len(records))
	for i, r := range records {
		if nil == r.Edit {
			commands[i] = history.Command{Label: r.Label}
			continue
		}
		commands[i] = c.Command(r.Label, *r.Edit)
	}
	return commands
}

func plural(label string, n int) string {
	if n > 1 {
		return label + "S"
	}
	return label
}

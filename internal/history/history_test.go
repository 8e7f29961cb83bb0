package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appendCommand pushes a command that appends v to list.
func appendCommand(t *testing.T, e *Engine, list *[]int, v int) {
	t.Helper()
	undo := ActionFunc(func() error {
		*list = (*list)[:len(*list)-1]
		return nil
	})
	redo := ActionFunc(func() error {
		*list = append(*list, v)
		return nil
	})
	require.NoError(t, e.Push("append", undo, redo, true, false))
}

func TestReplayIsIdempotent(t *testing.T) {
	var direct, replayed []int

	e := New()
	appendCommand(t, e, &direct, 1)
	appendCommand(t, e, &direct, 2)

	f := New()
	appendCommand(t, f, &replayed, 1)
	appendCommand(t, f, &replayed, 2)
	for _, step := range []func() (bool, error){f.Undo, f.Undo, f.Redo, f.Redo} {
		ok, err := step()
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, direct, replayed)
	assert.Equal(t, 1, f.Index())
}

func TestPushTruncatesRedoBranch(t *testing.T) {
	var list []int
	e := New()
	appendCommand(t, e, &list, 1) // A
	appendCommand(t, e, &list, 2) // B
	ok, err := e.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	appendCommand(t, e, &list, 3) // C

	assert.Equal(t, []int{1, 3}, list)
	assert.Equal(t, 2, e.Len())
	assert.False(t, e.CanRedo())

	ok, err = e.Redo()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []int{1, 3}, list)
}

func TestUndoRedoEmpty(t *testing.T) {
	e := New()
	ok, err := e.Undo()
	assert.NoError(t, err)
	assert.False(t, ok)
	ok, err = e.Redo()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, -1, e.Index())
}

func TestSilentPushDoesNotRun(t *testing.T) {
	ran := 0
	redo := ActionFunc(func() error { ran++; return nil })
	e := New()
	require.NoError(t, e.Push("a", ActionFunc(func() error { return nil }), redo, false, true))
	require.NoError(t, e.Push("b", ActionFunc(func() error { return nil }), redo, true, true))
	require.NoError(t, e.Push("c", ActionFunc(func() error { return nil }), redo, false, false))
	assert.Equal(t, 0, ran)
	assert.Equal(t, 3, e.Len())
	assert.Equal(t, 2, e.Index())
}

func TestFailedRedoIsNotRecorded(t *testing.T) {
	var list []int
	e := New()
	appendCommand(t, e, &list, 1)
	boom := errors.New("boom")
	err := e.Push("fail", ActionFunc(func() error { return nil }), ActionFunc(func() error { return boom }), true, false)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, 0, e.Index())
}

func TestFailedUndoKeepsCursor(t *testing.T) {
	boom := errors.New("boom")
	e := New()
	require.NoError(t, e.Push("x", ActionFunc(func() error { return boom }), ActionFunc(func() error { return nil }), true, false))
	ok, err := e.Undo()
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, e.Index())
}

func TestInvalidCommand(t *testing.T) {
	e := New()
	err := e.Push("nil", nil, ActionFunc(func() error { return nil }), false, true)
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Equal(t, 0, e.Len())
}

func TestReentrantPush(t *testing.T) {
	e := New()
	var inner error
	redo := ActionFunc(func() error {
		inner = e.Push("inner", ActionFunc(func() error { return nil }), ActionFunc(func() error { return nil }), true, false)
		return nil
	})
	require.NoError(t, e.Push("outer", ActionFunc(func() error { return nil }), redo, true, false))
	assert.ErrorIs(t, inner, ErrReentrant)
	assert.Equal(t, 1, e.Len())
}

func TestClearAndSetIndex(t *testing.T) {
	var list []int
	e := New()
	appendCommand(t, e, &list, 1)
	appendCommand(t, e, &list, 2)
	assert.Equal(t, "append", e.UndoLabel())
	assert.Equal(t, "", e.RedoLabel())

	e.SetIndex(10)
	assert.Equal(t, 1, e.Index())
	e.SetIndex(-5)
	assert.Equal(t, -1, e.Index())
	assert.Equal(t, "append", e.RedoLabel())

	commands := e.Commands()
	e.Clear()
	assert.Len(t, commands, 2)
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, -1, e.Index())
}

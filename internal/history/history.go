// Package history is a linear undo/redo log of reversible commands. Pushing a
// command below the tail discards everything after the cursor.
package history

import (
	"errors"
	"fmt"
)

// Action is one direction of a command. It must either apply completely or
// return an error without changing anything.
type Action interface {
	Do() error
}

// ActionFunc adapts a plain function to an Action.
type ActionFunc func() error

func (f ActionFunc) Do() error { return f() }

type Command struct {
	Label string
	Undo  Action
	Redo  Action
}

var (
	ErrInvalidCommand = errors.New("command is missing an action")
	ErrReentrant      = errors.New("history changed while a command was running")
)

type Engine struct {
	commands []Command
	index    int
	running  bool
}

func New() *Engine {
	return &Engine{index: -1}
}

// Push records a command. When apply is set and silent is not, redo runs
// first and nothing is recorded if it fails. A silent push only does the
// bookkeeping, for replaying a history onto state that is already correct.
func (e *Engine) Push(label string, undo, redo Action, apply, silent bool) error {
	if nil == undo || nil == redo {
		return fmt.Errorf("%s: %w", label, ErrInvalidCommand)
	}
	if e.running {
		return ErrReentrant
	}
	if apply && !silent {
		if err := e.run(redo); nil != err {
			return fmt.Errorf("%s: %w", label, err)
		}
	}
	e.commands = append(e.commands[:e.index+1], Command{Label: label, Undo: undo, Redo: redo})
	e.index = len(e.commands) - 1
	return nil
}

func (e *Engine) run(a Action) error {
	e.running = true
	defer func() { e.running = false }()
	return a.Do()
}

// Undo reverts the command at the cursor. It reports false without error
// when there is nothing to undo.
func (e *Engine) Undo() (bool, error) {
	if e.running {
		return false, ErrReentrant
	}
	if e.index < 0 {
		return false, nil
	}
	c := e.commands[e.index]
	if err := e.run(c.Undo); nil != err {
		return false, fmt.Errorf("undo %s: %w", c.Label, err)
	}
	e.index--
	return true, nil
}

// Redo applies the command after the cursor. It reports false without error
// when there is nothing to redo.
func (e *Engine) Redo() (bool, error) {
	if e.running {
		return false, ErrReentrant
	}
	if e.index >= len(e.commands)-1 {
		return false, nil
	}
	c := e.commands[e.index+1]
	if err := e.run(c.Redo); nil != err {
		return false, fmt.Errorf("redo %s: %w", c.Label, err)
	}
	e.index++
	return true, nil
}

func (e *Engine) Clear() {
	e.commands = nil
	e.index = -1
}

// Commands returns a copy of the log.
func (e *Engine) Commands() []Command {
	out := make([]Command, len(e.commands))
	copy(out, e.commands)
	return out
}

func (e *Engine) Index() int { return e.index }

func (e *Engine) Len() int { return len(e.commands) }

// SetIndex moves the cursor without running anything, clamped to the log.
func (e *Engine) SetIndex(i int) {
	if i < -1 {
		i = -1
	}
	if i > len(e.commands)-1 {
		i = len(e.commands) - 1
	}
	e.index = i
}

func (e *Engine) CanUndo() bool { return e.index >= 0 }

func (e *Engine) CanRedo() bool { return e.index < len(e.commands)-1 }

func (e *Engine) UndoLabel() string {
	if !e.CanUndo() {
		return ""
	}
	return e.commands[e.index].Label
}

func (e *Engine) RedoLabel() string {
	if !e.CanRedo() {
		return ""
	}
	return e.commands[e.index+1].Label
}

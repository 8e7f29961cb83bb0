package main

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/hopedit/internal/autosave"
	"git.lost.host/meutraa/hopedit/internal/config"
	"git.lost.host/meutraa/hopedit/internal/document"
	"git.lost.host/meutraa/hopedit/internal/input"
	"git.lost.host/meutraa/hopedit/internal/parser"
	"git.lost.host/meutraa/hopedit/internal/render"
	"git.lost.host/meutraa/hopedit/internal/store"
	"git.lost.host/meutraa/hopedit/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedAudio struct{}

func (fixedAudio) Load(id string) (int64, error) { return 60000, nil }

func newProgram(t *testing.T, in string) (*Program, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	*config.SettingsFile = filepath.Join(dir, "settings.yaml")

	var out bytes.Buffer
	p := &Program{
		Parser:   &parser.DefaultParser{},
		Store:    &store.FileStore{Path: filepath.Join(dir, "cache.txt")},
		Audio:    fixedAudio{},
		Input:    &input.DefaultInput{In: bufio.NewReader(strings.NewReader(in)), Out: &out, Fd: -1},
		Renderer: &render.DefaultRenderer{Out: &out, Theme: &theme.DefaultTheme{}},
		settings: config.DefaultSettings(),
	}
	p.maps = document.NewMapSet(p, p.Parser, p.Store, p.settings)
	p.scheduler = autosave.New(0, time.Hour)
	t.Cleanup(p.scheduler.Stop)
	return p, &out
}

func TestExecuteEditing(t *testing.T) {
	p, out := newProgram(t, "")
	for _, line := range []string{
		"load 12345",
		"point 120 0",
		"note 2 130",
		"undo",
		"redo",
		"select all",
		"copy",
		"seek 1000",
		"paste",
		"bind 1",
	} {
		p.execute(line)
	}
	p.flush()
	assert.NotContains(t, out.String(), "error")

	ctx := p.maps.Context()
	require.Len(t, ctx.Chart.Notes, 2)
	assert.Equal(t, int64(125), ctx.Chart.Notes[0].Ms)
	assert.Equal(t, int64(1000), ctx.Chart.Notes[1].Ms)
	assert.Equal(t, "2|0", p.settings.Patterns[1])
	assert.Equal(t, "PASTE NOTE", ctx.History.UndoLabel())
}

func TestExecuteErrors(t *testing.T) {
	p, out := newProgram(t, "")
	p.execute("note 1")
	p.execute("bogus")
	p.execute("load")
	p.flush()
	assert.Contains(t, out.String(), "no map is open")
	assert.Contains(t, out.String(), `unknown command "bogus"`)
	assert.Contains(t, out.String(), "usage: load <map text>")
}

func TestSaveAsPrompt(t *testing.T) {
	p, _ := newProgram(t, "")
	path := filepath.Join(t.TempDir(), "song")
	p.Input = &input.DefaultInput{In: bufio.NewReader(strings.NewReader(path + "\n")), Out: &bytes.Buffer{}, Fd: -1}

	p.execute("load 777,1|0|100")
	p.execute("save")
	assert.Equal(t, path+".txt", p.maps.Context().FilePath)

	text, err := p.ReadText(path + ".txt")
	require.NoError(t, err)
	assert.Equal(t, "777,1|0|100", text)
	assert.True(t, p.FileExists(path+".ini"))
	assert.True(t, p.maps.IsActiveSaved())
}

func TestQuit(t *testing.T) {
	p, _ := newProgram(t, "")
	p.execute("quit")
	assert.True(t, p.quit)
}

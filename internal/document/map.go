package document

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/hopedit/internal/editor"
	"git.lost.host/meutraa/hopedit/internal/game"
	"git.lost.host/meutraa/hopedit/internal/history"
	"git.lost.host/meutraa/hopedit/internal/parser"
	"github.com/google/uuid"
)

// Map is an open map that is not necessarily the one being edited.
type Map struct {
	set *MapSet
	key string

	chart         game.Chart
	selectedPoint *game.TimingPoint
	tempo         float64
	zoom          float64
	filePath      string
	soundID       string
	settings      editor.Settings
	commands      []history.Command
	index         int
}

func (s *MapSet) newMap() *Map {
	return &Map{
		set:      s,
		key:      uuid.NewString(),
		tempo:    1,
		zoom:     1,
		settings: editor.DefaultSettings(),
		index:    -1,
	}
}

func (m *Map) Key() string      { return m.key }
func (m *Map) FilePath() string { return m.filePath }
func (m *Map) SoundID() string  { return m.soundID }

// Name is the file name without extension, or the sound id when untitled.
func (m *Map) Name() string {
	if m.filePath == "" {
		return m.soundID
	}
	return strings.TrimSuffix(filepath.Base(m.filePath), filepath.Ext(m.filePath))
}

func (m *Map) active() bool { return m.set.current == m }

// Commands returns the stored history of a map that is not active.
func (m *Map) Commands() ([]history.Command, int) {
	return append([]history.Command(nil), m.commands...), m.index
}

func clonePoint(p *game.TimingPoint) *game.TimingPoint {
	if nil == p {
		return nil
	}
	c := *p
	return &c
}

// MakeActive stores the active map and copies this one into the editing
// context, replaying its history without running it.
func (m *Map) MakeActive(loadAudio bool) error {
	s := m.set
	if nil != s.current {
		s.current.Save()
	}
	s.current = m

	ctx := s.ctx
	ctx.Chart = m.chart.Clone()
	ctx.SelectedPoint = clonePoint(m.selectedPoint)
	ctx.Tempo = m.tempo
	ctx.Zoom = m.zoom
	ctx.FilePath = m.filePath
	ctx.SoundID = m.soundID
	ctx.Settings = m.settings

	ctx.History.Clear()
	commands, index, errs := ctx.Replayable(m.commands, m.index)
	for _, err := range errs {
		log.Printf("skipping %v of %v\n", err, m.Name())
	}
	for _, cmd := range commands {
		if err := ctx.History.Push(cmd.Label, cmd.Undo, cmd.Redo, false, true); nil != err {
			// Replayable has already dropped everything Push refuses
			return err
		}
	}
	ctx.History.SetIndex(index)

	if loadAudio {
		ms, err := s.collab.LoadAudio(m.soundID)
		if nil != err {
			return fmt.Errorf("unable to load audio %v: %w", m.soundID, err)
		}
		ctx.Settings.MaxTime = float64(ms)
	}
	return nil
}

// Save copies the editing context back into the map. It does nothing unless
// the map is active.
func (m *Map) Save() {
	if !m.active() {
		return
	}
	ctx := m.set.ctx
	m.chart = ctx.Chart.Clone()
	m.selectedPoint = clonePoint(ctx.SelectedPoint)
	m.tempo = ctx.Tempo
	m.zoom = ctx.Zoom
	m.filePath = ctx.FilePath
	m.soundID = ctx.SoundID
	m.settings = ctx.Settings
	m.commands = ctx.History.Commands()
	m.index = ctx.History.Index()
}

// Close saves the map if asked and removes it from the set. It returns false
// when the user cancelled saving.
func (m *Map) Close(forced, fileForced, shouldSave bool) (bool, error) {
	s := m.set
	if err := m.MakeActive(false); nil != err {
		return false, err
	}
	if shouldSave {
		ok, err := s.SaveActive(forced, fileForced)
		if nil != err || !ok {
			return false, err
		}
	}
	return true, s.remove(m)
}

// IsSaved activates the map and compares it with its file.
func (m *Map) IsSaved() bool {
	if err := m.MakeActive(false); nil != err {
		return false
	}
	return m.set.IsActiveSaved()
}

// matchesFile is IsSaved without activating the map.
func (m *Map) matchesFile() bool {
	if m.active() {
		return m.set.IsActiveSaved()
	}
	s := m.set
	if m.filePath == "" || !s.collab.FileExists(m.filePath) {
		return false
	}
	text, err := s.collab.ReadText(m.filePath)
	return nil == err && text == s.parser.EncodeMap(m.soundID, m.chart.Notes, m.settings.ExportOffset)
}

func (m *Map) snapshot() *parser.Snapshot {
	m.Save()
	hist := ""
	if len(m.commands) > 0 {
		data, err := json.Marshal(editor.Records(m.commands))
		if nil != err {
			log.Println("unable to encode history of", m.Name(), err)
		} else {
			hist = string(data)
		}
	}
	return &parser.Snapshot{
		Chart:        m.chart,
		Tempo:        m.tempo,
		Zoom:         m.zoom,
		FilePath:     m.filePath,
		SoundID:      m.soundID,
		CurrentTime:  m.settings.CurrentTime,
		BeatDivisor:  m.settings.BeatDivisor,
		ExportOffset: m.settings.ExportOffset,
		History:      hist,
		HistoryIndex: m.index,
		Key:          m.key,
	}
}

// String is the cache record of the map.
func (m *Map) String() string {
	return m.set.parser.EncodeSnapshot(m.snapshot())
}

// FromString fills the map from a cache record. The map is unchanged on
// error.
func (m *Map) FromString(data string) error {
	snap, err := m.set.parser.DecodeSnapshot(data)
	if nil != err {
		return err
	}
	var records []editor.Record
	if snap.History != "" {
		if err := json.Unmarshal([]byte(snap.History), &records); nil != err {
			log.Println("dropping unreadable history of", snap.SoundID, err)
			records = nil
			snap.HistoryIndex = -1
		}
	}

	m.chart = snap.Chart
	m.selectedPoint = nil
	m.tempo = snap.Tempo
	m.zoom = snap.Zoom
	m.filePath = snap.FilePath
	m.soundID = snap.SoundID
	m.settings = editor.Settings{
		CurrentTime:  snap.CurrentTime,
		BeatDivisor:  snap.BeatDivisor,
		ExportOffset: snap.ExportOffset,
	}
	m.commands = m.set.ctx.Commands(records)
	m.index = min(snap.HistoryIndex, len(m.commands)-1)
	if snap.Key != "" {
		m.key = snap.Key
	}
	return nil
}

package document

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/hopedit/internal/config"
	"git.lost.host/meutraa/hopedit/internal/editor"
	"git.lost.host/meutraa/hopedit/internal/game"
	"git.lost.host/meutraa/hopedit/internal/parser"
	"git.lost.host/meutraa/hopedit/internal/store"
	"golang.org/x/exp/slices"
)

const untitled = "Untitled Song"

var ErrNoMap = errors.New("no map is open")

// MapSet owns the open maps and the single editing context that the active
// one is copied into.
type MapSet struct {
	ctx      *editor.Context
	collab   Collaborator
	parser   parser.Parser
	store    store.Store
	settings *config.Settings

	maps    []*Map
	current *Map
}

func NewMapSet(collab Collaborator, p parser.Parser, st store.Store, settings *config.Settings) *MapSet {
	return &MapSet{
		ctx:      editor.NewContext(),
		collab:   collab,
		parser:   p,
		store:    st,
		settings: settings,
	}
}

func (s *MapSet) Context() *editor.Context { return s.ctx }

// Current is the active map, or nil.
func (s *MapSet) Current() *Map { return s.current }

func (s *MapSet) Maps() []*Map { return slices.Clone(s.maps) }

// New opens an empty map for the audio id.
func (s *MapSet) New(soundID string) error {
	ms, err := s.collab.LoadAudio(soundID)
	if nil != err {
		return fmt.Errorf("unable to load audio %v: %w", soundID, err)
	}
	m := s.newMap()
	m.soundID = soundID
	m.settings.MaxTime = float64(ms)
	s.maps = append(s.maps, m)
	if err := m.MakeActive(false); nil != err {
		return err
	}
	return s.CacheMaps()
}

// LoadMap opens a map from a file path or from map text. An already open map
// with the same file is activated instead when it has no unsaved changes.
// Nothing changes when the map cannot be read.
func (s *MapSet) LoadMap(pathOrData string, file, autosave, soundSpace bool) error {
	if pathOrData == "" {
		return errors.New("nothing to load")
	}
	if file {
		for _, m := range s.maps {
			if m.filePath == pathOrData && m.matchesFile() {
				return m.MakeActive(true)
			}
		}
	}

	data := pathOrData
	if file {
		text, err := s.collab.ReadText(pathOrData)
		if nil != err {
			return fmt.Errorf("unable to read map: %w", err)
		}
		data = text
	}

	decode := s.parser.DecodeMap
	if soundSpace {
		decode = s.parser.DecodeSoundSpace
	}
	id, notes, err := decode(data)
	if nil != err {
		return fmt.Errorf("unable to parse map data: %w", err)
	}

	props := s.loadProperties(pathOrData, file, autosave)

	ms, err := s.collab.LoadAudio(id)
	if nil != err {
		return fmt.Errorf("unable to load audio %v: %w", id, err)
	}

	if nil != s.current {
		s.current.Save()
	}
	m := s.newMap()
	m.soundID = id
	m.chart.Notes = notes
	m.settings.MaxTime = float64(ms)
	if file {
		m.filePath = pathOrData
	}
	s.maps = append(s.maps, m)
	if err := m.MakeActive(false); nil != err {
		return err
	}
	if nil != props {
		s.applyProperties(props)
	}
	m.Save()
	return s.CacheMaps()
}

// loadProperties finds the properties for a map being loaded. Unreadable
// properties are reported and ignored.
func (s *MapSet) loadProperties(pathOrData string, file, autosave bool) *parser.Properties {
	var text string
	switch {
	case file:
		path := propertiesPath(pathOrData)
		if !s.collab.FileExists(path) {
			return nil
		}
		t, err := s.collab.ReadText(path)
		if nil != err {
			log.Println("unable to read properties", err)
			return nil
		}
		text = t
	case autosave:
		text = s.settings.AutosavedProperties
	default:
		return nil
	}
	if text == "" {
		return nil
	}
	props, err := s.parser.DecodeProperties(text)
	if nil != err {
		s.collab.ShowError(fmt.Sprintf("unable to read map properties: %v", err))
		return nil
	}
	return props
}

func (s *MapSet) applyProperties(p *parser.Properties) {
	ctx := s.ctx
	ctx.Chart.TimingPoints = append(ctx.Chart.TimingPoints, p.TimingPoints...)
	ctx.Chart.TimingPoints = game.SortTimingPoints(ctx.Chart.TimingPoints)
	ctx.Chart.Bookmarks = append(ctx.Chart.Bookmarks, p.Bookmarks...)
	game.SortBookmarks(ctx.Chart.Bookmarks)
	if nil != p.CurrentTime {
		ctx.Seek(*p.CurrentTime)
	}
	if nil != p.BeatDivisor {
		ctx.SetDivisor(*p.BeatDivisor)
	}
	if nil != p.ExportOffset {
		ctx.SetExportOffset(*p.ExportOffset)
	}
}

// ImportProperties replaces the timing points and bookmarks of the active
// map. It is not undoable.
func (s *MapSet) ImportProperties(text string) error {
	if nil == s.current {
		return ErrNoMap
	}
	p, err := s.parser.DecodeProperties(text)
	if nil != err {
		return err
	}
	s.ctx.Chart.TimingPoints = nil
	s.ctx.Chart.Bookmarks = nil
	s.ctx.SelectedPoint = nil
	s.applyProperties(p)
	return nil
}

func propertiesPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".ini"
}

func (s *MapSet) properties() *parser.Properties {
	ctx := s.ctx
	currentTime := ctx.Settings.CurrentTime
	divisor := ctx.Settings.BeatDivisor
	offset := ctx.Settings.ExportOffset
	return &parser.Properties{
		TimingPoints: ctx.Chart.TimingPoints,
		Bookmarks:    ctx.Chart.Bookmarks,
		CurrentTime:  &currentTime,
		BeatDivisor:  &divisor,
		ExportOffset: &offset,
	}
}

func (s *MapSet) encodeActive() string {
	ctx := s.ctx
	return s.parser.EncodeMap(ctx.SoundID, ctx.Chart.Notes, ctx.Settings.ExportOffset)
}

// IsActiveSaved reports whether the active map's file holds its notes.
func (s *MapSet) IsActiveSaved() bool {
	path := s.ctx.FilePath
	if path == "" || !s.collab.FileExists(path) {
		return false
	}
	text, err := s.collab.ReadText(path)
	return nil == err && text == s.encodeActive()
}

func (s *MapSet) activeName() string {
	name := untitled
	if path := s.ctx.FilePath; path != "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return fmt.Sprintf("%v (%v)", name, s.ctx.SoundID)
}

// SaveActive writes the active map and its properties. Unless forced the user
// is asked first, and only when there is something to save. It returns false
// when the user cancelled.
func (s *MapSet) SaveActive(forced, fileForced bool) (bool, error) {
	ctx := s.ctx
	if ctx.FilePath != "" && !s.collab.FileExists(ctx.FilePath) {
		ctx.FilePath = ""
	}
	if ctx.FilePath != "" {
		s.settings.LastFile = ctx.FilePath
	}

	data := s.encodeActive()
	changed := forced
	if ctx.FilePath == "" {
		changed = changed || len(ctx.Chart.Notes) > 0 || len(ctx.Chart.TimingPoints) > 0
	} else if !changed {
		text, err := s.collab.ReadText(ctx.FilePath)
		changed = nil != err || text != data
	}
	if !changed {
		return true, nil
	}

	if !forced {
		switch s.collab.PromptSaveDecision(s.activeName()) {
		case No:
			return true, nil
		case Cancel:
			return false, nil
		}
	}

	path := ctx.FilePath
	if path == "" || fileForced {
		suggested := filepath.Join(s.settings.DefaultPath, ctx.SoundID+".txt")
		p, ok := s.collab.PromptSavePath(suggested)
		if !ok {
			return false, nil
		}
		path = p
		s.settings.DefaultPath = filepath.Dir(p)
	}

	if err := s.collab.WriteText(path, data); nil != err {
		return false, fmt.Errorf("unable to write map: %w", err)
	}
	props, err := s.parser.EncodeProperties(s.properties())
	if nil != err {
		return false, err
	}
	if err := s.collab.WriteText(propertiesPath(path), props); nil != err {
		return false, fmt.Errorf("unable to write properties: %w", err)
	}
	ctx.FilePath = path
	s.settings.LastFile = path
	if nil != s.current {
		s.current.Save()
	}
	return true, nil
}

// Autosave saves the active map without asking. Untitled maps go to the
// settings instead of a file. It reports whether anything was saved.
func (s *MapSet) Autosave() (bool, error) {
	if nil == s.current || len(s.ctx.Chart.Notes) == 0 {
		return false, nil
	}
	// A map whose file is gone goes to the settings too, since saving it
	// would ask for a path
	if path := s.ctx.FilePath; path == "" || !s.collab.FileExists(path) {
		props, err := s.parser.EncodeProperties(s.properties())
		if nil != err {
			return false, err
		}
		s.settings.AutosavedFile = s.encodeActive()
		s.settings.AutosavedProperties = props
	} else if ok, err := s.SaveActive(true, false); nil != err || !ok {
		return false, err
	}
	s.collab.NotifyToast("AUTOSAVED")
	return true, nil
}

// CacheMaps writes every open map to the store.
func (s *MapSet) CacheMaps() error {
	records := make([]store.Record, len(s.maps))
	for i, m := range s.maps {
		records[i] = store.Record{Key: m.key, Data: m.String()}
	}
	if err := s.store.Save(records); nil != err {
		return fmt.Errorf("unable to cache maps: %w", err)
	}
	return nil
}

// LoadCache replaces the open maps with the cached ones. Records that cannot
// be read are skipped. No map is active afterwards.
func (s *MapSet) LoadCache() error {
	records, err := s.store.Load()
	if nil != err {
		return err
	}
	s.maps = nil
	s.current = nil
	s.ctx.Reset()
	for _, r := range records {
		m := s.newMap()
		if err := m.FromString(r.Data); nil != err {
			log.Println("skipping cached map", r.Key, err)
			continue
		}
		if r.Key != "" {
			m.key = r.Key
		}
		s.maps = append(s.maps, m)
	}
	return nil
}

// remove drops a map and activates the last remaining one.
func (s *MapSet) remove(m *Map) error {
	i := slices.Index(s.maps, m)
	if i >= 0 {
		s.maps = slices.Delete(s.maps, i, i+1)
	}
	if s.current == m {
		s.current = nil
		s.ctx.Reset()
		if len(s.maps) > 0 {
			if err := s.maps[len(s.maps)-1].MakeActive(true); nil != err {
				s.collab.ShowError(err.Error())
			}
		}
	}
	return s.CacheMaps()
}

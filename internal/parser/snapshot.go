package parser

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"git.lost.host/meutraa/hopedit/internal/game"
)

const (
	FieldSeparator  = "\n\x00"
	RecordSeparator = "\r\x00"
)

// Snapshot is everything the cache keeps about one open map.
type Snapshot struct {
	Chart        game.Chart
	Tempo        float64
	Zoom         float64
	FilePath     string
	SoundID      string
	CurrentTime  float64
	BeatDivisor  float64
	ExportOffset int64
	History      string // Serialized commands, empty for none
	HistoryIndex int
	Key          string
}

const (
	fieldNotes = iota
	fieldTimings
	fieldBookmarks
	fieldTempo
	fieldZoom
	fieldPath
	fieldSoundID
	fieldCurrentTime
	fieldDivisor
	fieldExportOffset
	fieldHistory
	fieldHistoryIndex
	fieldKey

	legacyFieldCount = fieldHistory
	fieldCount       = fieldKey + 1
)

func EncodeSnapshot(s *Snapshot) string {
	fields := make([]string, fieldCount)

	notes := make([]string, len(s.Chart.Notes))
	for i, n := range s.Chart.Notes {
		notes[i] = formatFloat(roundLane(n.Lane)) + "|0|" + formatInt(n.Ms)
	}
	points := make([]string, len(s.Chart.TimingPoints))
	for i, p := range s.Chart.TimingPoints {
		points[i] = formatFloat(p.BPM) + "|" + formatInt(p.Ms)
	}
	bookmarks := make([]string, len(s.Chart.Bookmarks))
	for i, b := range s.Chart.Bookmarks {
		bookmarks[i] = url.QueryEscape(b.Label) + "|" + formatInt(b.StartMs) + "|" + formatInt(b.EndMs)
	}

	fields[fieldNotes] = strings.Join(notes, ",")
	fields[fieldTimings] = strings.Join(points, ",")
	fields[fieldBookmarks] = strings.Join(bookmarks, ",")
	fields[fieldTempo] = formatFloat(s.Tempo)
	fields[fieldZoom] = formatFloat(s.Zoom)
	fields[fieldPath] = s.FilePath
	fields[fieldSoundID] = s.SoundID
	fields[fieldCurrentTime] = formatFloat(s.CurrentTime)
	fields[fieldDivisor] = formatFloat(s.BeatDivisor)
	fields[fieldExportOffset] = formatInt(s.ExportOffset)
	fields[fieldHistory] = s.History
	fields[fieldHistoryIndex] = strconv.Itoa(s.HistoryIndex)
	fields[fieldKey] = s.Key
	return strings.Join(fields, FieldSeparator)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func DecodeSnapshot(data string) (*Snapshot, error) {
	fields := strings.Split(data, FieldSeparator)
	if len(fields) != legacyFieldCount && len(fields) != fieldCount {
		return nil, parseErr("snapshot", "", fmt.Errorf("expected %d or %d fields, got %d", legacyFieldCount, fieldCount, len(fields)))
	}
	s := &Snapshot{
		FilePath:     fields[fieldPath],
		SoundID:      fields[fieldSoundID],
		HistoryIndex: -1,
	}

	for i, entry := range splitList(fields[fieldNotes]) {
		x, _, ms, err := splitEntry("snapshot", i, entry)
		if nil != err {
			return nil, err
		}
		s.Chart.Notes = append(s.Chart.Notes, game.Note{Lane: roundLane(x), Ms: ms})
	}
	for _, entry := range splitList(fields[fieldTimings]) {
		bpmText, msText, _ := strings.Cut(entry, "|")
		bpm, err := strconv.ParseFloat(bpmText, 64)
		if nil != err {
			return nil, parseErr("snapshot", "timing", err)
		}
		ms, err := strconv.ParseInt(msText, 10, 64)
		if nil != err {
			return nil, parseErr("snapshot", "timing", err)
		}
		s.Chart.TimingPoints = append(s.Chart.TimingPoints, game.TimingPoint{BPM: bpm, Ms: ms})
	}
	for _, entry := range splitList(fields[fieldBookmarks]) {
		parts := strings.Split(entry, "|")
		if len(parts) != 3 {
			return nil, parseErr("snapshot", "bookmark", fmt.Errorf("bad bookmark %q", entry))
		}
		label, err := url.QueryUnescape(parts[0])
		if nil != err {
			return nil, parseErr("snapshot", "bookmark", err)
		}
		start, err := strconv.ParseInt(parts[1], 10, 64)
		if nil != err {
			return nil, parseErr("snapshot", "bookmark", err)
		}
		end, err := strconv.ParseInt(parts[2], 10, 64)
		if nil != err {
			return nil, parseErr("snapshot", "bookmark", err)
		}
		s.Chart.Bookmarks = append(s.Chart.Bookmarks, game.NewBookmark(label, start, end))
	}

	floats := []struct {
		field int
		dst   *float64
		name  string
	}{
		{fieldTempo, &s.Tempo, "tempo"},
		{fieldZoom, &s.Zoom, "zoom"},
		{fieldCurrentTime, &s.CurrentTime, "currentTime"},
		{fieldDivisor, &s.BeatDivisor, "beatDivisor"},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(fields[f.field], 64)
		if nil != err {
			return nil, parseErr("snapshot", f.name, err)
		}
		*f.dst = v
	}
	offset, err := strconv.ParseInt(fields[fieldExportOffset], 10, 64)
	if nil != err {
		return nil, parseErr("snapshot", "exportOffset", err)
	}
	s.ExportOffset = offset

	if len(fields) == fieldCount {
		s.History = fields[fieldHistory]
		if s.HistoryIndex, err = strconv.Atoi(fields[fieldHistoryIndex]); nil != err {
			return nil, parseErr("snapshot", "historyIndex", err)
		}
		s.Key = fields[fieldKey]
	}

	s.Chart.Sort()
	return s, nil
}

// JoinSnapshots builds the collection cache text.
func JoinSnapshots(records []string) string {
	return strings.Join(records, RecordSeparator)
}

// SplitSnapshots splits the collection cache text, dropping empty records.
func SplitSnapshots(text string) []string {
	var records []string
	for _, r := range strings.Split(text, RecordSeparator) {
		if r != "" {
			records = append(records, r)
		}
	}
	return records
}

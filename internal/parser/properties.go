package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"git.lost.host/meutraa/hopedit/internal/game"
)

// Properties is the content of a map's .ini side file. Optional values are
// nil when the file does not set them.
type Properties struct {
	TimingPoints []game.TimingPoint
	Bookmarks    []game.Bookmark
	CurrentTime  *float64
	BeatDivisor  *float64 // Subdivisions per beat
	ExportOffset *int64
}

// The file stores the divisor the way the old slider did, one less than the
// number of subdivisions.
type propertiesFile struct {
	Timings      [][2]float64      `json:"timings"`
	Bookmarks    []json.RawMessage `json:"bookmarks"`
	CurrentTime  *float64          `json:"currentTime,omitempty"`
	BeatDivisor  *float64          `json:"beatDivisor,omitempty"`
	ExportOffset *int64            `json:"exportOffset,omitempty"`
}

func EncodeProperties(p *Properties) (string, error) {
	f := propertiesFile{
		Timings:      make([][2]float64, len(p.TimingPoints)),
		Bookmarks:    make([]json.RawMessage, len(p.Bookmarks)),
		CurrentTime:  p.CurrentTime,
		ExportOffset: p.ExportOffset,
	}
	for i, tp := range p.TimingPoints {
		f.Timings[i] = [2]float64{tp.BPM, float64(tp.Ms)}
	}
	for i, b := range p.Bookmarks {
		raw, err := json.Marshal([]any{b.Label, b.StartMs, b.EndMs})
		if nil != err {
			return "", err
		}
		f.Bookmarks[i] = raw
	}
	if nil != p.BeatDivisor {
		v := *p.BeatDivisor - 1
		f.BeatDivisor = &v
	}
	data, err := json.Marshal(f)
	if nil != err {
		return "", err
	}
	return string(data), nil
}

// DecodeProperties reads the json properties format and falls back to the
// legacy KEY=value format.
func DecodeProperties(text string) (*Properties, error) {
	p, err := decodeJSONProperties(text)
	if nil == err {
		return p, nil
	}
	p, legacyErr := DecodeLegacyProperties(text)
	if nil != legacyErr {
		return nil, legacyErr
	}
	return p, nil
}

func decodeJSONProperties(text string) (*Properties, error) {
	var f propertiesFile
	if err := json.Unmarshal([]byte(text), &f); nil != err {
		return nil, parseErr("properties", "", err)
	}
	p := &Properties{
		TimingPoints: make([]game.TimingPoint, 0, len(f.Timings)),
		Bookmarks:    make([]game.Bookmark, 0, len(f.Bookmarks)),
		CurrentTime:  f.CurrentTime,
		ExportOffset: f.ExportOffset,
	}
	for _, t := range f.Timings {
		p.TimingPoints = append(p.TimingPoints, game.TimingPoint{BPM: t[0], Ms: int64(t[1])})
	}
	for i, raw := range f.Bookmarks {
		b, err := decodeJSONBookmark(raw)
		if nil != err {
			return nil, parseErr("properties", "bookmark "+strconv.Itoa(i), err)
		}
		p.Bookmarks = append(p.Bookmarks, b)
	}
	if nil != f.BeatDivisor {
		v := *f.BeatDivisor + 1
		p.BeatDivisor = &v
	}
	p.TimingPoints = game.SortTimingPoints(p.TimingPoints)
	game.SortBookmarks(p.Bookmarks)
	return p, nil
}

// A bookmark is [label, start, end] or [label, ms].
func decodeJSONBookmark(raw json.RawMessage) (game.Bookmark, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); nil != err {
		return game.Bookmark{}, err
	}
	if len(fields) < 2 || len(fields) > 3 {
		return game.Bookmark{}, fmt.Errorf("expected 2 or 3 fields, got %d", len(fields))
	}
	var label string
	var start, end int64
	if err := json.Unmarshal(fields[0], &label); nil != err {
		return game.Bookmark{}, err
	}
	if err := json.Unmarshal(fields[1], &start); nil != err {
		return game.Bookmark{}, err
	}
	end = start
	if len(fields) == 3 {
		if err := json.Unmarshal(fields[2], &end); nil != err {
			return game.Bookmark{}, err
		}
	}
	return game.NewBookmark(label, start, end), nil
}

func legacyLines(text string) [][2]string {
	var lines [][2]string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r", ""), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		lines = append(lines, [2]string{strings.TrimSpace(key), strings.TrimSpace(value)})
	}
	return lines
}

// isOldVersion reports whether any BPM entry lacks a time, which marks files
// written before timing points existed.
func isOldVersion(lines [][2]string) bool {
	for _, kv := range lines {
		if kv[0] != "BPM" {
			continue
		}
		for _, point := range strings.Split(kv[1], ",") {
			if !strings.Contains(point, "|") {
				return true
			}
		}
	}
	return false
}

// DecodeLegacyProperties reads the KEY=value format. In old files Offset is
// the time of the first timing point, otherwise it is the export offset.
func DecodeLegacyProperties(text string) (*Properties, error) {
	lines := legacyLines(text)
	oldVer := isOldVersion(lines)
	p := &Properties{}
	var offset *int64
	known := false

	for _, kv := range lines {
		key, value := kv[0], kv[1]
		switch key {
		case "BPM":
			for _, point := range strings.Split(value, ",") {
				bpmText, msText, ok := strings.Cut(point, "|")
				if !ok {
					msText = "0"
				}
				bpm, err := strconv.ParseFloat(strings.TrimSpace(bpmText), 64)
				if nil != err {
					return nil, parseErr("legacy properties", key, err)
				}
				ms, err := strconv.ParseInt(strings.TrimSpace(msText), 10, 64)
				if nil != err {
					return nil, parseErr("legacy properties", key, err)
				}
				p.TimingPoints = append(p.TimingPoints, game.TimingPoint{BPM: bpm, Ms: ms})
			}
		case "Bookmarks":
			if value == "" {
				break
			}
			for _, entry := range strings.Split(value, ",") {
				fields := strings.Split(entry, "|")
				if len(fields) < 2 || len(fields) > 3 {
					return nil, parseErr("legacy properties", key, fmt.Errorf("bad bookmark %q", entry))
				}
				start, err := strconv.ParseInt(fields[1], 10, 64)
				if nil != err {
					return nil, parseErr("legacy properties", key, err)
				}
				end := start
				if len(fields) == 3 {
					if end, err = strconv.ParseInt(fields[2], 10, 64); nil != err {
						return nil, parseErr("legacy properties", key, err)
					}
				}
				p.Bookmarks = append(p.Bookmarks, game.NewBookmark(fields[0], start, end))
			}
		case "Offset":
			v, err := strconv.ParseInt(value, 10, 64)
			if nil != err {
				return nil, parseErr("legacy properties", key, err)
			}
			offset = &v
		case "Time":
			v, err := strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, parseErr("legacy properties", key, err)
			}
			p.CurrentTime = &v
		case "Divisor":
			v, err := strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, parseErr("legacy properties", key, err)
			}
			p.BeatDivisor = &v
		default:
			continue
		}
		known = true
	}
	if !known {
		return nil, parseErr("legacy properties", "", errors.New("no known keys"))
	}

	p.TimingPoints = game.SortTimingPoints(p.TimingPoints)
	game.SortBookmarks(p.Bookmarks)
	if nil != offset {
		if oldVer {
			if len(p.TimingPoints) > 0 {
				p.TimingPoints[0].Ms = *offset
				p.TimingPoints = game.SortTimingPoints(p.TimingPoints)
			}
		} else {
			p.ExportOffset = offset
		}
	}
	return p, nil
}

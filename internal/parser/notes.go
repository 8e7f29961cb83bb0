package parser

import (
	"errors"
	"strconv"
	"strings"

	"git.lost.host/meutraa/hopedit/internal/game"
)

// EncodeMap writes the id followed by one ",lane|0|d" entry per note, where d
// is the change in the gap between consecutive note times. The notes must be
// sorted.
func EncodeMap(id string, notes []game.Note, exportOffset int64) string {
	var b strings.Builder
	b.WriteString(id)

	var prevMs, prevDiff int64
	for _, n := range notes {
		ms := n.Ms + exportOffset
		diff := ms - prevMs
		b.WriteByte(',')
		b.WriteString(formatFloat(roundLane(n.Lane)))
		b.WriteString("|0|")
		b.WriteString(formatInt(diff - prevDiff))
		prevDiff = diff
		prevMs = ms
	}
	return b.String()
}

func splitEntry(format string, i int, entry string) (float64, float64, int64, error) {
	field := "note " + strconv.Itoa(i)
	parts := strings.Split(entry, "|")
	if len(parts) != 3 {
		return 0, 0, 0, parseErr(format, field, errors.New("expected lane|y|ms"))
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if nil != err {
		return 0, 0, 0, parseErr(format, field, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if nil != err {
		return 0, 0, 0, parseErr(format, field, err)
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
	if nil != err {
		return 0, 0, 0, parseErr(format, field, err)
	}
	return x, y, ms, nil
}

// DecodeMap reverses EncodeMap. The returned times still include the export
// offset. Empty entries are skipped.
func DecodeMap(data string) (string, []game.Note, error) {
	entries := strings.Split(strings.TrimSpace(data), ",")
	notes := make([]game.Note, 0, len(entries)-1)

	var diff, total int64
	for i, entry := range entries[1:] {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		x, _, d, err := splitEntry("map", i, entry)
		if nil != err {
			return "", nil, err
		}
		diff += d
		total += diff
		notes = append(notes, game.Note{Lane: roundLane(x), Ms: total})
	}
	game.SortNotes(notes)
	return entries[0], notes, nil
}

// DecodeSoundSpace reads the grid based "id,x|y|ms" format with absolute
// times. The lane is x+y clamped to the playfield.
func DecodeSoundSpace(data string) (string, []game.Note, error) {
	entries := strings.Split(strings.TrimSpace(data), ",")
	notes := make([]game.Note, 0, len(entries)-1)

	for i, entry := range entries[1:] {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		x, y, ms, err := splitEntry("soundspace", i, entry)
		if nil != err {
			return "", nil, err
		}
		notes = append(notes, game.NewNote(x+y, ms))
	}
	game.SortNotes(notes)
	return entries[0], notes, nil
}

// SubtractOffset removes the export offset from decoded note times.
func SubtractOffset(notes []game.Note, exportOffset int64) {
	for i := range notes {
		notes[i].Ms -= exportOffset
	}
}

package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"git.lost.host/meutraa/hopedit/internal/game"
)

// FormatBookmarks writes one "start[-end] ~ label" line per bookmark.
func FormatBookmarks(bookmarks []game.Bookmark) string {
	lines := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		span := formatInt(b.StartMs)
		if b.Ranged() {
			span += "-" + formatInt(b.EndMs)
		}
		lines[i] = span + " ~ " + b.Label
	}
	return strings.Join(lines, "\n")
}

// ParseBookmarks reads FormatBookmarks output, skipping lines it cannot read.
func ParseBookmarks(text string) []game.Bookmark {
	var bookmarks []game.Bookmark
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r", ""), "\n") {
		span, label, ok := strings.Cut(line, " ~ ")
		if !ok {
			continue
		}
		startText, endText, ranged := strings.Cut(span, "-")
		start, err := strconv.ParseInt(strings.TrimSpace(startText), 10, 64)
		if nil != err {
			continue
		}
		end := start
		if ranged {
			if end, err = strconv.ParseInt(strings.TrimSpace(endText), 10, 64); nil != err {
				continue
			}
		}
		bookmarks = append(bookmarks, game.NewBookmark(label, start, end))
	}
	return bookmarks
}

// PatternNote is a lane and a number of grid steps from the pattern start.
type PatternNote struct {
	Lane  float64
	Steps int
}

// FormatPattern stores notes as "lane|steps" using the smallest gap between
// them as the step size.
func FormatPattern(notes []game.Note) string {
	if len(notes) == 0 {
		return ""
	}
	var step int64
	for i := 0; i+1 < len(notes); i++ {
		gap := notes[i+1].Ms - notes[i].Ms
		if gap < 0 {
			gap = -gap
		}
		if gap > 0 && (step == 0 || gap < step) {
			step = gap
		}
	}
	entries := make([]string, len(notes))
	for i, n := range notes {
		steps := 0.0
		if step > 0 {
			steps = math.Round(float64(n.Ms-notes[0].Ms) / float64(step))
		}
		entries[i] = formatFloat(n.Lane) + "|" + formatFloat(steps)
	}
	return strings.Join(entries, ",")
}

// ParsePattern reads FormatPattern output. The older "lane|y|steps" form is
// also accepted.
func ParsePattern(text string) ([]PatternNote, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var pattern []PatternNote
	for i, entry := range strings.Split(text, ",") {
		field := "note " + strconv.Itoa(i)
		parts := strings.Split(strings.TrimSpace(entry), "|")
		if len(parts) != 2 && len(parts) != 3 {
			return nil, parseErr("pattern", field, errors.New("expected lane|steps"))
		}
		lane, err := strconv.ParseFloat(parts[0], 64)
		if nil != err {
			return nil, parseErr("pattern", field, err)
		}
		steps, err := strconv.ParseFloat(parts[len(parts)-1], 64)
		if nil != err {
			return nil, parseErr("pattern", field, err)
		}
		if steps < 0 || steps != math.Trunc(steps) {
			return nil, parseErr("pattern", field, fmt.Errorf("bad step count %v", steps))
		}
		pattern = append(pattern, PatternNote{Lane: lane, Steps: int(steps)})
	}
	return pattern, nil
}

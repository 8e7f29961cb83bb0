package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"git.lost.host/meutraa/hopedit/internal/editor"
	"git.lost.host/meutraa/hopedit/internal/game"
	"git.lost.host/meutraa/hopedit/internal/theme"
	"golang.org/x/exp/slices"
)

// Lanes are drawn at half lane resolution.
const laneColumns = int(game.MaxLane*2) + 1

type DefaultRenderer struct {
	Out   io.Writer
	Theme theme.Theme

	buffer strings.Builder
}

func (r *DefaultRenderer) fillColor(c color.RGBA, message string) {
	r.buffer.WriteString("\033[38;2;")
	r.buffer.WriteString(strconv.FormatInt(int64(c.R), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.G), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.B), 10))
	r.buffer.WriteString("m")
	r.buffer.WriteString(message)
	r.buffer.WriteString("\033[0m")
}

func (r *DefaultRenderer) Toast(message string) {
	r.fillColor(r.Theme.ToastColor(), message)
	r.buffer.WriteString("\n")
}

func (r *DefaultRenderer) Error(message string) {
	r.fillColor(r.Theme.ErrorColor(), "error: "+message)
	r.buffer.WriteString("\n")
}

func (r *DefaultRenderer) Status(ctx *editor.Context, name string, saved bool) {
	mark := ""
	if !saved {
		mark = "*"
	}
	tempo := ctx.Timing().CurrentTempo(ctx.Settings.CurrentTime, false)
	fmt.Fprintf(&r.buffer, "%v%v  %.0f/%.0f ms  %v bpm  1/%v  %v notes  undo %q redo %q\n",
		name, mark,
		ctx.Settings.CurrentTime, ctx.Settings.MaxTime,
		strconv.FormatFloat(tempo.BPM, 'f', -1, 64),
		strconv.FormatFloat(ctx.Settings.BeatDivisor, 'f', -1, 64),
		len(ctx.Chart.Notes),
		ctx.History.UndoLabel(), ctx.History.RedoLabel(),
	)
}

type row struct {
	ms    int64
	tick  *game.Tick
	notes []game.Note
}

// Timeline shows the grid and the notes around it, one line per grid line or
// off grid note.
func (r *DefaultRenderer) Timeline(ctx *editor.Context, rows int) {
	if rows <= 0 {
		return
	}
	t := ctx.Timing()
	from := math.Round(ctx.Settings.CurrentTime)
	// Without a tempo there is no grid, so show a fixed window
	to := from + float64(rows)*250/ctx.Zoom

	byMs := map[int64]*row{}
	get := func(ms int64) *row {
		if rr, ok := byMs[ms]; ok {
			return rr
		}
		rr := &row{ms: ms}
		byMs[ms] = rr
		return rr
	}
	count := 0
	for tick := range t.Ticks(from, to) {
		get(int64(math.Round(tick.Ms))).tick = &tick
		count++
		if count >= rows {
			to = tick.Ms
			break
		}
	}
	notes, _, _ := ctx.Chart.Visible(int64(from), int64(to))
	for _, n := range notes {
		rr := get(n.Ms)
		rr.notes = append(rr.notes, n)
	}

	ordered := make([]*row, 0, len(byMs))
	for _, rr := range byMs {
		ordered = append(ordered, rr)
	}
	slices.SortFunc(ordered, func(a, b *row) int {
		switch {
		case a.ms < b.ms:
			return -1
		case a.ms > b.ms:
			return 1
		}
		return 0
	})

	for _, rr := range ordered {
		r.timelineRow(ctx, rr)
	}
}

func (r *DefaultRenderer) timelineRow(ctx *editor.Context, rr *row) {
	t := ctx.Timing()
	cursor := " "
	if rr.ms == int64(math.Round(ctx.Settings.CurrentTime)) {
		cursor = ">"
	}
	fmt.Fprintf(&r.buffer, "%v%8d ", cursor, rr.ms)

	if nil != rr.tick {
		r.fillColor(r.Theme.TickColor(rr.tick.Kind), r.Theme.TickSym(rr.tick.Kind))
	} else {
		r.buffer.WriteString(" ")
	}
	r.buffer.WriteString(" │")

	cells := make([]*game.Note, laneColumns)
	for i := range rr.notes {
		n := &rr.notes[i]
		cells[int(math.Round(n.Lane*2))] = n
	}
	for _, n := range cells {
		switch {
		case nil == n:
			r.buffer.WriteString(" ")
		case n.Selected:
			r.fillColor(r.Theme.SelectedColor(), r.Theme.NoteSym(true))
		default:
			r.fillColor(r.Theme.NoteColor(t.Denominator(n.Ms)), r.Theme.NoteSym(false))
		}
	}
	r.buffer.WriteString("│")

	if i := game.IndexOfTimingPoint(ctx.Chart.TimingPoints, rr.ms); i >= 0 {
		p := ctx.Chart.TimingPoints[i]
		fmt.Fprintf(&r.buffer, " %v %v bpm", r.Theme.PointSym(), strconv.FormatFloat(p.BPM, 'f', -1, 64))
	}
	for _, b := range ctx.Chart.Bookmarks {
		if b.StartMs == rr.ms {
			fmt.Fprintf(&r.buffer, " %v %v", r.Theme.BookmarkSym(), b.Label)
		}
	}
	r.buffer.WriteString("\n")
}

func (r *DefaultRenderer) Flush() error {
	_, err := io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
	return err
}

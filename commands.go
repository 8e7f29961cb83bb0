package main

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"git.lost.host/meutraa/hopedit/internal/config"
	"git.lost.host/meutraa/hopedit/internal/document"
	"git.lost.host/meutraa/hopedit/internal/parser"
)

type command struct {
	usage string
	args  int // Minimum number of arguments
	// changes is false for commands that leave the open maps alone
	changes bool
	run     func(p *Program, args []string) error
}

var errNoMap = errors.New("no map is open, use open, new or recover")

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":    {"help", 0, false, (*Program).help},
		"quit":    {"quit", 0, false, func(p *Program, _ []string) error { p.quit = true; return nil }},
		"open":    {"open <path>", 1, true, func(p *Program, a []string) error { return p.maps.LoadMap(strings.Join(a, " "), true, false, false) }},
		"ss":      {"ss <path>", 1, true, func(p *Program, a []string) error { return p.maps.LoadMap(strings.Join(a, " "), true, false, true) }},
		"load":    {"load <map text>", 1, true, func(p *Program, a []string) error { return p.maps.LoadMap(a[0], false, false, false) }},
		"recover": {"recover", 0, true, (*Program).recover},
		"new":     {"new <audio id>", 1, true, (*Program).newMap},
		"maps":    {"maps", 0, false, (*Program).list},
		"switch":  {"switch <n>", 1, true, (*Program).switchMap},
		"save":    {"save", 0, true, func(p *Program, _ []string) error { return p.save(false) }},
		"saveas":  {"saveas", 0, true, func(p *Program, _ []string) error { return p.save(true) }},
		"close":   {"close", 0, true, (*Program).close},
		"import":  {"import <ini path>", 1, true, (*Program).importProperties},
		"export":  {"export", 0, false, (*Program).export},

		"undo": {"undo", 0, true, (*Program).undo},
		"redo": {"redo", 0, true, (*Program).redo},

		"note":   {"note <lane> [ms]", 1, true, (*Program).note},
		"select": {"select all|none|<from> <to>", 1, false, (*Program).selectNotes},
		"copy":   {"copy", 0, false, (*Program).copyNotes},
		"cut":    {"cut", 0, true, (*Program).cut},
		"paste":  {"paste", 0, true, (*Program).paste},
		"delete": {"delete", 0, true, func(p *Program, _ []string) error { return p.maps.Context().Delete() }},
		"mirror": {"mirror", 0, true, func(p *Program, _ []string) error { return p.maps.Context().Mirror() }},
		"move":   {"move <ms>", 1, true, (*Program).move},
		"drag":   {"drag <ms>", 1, true, (*Program).drag},
		"lane":   {"lane <lane>", 1, true, (*Program).lane},

		"point":     {"point <bpm> [ms]", 1, true, (*Program).point},
		"rmpoint":   {"rmpoint <ms>", 1, true, (*Program).removePoint},
		"movepoint": {"movepoint <from> <to>", 2, true, (*Program).movePoint},
		"bpm":       {"bpm <ms> <bpm>", 2, true, (*Program).bpm},

		"bookmark":   {"bookmark <start> <end> <label>", 3, true, (*Program).bookmark},
		"rmbookmark": {"rmbookmark <n>", 1, true, (*Program).removeBookmark},
		"bookmarks":  {"bookmarks [text]", 0, true, (*Program).bookmarks},

		"bind":    {"bind <0-9>", 1, false, (*Program).bind},
		"pattern": {"pattern <0-9>", 1, true, (*Program).pattern},

		"seek":    {"seek <ms>", 1, true, (*Program).seek},
		"next":    {"next", 0, true, func(p *Program, _ []string) error { p.advance(false); return nil }},
		"prev":    {"prev", 0, true, func(p *Program, _ []string) error { p.advance(true); return nil }},
		"divisor": {"divisor <n>", 1, true, (*Program).divisor},
		"zoom":    {"zoom <z>", 1, true, (*Program).zoom},
		"tempo":   {"tempo <0.1-2>", 1, true, (*Program).tempo},
	}
}

// Commands that work without an open map.
var global = map[string]bool{
	"help": true, "quit": true, "open": true, "ss": true, "load": true,
	"recover": true, "new": true, "maps": true, "switch": true,
}

func (p *Program) execute(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	name, args := fields[0], fields[1:]
	c, ok := commands[name]
	if !ok {
		p.ShowError(fmt.Sprintf("unknown command %q, try help", name))
		return
	}
	if len(args) < c.args {
		p.ShowError("usage: " + c.usage)
		return
	}
	if !global[name] && nil == p.maps.Current() {
		p.ShowError(errNoMap.Error())
		return
	}
	before := p.maps.Current()
	if err := c.run(p, args); nil != err {
		p.ShowError(err.Error())
		return
	}
	if c.changes {
		p.scheduler.Touch()
	}
	if p.maps.Current() != before {
		p.scheduler.Rearm()
	}
}

func (p *Program) help(_ []string) error {
	var b strings.Builder
	for _, c := range commands {
		b.WriteString("  " + c.usage + "\n")
	}
	p.NotifyToast(b.String())
	return nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if nil != err {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func parseMs(s string) (int64, error) {
	v, err := parseFloat(s)
	return int64(math.Round(v)), err
}

func (p *Program) recover(_ []string) error {
	if p.settings.AutosavedFile == "" {
		return errors.New("nothing was autosaved")
	}
	return p.maps.LoadMap(p.settings.AutosavedFile, false, true, false)
}

func (p *Program) newMap(args []string) error {
	if err := p.maps.New(args[0]); nil != err {
		return err
	}
	p.maps.Context().SetDivisor(*config.Divisor)
	return nil
}

func (p *Program) list(_ []string) error {
	var b strings.Builder
	for i, m := range p.maps.Maps() {
		mark := " "
		if m == p.maps.Current() {
			mark = ">"
		}
		fmt.Fprintf(&b, "%v%2d %v (%v)\n", mark, i, m.Name(), m.SoundID())
	}
	p.NotifyToast(b.String())
	return nil
}

func (p *Program) mapAt(arg string) (*document.Map, error) {
	maps := p.maps.Maps()
	i, err := strconv.Atoi(arg)
	if nil != err || i < 0 || i >= len(maps) {
		return nil, fmt.Errorf("no map %v", arg)
	}
	return maps[i], nil
}

func (p *Program) switchMap(args []string) error {
	m, err := p.mapAt(args[0])
	if nil != err {
		return err
	}
	return m.MakeActive(true)
}

func (p *Program) save(fileForced bool) error {
	ok, err := p.maps.SaveActive(true, fileForced)
	if nil != err {
		return err
	}
	if ok {
		p.NotifyToast("SAVED")
		p.saveSettings()
	}
	return nil
}

func (p *Program) close(_ []string) error {
	_, err := p.maps.Current().Close(false, false, true)
	return err
}

func (p *Program) importProperties(args []string) error {
	path := strings.Join(args, " ")
	text, err := p.ReadText(path)
	if nil != err {
		return err
	}
	if err := p.maps.ImportProperties(text); nil != err {
		return err
	}
	p.settings.DefaultPath = filepath.Dir(path)
	return nil
}

// export prints the map text, as the clipboard export would hold it.
func (p *Program) export(_ []string) error {
	ctx := p.maps.Context()
	p.NotifyToast(p.Parser.EncodeMap(ctx.SoundID, ctx.Chart.Notes, ctx.Settings.ExportOffset))
	return nil
}

func (p *Program) undo(_ []string) error {
	ctx := p.maps.Context()
	label := ctx.History.UndoLabel()
	ok, err := ctx.Undo()
	if ok {
		p.NotifyToast("UNDONE: " + label)
	}
	return err
}

func (p *Program) redo(_ []string) error {
	ctx := p.maps.Context()
	label := ctx.History.RedoLabel()
	ok, err := ctx.Redo()
	if ok {
		p.NotifyToast("REDONE: " + label)
	}
	return err
}

func (p *Program) note(args []string) error {
	ctx := p.maps.Context()
	lane, err := parseFloat(args[0])
	if nil != err {
		return err
	}
	ms := ctx.Settings.CurrentTime
	if len(args) > 1 {
		if ms, err = parseFloat(args[1]); nil != err {
			return err
		}
	}
	if err := ctx.PlaceNote(lane, ms, true); nil != err {
		return err
	}
	if p.settings.AutoAdvance {
		p.advance(false)
	}
	return nil
}

func (p *Program) selectNotes(args []string) error {
	ctx := p.maps.Context()
	switch args[0] {
	case "all":
		ctx.SelectAll()
		return nil
	case "none":
		ctx.ClearSelection()
		return nil
	}
	if len(args) < 2 {
		return errors.New("usage: " + commands["select"].usage)
	}
	from, err := parseMs(args[0])
	if nil != err {
		return err
	}
	to, err := parseMs(args[1])
	if nil != err {
		return err
	}
	p.NotifyToast(fmt.Sprintf("SELECTED %v", ctx.SelectRange(from, to, false)))
	return nil
}

func (p *Program) copyNotes(_ []string) error {
	notes := p.maps.Context().Selected()
	if len(notes) == 0 {
		return errors.New("no notes selected")
	}
	p.clipboard = notes
	p.NotifyToast(fmt.Sprintf("COPIED %v", len(notes)))
	return nil
}

func (p *Program) cut(_ []string) error {
	notes, err := p.maps.Context().Cut()
	if nil != err {
		return err
	}
	p.clipboard = notes
	return nil
}

func (p *Program) paste(_ []string) error {
	scale := 1.0
	if p.settings.ApplyOnPaste {
		scale = p.settings.PasteScale
	}
	return p.maps.Context().Paste(p.clipboard, scale)
}

func (p *Program) move(args []string) error {
	delta, err := parseMs(args[0])
	if nil != err {
		return err
	}
	return p.maps.Context().Move(delta)
}

// drag moves the selection so it starts at the snapped time.
func (p *Program) drag(args []string) error {
	to, err := parseFloat(args[0])
	if nil != err {
		return err
	}
	ctx := p.maps.Context()
	ctx.BeginDrag()
	return ctx.EndDrag(to, true)
}

func (p *Program) lane(args []string) error {
	lane, err := parseFloat(args[0])
	if nil != err {
		return err
	}
	return p.maps.Context().SetLane(lane)
}

func (p *Program) point(args []string) error {
	ctx := p.maps.Context()
	bpm, err := parseFloat(args[0])
	if nil != err {
		return err
	}
	if len(args) < 2 {
		return ctx.AddTimingPointHere(bpm)
	}
	ms, err := parseMs(args[1])
	if nil != err {
		return err
	}
	return ctx.AddTimingPoint(bpm, ms)
}

func (p *Program) removePoint(args []string) error {
	ms, err := parseMs(args[0])
	if nil != err {
		return err
	}
	return p.maps.Context().RemoveTimingPoint(ms)
}

func (p *Program) movePoint(args []string) error {
	from, err := parseMs(args[0])
	if nil != err {
		return err
	}
	to, err := parseFloat(args[1])
	if nil != err {
		return err
	}
	return p.maps.Context().MoveTimingPoint(from, to, true)
}

func (p *Program) bpm(args []string) error {
	ms, err := parseMs(args[0])
	if nil != err {
		return err
	}
	bpm, err := parseFloat(args[1])
	if nil != err {
		return err
	}
	return p.maps.Context().SetTimingPointBPM(ms, bpm)
}

func (p *Program) bookmark(args []string) error {
	start, err := parseMs(args[0])
	if nil != err {
		return err
	}
	end, err := parseMs(args[1])
	if nil != err {
		return err
	}
	return p.maps.Context().AddBookmark(strings.Join(args[2:], " "), start, end)
}

func (p *Program) removeBookmark(args []string) error {
	ctx := p.maps.Context()
	i, err := strconv.Atoi(args[0])
	if nil != err || i < 0 || i >= len(ctx.Chart.Bookmarks) {
		return fmt.Errorf("no bookmark %v", args[0])
	}
	return ctx.RemoveBookmark(ctx.Chart.Bookmarks[i])
}

// bookmarks prints the bookmarks, or replaces them when given text. Lines of
// the text are separated by ';'.
func (p *Program) bookmarks(args []string) error {
	ctx := p.maps.Context()
	if len(args) == 0 {
		p.NotifyToast(parser.FormatBookmarks(ctx.Chart.Bookmarks))
		return nil
	}
	text := strings.ReplaceAll(strings.Join(args, " "), ";", "\n")
	bookmarks := parser.ParseBookmarks(text)
	if len(bookmarks) == 0 {
		return errors.New("no bookmarks in text")
	}
	return ctx.ReplaceBookmarks(bookmarks)
}

func patternIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if nil != err || i < 0 || i >= config.PatternCount {
		return 0, fmt.Errorf("pattern must be 0 to %v", config.PatternCount-1)
	}
	return i, nil
}

func (p *Program) bind(args []string) error {
	i, err := patternIndex(args[0])
	if nil != err {
		return err
	}
	pattern, err := p.maps.Context().BindPattern()
	if nil != err {
		return err
	}
	p.settings.Patterns[i] = pattern
	p.saveSettings()
	p.NotifyToast(fmt.Sprintf("BOUND PATTERN TO KEY %v", i))
	return nil
}

func (p *Program) pattern(args []string) error {
	i, err := patternIndex(args[0])
	if nil != err {
		return err
	}
	return p.maps.Context().CreatePattern(p.settings.Patterns[i])
}

func (p *Program) seek(args []string) error {
	ms, err := parseFloat(args[0])
	if nil != err {
		return err
	}
	p.maps.Context().Seek(ms)
	return nil
}

func (p *Program) advance(reverse bool) {
	if !p.maps.Context().Advance(reverse) {
		p.ShowError("no tempo here")
	}
}

func (p *Program) divisor(args []string) error {
	d, err := parseFloat(args[0])
	if nil != err {
		return err
	}
	p.maps.Context().SetDivisor(d)
	return nil
}

func (p *Program) zoom(args []string) error {
	z, err := parseFloat(args[0])
	if nil != err {
		return err
	}
	p.maps.Context().SetZoom(z)
	return nil
}

func (p *Program) tempo(args []string) error {
	v, err := parseFloat(args[0])
	if nil != err {
		return err
	}
	p.maps.Context().SetTempo(v)
	return nil
}

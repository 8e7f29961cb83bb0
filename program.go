package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/hopedit/internal/audio"
	"git.lost.host/meutraa/hopedit/internal/autosave"
	"git.lost.host/meutraa/hopedit/internal/config"
	"git.lost.host/meutraa/hopedit/internal/document"
	"git.lost.host/meutraa/hopedit/internal/game"
	"git.lost.host/meutraa/hopedit/internal/input"
	"git.lost.host/meutraa/hopedit/internal/parser"
	"git.lost.host/meutraa/hopedit/internal/render"
	"git.lost.host/meutraa/hopedit/internal/store"
	"git.lost.host/meutraa/hopedit/internal/theme"
)

// Changes to the open maps are flushed to the cache once they settle.
const cacheSettle = 2 * time.Second

// Program is the terminal front end. It is the collaborator of the map set.
type Program struct {
	Parser   *parser.DefaultParser
	Store    store.Store
	Audio    audio.Loader
	Input    input.Input
	Renderer render.Renderer

	settings  *config.Settings
	maps      *document.MapSet
	scheduler *autosave.Scheduler

	clipboard []game.Note
	quit      bool
}

func (p *Program) Init() error {
	// Ensure our Default implementations are used as interfaces
	p.Parser = &parser.DefaultParser{}
	p.Audio = &audio.DefaultLoader{Dir: *config.Assets}
	p.Input = input.NewDefaultInput()
	p.Renderer = &render.DefaultRenderer{Out: os.Stdout, Theme: &theme.DefaultTheme{}}

	settings, err := config.LoadSettings(*config.SettingsFile)
	if nil != err {
		return err
	}
	if *config.Autosave > 0 {
		settings.AutosaveInterval = config.Autosave.Minutes()
	}
	p.settings = settings

	switch *config.Backend {
	case "sqlite":
		p.Store = &store.SQLiteStore{Path: *config.CacheFile + ".db"}
	default:
		p.Store = &store.FileStore{Path: *config.CacheFile + ".txt"}
	}
	if err := p.Store.Init(); nil != err {
		return fmt.Errorf("unable to open cache: %w", err)
	}

	p.maps = document.NewMapSet(p, p.Parser, p.Store, p.settings)
	p.scheduler = autosave.New(p.settings.Interval(), cacheSettle)
	return nil
}

func (p *Program) Deinit() {
	p.scheduler.Stop()
	if err := p.maps.CacheMaps(); nil != err {
		log.Println(err)
	}
	if err := p.settings.Save(*config.SettingsFile); nil != err {
		log.Println(err)
	}
	p.Store.Deinit()
}

// Run opens the cached and requested maps and reads commands until quit.
func (p *Program) Run() error {
	if err := p.maps.LoadCache(); nil != err {
		p.ShowError(err.Error())
	}
	if maps := p.maps.Maps(); len(maps) > 0 {
		if err := maps[len(maps)-1].MakeActive(true); nil != err {
			p.ShowError(err.Error())
		}
	}
	for _, f := range *config.Files {
		if err := p.maps.LoadMap(f, true, false, *config.SoundSpace); nil != err {
			p.ShowError(err.Error())
		}
	}
	if p.maps.Current() == nil && p.settings.AutosavedFile != "" {
		p.NotifyToast("an autosaved map can be restored with 'recover'")
	}
	p.scheduler.Rearm()
	p.show()

	requests := make(chan struct{}, 1)
	lines := make(chan string)
	go p.readLines(requests, lines)
	requests <- struct{}{}

	for !p.quit {
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			p.execute(line)
			p.show()
			if !p.quit {
				requests <- struct{}{}
			}
		case <-p.scheduler.Ticks:
			if saved, err := p.maps.Autosave(); nil != err {
				p.ShowError(err.Error())
			} else if saved {
				p.saveSettings()
			}
			p.flush()
		case <-p.scheduler.Flushes:
			if err := p.maps.CacheMaps(); nil != err {
				p.ShowError(err.Error())
				p.flush()
			}
		}
	}
	return nil
}

// readLines reads one line per request so that prompts can use the input in
// between.
func (p *Program) readLines(requests <-chan struct{}, lines chan<- string) {
	defer close(lines)
	for range requests {
		line, err := p.Input.ReadLine("> ")
		if nil != err {
			if !errors.Is(err, io.EOF) {
				log.Println("unable to read command", err)
			}
			return
		}
		lines <- line
	}
}

func (p *Program) saveSettings() {
	if err := p.settings.Save(*config.SettingsFile); nil != err {
		p.ShowError(err.Error())
	}
}

func (p *Program) flush() {
	if err := p.Renderer.Flush(); nil != err {
		log.Println("unable to write output", err)
	}
}

func (p *Program) show() {
	if m := p.maps.Current(); nil != m {
		p.Renderer.Status(p.maps.Context(), m.Name(), p.maps.IsActiveSaved())
		p.Renderer.Timeline(p.maps.Context(), 16)
	}
	p.flush()
}

func (p *Program) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if nil != err {
		return "", err
	}
	return string(data), nil
}

func (p *Program) WriteText(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); nil != err {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

func (p *Program) FileExists(path string) bool {
	info, err := os.Stat(path)
	return nil == err && !info.IsDir()
}

func (p *Program) PromptSaveDecision(name string) document.Decision {
	p.flush()
	r, err := p.Input.Choose(name+"\nWould you like to save before closing?", "ync")
	if nil != err {
		return document.Cancel
	}
	switch r {
	case 'y':
		return document.Yes
	case 'n':
		return document.No
	}
	return document.Cancel
}

func (p *Program) PromptSavePath(suggested string) (string, bool) {
	p.flush()
	line, err := p.Input.ReadLine(fmt.Sprintf("Save map as [%v]: ", suggested))
	if nil != err {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		line = suggested
	}
	if filepath.Ext(line) == "" {
		line += ".txt"
	}
	return line, true
}

func (p *Program) LoadAudio(id string) (int64, error) {
	ms, err := p.Audio.Load(id)
	if errors.Is(err, audio.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		// The editor still works without audio, the timeline is just unbounded
		log.Println("no audio for", id)
		return 0, nil
	}
	return ms, err
}

func (p *Program) NotifyToast(msg string) { p.Renderer.Toast(msg) }
func (p *Program) ShowError(msg string)   { p.Renderer.Error(msg) }

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const PatternCount = 10

// Settings are the user preferences kept between sessions.
type Settings struct {
	AutosaveInterval    float64              `yaml:"autosaveInterval"` // Minutes, 0 disables
	DefaultPath         string               `yaml:"defaultPath"`
	AudioPath           string               `yaml:"audioPath"`
	LastFile            string               `yaml:"lastFile"`
	Patterns            [PatternCount]string `yaml:"patterns"`
	ApplyOnPaste        bool                 `yaml:"applyOnPaste"`
	PasteScale          float64              `yaml:"pasteScale"`
	AutoAdvance         bool                 `yaml:"autoAdvance"`
	AutosavedFile       string               `yaml:"autosavedFile"`
	AutosavedProperties string               `yaml:"autosavedProperties"`
}

func DefaultSettings() *Settings {
	return &Settings{
		AutosaveInterval: 5,
		PasteScale:       1,
	}
}

// Interval returns the autosave period, 0 when autosave is off.
func (s *Settings) Interval() time.Duration {
	if s.AutosaveInterval <= 0 {
		return 0
	}
	return time.Duration(s.AutosaveInterval * float64(time.Minute))
}

// LoadSettings reads the settings file. A missing file gives the defaults.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if nil != err {
		return nil, fmt.Errorf("unable to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, s); nil != err {
		return nil, fmt.Errorf("unable to parse settings %v: %w", path, err)
	}
	return s, nil
}

func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if nil != err {
		return fmt.Errorf("unable to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); nil != err {
		return fmt.Errorf("unable to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); nil != err {
		return fmt.Errorf("unable to write settings: %w", err)
	}
	return nil
}

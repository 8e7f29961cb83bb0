package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.lost.host/meutraa/hopedit/internal/parser"
)

// FileStore keeps all records in a single text file, joined the same way the
// editor has always written its cache.
type FileStore struct {
	Path string
}

func (s *FileStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); nil != err {
		return fmt.Errorf("unable to create cache directory: %w", err)
	}
	return nil
}

func (s *FileStore) Deinit() {}

func (s *FileStore) Save(records []Record) error {
	data := make([]string, len(records))
	for i, r := range records {
		data[i] = r.Data
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(parser.JoinSnapshots(data)), 0o644); nil != err {
		return fmt.Errorf("unable to write cache: %w", err)
	}
	if err := os.Rename(tmp, s.Path); nil != err {
		return fmt.Errorf("unable to replace cache: %w", err)
	}
	return nil
}

// Load returns no records when the cache file does not exist yet. The file
// format has no keys, so the records carry none.
func (s *FileStore) Load() ([]Record, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if nil != err {
		return nil, fmt.Errorf("unable to read cache: %w", err)
	}
	var records []Record
	for _, r := range parser.SplitSnapshots(string(data)) {
		records = append(records, Record{Data: r})
	}
	return records, nil
}

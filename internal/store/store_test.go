package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var records = []Record{
	{Key: "b", Data: "1|0|100\n\x00120|0"},
	{Key: "a", Data: "second"},
}

func TestFileStore(t *testing.T) {
	s := &FileStore{Path: filepath.Join(t.TempDir(), "temp", "cache.txt")}
	require.NoError(t, s.Init())
	defer s.Deinit()

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, s.Save(records))
	raw, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, records[0].Data+"\r\x00"+records[1].Data, string(raw))

	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, []Record{{Data: records[0].Data}, {Data: records[1].Data}}, loaded)

	require.NoError(t, s.Save(records[1:]))
	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	s := &SQLiteStore{Path: path}
	require.NoError(t, s.Init())
	defer s.Deinit()

	require.NoError(t, s.Save(records))
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, records, loaded)

	require.NoError(t, s.Save(records[:1]))
	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, records[:1], loaded)
}

func TestSQLiteStoreSkipsCorruptRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	s := &SQLiteStore{Path: path}
	require.NoError(t, s.Init())
	defer s.Deinit()
	require.NoError(t, s.Save(records))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec("update maps set data = 'tampered' where key = 'b'")
	require.NoError(t, err)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, records[1:], loaded)
}

package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps one row per map, keyed by the map's key.
type SQLiteStore struct {
	Path string

	db *sql.DB
}

func (s *SQLiteStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); nil != err {
		return fmt.Errorf("unable to create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return err
	}

	initStatement := `
	create table if not exists maps
	  (
		  key text not null primary key,
		  position integer not null,
		  sum text not null,
		  data text not null
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create maps table: %w", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *SQLiteStore) Save(records []Record) error {
	tx, err := s.db.Begin()
	if nil != err {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("delete from maps"); nil != err {
		return fmt.Errorf("unable to clear maps: %w", err)
	}
	for i, r := range records {
		if _, err := tx.Exec("insert into maps(key, position, sum, data) values(?, ?, ?, ?)", r.Key, i, checksum(r.Data), r.Data); nil != err {
			return fmt.Errorf("unable to save map %v: %w", r.Key, err)
		}
	}
	return tx.Commit()
}

// Load skips rows whose data no longer matches its checksum.
func (s *SQLiteStore) Load() ([]Record, error) {
	rows, err := s.db.Query("select key, sum, data from maps order by position")
	if nil != err {
		return nil, fmt.Errorf("unable to load maps: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		var sum string
		if err := rows.Scan(&r.Key, &sum, &r.Data); nil != err {
			return nil, err
		}
		if sum != checksum(r.Data) {
			log.Println("skipping corrupt cached map", r.Key)
			continue
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Package store persists the collection cache of open maps.
package store

import (
	"crypto/sha256"
	"encoding/base64"
)

type Store interface {
	Init() error
	Deinit()

	// Save replaces every stored record
	Save(records []Record) error

	// Load returns the stored records in the order they were saved
	Load() ([]Record, error)
}

// Record is one cached map.
type Record struct {
	Key  string
	Data string
}

func checksum(data string) string {
	sum := sha256.Sum256([]byte(data))
	return base64.StdEncoding.EncodeToString(sum[:])
}

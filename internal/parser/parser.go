// Package parser reads and writes the map text format, the properties side
// file, cache snapshots and the small clipboard formats.
package parser

import (
	"fmt"
	"strconv"

	"git.lost.host/meutraa/hopedit/internal/game"
)

type Parser interface {
	EncodeMap(id string, notes []game.Note, exportOffset int64) string
	DecodeMap(data string) (string, []game.Note, error)
	DecodeSoundSpace(data string) (string, []game.Note, error)
	EncodeProperties(p *Properties) (string, error)
	DecodeProperties(text string) (*Properties, error)
	EncodeSnapshot(s *Snapshot) string
	DecodeSnapshot(data string) (*Snapshot, error)
}

// ParseError reports where a text could not be decoded.
type ParseError struct {
	Format string
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("parse %s %s: %v", e.Format, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(format, field string, err error) *ParseError {
	return &ParseError{Format: format, Field: field, Err: err}
}

// Numbers are always written with a '.' separator regardless of locale.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func roundLane(lane float64) float64 {
	return game.RoundLane(lane)
}

type DefaultParser struct{}

func (p *DefaultParser) EncodeMap(id string, notes []game.Note, exportOffset int64) string {
	return EncodeMap(id, notes, exportOffset)
}

func (p *DefaultParser) DecodeMap(data string) (string, []game.Note, error) {
	return DecodeMap(data)
}

func (p *DefaultParser) DecodeSoundSpace(data string) (string, []game.Note, error) {
	return DecodeSoundSpace(data)
}

func (p *DefaultParser) EncodeProperties(props *Properties) (string, error) {
	return EncodeProperties(props)
}

func (p *DefaultParser) DecodeProperties(text string) (*Properties, error) {
	return DecodeProperties(text)
}

func (p *DefaultParser) EncodeSnapshot(s *Snapshot) string {
	return EncodeSnapshot(s)
}

func (p *DefaultParser) DecodeSnapshot(data string) (*Snapshot, error) {
	return DecodeSnapshot(data)
}

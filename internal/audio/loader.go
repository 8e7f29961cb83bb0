// Package audio finds the audio for a map and measures it.
package audio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

var ErrNotFound = errors.New("no audio file for id")

type Loader interface {
	// Load returns the length in ms of the audio for id
	Load(id string) (int64, error)
}

// DefaultLoader looks in Dir for {id}.asset, then {id}.mp3, {id}.ogg and
// {id}.wav.
type DefaultLoader struct {
	Dir string
}

var extensions = []string{".asset", ".mp3", ".ogg", ".wav"}

func (l *DefaultLoader) Path(id string) (string, error) {
	for _, ext := range extensions {
		p := filepath.Join(l.Dir, id+ext)
		if info, err := os.Stat(p); nil == err && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %v in %v", ErrNotFound, id, l.Dir)
}

func (l *DefaultLoader) Load(id string) (int64, error) {
	p, err := l.Path(id)
	if nil != err {
		return 0, err
	}
	f, err := os.Open(p)
	if nil != err {
		return 0, err
	}
	defer f.Close()

	streamer, format, err := Decode(f)
	if nil != err {
		return 0, fmt.Errorf("unable to decode %v: %w", p, err)
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()).Milliseconds(), nil
}

// Decode picks a decoder from the first bytes of r, since .asset files carry
// no extension hint.
func Decode(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if nil != err {
		return nil, beep.Format{}, err
	}
	rc := readCloser{br, r}
	switch {
	case bytes.Equal(head, []byte("OggS")):
		return vorbis.Decode(rc)
	case bytes.Equal(head, []byte("RIFF")):
		return wav.Decode(rc)
	}
	return mp3.Decode(rc)
}

type readCloser struct {
	io.Reader
	io.Closer
}

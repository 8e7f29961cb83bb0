package input

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInput(text string) (*DefaultInput, *bytes.Buffer) {
	var out bytes.Buffer
	return &DefaultInput{In: bufio.NewReader(strings.NewReader(text)), Out: &out, Fd: -1}, &out
}

func TestChoose(t *testing.T) {
	in, out := newInput("x\n\nN\n")
	r, err := in.Choose("Save?", "ync")
	require.NoError(t, err)
	assert.Equal(t, 'n', r)
	assert.Contains(t, out.String(), "Save? [ync]")

	_, err = in.Choose("Save?", "ync")
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLine(t *testing.T) {
	in, out := newInput("/maps/a.txt\r\nlast")
	line, err := in.ReadLine("path: ")
	require.NoError(t, err)
	assert.Equal(t, "/maps/a.txt", line)
	assert.Equal(t, "path: ", out.String())

	line, err = in.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = in.ReadLine("")
	assert.ErrorIs(t, err, io.EOF)
}

// Package input asks the user questions on the terminal.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

var ErrCancelled = errors.New("cancelled")

type Input interface {
	// Choose waits for one of the option keys. Escape cancels.
	Choose(question string, options string) (rune, error)
	ReadLine(prompt string) (string, error)
}

// DefaultInput reads single keys when In is a terminal and whole lines
// otherwise.
type DefaultInput struct {
	In  *bufio.Reader
	Out io.Writer
	Fd  int // Descriptor behind In, -1 if none
}

func NewDefaultInput() *DefaultInput {
	return &DefaultInput{
		In:  bufio.NewReader(os.Stdin),
		Out: os.Stdout,
		Fd:  int(os.Stdin.Fd()),
	}
}

func (i *DefaultInput) terminal() bool {
	return i.Fd >= 0 && term.IsTerminal(i.Fd)
}

func (i *DefaultInput) readKey() (rune, error) {
	if i.terminal() {
		r, key, err := keyboard.GetSingleKey()
		if nil != err {
			return 0, fmt.Errorf("unable to read key: %w", err)
		}
		switch key {
		case keyboard.KeyEsc, keyboard.KeyCtrlC:
			return 0, ErrCancelled
		case keyboard.KeyEnter:
			return '\n', nil
		}
		return r, nil
	}
	line, err := i.In.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if nil != err {
			return 0, err
		}
		return '\n', nil
	}
	return []rune(line)[0], nil
}

func (i *DefaultInput) Choose(question string, options string) (rune, error) {
	fmt.Fprintf(i.Out, "%v [%v] ", question, options)
	for {
		r, err := i.readKey()
		if nil != err {
			fmt.Fprintln(i.Out)
			return 0, err
		}
		r = unicode.ToLower(r)
		if strings.ContainsRune(options, r) {
			fmt.Fprintln(i.Out, string(r))
			return r, nil
		}
	}
}

func (i *DefaultInput) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(i.Out, prompt)
	}
	line, err := i.In.ReadString('\n')
	if nil != err && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

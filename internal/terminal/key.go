package terminal

import (
	"errors"
	"os"
)

var (
	// ErrNotTerminal is returned when a single keystroke is requested but
	// standard input is not a terminal.
	ErrNotTerminal = errors.New("standard input is not a terminal")

	// ErrUnsupportedPlatform is returned on platforms without raw terminal
	// input.
	ErrUnsupportedPlatform = errors.New("single keystroke input is not supported on this platform")

	// ErrInterrupted is returned when the user presses Ctrl+C while a key
	// is being read.
	ErrInterrupted = errors.New("interrupted")
)

// ctrlC is the byte a raw terminal delivers for Ctrl+C.
const ctrlC = 0x03

// KeyReader reads one keystroke at a time.
type KeyReader interface {
	ReadKey() (rune, error)
}

// StdinKeyReader reads keystrokes from a terminal file, os.Stdin unless
// File is set.
type StdinKeyReader struct {
	File *os.File
}

// ReadKey blocks until one key is pressed and returns it without waiting
// for Enter.
func (s StdinKeyReader) ReadKey() (rune, error) {
	f := s.File
	if f == nil {
		f = os.Stdin
	}
	return ReadSingleKey(f)
}

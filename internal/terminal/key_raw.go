//go:build !js && !wasip1 && !plan9

package terminal

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/term"
)

// ReadSingleKey puts f into raw mode, reads one UTF-8 encoded key and
// restores the previous terminal state.
func ReadSingleKey(f *os.File) (rune, error) {
	fd := int(f.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 0, ErrNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(fd, state) //nolint:errcheck // best effort restore

	return readRune(f)
}

// readRune reads exactly one rune from r.
func readRune(r io.Reader) (rune, error) {
	buf := make([]byte, utf8.UTFMax)
	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return 0, err
	}
	if buf[0] == ctrlC {
		return 0, ErrInterrupted
	}
	n := runeLen(buf[0])
	if n > 1 {
		if _, err := io.ReadFull(r, buf[1:n]); err != nil {
			return 0, err
		}
	}
	k, _ := utf8.DecodeRune(buf[:n])
	return k, nil
}

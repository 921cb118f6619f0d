package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm writes question followed by a "(y/n): " prompt to w and reads one
// line from r. Only an answer of y (any case) confirms; end of input
// declines.
func Confirm(r io.Reader, w io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(w, "%s\n(y/n): ", question); err != nil {
		return false, err
	}
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
		return false, nil
	}
	return strings.ToLower(strings.TrimSpace(scanner.Text())) == "y", nil
}

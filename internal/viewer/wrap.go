package viewer

import (
	"strings"

	"golang.org/x/text/width"
)

// CellWidth returns the number of terminal cells r occupies: two for wide
// and full-width characters, one otherwise.
func CellWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// Wrap splits s into rows of at most cols cells. A character wider than
// cols gets a row of its own. Wrap returns no rows for an empty string.
func Wrap(s string, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	var (
		rows []string
		cur  strings.Builder
		n    int
	)
	for _, r := range s {
		w := CellWidth(r)
		if n > 0 && n+w > cols {
			rows = append(rows, cur.String())
			cur.Reset()
			n = 0
		}
		cur.WriteRune(r)
		n += w
	}
	if cur.Len() > 0 {
		rows = append(rows, cur.String())
	}
	return rows
}

// Nearby returns the numbers of up to count non-blank lines before and
// after line n (1-based) of lines.
func Nearby(lines []string, n, count int) (above, below []int) {
	for i := n - 2; i >= 0 && len(above) < count; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			above = append([]int{i + 1}, above...)
		}
	}
	for i := n; i < len(lines) && len(below) < count; i++ {
		if strings.TrimSpace(lines[i]) != "" {
			below = append(below, i+1)
		}
	}
	return above, below
}

// Package terminal holds the small pieces of terminal interaction used by
// the interactive commands: single keystroke input, yes/no confirmation,
// launching an external editor at a file line, and highlight styles.
package terminal

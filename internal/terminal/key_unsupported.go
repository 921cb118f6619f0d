//go:build js || wasip1 || plan9

package terminal

import "os"

// ReadSingleKey always fails on this platform.
func ReadSingleKey(*os.File) (rune, error) {
	return 0, ErrUnsupportedPlatform
}

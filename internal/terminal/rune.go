package terminal

// runeLen returns the length of a UTF-8 sequence from its first byte.
// Invalid leading bytes count as a single byte.
func runeLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		return 1
	}
}

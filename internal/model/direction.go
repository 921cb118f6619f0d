package model

import "fmt"

// Direction is a Traditional/Simplified conversion direction.
type Direction string

const (
	// TraditionalToSimplified converts zh-Hant text to zh-Hans.
	TraditionalToSimplified Direction = "t2s"

	// SimplifiedToTraditional converts zh-Hans text to zh-Hant.
	SimplifiedToTraditional Direction = "s2t"
)

// ParseDirection validates a direction given on the command line.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case TraditionalToSimplified, SimplifiedToTraditional:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("invalid direction %q: use either 't2s' or 's2t'", s)
	}
}

// SourceLang is the language tag of text before conversion.
func (d Direction) SourceLang() string {
	if d == SimplifiedToTraditional {
		return string(ScopeHans)
	}
	return string(ScopeHant)
}

// TargetLang is the language tag of text after conversion.
func (d Direction) TargetLang() string {
	if d == SimplifiedToTraditional {
		return string(ScopeHant)
	}
	return string(ScopeHans)
}

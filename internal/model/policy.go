package model

import "fmt"

// Policy decides whether a rule or replacement entry is applied without
// asking (PolicyAuto) or only after the proofreader confirms it (PolicyPrompt).
type Policy int

const (
	// PolicyAuto applies the change unconditionally.
	PolicyAuto Policy = iota

	// PolicyPrompt asks the proofreader before every distinct change.
	PolicyPrompt
)

// String returns the configuration spelling of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyAuto:
		return "auto"
	case PolicyPrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// ParsePolicy converts the configuration spelling ("auto" or "prompt")
// into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "auto":
		return PolicyAuto, nil
	case "prompt":
		return PolicyPrompt, nil
	default:
		return PolicyAuto, fmt.Errorf("unknown policy %q: want auto or prompt", s)
	}
}

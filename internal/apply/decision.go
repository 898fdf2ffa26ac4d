package apply

import "strings"

// State is a step of the per-block decision machine.
type State int

const (
	// Prompting waits for the yes/skip/output-path answer.
	Prompting State = iota
	// AwaitingPath waits for the alternate output path.
	AwaitingPath
	// Confirmed applies the block to its candidate target.
	Confirmed
	// AlternatePath applies the block to a path typed by the user.
	AlternatePath
	// Skipped leaves the block untouched.
	Skipped
)

func (s State) String() string {
	switch s {
	case Prompting:
		return "prompting"
	case AwaitingPath:
		return "awaiting-path"
	case Confirmed:
		return "confirmed"
	case AlternatePath:
		return "alternate-path"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further input is needed.
func (s State) Terminal() bool {
	return s == Confirmed || s == AlternatePath || s == Skipped
}

// Decision is the resolved outcome for one block. Path is the write target
// for Confirmed and AlternatePath; it is unused for shell blocks.
type Decision struct {
	State State
	Path  string
}

// Next returns the decision that follows answer while in state s.
//
// In Prompting the answer is matched case-insensitively: yes/y confirms,
// skip/s skips, o or "enter output path" asks for a path, anything else
// skips. Shell blocks have no path, so asking for one confirms instead.
// In AwaitingPath the trimmed answer is the new path. Terminal states are
// returned unchanged.
func Next(s State, answer string, shell bool) Decision {
	switch s {
	case Prompting:
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "yes", "y":
			return Decision{State: Confirmed}
		case "skip", "s":
			return Decision{State: Skipped}
		case "enter output path", "o":
			if shell {
				return Decision{State: Confirmed}
			}
			return Decision{State: AwaitingPath}
		default:
			return Decision{State: Skipped}
		}
	case AwaitingPath:
		return Decision{State: AlternatePath, Path: strings.TrimSpace(answer)}
	default:
		return Decision{State: s}
	}
}

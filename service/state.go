package service

import (
	"fmt"
	"strings"
)

// State is the lifecycle of a session, as toggled by the user.
type State int

const (
	// StateDisable ignores ticks entirely.
	StateDisable State = iota
	// StateEnable moves the cursor and performs actions.
	StateEnable
	// StatePause freezes the cursor; only the pause gesture is acted on.
	StatePause
)

var stateNames = []string{"DISABLE", "ENABLE", "PAUSE"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseState accepts a state name in any case.
func ParseState(name string) (State, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range stateNames {
		if n == upper {
			return State(i), nil
		}
	}
	return StateDisable, fmt.Errorf("unknown service state %q", name)
}

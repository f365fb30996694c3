package core

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// MaxProcesses bounds n so that a State fits in a single 64-bit mask.
const MaxProcesses = 64

var ErrInvalidState = errors.New("invalid state encoding")

// Action is the index of the process to run next.
type Action int

func (a Action) String() string {
	return fmt.Sprintf("P%d", int(a))
}

// State is the set of finished processes. It is a comparable value and can be used
// directly as a map key.
type State struct {
	mask uint64
	n    uint8
}

// InitialState returns the state where none of the n processes have finished.
func InitialState(n int) State {
	return State{n: uint8(n)}
}

func (s State) Len() int {
	return int(s.n)
}

func (s State) Finished(i int) bool {
	return s.mask&(1<<uint(i)) != 0
}

// With returns a copy of s with process i marked finished.
func (s State) With(i int) State {
	s.mask |= 1 << uint(i)
	return s
}

func (s State) NumFinished() int {
	return bits.OnesCount64(s.mask)
}

func (s State) AllFinished() bool {
	return s.NumFinished() == int(s.n)
}

// Hash returns the text encoding, one '0' or '1' per process.
func (s State) Hash() string {
	var b strings.Builder
	b.Grow(int(s.n))
	for i := 0; i < int(s.n); i++ {
		if s.Finished(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func (s State) String() string {
	return s.Hash()
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.Hash()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	state, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// ParseState decodes the output of State.Hash.
func ParseState(text string) (State, error) {
	if len(text) == 0 || len(text) > MaxProcesses {
		return State{}, fmt.Errorf("%w: length %d", ErrInvalidState, len(text))
	}
	s := InitialState(len(text))
	for i, c := range text {
		switch c {
		case '1':
			s = s.With(i)
		case '0':
		default:
			return State{}, fmt.Errorf("%w: unexpected %q at %d", ErrInvalidState, c, i)
		}
	}
	return s, nil
}

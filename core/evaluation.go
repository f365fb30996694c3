package core

import "fmt"

// Status classifies how an evaluation run ended.
type Status int

const (
	StatusSuccess Status = iota
	StatusTimeout
	StatusInvalidMove
	StatusDeadlock
)

var statusNames = map[Status]string{
	StatusSuccess:     "Success",
	StatusTimeout:     "Timeout",
	StatusInvalidMove: "InvalidMove",
	StatusDeadlock:    "Deadlock",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(text))
}

// Evaluation is the outcome of replaying a policy against an environment.
type Evaluation struct {
	Success  bool     `json:"success"`
	Status   Status   `json:"status"`
	Sequence []Action `json:"sequence"`
	Trace    *Trace   `json:"-"`
}

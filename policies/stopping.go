package policies

// EpisodeResult summarises one training episode.
type EpisodeResult struct {
	Episode     int
	Steps       int
	TotalReward float64
	LastReward  float64
	Terminal    bool
	Epsilon     float64
}

// TerminalSuccess holds when the episode reached the all-finished state on a positive
// final reward. An episode cut off by the step cap never counts, whatever its last
// reward was.
func TerminalSuccess(r EpisodeResult) bool {
	return r.Terminal && r.LastReward > 0
}

// StoppingRule decides after each episode whether training has converged.
type StoppingRule interface {
	Observe(EpisodeResult) bool
	Reset()
}

// SuccessStreak stops once Threshold consecutive episodes satisfy Predicate.
// A Threshold of zero or less never stops.
type SuccessStreak struct {
	Threshold int
	Predicate func(EpisodeResult) bool

	streak int
}

var _ StoppingRule = &SuccessStreak{}

func NewSuccessStreak(threshold int) *SuccessStreak {
	return &SuccessStreak{
		Threshold: threshold,
		Predicate: TerminalSuccess,
	}
}

func (s *SuccessStreak) Observe(r EpisodeResult) bool {
	pred := s.Predicate
	if pred == nil {
		pred = TerminalSuccess
	}
	if pred(r) {
		s.streak++
	} else {
		s.streak = 0
	}
	return s.Threshold > 0 && s.streak >= s.Threshold
}

func (s *SuccessStreak) Streak() int {
	return s.streak
}

func (s *SuccessStreak) Reset() {
	s.streak = 0
}

package analysis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeu5/bankers-rl/core"
)

func run(exp string, seed uint64, status core.Status, episodes int, elapsed time.Duration, steps int) *core.Run {
	return &core.Run{
		Experiment: exp,
		Seed:       seed,
		Episodes:   episodes,
		Elapsed:    elapsed,
		Problem:    core.DefaultProblem(),
		Evaluation: &core.Evaluation{
			Success:  status == core.StatusSuccess,
			Status:   status,
			Sequence: make([]core.Action, steps),
		},
	}
}

func TestOutcomeAnalyzer_Summary(t *testing.T) {
	a := NewOutcomeAnalyzer()
	a.Analyze(run("online", 1, core.StatusSuccess, 10, 2*time.Millisecond, 5))
	a.Analyze(run("online", 2, core.StatusSuccess, 20, 4*time.Millisecond, 5))
	a.Analyze(run("online", 3, core.StatusDeadlock, 30, 6*time.Millisecond, 2))

	s, ok := Summary(a.DataSet())
	require.True(t, ok)
	assert.Equal(t, 3, s.Runs)
	assert.Equal(t, 2, s.Successes)
	assert.InDelta(t, 2.0/3, s.SuccessRate, 1e-9)
	assert.Equal(t, map[string]int{"Success": 2, "Deadlock": 1}, s.Statuses)
	assert.InDelta(t, 20, s.MeanEpisodes, 1e-9)
	assert.InDelta(t, 10, s.StdEpisodes, 1e-9)
	assert.InDelta(t, 4, s.MeanElapsedMs, 1e-9)
	assert.InDelta(t, 4, s.MeanSteps, 1e-9)
}

func TestOutcomeAnalyzer_SingleAndEmpty(t *testing.T) {
	a := NewOutcomeAnalyzer()
	s, ok := Summary(a.DataSet())
	require.True(t, ok)
	assert.Zero(t, s.Runs)
	assert.Zero(t, s.SuccessRate)

	a.Analyze(run("offline", 1, core.StatusTimeout, 0, time.Millisecond, 10))
	s, _ = Summary(a.DataSet())
	assert.Equal(t, 1, s.Runs)
	assert.Zero(t, s.StdElapsedMs)

	a.Reset()
	s, _ = Summary(a.DataSet())
	assert.Zero(t, s.Runs)
}

func TestSummary_ForeignDataSet(t *testing.T) {
	_, ok := Summary("not a data set")
	assert.False(t, ok)
}

func TestOutcomeComparator_SavesAll(t *testing.T) {
	dir := t.TempDir()
	c := core.NewComparison()
	c.AddAnalysis("outcomes", NewOutcomeAnalyzerConstructor(), NewOutcomeComparator(dir))

	out := c.Analyze([]*core.Run{
		run("offline", 1, core.StatusInvalidMove, 0, time.Millisecond, 1),
		run("online", 1, core.StatusSuccess, 12, 3*time.Millisecond, 5),
	})
	s, ok := Summary(out["outcomes"]["online"])
	require.True(t, ok)
	assert.Equal(t, 1, s.Successes)

	bs, err := os.ReadFile(filepath.Join(dir, "outcomes.json"))
	require.NoError(t, err)
	var saved map[string]struct {
		Seeds   []uint64       `json:"seeds"`
		Summary OutcomeSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(bs, &saved))
	assert.Len(t, saved, 2)
	assert.Equal(t, []uint64{1}, saved["offline"].Seeds)
	assert.Equal(t, map[string]int{"InvalidMove": 1}, saved["offline"].Summary.Statuses)
}

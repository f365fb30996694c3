package analysis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeu5/bankers-rl/core"
)

func TestFailureAnalyzer_WritesOnlyFailures(t *testing.T) {
	dir := t.TempDir()
	c := core.NewComparison()
	c.AddAnalysis("failures", NewFailureAnalyzerConstructor(dir), NewNoOpComparator())

	failed := run("offline", 7, core.StatusDeadlock, 0, time.Millisecond, 1)
	failed.Evaluation.Trace = core.NewTrace()
	failed.Evaluation.Trace.AddStep(&core.Step{
		State:   core.InitialState(5),
		Action:  0,
		Outcome: core.StepOutcome{Next: core.InitialState(5), Reward: core.RewardUnsafe},
	})
	c.Analyze([]*core.Run{
		failed,
		run("online", 7, core.StatusSuccess, 10, time.Millisecond, 5),
	})

	entries, err := os.ReadDir(filepath.Join(dir, "failures"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "offline_Deadlock_7.txt", entries[0].Name())

	bs, err := os.ReadFile(filepath.Join(dir, "failures", entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(bs), "Status: Deadlock")
	assert.Contains(t, string(bs), "Available: [3 3 2]")
	assert.Contains(t, string(bs), "Step 0: 00000 --P0--> 00000 (reward -50, terminal false)")
}

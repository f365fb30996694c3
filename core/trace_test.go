package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	tr := NewTrace()
	assert.Nil(t, tr.Last())
	assert.Empty(t, tr.String())

	env := NewEnvironment(DefaultProblem())
	s := env.State()
	out := env.Step(1)
	tr.AddStep(&Step{State: s, Action: 1, Outcome: out})

	require.Equal(t, 1, tr.Len())
	assert.Equal(t, Action(1), tr.Last().Action)
	assert.Equal(t, "Step 0: 00000 --P1--> 01000 (reward 10, terminal false)\n", tr.String())
}

func TestStatus_Text(t *testing.T) {
	for _, s := range []Status{StatusSuccess, StatusTimeout, StatusInvalidMove, StatusDeadlock} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var got Status
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}
	var s Status
	assert.Error(t, s.UnmarshalText([]byte("Unknown")))
	assert.Equal(t, "Deadlock", StatusDeadlock.String())
}

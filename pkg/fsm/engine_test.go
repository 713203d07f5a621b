package fsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/autocore/pkg/fsm"
)

func TestEngineMachine_HappyPath(t *testing.T) {
	m := fsm.NewEngineMachine()
	assert.Equal(t, fsm.EngineOff, m.Current())

	require.NoError(t, m.Walk(fsm.EngineStarting, fsm.EngineRunning, fsm.EngineStopping, fsm.EngineOff))
	assert.Equal(t, fsm.EngineOff, m.Current())
}

func TestEngineMachine_AbortedStart(t *testing.T) {
	m := fsm.NewEngineMachine()

	require.NoError(t, m.Walk(fsm.EngineStarting, fsm.EngineOff))
	assert.Equal(t, fsm.EngineOff, m.Current())
}

func TestEngineMachine_RejectsDoubleStart(t *testing.T) {
	m := fsm.NewEngineMachine()
	require.NoError(t, m.Walk(fsm.EngineStarting, fsm.EngineRunning))

	err := m.Transition(fsm.EngineStarting)

	require.ErrorIs(t, err, fsm.ErrInvalidTransition)
	assert.EqualError(t, err, "invalid transition: RUNNING → STARTING")
	assert.Equal(t, fsm.EngineRunning, m.Current())
}

// Every edge outside the declared table is rejected from every state.
func TestEngineMachine_OnlyDeclaredEdgesAreLegal(t *testing.T) {
	legal := map[[2]fsm.EngineState]bool{
		{fsm.EngineOff, fsm.EngineStarting}:     true,
		{fsm.EngineStarting, fsm.EngineRunning}: true,
		{fsm.EngineStarting, fsm.EngineOff}:     true,
		{fsm.EngineRunning, fsm.EngineStopping}: true,
		{fsm.EngineStopping, fsm.EngineOff}:     true,
	}
	paths := map[fsm.EngineState][]fsm.EngineState{
		fsm.EngineOff:      nil,
		fsm.EngineStarting: {fsm.EngineStarting},
		fsm.EngineRunning:  {fsm.EngineStarting, fsm.EngineRunning},
		fsm.EngineStopping: {fsm.EngineStarting, fsm.EngineRunning, fsm.EngineStopping},
	}

	for _, from := range fsm.EngineStates() {
		for _, to := range fsm.EngineStates() {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				m := fsm.NewEngineMachine()
				require.NoError(t, m.Walk(paths[from]...))
				require.Equal(t, from, m.Current())

				err := m.Transition(to)
				if legal[[2]fsm.EngineState{from, to}] {
					require.NoError(t, err)
					assert.Equal(t, to, m.Current())
					return
				}
				require.ErrorIs(t, err, fsm.ErrInvalidTransition)
				assert.Equal(t, from, m.Current())
			})
		}
	}
}

func TestEngineState_String(t *testing.T) {
	assert.Equal(t, "OFF", fsm.EngineOff.String())
	assert.Equal(t, "STOPPING", fsm.EngineStopping.String())
	assert.Equal(t, "EngineState(9)", fsm.EngineState(9).String())
}

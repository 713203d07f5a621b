package fsm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/autocore/pkg/fsm"
)

type light string

const (
	red    light = "red"
	green  light = "green"
	yellow light = "yellow"
)

func trafficTable() fsm.Table[light] {
	return fsm.Table[light]{
		red:    {green},
		green:  {yellow},
		yellow: {red},
	}
}

func TestMachine_TransitionAppliesLegalEdge(t *testing.T) {
	m := fsm.New(red, trafficTable())

	require.NoError(t, m.Transition(green))
	assert.Equal(t, green, m.Current())
	assert.Equal(t, []light{yellow}, m.ValidTransitions())
}

func TestMachine_RejectedTransitionLeavesStateUnchanged(t *testing.T) {
	m := fsm.New(red, trafficTable())

	err := m.Transition(yellow)

	require.Error(t, err)
	assert.True(t, errors.Is(err, fsm.ErrInvalidTransition))
	assert.EqualError(t, err, "invalid transition: red → yellow")
	assert.Equal(t, red, m.Current())

	var te *fsm.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, red, te.From)
	assert.Equal(t, yellow, te.To)
}

func TestMachine_TableIsCopied(t *testing.T) {
	table := trafficTable()
	m := fsm.New(red, table)

	table[red] = append(table[red], yellow)

	assert.False(t, m.CanTransitionTo(yellow))
}

func TestMachine_ObserverSeesEveryAttempt(t *testing.T) {
	type attempt struct {
		from, to light
		ok       bool
	}
	var seen []attempt
	m := fsm.New(red, trafficTable(), fsm.WithObserver(func(from, to light, err error) {
		seen = append(seen, attempt{from, to, err == nil})
	}))

	_ = m.Transition(green)
	_ = m.Transition(green)

	assert.Equal(t, []attempt{{red, green, true}, {green, green, false}}, seen)
}

func TestMachine_WalkStopsAtFirstRejection(t *testing.T) {
	m := fsm.New(red, trafficTable())

	err := m.Walk(green, yellow, green)

	require.ErrorIs(t, err, fsm.ErrInvalidTransition)
	assert.Equal(t, yellow, m.Current())
}

func TestTable_Validate(t *testing.T) {
	require.NoError(t, trafficTable().Validate())
	require.NoError(t, fsm.EngineTransitions.Validate())

	broken := fsm.Table[light]{red: {green}}
	assert.Error(t, broken.Validate())
}

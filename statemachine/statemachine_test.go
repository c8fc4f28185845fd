package statemachine_test

import (
	"testing"
	"time"

	"github.com/flurry-dev/flurry/core/option"
	"github.com/flurry-dev/flurry/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoFirstState(t *testing.T) {
	m := statemachine.New("tm", nil)
	m.State("tmp", func(ctx *statemachine.StateContext) {})

	require.ErrorIs(t, m.Build(), statemachine.ErrNoFirstState)
}

func TestMultipleFirstStates(t *testing.T) {
	m := statemachine.New("tm", nil)
	m.State("tmp1", func(ctx *statemachine.StateContext) {}, statemachine.First())
	m.State("tmp2", func(ctx *statemachine.StateContext) {}, statemachine.First())

	require.ErrorIs(t, m.Build(), statemachine.ErrMultipleFirstStates)
}

func TestUnknownNextState(t *testing.T) {
	m := statemachine.New("tm", nil)
	m.TimedState("tmp", time.Second, "nowhere", func(ctx *statemachine.StateContext) {}, statemachine.First())

	require.Error(t, m.Build())
}

func TestStateMachine(t *testing.T) {
	clock := statemachine.NewManualClock()
	var executed []int

	m := statemachine.New("tm", clock)
	m.State("first_state", func(ctx *statemachine.StateContext) {
		executed = append(executed, 1)
		m.NextState("second_state")
	}, statemachine.First())
	m.TimedState("second_state", time.Second, "third_state", func(ctx *statemachine.StateContext) {
		executed = append(executed, 2)
	})
	m.State("third_state", func(ctx *statemachine.StateContext) {
		executed = append(executed, 3)
	})
	require.NoError(t, m.Build())

	assert.Equal(t, "", m.CurrentState())
	assert.False(t, m.IsExecuting())

	m.Engage()
	assert.Equal(t, "first_state", m.CurrentState())
	assert.False(t, m.IsExecuting())

	m.Execute()
	assert.Equal(t, "second_state", m.CurrentState())
	assert.True(t, m.IsExecuting())

	// engaging while executing must not change the state
	m.Engage()
	assert.Equal(t, "second_state", m.CurrentState())

	m.Execute()
	assert.Equal(t, "second_state", m.CurrentState())

	clock.Advance(1500 * time.Millisecond)
	m.Engage()
	m.Execute()
	assert.Equal(t, "third_state", m.CurrentState(), "the timed state expires into its next state")

	m.Engage()
	m.Execute()
	assert.Equal(t, "third_state", m.CurrentState())

	m.Done()
	assert.Equal(t, "", m.CurrentState())
	assert.False(t, m.IsExecuting())

	// start directly at the second state
	m.EngageAt("second_state")
	m.Execute()
	assert.Equal(t, "second_state", m.CurrentState())
	assert.True(t, m.IsExecuting())

	clock.Advance(1500 * time.Millisecond)
	m.Engage()
	m.Execute()
	assert.Equal(t, "third_state", m.CurrentState())

	m.Engage()
	m.Execute()
	assert.Equal(t, "third_state", m.CurrentState())

	m.EngageForce()
	assert.Equal(t, "first_state", m.CurrentState())
	assert.True(t, m.IsExecuting())

	m.Execute()
	// not engaged again: the machine must let go on its own
	m.Execute()
	assert.False(t, m.IsExecuting())
	assert.Equal(t, "", m.CurrentState())

	assert.Equal(t, []int{1, 2, 3, 3, 2, 3, 3, 1}, executed)
}

func TestStateMachineMustFinish(t *testing.T) {
	clock := statemachine.NewManualClock()
	var executed []string

	m := statemachine.New("tm", clock)
	m.State("ordinary1", func(ctx *statemachine.StateContext) {
		m.NextState("ordinary2")
		executed = append(executed, "1")
	}, statemachine.First())
	m.State("ordinary2", func(ctx *statemachine.StateContext) {
		m.NextState("must_finish")
		executed = append(executed, "2")
	})
	m.State("must_finish", func(ctx *statemachine.StateContext) {
		executed = append(executed, "mf")
	}, statemachine.MustFinish())
	require.NoError(t, m.Build())

	m.Engage()
	m.Execute()
	m.Execute()

	assert.Equal(t, "", m.CurrentState())
	assert.False(t, m.IsExecuting())

	m.Engage()
	m.Execute()
	m.Engage()
	m.Execute()
	m.Execute()
	m.Execute()

	assert.Equal(t, "must_finish", m.CurrentState())
	assert.True(t, m.IsExecuting())

	assert.Equal(t, []string{"1", "1", "2", "mf", "mf"}, executed)
}

func TestStateMachineContextTiming(t *testing.T) {
	clock := statemachine.NewManualClock()
	var contexts []statemachine.StateContext

	m := statemachine.New("tm", clock)
	m.TimedState("one", time.Second, "two", func(ctx *statemachine.StateContext) {
		contexts = append(contexts, *ctx)
	}, statemachine.First())
	m.State("two", func(ctx *statemachine.StateContext) {
		contexts = append(contexts, *ctx)
	})
	require.NoError(t, m.Build())

	m.Engage()
	m.Execute()

	clock.Advance(1300 * time.Millisecond)
	m.Engage()
	m.Execute()

	require.Len(t, contexts, 2)
	assert.True(t, contexts[0].InitialCall)
	assert.Equal(t, time.Duration(0), contexts[0].Tm)
	assert.Equal(t, time.Duration(0), contexts[0].StateTm)

	// the successor starts at the expiry point, not at the observed tick
	assert.True(t, contexts[1].InitialCall)
	assert.Equal(t, 1300*time.Millisecond, contexts[1].Tm)
	assert.Equal(t, 300*time.Millisecond, contexts[1].StateTm)
}

func TestStateMachineNextStateNow(t *testing.T) {
	clock := statemachine.NewManualClock()
	var executed []string

	m := statemachine.New("tm", clock)
	m.State("one", func(ctx *statemachine.StateContext) {
		executed = append(executed, "one")
		if ctx.InitialCall {
			m.NextStateNow("two")
		}
	}, statemachine.First())
	m.State("two", func(ctx *statemachine.StateContext) {
		executed = append(executed, "two")
	})
	require.NoError(t, m.Build())

	m.Engage()
	m.Execute()

	assert.Equal(t, []string{"one", "two"}, executed)
	assert.Equal(t, "two", m.CurrentState())
}

func TestStateMachineLoadDurations(t *testing.T) {
	require.NoError(t, option.AddJSONBytes([]byte(`{
		"Machines": { "tm": { "one": 2.5 } }
	}`)))

	clock := statemachine.NewManualClock()

	m := statemachine.New("tm", clock)
	m.TimedState("one", time.Second, "two", func(ctx *statemachine.StateContext) {}, statemachine.First())
	m.State("two", func(ctx *statemachine.StateContext) {})
	require.NoError(t, m.Build())
	require.NoError(t, m.LoadDurations("Machines:tm"))

	m.Engage()
	m.Execute()

	// below the overridden duration: still in the timed state
	clock.Advance(2 * time.Second)
	m.Engage()
	m.Execute()
	assert.Equal(t, "one", m.CurrentState())

	clock.Advance(time.Second)
	m.Engage()
	m.Execute()
	assert.Equal(t, "two", m.CurrentState())
}

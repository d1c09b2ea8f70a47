package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deferredStep returns a step whose signal is captured for later completion
func deferredStep(name string, blocking bool, out **Signal) Step {
	return Step{
		Name:     name,
		Blocking: blocking,
		Op: func(sig *Signal) {
			*out = sig
		},
	}
}

func immediateStep(name string, log *[]string) Step {
	return Step{
		Name: name,
		Op: func(sig *Signal) {
			*log = append(*log, name)
			sig.Done()
		},
	}
}

func TestSequencer_AppendDoesNotRun(t *testing.T) {
	s := NewSequencer()
	var log []string
	s.Append(immediateStep("a", &log))

	assert.Empty(t, log)
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 1, s.Pending())
}

func TestSequencer_SynchronousGroupsAutoAdvance(t *testing.T) {
	s := NewSequencer()
	var log []string
	s.Append(immediateStep("a", &log))
	s.Append(immediateStep("b", &log), immediateStep("c", &log))
	s.Append(immediateStep("d", &log))

	s.Advance()

	assert.Equal(t, []string{"a", "b", "c", "d"}, log)
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 3, s.Dispatched())
}

func TestSequencer_GroupWaitsForEveryStep(t *testing.T) {
	s := NewSequencer()
	var first, second *Signal
	var log []string
	s.Append(deferredStep("walk", false, &first), deferredStep("anim", false, &second))
	s.Append(immediateStep("after", &log))

	s.Advance()
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, Running, s.State())

	first.Done()
	s.Update()
	assert.Empty(t, log, "group must not complete with one step outstanding")

	second.Done()
	s.Update()
	assert.Equal(t, []string{"after"}, log)
	assert.Equal(t, Idle, s.State())
}

func TestSequencer_OrderIsStrict(t *testing.T) {
	s := NewSequencer()
	sigs := make([]*Signal, 3)
	for i := range sigs {
		s.Append(deferredStep("step", false, &sigs[i]))
	}

	s.Advance()
	require.NotNil(t, sigs[0])
	assert.Nil(t, sigs[1])

	sigs[0].Done()
	s.Update()
	require.NotNil(t, sigs[1])
	assert.Nil(t, sigs[2])

	sigs[1].Done()
	s.Update()
	require.NotNil(t, sigs[2])
}

func TestSequencer_BlockingCounter(t *testing.T) {
	s := NewSequencer()
	var walk *Signal
	s.Append(deferredStep("walk", true, &walk))

	assert.Equal(t, 0, s.BlockingActions(), "queued groups do not block")

	s.Advance()
	assert.Equal(t, 1, s.BlockingActions())

	walk.Done()
	s.Update()
	assert.Equal(t, 0, s.BlockingActions())
}

func TestSequencer_DoubleCompletionPanics(t *testing.T) {
	s := NewSequencer()
	var sig *Signal
	s.Append(deferredStep("x", false, &sig))
	s.Advance()

	sig.Done()
	assert.Panics(t, func() { sig.Done() })
}

func TestSequencer_ClearCancelsRunningGroup(t *testing.T) {
	s := NewSequencer()
	var sig *Signal
	cancelled := 0
	var log []string
	step := deferredStep("walk", true, &sig)
	step.Cancel = func() { cancelled++ }
	s.Append(step)
	s.Append(immediateStep("never", &log))

	s.Advance()
	s.Clear()

	assert.Equal(t, 1, cancelled)
	assert.Equal(t, 0, s.BlockingActions())
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 0, s.Pending())

	// A late completion of the abandoned step is discarded.
	sig.Done()
	s.Update()
	assert.Empty(t, log)
}

func TestSequencer_OpMayAppend(t *testing.T) {
	s := NewSequencer()
	var log []string
	s.Append(Step{
		Name: "chain",
		Op: func(sig *Signal) {
			s.Append(immediateStep("appended", &log))
			sig.Done()
		},
	})

	s.Advance()
	assert.Equal(t, []string{"appended"}, log)
	assert.Equal(t, Idle, s.State())
}

func TestSequencer_NGroupsDispatchNTimes(t *testing.T) {
	for _, n := range []int{1, 5, 32} {
		s := NewSequencer()
		sigs := make([]*Signal, n)
		for i := 0; i < n; i++ {
			s.Append(deferredStep("hop", true, &sigs[i]))
		}

		s.Advance()
		for i := 0; i < n; i++ {
			require.NotNil(t, sigs[i], "group %d should be running", i)
			assert.Equal(t, 1, s.BlockingActions())
			sigs[i].Done()
			s.Update()
		}

		assert.Equal(t, n, s.Dispatched())
		assert.Equal(t, Idle, s.State())
		assert.Equal(t, 0, s.BlockingActions())
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "Unknown", State(99).String())
}

package tween

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTarget records attribute writes
type mockTarget struct {
	values map[string]float64
	writes int
}

func newMockTarget() *mockTarget {
	return &mockTarget{values: make(map[string]float64)}
}

func (m *mockTarget) Get(attr string) (float64, bool) {
	v, ok := m.values[attr]
	return v, ok
}

func (m *mockTarget) Set(attr string, v float64) bool {
	m.values[attr] = v
	m.writes++
	return true
}

func TestLinear_ReachesEndExactly(t *testing.T) {
	c := NewController()
	target := newMockTarget()
	fired := 0
	c.Add(NewLinear(target, "x", 0, 10, 1.0, func() { fired++ }))

	// 1/120 s steps accumulate float error; completion must still land on 10.
	for i := 0; i < 120; i++ {
		c.Tick(1.0 / 120)
	}

	assert.Equal(t, 10.0, target.values["x"])
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, c.Len())

	c.Tick(1.0 / 120)
	assert.Equal(t, 1, fired, "callback fires exactly once")
}

func TestLinear_Midpoint(t *testing.T) {
	c := NewController()
	target := newMockTarget()
	c.Add(NewLinear(target, "scale", 1, 3, 2.0, nil))

	c.Tick(1.0)
	assert.InDelta(t, 2.0, target.values["scale"], 1e-9)
}

func TestLinear2D_DurationFromSpeed(t *testing.T) {
	target := newMockTarget()
	ip := NewLinear2D(target, 0, 0, 30, 40, 100, nil)
	assert.InDelta(t, 0.5, ip.Duration(), 1e-9)

	c := NewController()
	c.Add(ip)
	c.Tick(0.25)
	assert.InDelta(t, 15.0, target.values["x"], 1e-9)
	assert.InDelta(t, 20.0, target.values["y"], 1e-9)

	c.Tick(0.25)
	assert.Equal(t, 30.0, target.values["x"])
	assert.Equal(t, 40.0, target.values["y"])
	assert.Equal(t, Complete, ip.Status())
}

func TestLinear2D_ZeroDistanceCompletesOnFirstTick(t *testing.T) {
	c := NewController()
	target := newMockTarget()
	fired := false
	c.Add(NewLinear2D(target, 5, 5, 5, 5, 100, func() { fired = true }))

	c.Tick(1.0 / 120)
	assert.True(t, fired)
}

func TestJump_ReturnsToStart(t *testing.T) {
	c := NewController()
	target := newMockTarget()
	c.Add(NewJump(target, "y", 100, 40, 1.0, nil))

	c.Tick(0.5)
	assert.InDelta(t, 140.0, target.values["y"], 1e-9, "apex at half time")

	c.Tick(0.5)
	assert.Equal(t, 100.0, target.values["y"])
}

func TestAdd_BeginsOnNextTick(t *testing.T) {
	c := NewController()
	target := newMockTarget()

	c.Add(NewLinear(target, "x", 0, 10, 1.0, func() {
		c.Add(NewLinear(target, "y", 0, 10, 1.0, nil))
	}))

	c.Tick(1.0)
	_, touched := target.values["y"]
	assert.False(t, touched, "interpolator added in a callback waits for the next tick")
	assert.Equal(t, 1, c.Len())

	c.Tick(0.5)
	assert.InDelta(t, 5.0, target.values["y"], 1e-9)
}

func TestCancel_DoesNotFire(t *testing.T) {
	c := NewController()
	target := newMockTarget()
	fired := false
	id := c.Add(NewLinear(target, "x", 0, 10, 1.0, func() { fired = true }))

	c.Tick(0.5)
	require.True(t, c.Cancel(id))
	c.Tick(1.0)

	assert.False(t, fired)
	assert.InDelta(t, 5.0, target.values["x"], 1e-9, "cancelled interpolator stops writing")
	assert.False(t, c.Cancel(id), "second cancel is a no-op")
}

func TestLastWriteWins(t *testing.T) {
	c := NewController()
	target := newMockTarget()
	c.Add(NewLinear(target, "x", 0, 10, 1.0, nil))
	c.Add(NewLinear(target, "x", 0, 100, 1.0, nil))

	c.Tick(0.5)
	assert.InDelta(t, 50.0, target.values["x"], 1e-9)
}

func TestClear(t *testing.T) {
	c := NewController()
	target := newMockTarget()
	fired := 0
	for i := 0; i < 3; i++ {
		c.Add(NewLinear(target, "x", 0, 1, 1.0, func() { fired++ }))
	}
	c.Tick(0.1)
	c.Add(NewLinear(target, "y", 0, 1, 1.0, func() { fired++ }))

	c.Clear()
	c.Tick(2.0)

	assert.Equal(t, 0, fired)
	assert.Equal(t, 0, c.Len())
}

func TestCurve_String(t *testing.T) {
	assert.Equal(t, "Linear", Linear.String())
	assert.Equal(t, "Linear2D", Linear2D.String())
	assert.Equal(t, "Jump", Jump.String())
	assert.Equal(t, "Unknown", Curve(42).String())
}

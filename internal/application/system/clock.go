package system

// DefaultStep is the fixed simulation step in seconds
const DefaultStep = 1.0 / 120

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

type timer struct {
	id  TimerID
	at  float64
	fn  func()
	seq uint64
}

// Clock accumulates frame time into fixed simulation steps and runs
// one-shot timers against simulated time
type Clock struct {
	step  float64
	accum float64
	now   float64

	timers []timer
	nextID TimerID
	seq    uint64
}

// NewClock creates a clock with the given step; non-positive uses DefaultStep
func NewClock(step float64) *Clock {
	if step <= 0 {
		step = DefaultStep
	}
	return &Clock{step: step}
}

// Step returns the fixed simulation step
func (c *Clock) Step() float64 {
	return c.step
}

// Now returns the simulated time in seconds
func (c *Clock) Now() float64 {
	return c.now
}

// Advance adds frame time and runs fn once per whole step. A backlog of
// more than three steps is dropped so a stall does not cause a burst.
func (c *Clock) Advance(dt float64, fn func(step float64)) int {
	c.accum += dt
	if c.accum > c.step*3 {
		c.accum = c.step
	}
	steps := 0
	for c.accum >= c.step {
		c.now += c.step
		c.accum -= c.step
		c.fire()
		if fn != nil {
			fn(c.step)
		}
		steps++
	}
	return steps
}

// ScheduleOnce runs fn once delay seconds of simulated time from now
func (c *Clock) ScheduleOnce(delay float64, fn func()) TimerID {
	c.nextID++
	c.seq++
	c.timers = append(c.timers, timer{id: c.nextID, at: c.now + delay, fn: fn, seq: c.seq})
	return c.nextID
}

// Unschedule cancels a pending timer. It reports whether the timer was pending.
func (c *Clock) Unschedule(id TimerID) bool {
	for i, t := range c.timers {
		if t.id == id {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of scheduled timers
func (c *Clock) Pending() int {
	return len(c.timers)
}

// Clear drops every pending timer
func (c *Clock) Clear() {
	c.timers = nil
}

// fire runs due timers in deadline order. Timers scheduled by a callback
// wait for the next step even when already due, and a timer cancelled by an
// earlier callback in the same step does not run.
func (c *Clock) fire() {
	limit := c.seq
	for {
		idx := -1
		for i, t := range c.timers {
			if t.seq > limit || t.at > c.now+1e-9 {
				continue
			}
			if idx < 0 || t.at < c.timers[idx].at || (t.at == c.timers[idx].at && t.seq < c.timers[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		t := c.timers[idx]
		c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
		t.fn()
	}
}

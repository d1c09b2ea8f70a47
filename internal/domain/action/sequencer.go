// Package action provides the per-actor cooperative task queue.
//
// A Sequencer runs groups of steps strictly in order. All steps of a group
// are dispatched together and the group completes when every step has
// signaled completion. Nothing here blocks: steps start work (an
// interpolator, a timer) and complete their Signal later, and the owner
// polls Update once per simulation step.
package action

import "fmt"

// Op starts one unit of behavior. Its arguments are captured when the step
// is built. The op must call sig.Done exactly once, now or later.
type Op func(sig *Signal)

// Step is one operation in a group
type Step struct {
	Name string
	Op   Op
	// Blocking steps suppress player-initiated movement while their group runs
	Blocking bool
	// Cancel is called if the step is still running when the queue is cleared
	Cancel func()
}

// Signal is the completion token owned by a single dispatched step
type Signal struct {
	step string
	done bool
}

// Done marks the step complete. Completing twice is an invariant violation.
func (s *Signal) Done() {
	if s.done {
		panic(fmt.Sprintf("action: step %q completed twice", s.step))
	}
	s.done = true
}

// IsDone reports whether the step has completed
func (s *Signal) IsDone() bool {
	return s.done
}

// State is the sequencer's lifecycle state
type State int

const (
	Idle State = iota
	Running
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	default:
		return "Unknown"
	}
}

// Sequencer is a queue of parallel groups
type Sequencer struct {
	queue [][]Step

	current         []Step
	signals         []*Signal
	currentBlocking bool
	running         bool

	blocking   int
	dispatched int
	gen        uint64
	advancing  bool
}

// NewSequencer creates an idle sequencer
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Append pushes a group onto the tail of the queue. Nothing runs until Advance.
func (s *Sequencer) Append(steps ...Step) {
	if len(steps) == 0 {
		return
	}
	group := make([]Step, len(steps))
	copy(group, steps)
	s.queue = append(s.queue, group)
}

// State returns Idle or Running
func (s *Sequencer) State() State {
	if s.running {
		return Running
	}
	return Idle
}

// Pending returns the number of queued groups not yet dispatched
func (s *Sequencer) Pending() int {
	return len(s.queue)
}

// BlockingActions returns the number of running groups that block input
func (s *Sequencer) BlockingActions() int {
	return s.blocking
}

// Dispatched returns how many groups have been started
func (s *Sequencer) Dispatched() int {
	return s.dispatched
}

// Advance starts the next group if the current one has finished.
// Groups whose steps all finish synchronously are completed and followed
// immediately. Calling Advance while a group is still running is a no-op.
func (s *Sequencer) Advance() {
	if s.advancing {
		// A step's op called back into Advance; the loop below handles it.
		return
	}
	s.advancing = true
	defer func() { s.advancing = false }()

	for {
		if s.running {
			if !s.groupDone() {
				return
			}
			s.finishGroup()
		}
		if len(s.queue) == 0 {
			return
		}
		s.dispatch()
	}
}

// Update completes the running group when all of its signals are done and
// dispatches the next one. It is polled once per simulation step.
func (s *Sequencer) Update() {
	if s.running && s.groupDone() {
		s.Advance()
	}
}

// Clear drops every queued group and abandons the running one.
// Running steps get their Cancel hook; their signals become stale.
func (s *Sequencer) Clear() {
	if s.running {
		for i, st := range s.current {
			if !s.signals[i].done && st.Cancel != nil {
				st.Cancel()
			}
		}
	}
	s.queue = nil
	s.current = nil
	s.signals = nil
	s.running = false
	s.currentBlocking = false
	s.blocking = 0
	s.gen++
}

func (s *Sequencer) dispatch() {
	group := s.queue[0]
	s.queue = s.queue[1:]

	s.current = group
	s.signals = make([]*Signal, len(group))
	s.running = true
	s.dispatched++
	s.currentBlocking = false
	for _, st := range group {
		if st.Blocking {
			s.currentBlocking = true
			break
		}
	}
	if s.currentBlocking {
		s.blocking++
	}

	gen := s.gen
	for i := range group {
		s.signals[i] = &Signal{step: group[i].Name}
	}
	for i, st := range group {
		if st.Op == nil {
			s.signals[i].Done()
			continue
		}
		st.Op(s.signals[i])
		if s.gen != gen {
			// The op cleared the queue.
			return
		}
	}
}

func (s *Sequencer) groupDone() bool {
	for _, sig := range s.signals {
		if !sig.done {
			return false
		}
	}
	return true
}

func (s *Sequencer) finishGroup() {
	if s.currentBlocking {
		s.blocking--
	}
	s.current = nil
	s.signals = nil
	s.running = false
	s.currentBlocking = false
}

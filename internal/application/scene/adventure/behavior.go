package adventure

import (
	"fmt"
	"sort"

	"github.com/younwookim/adventure/internal/application/convo"
	"github.com/younwookim/adventure/internal/domain/entity"
)

// Behavior is a named, argument-free actor routine that conversations
// trigger with an action cue
type Behavior func(s *Scene, a *entity.Actor) error

// Behaviors maps behavior names to routines
type Behaviors struct {
	m map[string]Behavior
}

// NewBehaviors creates a registry holding the stock behaviors
func NewBehaviors() *Behaviors {
	b := &Behaviors{m: make(map[string]Behavior)}
	b.Register("jump", jump)
	b.Register("stand_front", faceState(entity.StateStandFront))
	b.Register("face_left", faceState("stand_left"))
	b.Register("face_right", faceState("stand_right"))
	return b
}

// Register adds or replaces a behavior
func (b *Behaviors) Register(name string, fn Behavior) {
	b.m[name] = fn
}

// Has reports whether a behavior is registered
func (b *Behaviors) Has(name string) bool {
	_, ok := b.m[name]
	return ok
}

// Names returns the registered names, sorted
func (b *Behaviors) Names() []string {
	names := make([]string, 0, len(b.m))
	for name := range b.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named behavior on an actor
func (b *Behaviors) Invoke(s *Scene, a *entity.Actor, name string) error {
	fn, ok := b.m[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, convo.ErrUnknownBehavior)
	}
	return fn(s, a)
}

func jump(_ *Scene, a *entity.Actor) error {
	a.PrepareJump()
	a.NextAction()
	return nil
}

// faceState switches to a standing animation. Actors without it keep
// their current one.
func faceState(state string) Behavior {
	return func(_ *Scene, a *entity.Actor) error {
		a.UpdateState(state)
		return nil
	}
}

package entity

import (
	"fmt"

	"github.com/younwookim/adventure/internal/domain/tween"
)

// MainActorID is the identifier of the player-controlled actor
const MainActorID = "main"

// Animation states every actor is expected to understand
const (
	StateStandFront = "stand_front"
	StateWalkLeft   = "walk_left"
	StateWalkRight  = "walk_right"
	StateJump       = "jump"
)

// Movement defaults
const (
	DefaultWalkSpeed = 400.0
	JumpHeight       = 100.0
	JumpDuration     = 0.3
)

// EventType names an event delivered to the scene script
type EventType string

const (
	EventWalkPathCompleted EventType = "walk_path_completed"
	EventWalkCompleted     EventType = "walk_completed"
)

// Event is the payload handed to the scene script
type Event struct {
	Type  EventType
	Actor *Actor
	// Point is the walkpath point reached, empty for direct moves
	Point string
	X, Y  float64
}

// Stage is what an actor needs from the scene that owns it
type Stage interface {
	AddInterpolator(ip *tween.Interpolator) tween.ID
	CancelInterpolator(id tween.ID)
	FireEvent(ev Event)
}

// NextID returns name_N with the smallest N >= 1 for which taken is false
func NextID(name string, taken func(id string) bool) string {
	for n := 1; ; n++ {
		id := fmt.Sprintf("%s_%d", name, n)
		if !taken(id) {
			return id
		}
	}
}

package entity

import (
	"math"
	"math/rand"

	"github.com/younwookim/adventure/internal/domain/action"
	"github.com/younwookim/adventure/internal/domain/tween"
	"github.com/younwookim/adventure/internal/domain/walkpath"
)

// Definition is the static description shared by every instance of an actor
type Definition struct {
	Name       string
	States     []string
	StartState string
	WalkSpeed  float64
	// Animations holds the frame timing per state; missing states show one frame
	Animations map[string]Animation

	// Anchor is the fraction of the sprite size that sits on the actor position
	AnchorX, AnchorY float64
	Width, Height    float64

	DialogueOffsetX, DialogueOffsetY float64
	CastsShadow                      bool
}

// Record is the serializable placement of one actor in a scene.
// WalkpathPoint wins over X/Y when set. Zero StartState, WalkSpeed and
// Scale fall back to the definition defaults, a nil Opacity to opaque.
type Record struct {
	Name          string
	WalkpathPoint string
	X, Y          float64
	StartState    string
	WalkSpeed     float64
	Scale         float64
	Rotation      float64
	Opacity       *uint8
}

// Actor is any non-static object in a scene
type Actor struct {
	ID   string
	Name string

	X, Y  float64
	Scale float64
	// Rotation is clockwise in degrees around the anchor
	Rotation float64
	Opacity  uint8

	State         string
	WalkSpeed     float64
	WalkpathPoint string
	Visible       bool

	Actions *action.Sequencer

	def    Definition
	states map[string]struct{}
	depth  int
	stage  Stage

	animTime float64
	sequence []int
	rng      *rand.Rand
}

// NewActor creates an actor from its definition and placement.
// A walkpath point in the record is kept but not resolved to coordinates;
// use PlaceAt once the scene graph is known.
func NewActor(id string, def Definition, rec Record, stage Stage) *Actor {
	a := &Actor{
		ID:            id,
		Name:          def.Name,
		X:             rec.X,
		Y:             rec.Y,
		Scale:         1,
		Rotation:      rec.Rotation,
		Opacity:       255,
		WalkpathPoint: rec.WalkpathPoint,
		Visible:       true,
		Actions:       action.NewSequencer(),
		def:           def,
		states:        make(map[string]struct{}, len(def.States)),
		stage:         stage,
	}
	for _, s := range def.States {
		a.states[s] = struct{}{}
	}

	state := def.StartState
	if rec.StartState != "" {
		state = rec.StartState
	}
	a.setState(state)
	if rec.Opacity != nil {
		a.Opacity = *rec.Opacity
	}
	a.WalkSpeed = DefaultWalkSpeed
	if def.WalkSpeed > 0 {
		a.WalkSpeed = def.WalkSpeed
	}
	if rec.WalkSpeed > 0 {
		a.WalkSpeed = rec.WalkSpeed
	}
	if rec.Scale > 0 {
		a.Scale = rec.Scale
	}
	return a
}

// Definition returns the static actor description
func (a *Actor) Definition() Definition {
	return a.def
}

// HasState reports whether the actor has an animation for state
func (a *Actor) HasState(state string) bool {
	_, ok := a.states[state]
	return ok
}

// UpdateState switches animation if the actor has one for state.
// Unknown states are ignored and the actor keeps its current animation.
func (a *Actor) UpdateState(state string) bool {
	if state == a.State {
		return true
	}
	if !a.HasState(state) {
		return false
	}
	a.setState(state)
	return true
}

// PlaceAt puts the actor on a walkpath point
func (a *Actor) PlaceAt(point string, x, y float64) {
	a.WalkpathPoint = point
	a.X, a.Y = x, y
}

// Get implements tween.Target
func (a *Actor) Get(attr string) (float64, bool) {
	switch attr {
	case "x":
		return a.X, true
	case "y":
		return a.Y, true
	case "scale":
		return a.Scale, true
	case "rotation":
		return a.Rotation, true
	case "opacity":
		return float64(a.Opacity), true
	default:
		return 0, false
	}
}

// Set implements tween.Target
func (a *Actor) Set(attr string, v float64) bool {
	switch attr {
	case "x":
		a.X = v
	case "y":
		a.Y = v
	case "scale":
		a.Scale = v
	case "rotation":
		a.Rotation = v
	case "opacity":
		a.Opacity = uint8(math.Round(math.Max(0, math.Min(255, v))))
	default:
		return false
	}
	return true
}

// SortKey implements zorder.Drawable
func (a *Actor) SortKey() float64 {
	return a.Y
}

// SetDepth implements zorder.Drawable
func (a *Actor) SetDepth(depth int) {
	a.depth = depth
}

// Depth returns the draw depth assigned at the last resolve, 0 being the back
func (a *Actor) Depth() int {
	return a.depth
}

// Bounds returns the on-screen rectangle in world coordinates
func (a *Actor) Bounds() (minX, minY, maxX, maxY float64) {
	w := a.def.Width * a.Scale
	h := a.def.Height * a.Scale
	minX = a.X - a.def.AnchorX*w
	minY = a.Y - a.def.AnchorY*h
	return minX, minY, minX + w, minY + h
}

// CoversPoint reports whether a world point is inside the actor
func (a *Actor) CoversPoint(x, y float64) bool {
	if !a.Visible {
		return false
	}
	minX, minY, maxX, maxY := a.Bounds()
	return minX <= x && x <= maxX && minY <= y && y <= maxY
}

// DialogueAnchor returns where a speech bubble points
func (a *Actor) DialogueAnchor() (x, y float64) {
	_, _, _, maxY := a.Bounds()
	return a.X + a.def.DialogueOffsetX, maxY + a.def.DialogueOffsetY
}

// Serialize returns the record that recreates the actor's current state
func (a *Actor) Serialize() Record {
	rec := Record{
		Name:       a.Name,
		StartState: a.State,
		WalkSpeed:  a.WalkSpeed,
	}
	if a.WalkpathPoint != "" {
		rec.WalkpathPoint = a.WalkpathPoint
	} else {
		rec.X, rec.Y = a.X, a.Y
	}
	if a.Scale != 1 {
		rec.Scale = a.Scale
	}
	rec.Rotation = a.Rotation
	if a.Opacity != 255 {
		o := a.Opacity
		rec.Opacity = &o
	}
	return rec
}

// NextAction advances the actor's action queue
func (a *Actor) NextAction() {
	a.Actions.Advance()
}

// BlockingActions returns the number of running groups that block player input
func (a *Actor) BlockingActions() int {
	return a.Actions.BlockingActions()
}

// stateStep switches animation synchronously
func (a *Actor) stateStep(state string) action.Step {
	return action.Step{
		Name: "update_state",
		Op: func(sig *action.Signal) {
			a.UpdateState(state)
			sig.Done()
		},
	}
}

// eventStep hands an event to the given callback, or to the stage
func (a *Actor) eventStep(ev Event, callback func(Event)) action.Step {
	return action.Step{
		Name: "fire_event",
		Op: func(sig *action.Signal) {
			if callback != nil {
				callback(ev)
			} else if a.stage != nil {
				a.stage.FireEvent(ev)
			}
			sig.Done()
		},
	}
}

// MoveStep walks the actor to (x, y), picking a walk animation when anim
// is empty or unknown
func (a *Actor) MoveStep(x, y float64, anim string) action.Step {
	var id tween.ID
	return action.Step{
		Name:     "move_to",
		Blocking: true,
		Op: func(sig *action.Signal) {
			if anim == "" || !a.HasState(anim) {
				anim = StateWalkRight
				if x < a.X {
					anim = StateWalkLeft
				}
			}
			a.UpdateState(anim)
			id = a.stage.AddInterpolator(tween.NewLinear2D(a, a.X, a.Y, x, y, a.WalkSpeed, sig.Done))
		},
		Cancel: func() {
			if id != 0 {
				a.stage.CancelInterpolator(id)
			}
		},
	}
}

// JumpStep raises the actor and lands it back in place
func (a *Actor) JumpStep() action.Step {
	var id tween.ID
	return action.Step{
		Name: "jump",
		Op: func(sig *action.Signal) {
			a.UpdateState(StateJump)
			id = a.stage.AddInterpolator(tween.NewJump(a, "y", a.Y, JumpHeight, JumpDuration, sig.Done))
		},
		Cancel: func() {
			if id != 0 {
				a.stage.CancelInterpolator(id)
			}
		},
	}
}

// PrepareWalkpathMove queues one move group per hop of the route to dest,
// followed by a group that stands the actor still and fires
// walk_path_completed. A nil callback sends the event to the stage.
// The actor's walkpath point is updated immediately.
func (a *Actor) PrepareWalkpathMove(g *walkpath.Graph, dest string, callback func(Event)) error {
	route, hops, err := g.MoveSequence(a.WalkpathPoint, dest)
	if err != nil {
		return err
	}
	for _, hop := range hops {
		a.Actions.Append(a.MoveStep(hop.X, hop.Y, ""))
	}
	final := route[len(route)-1]
	a.WalkpathPoint = final
	p, _ := g.Point(final)
	a.Actions.Append(
		a.stateStep(StateStandFront),
		a.eventStep(Event{Type: EventWalkPathCompleted, Actor: a, Point: final, X: p.X, Y: p.Y}, callback),
	)
	return nil
}

// PrepareDirectMove queues a straight walk to (x, y) that ends in walk_completed
func (a *Actor) PrepareDirectMove(x, y float64) {
	a.Actions.Append(a.MoveStep(x, y, ""))
	a.Actions.Append(
		a.stateStep(StateStandFront),
		a.eventStep(Event{Type: EventWalkCompleted, Actor: a, X: x, Y: y}, nil),
	)
}

// PrepareJump queues a jump that ends standing front
func (a *Actor) PrepareJump() {
	a.Actions.Append(a.JumpStep())
	a.Actions.Append(a.stateStep(StateStandFront))
}

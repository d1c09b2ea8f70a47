package adventure

import (
	"github.com/younwookim/adventure/internal/domain/action"
	"github.com/younwookim/adventure/internal/domain/tween"
)

// Camera is the world position of the view's lower-left corner
type Camera struct {
	X, Y    float64
	Actions *action.Sequencer
}

func newCamera() *Camera {
	return &Camera{Actions: action.NewSequencer()}
}

// Get implements tween.Target
func (c *Camera) Get(attr string) (float64, bool) {
	switch attr {
	case "x":
		return c.X, true
	case "y":
		return c.Y, true
	}
	return 0, false
}

// Set implements tween.Target
func (c *Camera) Set(attr string, v float64) bool {
	switch attr {
	case "x":
		c.X = v
	case "y":
		c.Y = v
	default:
		return false
	}
	return true
}

// Busy reports whether a camera sequence is running
func (c *Camera) Busy() bool {
	return c.Actions.State() == action.Running
}

func (c *Camera) moveStep(tweens *tween.Controller, x, y, speed float64) action.Step {
	var id tween.ID
	return action.Step{
		Name: "camera_move",
		Op: func(sig *action.Signal) {
			id = tweens.Add(tween.NewLinear2D(c, c.X, c.Y, x, y, speed, sig.Done))
		},
		Cancel: func() {
			if id != 0 {
				tweens.Cancel(id)
			}
		},
	}
}

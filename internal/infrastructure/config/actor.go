package config

import (
	"encoding/json"
	"fmt"
)

// ActorInfo is the root config for actors/<name>/info.json
type ActorInfo struct {
	States         map[string]AnimationInfo `json:"states"`
	StartState     string                   `json:"start_state"`
	WalkSpeed      float64                  `json:"walk_speed,omitempty"`
	AnchorX        float64                  `json:"anchor_x"`
	AnchorY        float64                  `json:"anchor_y"`
	Width          float64                  `json:"width"`
	Height         float64                  `json:"height"`
	DialogueOffset [2]float64               `json:"dialogue_offset"`
	CastsShadow    bool                     `json:"casts_shadow,omitempty"`
	NoLoop         []string                 `json:"noloop,omitempty"`
	Randomize      []string                 `json:"randomize,omitempty"`
}

// DefaultFrameTime is the per-frame duration when a state only gives a frame count
const DefaultFrameTime = 0.2

// AnimationInfo describes one animation state. In JSON it is either a frame
// count or a [frames, seconds_per_frame] pair.
type AnimationInfo struct {
	Frames    int
	FrameTime float64
}

// UnmarshalJSON accepts both the short and the pair form
func (a *AnimationInfo) UnmarshalJSON(data []byte) error {
	var frames int
	if err := json.Unmarshal(data, &frames); err == nil {
		a.Frames = frames
		a.FrameTime = DefaultFrameTime
		return nil
	}

	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("animation must be a frame count or [frames, time]: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("animation pair must have 2 elements, got %d", len(pair))
	}
	a.Frames = int(pair[0])
	a.FrameTime = pair[1]
	return nil
}

// MarshalJSON writes the short form when the frame time is the default
func (a AnimationInfo) MarshalJSON() ([]byte, error) {
	if a.FrameTime == DefaultFrameTime || a.FrameTime == 0 {
		return json.Marshal(a.Frames)
	}
	return json.Marshal([]float64{float64(a.Frames), a.FrameTime})
}

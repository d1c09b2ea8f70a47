package config

// GameConfig is the root config for game.json
type GameConfig struct {
	Name       string        `json:"name"`
	FirstScene string        `json:"first_scene"`
	Display    DisplayConfig `json:"display"`
	Clock      ClockConfig   `json:"clock"`
	Pacing     PacingConfig  `json:"pacing"`
	Walk       WalkConfig    `json:"walk"`
	// Sounds maps a cue name to a wav file under sound/
	Sounds map[string]string `json:"sounds"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screen_width"`
	ScreenHeight int `json:"screen_height"`
	Scale        int `json:"scale"`
	TPS          int `json:"tps"`
}

// ClockConfig controls the fixed simulation step
type ClockConfig struct {
	Step float64 `json:"step"` // seconds per simulation step
	// Frame deltas larger than MaxFrameDelta are replaced by ClampedDelta
	MaxFrameDelta float64 `json:"max_frame_delta"`
	ClampedDelta  float64 `json:"clamped_delta"`
}

// PacingConfig controls conversation timing and layout
type PacingConfig struct {
	SecondsPerChar   float64 `json:"seconds_per_char"`
	MinSpeechSeconds float64 `json:"min_speech_seconds"`
	WrapColumns      int     `json:"wrap_columns"`
}

type WalkConfig struct {
	DefaultSpeed float64 `json:"default_speed"`
	CameraSpeed  float64 `json:"camera_speed"`
}

// DefaultGameConfig returns the values used when game.json leaves a field unset
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Display: DisplayConfig{ScreenWidth: 1024, ScreenHeight: 768, Scale: 1, TPS: 120},
		Clock:   ClockConfig{Step: 1.0 / 120, MaxFrameDelta: 0.2, ClampedDelta: 0.01},
		Pacing:  PacingConfig{SecondsPerChar: 0.05, MinSpeechSeconds: 3.0, WrapColumns: 47},
		Walk:    WalkConfig{DefaultSpeed: 400, CameraSpeed: 400},
	}
}

// applyDefaults fills zero fields from DefaultGameConfig
func (c *GameConfig) applyDefaults() {
	d := DefaultGameConfig()
	if c.Display.ScreenWidth == 0 {
		c.Display.ScreenWidth = d.Display.ScreenWidth
	}
	if c.Display.ScreenHeight == 0 {
		c.Display.ScreenHeight = d.Display.ScreenHeight
	}
	if c.Display.Scale == 0 {
		c.Display.Scale = d.Display.Scale
	}
	if c.Display.TPS == 0 {
		c.Display.TPS = d.Display.TPS
	}
	if c.Clock.Step == 0 {
		c.Clock.Step = d.Clock.Step
	}
	if c.Clock.MaxFrameDelta == 0 {
		c.Clock.MaxFrameDelta = d.Clock.MaxFrameDelta
	}
	if c.Clock.ClampedDelta == 0 {
		c.Clock.ClampedDelta = d.Clock.ClampedDelta
	}
	if c.Pacing.SecondsPerChar == 0 {
		c.Pacing.SecondsPerChar = d.Pacing.SecondsPerChar
	}
	if c.Pacing.MinSpeechSeconds == 0 {
		c.Pacing.MinSpeechSeconds = d.Pacing.MinSpeechSeconds
	}
	if c.Pacing.WrapColumns == 0 {
		c.Pacing.WrapColumns = d.Pacing.WrapColumns
	}
	if c.Walk.DefaultSpeed == 0 {
		c.Walk.DefaultSpeed = d.Walk.DefaultSpeed
	}
	if c.Walk.CameraSpeed == 0 {
		c.Walk.CameraSpeed = d.Walk.CameraSpeed
	}
}

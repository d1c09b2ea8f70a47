package config

// SceneInfo is the root config for scenes/<name>/info.json.
// It is also the form a scene is written back in for save data.
type SceneInfo struct {
	Environment  string                    `json:"environment" jsonschema_description:"Background environment name"`
	Script       string                    `json:"script,omitempty" jsonschema_description:"Registered scene script, defaults to the scene name"`
	Background   string                    `json:"background,omitempty" jsonschema_description:"Placeholder background color as #rrggbb"`
	Actors       map[string]ActorPlacement `json:"actors" jsonschema_description:"Actor identifier to placement"`
	Walkpath     WalkpathConfig            `json:"walkpath"`
	CameraPoints map[string][2]float64     `json:"camera_points" jsonschema_description:"Named camera positions"`
}

// ActorPlacement places one actor. WalkpathPoint wins over X/Y.
type ActorPlacement struct {
	Name          string   `json:"name" jsonschema_description:"Actor definition under actors/"`
	WalkpathPoint string   `json:"walkpath_point,omitempty"`
	X             *float64 `json:"x,omitempty"`
	Y             *float64 `json:"y,omitempty"`
	StartState    string   `json:"start_state,omitempty"`
	WalkSpeed     float64  `json:"walk_speed,omitempty"`
	Scale         float64  `json:"scale,omitempty"`
	Rotation      float64  `json:"rotation,omitempty" jsonschema_description:"Clockwise degrees around the anchor"`
	Opacity       *uint8   `json:"opacity,omitempty" jsonschema:"maximum=255"`
}

// WalkpathConfig is the navigable point graph of a scene
type WalkpathConfig struct {
	Points map[string][2]float64 `json:"points" jsonschema_description:"Point identifier to [x, y]"`
	Edges  map[string][]string   `json:"edges" jsonschema_description:"Point identifier to neighbor identifiers"`
}

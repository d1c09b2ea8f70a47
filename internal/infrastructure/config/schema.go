package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
}

// SceneSchema returns the JSON schema of scenes/<name>/info.json
func SceneSchema() ([]byte, error) {
	return json.MarshalIndent(reflector().Reflect(&SceneInfo{}), "", "  ")
}

// ActorSchema returns the JSON schema of actors/<name>/info.json
func ActorSchema() ([]byte, error) {
	return json.MarshalIndent(reflector().Reflect(&ActorInfo{}), "", "  ")
}

// JSONSchema describes both encodings of an animation state
func (AnimationInfo) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "integer", Description: "Frame count"},
			{Type: "array", Items: &jsonschema.Schema{Type: "number"}, Description: "[frames, seconds per frame]"},
		},
	}
}

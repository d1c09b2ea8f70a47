package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntents(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
	}{
		{"click", ClickIntent{X: 10, Y: 20}},
		{"skip", SkipIntent{}},
		{"pause", PauseIntent{}},
		{"save", SaveIntent{}},
		{"choose", ChooseIntent{Index: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var i Intent = tt.intent
			i.isIntent() // Should not panic
			assert.NotNil(t, i)
		})
	}
}

func TestClickIntent(t *testing.T) {
	intent := ClickIntent{X: 12.5, Y: -3}

	assert.Equal(t, 12.5, intent.X)
	assert.Equal(t, -3.0, intent.Y)
}

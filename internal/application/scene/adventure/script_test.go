package adventure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScripts_Resolve(t *testing.T) {
	r := NewScripts()
	hall := &recordScript{}
	r.Register("hall", func() Script { return hall })
	r.Register("shared", func() Script { return NopScript{} })

	tests := []struct {
		name    string
		scene   string
		named   string
		want    Script
		wantErr error
	}{
		{"scene name", "hall", "", hall, nil},
		{"named", "hall", "shared", NopScript{}, nil},
		{"unregistered scene", "yard", "", NopScript{}, nil},
		{"unknown name", "yard", "missing", nil, ErrUnknownScript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.resolve(tt.scene, tt.named)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []string{"hall", "shared"}, r.Names())
}

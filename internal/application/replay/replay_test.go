package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/adventure/internal/application/system"
)

// script returns a reader that yields states in order, then idles
func script(states ...system.InputState) func() system.InputState {
	i := 0
	return func() system.InputState {
		if i >= len(states) {
			return idle
		}
		in := states[i]
		i++
		return in
	}
}

func TestRecorder_PassesInputThrough(t *testing.T) {
	click := system.InputState{MouseX: 10, MouseY: 20, MouseClick: true, Choice: -1}
	rec := NewRecorder("hall", script(click))

	assert.Equal(t, click, rec.Read())
	assert.Equal(t, idle, rec.Read())
	assert.Equal(t, 2, rec.FrameCount())

	data := rec.Data()
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, "hall", data.Scene)
	assert.Equal(t, 0, data.Frames[0].F)
	assert.Equal(t, 1, data.Frames[1].F)
	assert.Equal(t, 0, data.Frames[1].C)
}

func TestRecorder_Stop(t *testing.T) {
	rec := NewRecorder("hall", script())
	rec.Read()
	rec.Stop()
	rec.Read()

	assert.False(t, rec.IsRecording())
	assert.Equal(t, 1, rec.FrameCount())
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder("hall", script())
	assert.Error(t, rec.Save(filepath.Join(t.TempDir(), "r.json")))
}

func TestRecordAndReplay(t *testing.T) {
	frames := []system.InputState{
		{MouseX: 100, MouseY: 100, Choice: -1},
		{MouseX: 300, MouseY: 400, MouseClick: true, Choice: -1},
		{Skip: true, Choice: -1},
		{Choice: 0},
		{Choice: 8, Pause: true, Save: true},
	}
	rec := NewRecorder("station", script(frames...))
	for range frames {
		rec.Read()
	}

	path := filepath.Join(t.TempDir(), "replay.json")
	require.NoError(t, rec.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, "station", data.Scene)

	r := NewReplayer(*data)
	assert.Equal(t, len(frames), r.TotalFrames())
	assert.Equal(t, "station", r.Scene())
	for i, want := range frames {
		got, ok := r.GetInput()
		require.True(t, ok)
		assert.Equal(t, want, got, "frame %d", i)
	}
	assert.True(t, r.Done())

	in, ok := r.GetInput()
	assert.False(t, ok)
	assert.Equal(t, -1, in.Choice)
	assert.False(t, in.MouseClick)
}

func TestReplayer_Reset(t *testing.T) {
	r := NewReplayer(ReplayData{Scene: "hall", Frames: []FrameInput{{F: 0, MX: 100, C: 2}}})

	assert.Equal(t, 1, r.Read().Choice)
	assert.Equal(t, 1, r.CurrentFrame())
	assert.Equal(t, -1, r.Read().Choice)

	r.Reset()
	assert.Equal(t, 0, r.CurrentFrame())
	assert.Equal(t, 100, r.Read().MouseX)
}

func TestLoadReplay_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReplay(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadReplay(bad)
	assert.Error(t, err)

	noScene := filepath.Join(dir, "noscene.json")
	require.NoError(t, os.WriteFile(noScene, []byte(`{"version":"1.0","frames":[]}`), 0o644))
	_, err = LoadReplay(noScene)
	assert.Error(t, err)
}

func TestGenerateFilename(t *testing.T) {
	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, GenerateFilename())
}

package system

// SoundPlayer plays named sound cues
type SoundPlayer interface {
	Play(cue string)
	Has(cue string) bool
}

// NopSound is a SoundPlayer that knows no cues
type NopSound struct{}

func (NopSound) Play(string) {}

func (NopSound) Has(string) bool { return false }

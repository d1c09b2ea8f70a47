package system

// Intent is something the player asked for this frame
type Intent interface {
	isIntent()
}

// ClickIntent is a left click at screen coordinates
type ClickIntent struct {
	X, Y float64
}

func (ClickIntent) isIntent() {}

// SkipIntent cuts the current spoken line short
type SkipIntent struct{}

func (SkipIntent) isIntent() {}

// PauseIntent toggles the pause menu
type PauseIntent struct{}

func (PauseIntent) isIntent() {}

// SaveIntent writes a save file
type SaveIntent struct{}

func (SaveIntent) isIntent() {}

// ChooseIntent picks a visible menu option
type ChooseIntent struct {
	Index int // 0-based
}

func (ChooseIntent) isIntent() {}

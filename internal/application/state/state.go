package state

// Mode represents what the scene is currently doing with player input
type Mode int

const (
	ModeExploring Mode = iota
	ModeCutscene
	ModeChoosing
	ModePaused
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeExploring:
		return "Exploring"
	case ModeCutscene:
		return "Cutscene"
	case ModeChoosing:
		return "Choosing"
	case ModePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

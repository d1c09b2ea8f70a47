package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ChoiceKeys select menu options 1 through 9
var ChoiceKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// InputSystem turns device input into intents
type InputSystem struct {
	choiceKeys []ebiten.Key
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{choiceKeys: ChoiceKeys}
}

// InputState holds the input of one frame
type InputState struct {
	MouseX     int
	MouseY     int
	MouseClick bool
	Skip       bool
	Pause      bool
	Save       bool
	// Choice is the pressed option key, -1 when none
	Choice int
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	mx, my := ebiten.CursorPosition()
	in := InputState{
		MouseX:     mx,
		MouseY:     my,
		MouseClick: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Skip:       inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Pause:      inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Save:       inpututil.IsKeyJustPressed(ebiten.KeyF5),
		Choice:     -1,
	}
	for i, k := range s.choiceKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Choice = i
			break
		}
	}
	return in
}

// Intents translates an input state. Pause comes first so a paused scene
// can drop the rest.
func (s *InputSystem) Intents(in InputState) []Intent {
	var out []Intent
	if in.Pause {
		out = append(out, PauseIntent{})
	}
	if in.Save {
		out = append(out, SaveIntent{})
	}
	if in.Skip {
		out = append(out, SkipIntent{})
	}
	if in.Choice >= 0 {
		out = append(out, ChooseIntent{Index: in.Choice})
	}
	if in.MouseClick {
		out = append(out, ClickIntent{X: float64(in.MouseX), Y: float64(in.MouseY)})
	}
	return out
}

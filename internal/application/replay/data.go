// Package replay records player input frame by frame and plays it back.
// Playback is deterministic when the game runs on its fixed step.
package replay

import (
	"github.com/younwookim/adventure/internal/application/system"
)

// Version is the replay file format version
const Version = "1.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	MX int  `json:"mx"`           // MouseX
	MY int  `json:"my"`           // MouseY
	MC bool `json:"mc,omitempty"` // MouseClick
	Sk bool `json:"sk,omitempty"` // Skip
	P  bool `json:"p,omitempty"`  // Pause
	Sv bool `json:"sv,omitempty"` // Save
	C  int  `json:"c,omitempty"`  // Choice key, 1-based, 0 when none
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Scene     string       `json:"scene"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

func toFrame(f int, in system.InputState) FrameInput {
	return FrameInput{
		F:  f,
		MX: in.MouseX,
		MY: in.MouseY,
		MC: in.MouseClick,
		Sk: in.Skip,
		P:  in.Pause,
		Sv: in.Save,
		C:  in.Choice + 1,
	}
}

func (fi FrameInput) state() system.InputState {
	return system.InputState{
		MouseX:     fi.MX,
		MouseY:     fi.MY,
		MouseClick: fi.MC,
		Skip:       fi.Sk,
		Pause:      fi.P,
		Save:       fi.Sv,
		Choice:     fi.C - 1,
	}
}

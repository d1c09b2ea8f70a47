package main

import (
	"log"

	"github.com/younwookim/adventure/internal/application/scene/adventure"
	"github.com/younwookim/adventure/internal/domain/entity"
)

// Game variables shared by the demo scenes
const (
	varHasTicket = "has_ticket"
	varSeenBoard = "seen_board"
	varBoarded   = "boarded"
)

func demoScripts() *adventure.Scripts {
	r := adventure.NewScripts()
	r.Register("station", func() adventure.Script { return &station{} })
	r.Register("platform", func() adventure.Script { return &platform{} })
	return r
}

// station is the ticket hall. The gate only opens with a ticket.
type station struct{}

func (*station) Init(s *adventure.Scene) error {
	if s.Globals().Truthy(varSeenBoard) {
		return nil
	}
	s.Globals().Set(varSeenBoard, true)
	return s.CameraSequence([]string{"board"}, 0, true)
}

func (*station) HandleEvent(s *adventure.Scene, ev entity.Event) {
	if ev.Type == entity.EventWalkPathCompleted && ev.Actor.ID == entity.MainActorID && ev.Point == "gate" {
		s.RequestTransition("platform")
	}
}

func (*station) ActorClicked(s *adventure.Scene, a *entity.Actor) {
	if a.ID != "salesman" {
		return
	}
	name := "salesman"
	if s.Globals().Truthy(varHasTicket) {
		name = "thanks"
	}
	if err := s.StartConversation(name); err != nil {
		log.Printf("station: %v", err)
	}
}

// FilterMove keeps the player out of the gate without a ticket
func (*station) FilterMove(s *adventure.Scene, point string) (string, bool) {
	if point != "gate" || s.Globals().Truthy(varHasTicket) {
		return point, true
	}
	if err := s.StartConversation("no_ticket"); err != nil {
		log.Printf("station: %v", err)
	}
	return "", false
}

// platform waits for the train. Reaching the edge boards it.
type platform struct{}

func (*platform) Init(s *adventure.Scene) error {
	return s.StartBackgroundConversation("announcer")
}

func (*platform) HandleEvent(s *adventure.Scene, ev entity.Event) {
	if ev.Type != entity.EventWalkPathCompleted || ev.Actor.ID != entity.MainActorID {
		return
	}
	switch ev.Point {
	case "stairs":
		s.RequestTransition("station")
	case "edge":
		s.StopBackgroundConversation("announcer")
		if err := s.StartConversation("board"); err != nil {
			log.Printf("platform: %v", err)
		}
	}
}

func (*platform) ActorClicked(*adventure.Scene, *entity.Actor) {}

func (*platform) ConversationEnded(s *adventure.Scene, name string) {
	if name == "board" && s.Globals().Truthy(varBoarded) {
		s.SetInteractive(false)
	}
}

package adventure

import (
	"log"

	"github.com/younwookim/adventure/internal/application/convo"
	"github.com/younwookim/adventure/internal/application/state"
	"github.com/younwookim/adventure/internal/application/system"
	"github.com/younwookim/adventure/internal/domain/entity"
)

var _ convo.Host = (*Scene)(nil)

// LoadScript reads scenes/<scene>/convo/<name>.convo once per scene
func (s *Scene) LoadScript(name string) (*convo.Script, error) {
	if sc, ok := s.scripts[name]; ok {
		return sc, nil
	}
	data, err := s.world.Loader.ReadConvo(s.name, name)
	if err != nil {
		return nil, err
	}
	sc, err := convo.Parse(name, data)
	if err != nil {
		return nil, err
	}
	s.scripts[name] = sc
	return sc, nil
}

func (s *Scene) Globals() *state.Vars {
	return s.world.Store.Globals
}

func (s *Scene) Inventory() *entity.Inventory {
	return s.world.Inventory
}

func (s *Scene) NewItem(name, id string) (*entity.Actor, error) {
	return s.world.NewItem(name, id)
}

func (s *Scene) HasBehavior(name string) bool {
	return s.world.Behaviors.Has(name)
}

func (s *Scene) InvokeBehavior(a *entity.Actor, name string) error {
	return s.world.Behaviors.Invoke(s, a, name)
}

// WalkTo moves an actor along the walkpath. done runs on arrival instead
// of the script's walk_path_completed handler.
func (s *Scene) WalkTo(a *entity.Actor, point string, done func()) error {
	return s.walk(a, point, func(entity.Event) {
		if done != nil {
			done()
		}
	})
}

func (s *Scene) PlaySound(cue string) {
	s.world.Sound.Play(cue)
}

// PlaySpeakingSound plays the speaker's own voice cue when one exists
func (s *Scene) PlaySpeakingSound(a *entity.Actor) {
	if cue := SoundSpeak + "_" + a.Name; s.world.Sound.Has(cue) {
		s.world.Sound.Play(cue)
		return
	}
	s.world.Sound.Play(SoundSpeak)
}

func (s *Scene) ScheduleOnce(delay float64, fn func()) system.TimerID {
	return s.clock.ScheduleOnce(delay, fn)
}

func (s *Scene) Unschedule(id system.TimerID) bool {
	return s.clock.Unschedule(id)
}

// ConversationEnded tells the script when the foreground conversation is
// over. Nothing is reported while the scene is being torn down.
func (s *Scene) ConversationEnded(c *convo.Conversation, name string, err error) {
	if err != nil {
		log.Printf("scene %s: conversation %s ended: %v", s.name, name, err)
	}
	if s.exiting || c != s.convo {
		return
	}
	if h, ok := s.script.(ConversationEnder); ok {
		h.ConversationEnded(s, name)
	}
}

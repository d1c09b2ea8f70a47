package adventure

import (
	"errors"
	"fmt"
	"sort"

	"github.com/younwookim/adventure/internal/domain/entity"
)

// ErrUnknownScript is returned when a scene names a script nobody registered.
var ErrUnknownScript = errors.New("adventure: unknown scene script")

// Script is the per-scene game logic
type Script interface {
	// Init runs once when the scene is built, before the first update
	Init(s *Scene) error
	// HandleEvent receives actor events such as walk_path_completed
	HandleEvent(s *Scene, ev entity.Event)
	// ActorClicked runs when the player clicks an actor other than main
	ActorClicked(s *Scene, a *entity.Actor)
}

// MoveFilter lets a script redirect or veto player moves. It returns the
// point to walk to, or false to keep the main actor where it is.
type MoveFilter interface {
	FilterMove(s *Scene, point string) (string, bool)
}

// ConversationEnder is told when the foreground conversation ends
type ConversationEnder interface {
	ConversationEnded(s *Scene, name string)
}

// TransitionHandler is told before the scene is left for another one
type TransitionHandler interface {
	Leaving(s *Scene, next string)
}

// NopScript accepts everything and does nothing
type NopScript struct{}

func (NopScript) Init(*Scene) error { return nil }

func (NopScript) HandleEvent(*Scene, entity.Event) {}

func (NopScript) ActorClicked(*Scene, *entity.Actor) {}

// Scripts maps script names to constructors. Each scene gets a fresh
// script value.
type Scripts struct {
	factories map[string]func() Script
}

// NewScripts creates an empty registry
func NewScripts() *Scripts {
	return &Scripts{factories: make(map[string]func() Script)}
}

// Register adds a script constructor under a name
func (r *Scripts) Register(name string, factory func() Script) {
	r.factories[name] = factory
}

// Names returns the registered script names, sorted
func (r *Scripts) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve picks the script for a scene. A scene that names no script uses
// the one registered under its own name, or NopScript.
func (r *Scripts) resolve(scene, named string) (Script, error) {
	if named == "" {
		if f, ok := r.factories[scene]; ok {
			return f(), nil
		}
		return NopScript{}, nil
	}
	f, ok := r.factories[named]
	if !ok {
		return nil, fmt.Errorf("scene %s: %q: %w", scene, named, ErrUnknownScript)
	}
	return f(), nil
}

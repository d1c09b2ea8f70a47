package system

import (
	"fmt"
	"slices"
	"sort"

	"github.com/younwookim/adventure/internal/domain/entity"
	"github.com/younwookim/adventure/internal/domain/walkpath"
	"github.com/younwookim/adventure/internal/infrastructure/config"
)

// SceneData is a scene description resolved into domain types
type SceneData struct {
	Name     string
	Info     *config.SceneInfo
	Walkpath *walkpath.Graph
	// Records holds the placement of every actor by id
	Records map[string]entity.Record
	// Definitions holds every actor definition the scene uses, by name
	Definitions map[string]entity.Definition
}

// ActorIDs returns the placed actor ids in sorted order
func (d *SceneData) ActorIDs() []string {
	ids := make([]string, 0, len(d.Records))
	for id := range d.Records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SceneLoader turns config files into scene data. Actor definitions are
// read once and shared between scenes.
type SceneLoader struct {
	loader    *config.Loader
	walkSpeed float64
	defs      map[string]entity.Definition
}

// NewSceneLoader creates a scene loader. walkSpeed is used for actors
// that do not set their own.
func NewSceneLoader(loader *config.Loader, walkSpeed float64) *SceneLoader {
	return &SceneLoader{
		loader:    loader,
		walkSpeed: walkSpeed,
		defs:      make(map[string]entity.Definition),
	}
}

// Load reads scenes/<name>/info.json and every actor it places
func (l *SceneLoader) Load(name string) (*SceneData, error) {
	info, err := l.loader.LoadScene(name)
	if err != nil {
		return nil, err
	}
	return l.Resolve(name, info)
}

// Resolve builds scene data from a scene description, such as one written
// back when the scene was last left
func (l *SceneLoader) Resolve(name string, info *config.SceneInfo) (*SceneData, error) {
	g, err := walkpath.New(info.Walkpath.Points, info.Walkpath.Edges)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}

	data := &SceneData{
		Name:        name,
		Info:        info,
		Walkpath:    g,
		Records:     make(map[string]entity.Record, len(info.Actors)),
		Definitions: make(map[string]entity.Definition),
	}
	for id, p := range info.Actors {
		rec := PlacementRecord(id, p)
		def, err := l.Definition(rec.Name)
		if err != nil {
			return nil, fmt.Errorf("scene %s: actor %s: %w", name, id, err)
		}
		if rec.WalkpathPoint != "" {
			if _, ok := g.Point(rec.WalkpathPoint); !ok {
				return nil, fmt.Errorf("scene %s: actor %s: %q: %w", name, id, rec.WalkpathPoint, walkpath.ErrUnknownPoint)
			}
		}
		if rec.StartState != "" && !containsState(def.States, rec.StartState) {
			return nil, fmt.Errorf("scene %s: actor %s: start state %q has no animation", name, id, rec.StartState)
		}
		data.Records[id] = rec
		data.Definitions[rec.Name] = def
	}
	return data, nil
}

// Definition returns the named actor definition, reading it on first use
func (l *SceneLoader) Definition(name string) (entity.Definition, error) {
	if def, ok := l.defs[name]; ok {
		return def, nil
	}
	info, err := l.loader.LoadActor(name)
	if err != nil {
		return entity.Definition{}, err
	}
	def := ActorDefinition(name, info, l.walkSpeed)
	l.defs[name] = def
	return def, nil
}

// ActorDefinition converts an actor config
func ActorDefinition(name string, info *config.ActorInfo, walkSpeed float64) entity.Definition {
	states := make([]string, 0, len(info.States))
	for s := range info.States {
		states = append(states, s)
	}
	sort.Strings(states)

	def := entity.Definition{
		Name:            name,
		States:          states,
		StartState:      info.StartState,
		WalkSpeed:       info.WalkSpeed,
		AnchorX:         info.AnchorX,
		AnchorY:         info.AnchorY,
		Width:           info.Width,
		Height:          info.Height,
		DialogueOffsetX: info.DialogueOffset[0],
		DialogueOffsetY: info.DialogueOffset[1],
		CastsShadow:     info.CastsShadow,
	}
	if def.WalkSpeed <= 0 {
		def.WalkSpeed = walkSpeed
	}

	def.Animations = make(map[string]entity.Animation, len(info.States))
	for s, a := range info.States {
		def.Animations[s] = entity.Animation{
			Frames:    a.Frames,
			FrameTime: a.FrameTime,
			NoLoop:    slices.Contains(info.NoLoop, s),
			Randomize: slices.Contains(info.Randomize, s),
		}
	}
	return def
}

// PlacementRecord converts a placement. The actor name defaults to its id.
func PlacementRecord(id string, p config.ActorPlacement) entity.Record {
	rec := entity.Record{
		Name:          p.Name,
		WalkpathPoint: p.WalkpathPoint,
		StartState:    p.StartState,
		WalkSpeed:     p.WalkSpeed,
		Scale:         p.Scale,
		Rotation:      p.Rotation,
		Opacity:       p.Opacity,
	}
	if rec.Name == "" {
		rec.Name = id
	}
	if p.X != nil {
		rec.X = *p.X
	}
	if p.Y != nil {
		rec.Y = *p.Y
	}
	return rec
}

// Placement converts a record back to its config form
func Placement(rec entity.Record) config.ActorPlacement {
	p := config.ActorPlacement{
		Name:       rec.Name,
		StartState: rec.StartState,
		WalkSpeed:  rec.WalkSpeed,
		Scale:      rec.Scale,
		Rotation:   rec.Rotation,
		Opacity:    rec.Opacity,
	}
	if rec.WalkpathPoint != "" {
		p.WalkpathPoint = rec.WalkpathPoint
		return p
	}
	x, y := rec.X, rec.Y
	p.X, p.Y = &x, &y
	return p
}

func containsState(states []string, s string) bool {
	i := sort.SearchStrings(states, s)
	return i < len(states) && states[i] == s
}

package adventure

import (
	"fmt"

	"github.com/younwookim/adventure/internal/application/convo"
	"github.com/younwookim/adventure/internal/application/save"
	"github.com/younwookim/adventure/internal/application/state"
	"github.com/younwookim/adventure/internal/application/system"
	"github.com/younwookim/adventure/internal/domain/entity"
	"github.com/younwookim/adventure/internal/infrastructure/config"
)

// World is the state that outlives a single scene. It is created once per
// game and handed to every scene by reference.
type World struct {
	Config    *config.GameConfig
	Loader    *config.Loader
	Scenes    *system.SceneLoader
	Store     *state.Store
	Inventory *entity.Inventory
	Palette   *convo.Palette
	Sound     system.SoundPlayer
	Scripts   *Scripts
	Behaviors *Behaviors

	// Visited holds the state every scene was left in
	Visited map[string]*config.SceneInfo
	// SavePath is where the save key writes; empty picks a timestamped name
	SavePath string
	// Input replaces the device reader in every scene when set
	Input func() system.InputState
}

// NewWorld creates the game-wide state. A nil sound player plays nothing.
func NewWorld(cfg *config.GameConfig, loader *config.Loader, sound system.SoundPlayer, scripts *Scripts) *World {
	if sound == nil {
		sound = system.NopSound{}
	}
	if scripts == nil {
		scripts = NewScripts()
	}
	return &World{
		Config:    cfg,
		Loader:    loader,
		Scenes:    system.NewSceneLoader(loader, cfg.Walk.DefaultSpeed),
		Store:     state.NewStore(),
		Inventory: entity.NewInventory(),
		Palette:   convo.NewPalette(),
		Sound:     sound,
		Scripts:   scripts,
		Behaviors: NewBehaviors(),
		Visited:   make(map[string]*config.SceneInfo),
	}
}

// NewItem creates an inventory item from its actor definition
func (w *World) NewItem(name, id string) (*entity.Actor, error) {
	def, err := w.Scenes.Definition(name)
	if err != nil {
		return nil, err
	}
	return entity.NewActor(id, def, entity.Record{Name: name}, nil), nil
}

// Snapshot captures the game with current as the running scene
func (w *World) Snapshot(current *Scene) *save.Data {
	d := save.New(current.Name())
	d.Globals = w.Store.Globals.Snapshot()
	for _, id := range w.Inventory.IDs() {
		item, _ := w.Inventory.Get(id)
		d.Inventory = append(d.Inventory, save.Item{ID: id, Name: item.Name})
	}
	for name, info := range w.Visited {
		d.Scenes[name] = info
	}
	d.Scenes[current.Name()] = current.Serialize()
	return d
}

// Restore replaces the game-wide state with saved data. The caller builds
// the saved scene afterwards.
func (w *World) Restore(d *save.Data) error {
	inv := entity.NewInventory()
	for _, it := range d.Inventory {
		item, err := w.NewItem(it.Name, it.ID)
		if err != nil {
			return fmt.Errorf("failed to restore item %s: %w", it.ID, err)
		}
		inv.Put(item)
	}

	w.Inventory = inv
	w.Store = state.NewStore()
	w.Store.Globals.Update(d.Globals)
	w.Visited = make(map[string]*config.SceneInfo, len(d.Scenes))
	for name, info := range d.Scenes {
		w.Visited[name] = info
	}
	return nil
}

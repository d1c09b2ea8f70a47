package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// Loader loads game configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the underlying filesystem
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// LoadGame loads game.json
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, "game.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read game.json: %w", err)
	}

	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game.json: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// LoadScene loads scenes/<name>/info.json
func (l *Loader) LoadScene(name string) (*SceneInfo, error) {
	p := path.Join("scenes", name, "info.json")
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", name, err)
	}

	var info SceneInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", name, err)
	}
	if info.Actors == nil {
		info.Actors = make(map[string]ActorPlacement)
	}
	if info.CameraPoints == nil {
		info.CameraPoints = make(map[string][2]float64)
	}

	return &info, nil
}

// LoadActor loads actors/<name>/info.json
func (l *Loader) LoadActor(name string) (*ActorInfo, error) {
	p := path.Join("actors", name, "info.json")
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read actor %s: %w", name, err)
	}

	var info ActorInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse actor %s: %w", name, err)
	}
	if _, ok := info.States[info.StartState]; !ok {
		return nil, fmt.Errorf("actor %s: start state %q has no animation", name, info.StartState)
	}

	return &info, nil
}

// ReadConvo returns the raw script scenes/<scene>/convo/<name>.convo
func (l *Loader) ReadConvo(scene, name string) ([]byte, error) {
	p := path.Join("scenes", scene, "convo", name+".convo")
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation %s/%s: %w", scene, name, err)
	}
	return data, nil
}

// ReadSound returns the raw wav data for a cue file under sound/
func (l *Loader) ReadSound(file string) ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, path.Join("sound", file))
	if err != nil {
		return nil, fmt.Errorf("failed to read sound %s: %w", file, err)
	}
	return data, nil
}

// ListConvos returns the conversation names available in a scene
func (l *Loader) ListConvos(scene string) ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, path.Join("scenes", scene, "convo"))
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations of %s: %w", scene, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".convo") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".convo"))
	}
	sort.Strings(names)
	return names, nil
}

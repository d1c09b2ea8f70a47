package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/adventure/internal/infrastructure/config"
)

// ErrVersion is returned for save files written by another format version.
var ErrVersion = errors.New("save: unsupported version")

// New creates empty save data for the given current scene
func New(scene string) *Data {
	return &Data{
		Version:   Version,
		SavedAt:   time.Now().Format(time.RFC3339),
		Scene:     scene,
		Globals:   make(map[string]any),
		Inventory: make([]Item, 0),
		Scenes:    make(map[string]*config.SceneInfo),
	}
}

// Write encodes the data as indented JSON
func (d *Data) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}
	return nil
}

// Read decodes save data and checks its version
func Read(r io.Reader) (*Data, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode save: %w", err)
	}
	if d.Version != Version {
		return nil, fmt.Errorf("%q: %w", d.Version, ErrVersion)
	}
	if d.Scene == "" {
		return nil, fmt.Errorf("failed to decode save: no current scene")
	}
	if d.Globals == nil {
		d.Globals = make(map[string]any)
	}
	if d.Scenes == nil {
		d.Scenes = make(map[string]*config.SceneInfo)
	}
	return &d, nil
}

// Save writes the data to a file
func (d *Data) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return d.Write(file)
}

// Load reads save data from a file
func Load(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file)
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("save_%s.json", time.Now().Format("20060102_150405"))
}

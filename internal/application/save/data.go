// Package save reads and writes game save files.
package save

import (
	"github.com/younwookim/adventure/internal/infrastructure/config"
)

// Version is the save file format version
const Version = "1.0"

// Item is one inventory entry
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Data is everything needed to resume a game
type Data struct {
	Version   string         `json:"version"`
	SavedAt   string         `json:"savedAt"`
	Scene     string         `json:"scene"`
	Globals   map[string]any `json:"globals"`
	Inventory []Item         `json:"inventory"`
	// Scenes holds the last state of every visited scene, current one included
	Scenes map[string]*config.SceneInfo `json:"scenes"`
}

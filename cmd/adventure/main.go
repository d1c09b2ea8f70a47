package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/adventure/internal/application/game"
	"github.com/younwookim/adventure/internal/application/replay"
	"github.com/younwookim/adventure/internal/application/save"
	"github.com/younwookim/adventure/internal/application/scene/adventure"
	"github.com/younwookim/adventure/internal/application/system"
	"github.com/younwookim/adventure/internal/infrastructure/audio"
	"github.com/younwookim/adventure/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

func main() {
	// Parse command line flags
	schemaFlag := flag.String("schema", "", "Print the JSON schema of a config file (scene or actor) and exit")
	loadFlag := flag.String("load", "", "Resume a saved game (e.g., -load save.json)")
	saveFlag := flag.String("save", "", "File F5 saves to (default: save_<time>.json)")
	configDir := flag.String("configs", "", "Read configs from a directory instead of the embedded ones")
	muteFlag := flag.Bool("mute", false, "Disable sound")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back recorded input (e.g., -replay replay.json)")
	flag.Parse()

	if *schemaFlag != "" {
		if err := printSchema(*schemaFlag); err != nil {
			log.Fatalf("Failed to generate schema: %v", err)
		}
		return
	}

	loader, err := newLoader(*configDir)
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	cfg, err := loader.LoadGame()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	world := adventure.NewWorld(cfg, loader, newSound(loader, cfg, *muteFlag), demoScripts())
	world.SavePath = *saveFlag

	first := cfg.FirstScene
	if *loadFlag != "" {
		d, err := save.Load(*loadFlag)
		if err != nil {
			log.Fatalf("Failed to load save: %v", err)
		}
		if err := world.Restore(d); err != nil {
			log.Fatalf("Failed to restore save: %v", err)
		}
		first = d.Scene
		log.Printf("Save loaded: %s (scene %s, saved %s)", *loadFlag, d.Scene, d.SavedAt)
	}

	var recorder *replay.Recorder
	switch {
	case *replayFlag != "":
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		r := replay.NewReplayer(*data)
		world.Input = r.Read
		first = r.Scene()
		log.Printf("Replaying: %s (%d frames)", *replayFlag, r.TotalFrames())
	case *recordFlag != "":
		recorder = replay.NewRecorder(first, system.NewInputSystem().GetInput)
		world.Input = recorder.Read
		log.Printf("Recording enabled: %s", *recordFlag)
	}

	start, err := adventure.New(world, first)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	d := cfg.Display
	g := game.New(start, d.ScreenWidth, d.ScreenHeight, d.TPS)
	// Recordings play back on the fixed step
	if *replayFlag == "" && *recordFlag == "" {
		g.MeasureFrames(time.Now)
	}

	// Set up ebiten
	ebiten.SetWindowSize(d.ScreenWidth*d.Scale, d.ScreenHeight*d.Scale)
	ebiten.SetWindowTitle(cfg.Name)
	ebiten.SetTPS(d.TPS)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}

	if recorder != nil {
		if err := recorder.Save(*recordFlag); err != nil {
			log.Printf("Failed to save recording: %v", err)
		} else {
			log.Printf("Recording saved: %s (%d frames)", *recordFlag, recorder.FrameCount())
		}
	}
}

// newLoader reads the embedded configs, or dir when set
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// newSound opens the speaker. The game runs silent when it cannot.
func newSound(loader *config.Loader, cfg *config.GameConfig, mute bool) system.SoundPlayer {
	if mute || len(cfg.Sounds) == 0 {
		return system.NopSound{}
	}
	p, err := audio.NewPlayer(loader, cfg.Sounds)
	if err != nil {
		log.Printf("Failed to load sounds: %v", err)
		return system.NopSound{}
	}
	if err := p.Initialize(); err != nil {
		log.Printf("Sound disabled: %v", err)
		return system.NopSound{}
	}
	return p
}

func printSchema(kind string) error {
	var data []byte
	var err error
	switch kind {
	case "scene":
		data, err = config.SceneSchema()
	case "actor":
		data, err = config.ActorSchema()
	default:
		return fmt.Errorf("unknown schema %q (want scene or actor)", kind)
	}
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}

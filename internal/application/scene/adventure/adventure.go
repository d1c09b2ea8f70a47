// Package adventure provides the point-and-click exploration scene.
package adventure

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/younwookim/adventure/internal/application/convo"
	"github.com/younwookim/adventure/internal/application/save"
	"github.com/younwookim/adventure/internal/application/scene"
	"github.com/younwookim/adventure/internal/application/state"
	"github.com/younwookim/adventure/internal/application/system"
	"github.com/younwookim/adventure/internal/domain/entity"
	"github.com/younwookim/adventure/internal/domain/tween"
	"github.com/younwookim/adventure/internal/domain/walkpath"
	"github.com/younwookim/adventure/internal/domain/zorder"
	"github.com/younwookim/adventure/internal/infrastructure/config"
)

// ErrUnknownCameraPoint is returned when a camera sequence names a point
// the scene does not define.
var ErrUnknownCameraPoint = errors.New("adventure: unknown camera point")

// Sound cues played by the scene
const (
	SoundPause  = "pause"
	SoundResume = "resume"
	// SoundSpeak is the fallback speaking cue; "speak_<actor name>" wins
	SoundSpeak = "speak"
)

// Scene is a single adventure location: its actors, walkpath, camera and
// conversations
type Scene struct {
	world  *World
	name   string
	info   *config.SceneInfo
	graph  *walkpath.Graph
	script Script

	actors   map[string]*entity.Actor
	ids      []string // sorted
	resolver *zorder.Resolver
	tweens   *tween.Controller
	clock    *system.Clock
	camera   *Camera

	input     *system.InputSystem
	readInput func() system.InputState

	convo      *convo.Conversation
	background []*convo.Conversation
	scripts    map[string]*convo.Script

	paused      bool
	interactive bool
	exiting     bool
	transition  string

	screenW, screenH int
	bg               color.RGBA
}

// New builds the named scene. A scene visited before is rebuilt from the
// state it was left in.
func New(w *World, name string) (*Scene, error) {
	var data *system.SceneData
	var err error
	if info, ok := w.Visited[name]; ok {
		data, err = w.Scenes.Resolve(name, info)
	} else {
		data, err = w.Scenes.Load(name)
	}
	if err != nil {
		return nil, err
	}

	script, err := w.Scripts.resolve(name, data.Info.Script)
	if err != nil {
		return nil, err
	}

	input := system.NewInputSystem()
	s := &Scene{
		world:       w,
		name:        name,
		info:        data.Info,
		graph:       data.Walkpath,
		script:      script,
		actors:      make(map[string]*entity.Actor, len(data.Records)),
		resolver:    zorder.NewResolver(),
		tweens:      tween.NewController(),
		clock:       system.NewClock(w.Config.Clock.Step),
		camera:      newCamera(),
		input:       input,
		readInput:   input.GetInput,
		scripts:     make(map[string]*convo.Script),
		interactive: true,
		screenW:     w.Config.Display.ScreenWidth,
		screenH:     w.Config.Display.ScreenHeight,
		bg:          parseColor(data.Info.Background, colorBG),
	}
	if w.Input != nil {
		s.readInput = w.Input
	}
	s.convo = convo.New(s, s.convoOptions(false))

	for _, id := range data.ActorIDs() {
		rec := data.Records[id]
		s.place(id, data.Definitions[rec.Name], rec)
	}
	s.resetOrder()
	s.followMain()

	if err := script.Init(s); err != nil {
		return nil, fmt.Errorf("scene %s: init: %w", name, err)
	}
	return s, nil
}

func (s *Scene) convoOptions(background bool) convo.Options {
	p := s.world.Config.Pacing
	return convo.Options{
		Pacing: convo.Pacing{
			SecondsPerChar:   p.SecondsPerChar,
			MinSpeechSeconds: p.MinSpeechSeconds,
			WrapColumns:      p.WrapColumns,
		},
		Palette:    s.world.Palette,
		Background: background,
	}
}

// place creates an actor and resolves its walkpath point
func (s *Scene) place(id string, def entity.Definition, rec entity.Record) *entity.Actor {
	a := entity.NewActor(id, def, rec, s)
	if rec.WalkpathPoint != "" {
		if p, ok := s.graph.Point(rec.WalkpathPoint); ok {
			a.PlaceAt(p.ID, p.X, p.Y)
		}
	}
	s.actors[id] = a
	return a
}

// resetOrder rebuilds the sorted id list and the draw order after the
// actor set changed
func (s *Scene) resetOrder() {
	s.ids = s.ids[:0]
	for id := range s.actors {
		s.ids = append(s.ids, id)
	}
	sort.Strings(s.ids)

	drawables := make([]zorder.Drawable, len(s.ids))
	for i, id := range s.ids {
		drawables[i] = s.actors[id]
	}
	s.resolver.Reset(drawables)
	s.resolver.Resolve()
}

// Name returns the scene name
func (s *Scene) Name() string {
	return s.name
}

// World returns the game-wide state
func (s *Scene) World() *World {
	return s.world
}

// Walkpath returns the scene's point graph
func (s *Scene) Walkpath() *walkpath.Graph {
	return s.graph
}

// Camera returns the scene camera
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Actor returns a scene actor by id
func (s *Scene) Actor(id string) (*entity.Actor, bool) {
	a, ok := s.actors[id]
	return a, ok
}

// Main returns the player character
func (s *Scene) Main() (*entity.Actor, bool) {
	return s.Actor(entity.MainActorID)
}

// ActorIDs returns every actor id, sorted
func (s *Scene) ActorIDs() []string {
	return append([]string(nil), s.ids...)
}

// DrawOrder returns the actors back to front
func (s *Scene) DrawOrder() []*entity.Actor {
	order := s.resolver.Order()
	out := make([]*entity.Actor, len(order))
	for i, d := range order {
		out[i] = d.(*entity.Actor)
	}
	return out
}

// Mode reports what the player is currently doing
func (s *Scene) Mode() state.Mode {
	switch {
	case s.paused:
		return state.ModePaused
	case s.convo.Active() && s.convo.Waiting() == convo.WaitChoice:
		return state.ModeChoosing
	case s.convo.Active():
		return state.ModeCutscene
	default:
		return state.ModeExploring
	}
}

// Paused reports whether the pause menu is open
func (s *Scene) Paused() bool {
	return s.paused
}

// SetInteractive enables or disables player moves and actor clicks
func (s *Scene) SetInteractive(on bool) {
	s.interactive = on
}

// Conversation returns the foreground conversation
func (s *Scene) Conversation() *convo.Conversation {
	return s.convo
}

// Behaviors returns the behavior registry scripts may extend
func (s *Scene) Behaviors() *Behaviors {
	return s.world.Behaviors
}

// SetInputSource replaces the device reader used by Update
func (s *Scene) SetInputSource(read func() system.InputState) {
	s.readInput = read
}

// Update proceeds the scene (implements scene.Scene)
func (s *Scene) Update(dt float64) (scene.Scene, error) {
	for _, in := range s.input.Intents(s.readInput()) {
		s.HandleIntent(in)
	}
	s.Tick(dt)

	if s.transition == "" {
		return nil, nil // nil = stay on this scene
	}
	return s.leave()
}

// Tick runs the simulation for dt seconds of frame time. Long frames are
// clamped so a stall does not fast-forward the scene.
func (s *Scene) Tick(dt float64) {
	if s.paused {
		return
	}
	if dt > s.world.Config.Clock.MaxFrameDelta {
		dt = s.world.Config.Clock.ClampedDelta
	}
	s.clock.Advance(dt, s.step)
}

// step advances everything by one fixed simulation step
func (s *Scene) step(dt float64) {
	s.tweens.Tick(dt)
	// Callbacks may add or remove actors
	for _, id := range s.ActorIDs() {
		if a, ok := s.actors[id]; ok {
			a.Actions.Update()
			a.Animate(dt)
		}
	}
	s.camera.Actions.Update()
	if !s.camera.Busy() {
		s.followMain()
	}
	s.resolver.Resolve()
	s.pruneBackground()
}

// followMain centers the camera horizontally on the main actor
func (s *Scene) followMain() {
	main, ok := s.Main()
	if !ok {
		return
	}
	s.camera.X = main.X - float64(s.screenW)/2
}

func (s *Scene) pruneBackground() {
	kept := s.background[:0]
	for _, c := range s.background {
		if c.Active() {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(s.background); i++ {
		s.background[i] = nil
	}
	s.background = kept
}

// HandleIntent applies one player intent
func (s *Scene) HandleIntent(in system.Intent) {
	if _, ok := in.(system.PauseIntent); ok {
		s.TogglePause()
		return
	}
	if s.paused {
		return
	}

	switch in := in.(type) {
	case system.SaveIntent:
		s.saveGame()
	case system.SkipIntent:
		s.convo.Skip()
	case system.ChooseIntent:
		s.choose(in.Index)
	case system.ClickIntent:
		s.click(in.X, in.Y)
	}
}

// TogglePause opens or closes the pause menu
func (s *Scene) TogglePause() {
	s.paused = !s.paused
	if s.paused {
		s.world.Sound.Play(SoundPause)
	} else {
		s.world.Sound.Play(SoundResume)
	}
}

func (s *Scene) choose(i int) {
	if s.convo.Waiting() != convo.WaitChoice {
		return
	}
	if err := s.convo.Choose(i); err != nil {
		log.Printf("scene %s: %v", s.name, err)
	}
}

// click handles a click in screen coordinates. While a conversation runs
// the click picks a menu option or skips the spoken line.
func (s *Scene) click(sx, sy float64) {
	if s.convo.Active() {
		switch s.convo.Waiting() {
		case convo.WaitChoice:
			if i, ok := s.choiceAt(sx, sy); ok {
				s.choose(i)
			}
		case convo.WaitSpeech:
			s.convo.Skip()
		}
		return
	}
	wx, wy := s.toWorld(sx, sy)
	s.ClickWorld(wx, wy)
}

// AcceptsClicks reports whether the player may move or click actors
func (s *Scene) AcceptsClicks() bool {
	if s.paused || !s.interactive || s.convo.Active() {
		return false
	}
	if main, ok := s.Main(); ok && main.BlockingActions() > 0 {
		return false
	}
	return true
}

// ClickWorld handles a click at world coordinates: an actor under the
// cursor goes to the script, anything else moves the main actor.
func (s *Scene) ClickWorld(x, y float64) {
	if !s.AcceptsClicks() {
		return
	}
	if a, ok := s.ActorUnderPoint(x, y); ok {
		s.script.ActorClicked(s, a)
		return
	}
	s.MoveMainToward(x, y)
}

// ActorUnderPoint returns the visible actor other than main with the
// highest depth covering a world point
func (s *Scene) ActorUnderPoint(x, y float64) (*entity.Actor, bool) {
	var hit *entity.Actor
	for _, id := range s.ids {
		a := s.actors[id]
		if id == entity.MainActorID || !a.CoversPoint(x, y) {
			continue
		}
		if hit == nil || a.Depth() > hit.Depth() {
			hit = a
		}
	}
	return hit, hit != nil
}

// MoveMainToward walks the main actor to the reachable walkpath point
// closest to a world position. Without a walkpath point it walks straight.
func (s *Scene) MoveMainToward(x, y float64) {
	main, ok := s.Main()
	if !ok {
		return
	}
	if main.WalkpathPoint == "" {
		main.PrepareDirectMove(x, y)
		main.NextAction()
		return
	}

	dest, ok := s.graph.ClosestReachable(main.WalkpathPoint, x, y)
	if !ok {
		log.Printf("scene %s: no point reachable from %s", s.name, main.WalkpathPoint)
		return
	}
	if f, ok := s.script.(MoveFilter); ok {
		if dest, ok = f.FilterMove(s, dest); !ok {
			return
		}
	}
	if err := s.walk(main, dest, nil); err != nil {
		log.Printf("scene %s: %v", s.name, err)
	}
}

// MoveMain walks the main actor to a walkpath point without asking the
// script's move filter
func (s *Scene) MoveMain(point string) error {
	return s.WalkActor(entity.MainActorID, point)
}

// WalkActor walks any actor along the walkpath. Arrival fires
// walk_path_completed to the script.
func (s *Scene) WalkActor(id, point string) error {
	a, ok := s.Actor(id)
	if !ok {
		return fmt.Errorf("scene %s: unknown actor %q", s.name, id)
	}
	return s.walk(a, point, nil)
}

func (s *Scene) walk(a *entity.Actor, point string, callback func(entity.Event)) error {
	if err := a.PrepareWalkpathMove(s.graph, point, callback); err != nil {
		return fmt.Errorf("walk %s to %s: %w", a.ID, point, err)
	}
	a.NextAction()
	return nil
}

// CameraSequence pans the camera through named camera points at speed
// pixels per second, optionally back to where it started. Following the
// main actor resumes when the sequence ends.
func (s *Scene) CameraSequence(points []string, speed float64, returnToStart bool) error {
	if speed <= 0 {
		speed = s.world.Config.Walk.CameraSpeed
	}
	targets := make([][2]float64, 0, len(points)+1)
	for _, p := range points {
		xy, ok := s.info.CameraPoints[p]
		if !ok {
			return fmt.Errorf("scene %s: %q: %w", s.name, p, ErrUnknownCameraPoint)
		}
		targets = append(targets, xy)
	}
	if returnToStart {
		targets = append(targets, [2]float64{s.camera.X, s.camera.Y})
	}
	for _, xy := range targets {
		s.camera.Actions.Append(s.camera.moveStep(s.tweens, xy[0], xy[1], speed))
	}
	s.camera.Actions.Advance()
	return nil
}

// AddActor places a new instance of the named actor definition with id
// name_N and returns it
func (s *Scene) AddActor(name string, rec entity.Record) (*entity.Actor, error) {
	def, err := s.world.Scenes.Definition(name)
	if err != nil {
		return nil, err
	}
	if rec.WalkpathPoint != "" {
		if _, ok := s.graph.Point(rec.WalkpathPoint); !ok {
			return nil, fmt.Errorf("scene %s: %q: %w", s.name, rec.WalkpathPoint, walkpath.ErrUnknownPoint)
		}
	}
	rec.Name = name
	id := entity.NextID(name, func(id string) bool {
		_, inScene := s.actors[id]
		return inScene || s.world.Inventory.Has(id)
	})
	a := s.place(id, def, rec)
	s.resetOrder()
	return a, nil
}

// RemoveActor drops an actor and its pending actions
func (s *Scene) RemoveActor(id string) bool {
	a, ok := s.actors[id]
	if !ok {
		return false
	}
	a.Actions.Clear()
	delete(s.actors, id)
	s.resetOrder()
	return true
}

// StartConversation runs a script in the foreground, blocking player moves
// until it ends
func (s *Scene) StartConversation(name string) error {
	if err := s.convo.Begin(name); err != nil {
		log.Printf("scene %s: conversation %s: %v", s.name, name, err)
		return err
	}
	return nil
}

// StartBackgroundConversation runs a script alongside everything else
func (s *Scene) StartBackgroundConversation(name string) error {
	c := convo.New(s, s.convoOptions(true))
	if err := c.Begin(name); err != nil {
		log.Printf("scene %s: background conversation %s: %v", s.name, name, err)
		return err
	}
	if c.Active() {
		s.background = append(s.background, c)
	}
	return nil
}

// BackgroundConversations returns the running background conversations
func (s *Scene) BackgroundConversations() []*convo.Conversation {
	return append([]*convo.Conversation(nil), s.background...)
}

// BackgroundConversationRunning reports whether a background conversation
// of that name is running
func (s *Scene) BackgroundConversationRunning(name string) bool {
	for _, c := range s.background {
		if c.Active() && c.Name() == name {
			return true
		}
	}
	return false
}

// StopBackgroundConversation ends every background conversation of that
// name and returns how many were stopped
func (s *Scene) StopBackgroundConversation(name string) int {
	n := 0
	for _, c := range s.background {
		if c.Active() && c.Name() == name {
			c.Stop()
			n++
		}
	}
	s.pruneBackground()
	return n
}

// RequestTransition asks for the named scene to replace this one at the
// end of the current update
func (s *Scene) RequestTransition(name string) {
	s.transition = name
}

func (s *Scene) leave() (scene.Scene, error) {
	next := s.transition
	s.transition = ""
	if h, ok := s.script.(TransitionHandler); ok {
		h.Leaving(s, next)
	}
	s.world.Visited[s.name] = s.Serialize()

	ns, err := New(s.world, next)
	if err != nil {
		return nil, err
	}
	return ns, nil
}

// Serialize writes the scene back in its description format
func (s *Scene) Serialize() *config.SceneInfo {
	points, edges := s.graph.Info()
	info := &config.SceneInfo{
		Environment:  s.info.Environment,
		Script:       s.info.Script,
		Background:   s.info.Background,
		Actors:       make(map[string]config.ActorPlacement, len(s.actors)),
		Walkpath:     config.WalkpathConfig{Points: points, Edges: edges},
		CameraPoints: make(map[string][2]float64, len(s.info.CameraPoints)),
	}
	for id, a := range s.actors {
		info.Actors[id] = system.Placement(a.Serialize())
	}
	for name, xy := range s.info.CameraPoints {
		info.CameraPoints[name] = xy
	}
	return info
}

func (s *Scene) saveGame() {
	filename := s.world.SavePath
	if filename == "" {
		filename = save.GenerateFilename()
	}
	d := s.world.Snapshot(s)
	if err := d.Save(filename); err != nil {
		log.Printf("Failed to save game: %v", err)
	} else {
		log.Printf("Game saved: %s (scene %s)", filename, s.name)
	}
}

// OnEnter is called when entering this scene
func (s *Scene) OnEnter() {
	// Scene is already initialized in New
}

// OnExit stops every conversation and pending action
func (s *Scene) OnExit() {
	s.exiting = true
	s.convo.Stop()
	for _, c := range s.background {
		c.Stop()
	}
	s.background = nil
	for _, id := range s.ids {
		s.actors[id].Actions.Clear()
	}
	s.camera.Actions.Clear()
	s.tweens.Clear()
	s.clock.Clear()
}

// AddInterpolator implements entity.Stage
func (s *Scene) AddInterpolator(ip *tween.Interpolator) tween.ID {
	return s.tweens.Add(ip)
}

// CancelInterpolator implements entity.Stage
func (s *Scene) CancelInterpolator(id tween.ID) {
	s.tweens.Cancel(id)
}

// FireEvent implements entity.Stage
func (s *Scene) FireEvent(ev entity.Event) {
	if s.exiting {
		return
	}
	s.script.HandleEvent(s, ev)
}

package convo

import (
	"fmt"
	"log"
	"sort"

	"github.com/younwookim/adventure/internal/application/state"
	"github.com/younwookim/adventure/internal/application/system"
	"github.com/younwookim/adventure/internal/domain/entity"
)

// Sound cues played by inventory commands
const (
	SoundGive = "give"
	SoundTake = "take"
)

// Host is the scene a conversation runs in
type Host interface {
	LoadScript(name string) (*Script, error)

	Actor(id string) (*entity.Actor, bool)
	Globals() *state.Vars
	Inventory() *entity.Inventory
	// NewItem creates an actor that is not placed in the scene
	NewItem(name, id string) (*entity.Actor, error)

	HasBehavior(name string) bool
	InvokeBehavior(a *entity.Actor, name string) error
	// WalkTo moves an actor along the walkpath and calls done on arrival
	WalkTo(a *entity.Actor, point string, done func()) error

	PlaySound(cue string)
	PlaySpeakingSound(a *entity.Actor)

	ScheduleOnce(delay float64, fn func()) system.TimerID
	Unschedule(id system.TimerID) bool

	// ConversationEnded is called once for every script that started, with
	// the error that aborted it if any
	ConversationEnded(c *Conversation, name string, err error)
}

// Pacing controls speech timing and layout
type Pacing struct {
	SecondsPerChar   float64
	MinSpeechSeconds float64
	WrapColumns      int
}

// DefaultPacing returns the stock timing
func DefaultPacing() Pacing {
	return Pacing{SecondsPerChar: 0.05, MinSpeechSeconds: 3.0, WrapColumns: 47}
}

// Waiting is what an active conversation is paused on
type Waiting int

const (
	WaitNone Waiting = iota
	WaitSpeech
	WaitChoice
	WaitWalk
)

// String returns the string representation of the waiting state
func (w Waiting) String() string {
	switch w {
	case WaitNone:
		return "None"
	case WaitSpeech:
		return "Speech"
	case WaitChoice:
		return "Choice"
	case WaitWalk:
		return "Walk"
	default:
		return "Unknown"
	}
}

// frame is a position in a line list, pushed when a choice branch starts
type frame struct {
	lines []Line
	pos   int
}

// Conversation interprets one script at a time
type Conversation struct {
	host       Host
	pacing     Pacing
	palette    *Palette
	background bool

	name   string
	script *Script
	locals *state.Vars
	atRest map[string]string
	speak  map[string]string

	lines   []Line
	pos     int
	returns []frame

	waiting  Waiting
	timer    system.TimerID
	bubble   *Bubble
	choice   []*Option
	hidden   map[*Option]bool
	sessions uint64
}

// Options configures a conversation
type Options struct {
	Pacing     Pacing
	Palette    *Palette
	Background bool
}

// New creates an inactive conversation
func New(host Host, opts Options) *Conversation {
	if opts.Pacing == (Pacing{}) {
		opts.Pacing = DefaultPacing()
	}
	if opts.Palette == nil {
		opts.Palette = NewPalette()
	}
	return &Conversation{
		host:       host,
		pacing:     opts.Pacing,
		palette:    opts.Palette,
		background: opts.Background,
	}
}

// Active reports whether a script is running
func (c *Conversation) Active() bool {
	return c.script != nil
}

// Name returns the running script's name, empty when inactive
func (c *Conversation) Name() string {
	return c.name
}

// Background reports whether this conversation leaves player input alone
func (c *Conversation) Background() bool {
	return c.background
}

// Waiting returns what the conversation is paused on
func (c *Conversation) Waiting() Waiting {
	return c.waiting
}

// Locals returns the conversation variables, nil when inactive
func (c *Conversation) Locals() *state.Vars {
	return c.locals
}

// Bubble returns the speech bubble on screen
func (c *Conversation) Bubble() (*Bubble, bool) {
	return c.bubble, c.bubble != nil
}

// PendingChoice returns the option texts of the open menu
func (c *Conversation) PendingChoice() ([]string, bool) {
	if c.waiting != WaitChoice {
		return nil, false
	}
	texts := make([]string, len(c.choice))
	for i, opt := range c.choice {
		texts[i] = opt.Text
	}
	return texts, true
}

// Begin starts the named script from its start label. A running script
// is stopped first.
func (c *Conversation) Begin(name string) error {
	if c.Active() {
		c.Stop()
	}

	script, err := c.host.LoadScript(name)
	if err != nil {
		return err
	}
	for _, b := range script.Behaviors() {
		if !c.host.HasBehavior(b) {
			return fmt.Errorf("convo %s: %q: %w", name, b, ErrUnknownBehavior)
		}
	}

	c.sessions++
	c.name = name
	c.script = script
	c.locals = state.NewVars(nil)
	c.locals.Update(script.Variables)
	c.atRest = copyMap(script.AtRest)
	c.speak = copyMap(script.Speaking)
	c.lines = script.Labels[StartLabel]
	c.pos = 0
	c.returns = nil
	c.hidden = make(map[*Option]bool)
	c.choice = nil
	c.bubble = nil
	c.waiting = WaitNone

	if script.StandAt != "" {
		if main, ok := c.host.Actor(entity.MainActorID); ok {
			session := c.sessions
			c.waiting = WaitWalk
			err := c.host.WalkTo(main, script.StandAt, func() {
				if c.sessions != session || c.waiting != WaitWalk {
					return
				}
				c.waiting = WaitNone
				c.resetAtRest("")
				if err := c.run(); err != nil {
					log.Printf("%v", err)
				}
			})
			if err == nil {
				return nil
			}
			log.Printf("convo %s: stand_at %q: %v", name, script.StandAt, err)
			c.waiting = WaitNone
		}
	}

	c.resetAtRest("")
	return c.run()
}

// Advance runs the next line now. A pending speech timer is cancelled.
// Nothing happens while a choice menu or a stand_at walk is pending.
func (c *Conversation) Advance() error {
	if !c.Active() {
		return ErrNotActive
	}
	switch c.waiting {
	case WaitChoice, WaitWalk:
		return nil
	case WaitSpeech:
		c.cancelTimer()
		c.waiting = WaitNone
	}
	return c.run()
}

// Skip cuts a spoken line short. It reports whether a line was skipped.
func (c *Conversation) Skip() bool {
	if !c.Active() || c.waiting != WaitSpeech {
		return false
	}
	if err := c.Advance(); err != nil {
		log.Printf("%v", err)
	}
	return true
}

// Choose runs the i-th visible option of the open menu
func (c *Conversation) Choose(i int) error {
	if !c.Active() || c.waiting != WaitChoice {
		return ErrNotActive
	}
	if i < 0 || i >= len(c.choice) {
		return fmt.Errorf("convo %s: choice %d of %d: %w", c.name, i, len(c.choice), ErrMalformed)
	}
	opt := c.choice[i]
	if opt.HideAfterUse {
		c.hidden[opt] = true
	}
	c.choice = nil
	c.waiting = WaitNone

	// The enclosing list resumes after the choice line once the branch runs out.
	c.returns = append(c.returns, frame{lines: c.lines, pos: c.pos})
	c.lines = opt.Branch
	c.pos = 0
	return c.run()
}

// Stop ends the conversation and puts mapped actors at rest
func (c *Conversation) Stop() {
	c.finish(nil)
}

func (c *Conversation) finish(cause error) {
	if !c.Active() {
		return
	}
	c.cancelTimer()
	c.bubble = nil
	c.choice = nil
	c.lines = nil
	c.returns = nil
	c.waiting = WaitNone
	c.resetAtRest("")

	// Clear state before notifying so the host may begin another script.
	name := c.name
	c.name = ""
	c.script = nil
	c.locals = nil
	c.atRest = nil
	c.speak = nil
	c.host.ConversationEnded(c, name, cause)
}

// run executes lines until the conversation waits or ends
func (c *Conversation) run() error {
	for c.Active() && c.waiting == WaitNone {
		if c.pos >= len(c.lines) {
			if n := len(c.returns); n > 0 {
				top := c.returns[n-1]
				c.returns = c.returns[:n-1]
				c.lines, c.pos = top.lines, top.pos
				continue
			}
			c.Stop()
			return nil
		}

		line := c.lines[c.pos]
		c.pos++
		cont, err := c.execute(line)
		if err != nil {
			err = fmt.Errorf("convo %s: %w", c.name, err)
			c.finish(err)
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}

// execute applies one line. It reports whether the next line should
// run immediately.
func (c *Conversation) execute(line Line) (bool, error) {
	session := c.sessions
	next := true
	for _, cmd := range line.Commands {
		cont, err := c.command(cmd)
		if err != nil {
			return false, err
		}
		if !c.Active() || c.sessions != session {
			// goto exit, or the end notification began another script
			return false, nil
		}
		next = next && cont
	}

	for _, cue := range line.Cues {
		a, ok := c.host.Actor(cue.Actor)
		if !ok {
			log.Printf("convo %s: unknown actor %q", c.name, cue.Actor)
			continue
		}
		c.resetAtRest(cue.Actor)
		if cue.Action != "" {
			if err := c.host.InvokeBehavior(a, cue.Action); err != nil {
				return false, err
			}
			continue
		}
		c.say(cue.Actor, a, cue.Text)
		next = false
	}
	return next, nil
}

func (c *Conversation) command(cmd Command) (bool, error) {
	switch cmd.Kind {
	case CmdGoto:
		return c.gotoLabel(cmd.Text)

	case CmdGive:
		id := cmd.Give.ID
		if id == "" {
			id = entity.NextID(cmd.Give.Name, func(id string) bool {
				_, inScene := c.host.Actor(id)
				return inScene || c.host.Inventory().Has(id)
			})
		}
		item, err := c.host.NewItem(cmd.Give.Name, id)
		if err != nil {
			return false, fmt.Errorf("give %s: %w", cmd.Give.Name, err)
		}
		c.host.Inventory().Put(item)
		c.host.PlaySound(SoundGive)
		return true, nil

	case CmdTake:
		if _, ok := c.host.Inventory().Take(cmd.Text); !ok {
			log.Printf("convo %s: take %q: not in inventory", c.name, cmd.Text)
		}
		c.host.PlaySound(SoundTake)
		return true, nil

	case CmdUpdateAnimations:
		for k, v := range cmd.Anim.AtRest {
			c.atRest[k] = v
		}
		for k, v := range cmd.Anim.Speaking {
			c.speak[k] = v
		}
		c.resetAtRest("")
		return true, nil

	case CmdUpdateLocals:
		c.locals.Update(cmd.Vars)
		return true, nil

	case CmdUpdateGlobals:
		c.host.Globals().Update(cmd.Vars)
		return true, nil

	case CmdPlaySound:
		c.host.PlaySound(cmd.Text)
		return true, nil

	case CmdChoice:
		return c.openChoice(cmd.Choice), nil
	}
	return true, nil
}

func (c *Conversation) gotoLabel(label string) (bool, error) {
	if label == ExitLabel {
		c.Stop()
		return false, nil
	}
	lines, ok := c.script.Labels[label]
	if !ok {
		return false, fmt.Errorf("goto %q: %w", label, ErrUnknownLabel)
	}
	c.lines = lines
	c.pos = 0
	c.returns = nil
	return true, nil
}

// openChoice shows the options whose requirements hold. With nothing to
// show the conversation carries on past the menu.
func (c *Conversation) openChoice(ch *Choice) bool {
	c.bubble = nil
	var visible []*Option
	for _, opt := range ch.Options {
		if c.hidden[opt] || !c.satisfied(opt.Require) {
			continue
		}
		visible = append(visible, opt)
	}
	if len(visible) == 0 {
		log.Printf("convo %s: choice has no available options", c.name)
		return true
	}
	c.choice = visible
	c.waiting = WaitChoice
	return false
}

// satisfied checks every required name against locals, globals and the
// inventory. An unset name and a false one are treated the same.
func (c *Conversation) satisfied(require []string) bool {
	for _, r := range require {
		if c.locals.Truthy(r) {
			continue
		}
		if c.host.Globals().Truthy(r) {
			continue
		}
		if c.host.Inventory().Has(r) {
			continue
		}
		return false
	}
	return true
}

// say shows a spoken line and schedules the next one
func (c *Conversation) say(id string, a *entity.Actor, text string) {
	if anim, ok := c.speak[id]; ok {
		if !a.UpdateState(anim) {
			log.Printf("convo %s: %s has no animation %q", c.name, id, anim)
		}
	}
	c.bubble = layoutBubble(id, a, text, c.pacing.WrapColumns, c.palette.Color(id))
	if !c.background {
		c.host.PlaySpeakingSound(a)
	}

	// A menu opened on the same line stays until an option is picked.
	if c.waiting == WaitChoice {
		return
	}
	c.cancelTimer()
	session := c.sessions
	c.waiting = WaitSpeech
	c.timer = c.host.ScheduleOnce(c.speechDuration(text), func() {
		if c.sessions != session {
			return
		}
		c.timer = 0
		c.waiting = WaitNone
		if err := c.run(); err != nil {
			log.Printf("%v", err)
		}
	})
}

// speechDuration is proportional to length with a floor
func (c *Conversation) speechDuration(text string) float64 {
	d := float64(len([]rune(text))) * c.pacing.SecondsPerChar
	if d < c.pacing.MinSpeechSeconds {
		d = c.pacing.MinSpeechSeconds
	}
	return d
}

// SpeechDuration exposes the pacing rule for a line of text
func (c *Conversation) SpeechDuration(text string) float64 {
	return c.speechDuration(text)
}

func (c *Conversation) cancelTimer() {
	if c.timer != 0 {
		c.host.Unschedule(c.timer)
		c.timer = 0
	}
}

// resetAtRest puts every mapped actor except one into its resting animation
func (c *Conversation) resetAtRest(except string) {
	ids := make([]string, 0, len(c.atRest))
	for id := range c.atRest {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if id == except {
			continue
		}
		a, ok := c.host.Actor(id)
		if !ok {
			log.Printf("convo %s: unknown actor %q", c.name, id)
			continue
		}
		if !a.UpdateState(c.atRest[id]) {
			log.Printf("convo %s: %s has no animation %q", c.name, id, c.atRest[id])
		}
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

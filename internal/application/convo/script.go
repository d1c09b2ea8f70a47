// Package convo runs cutscene scripts: spoken lines, actor behaviors,
// variable updates and choice menus.
package convo

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingKey is returned when a script lacks a required top-level key.
	ErrMissingKey = errors.New("convo: missing required key")
	// ErrUnknownLabel is returned when goto names a label the script does not define.
	ErrUnknownLabel = errors.New("convo: unknown label")
	// ErrUnknownBehavior is returned when an actor cue names an unregistered behavior.
	ErrUnknownBehavior = errors.New("convo: unknown behavior")
	// ErrNotActive is returned when an operation needs a running conversation.
	ErrNotActive = errors.New("convo: not active")
	// ErrMalformed is returned for commands with the wrong shape.
	ErrMalformed = errors.New("convo: malformed script")
)

// ExitLabel ends the conversation when used with goto
const ExitLabel = "exit"

// StartLabel is the entry point of every script
const StartLabel = "start"

var requiredKeys = []string{"at_rest", "speaking", "variables", StartLabel}

// CommandKind names a control command
type CommandKind string

const (
	CmdGoto             CommandKind = "goto"
	CmdGive             CommandKind = "give"
	CmdTake             CommandKind = "take"
	CmdUpdateAnimations CommandKind = "update_animations"
	CmdUpdateLocals     CommandKind = "update_locals"
	CmdUpdateGlobals    CommandKind = "update_globals"
	CmdPlaySound        CommandKind = "play_sound"
	CmdChoice           CommandKind = "choice"
)

var commandKinds = map[string]CommandKind{
	string(CmdGoto):             CmdGoto,
	string(CmdGive):             CmdGive,
	string(CmdTake):             CmdTake,
	string(CmdUpdateAnimations): CmdUpdateAnimations,
	string(CmdUpdateLocals):     CmdUpdateLocals,
	string(CmdUpdateGlobals):    CmdUpdateGlobals,
	string(CmdPlaySound):        CmdPlaySound,
	string(CmdChoice):           CmdChoice,
}

// Choice option tags, stripped from the option when parsed
const (
	tagRequire      = "require"
	tagHideAfterUse = "hide_after_use"
)

// give: name (id)
var giveWithID = regexp.MustCompile(`^(?P<name>[^(]*\S)\s+\((?P<id>[^)]+)\)$`)

// Script is a parsed conversation file
type Script struct {
	Name      string
	AtRest    map[string]string
	Speaking  map[string]string
	Variables map[string]any
	// StandAt is a walkpath point the main actor walks to before the first line
	StandAt string
	Labels  map[string][]Line
}

// Line is one command mapping. Commands keep file order and run before cues.
type Line struct {
	Commands []Command
	Cues     []Cue
}

// Command is a control command with its decoded argument
type Command struct {
	Kind CommandKind
	// Text holds the argument of goto, take and play_sound
	Text string
	Give Give
	Vars map[string]any
	Anim AnimationUpdate
	// Choice is set for choice commands
	Choice *Choice
}

// Give is the argument of a give command. An empty ID asks for name_N.
type Give struct {
	Name string
	ID   string
}

// AnimationUpdate is the argument of update_animations
type AnimationUpdate struct {
	AtRest   map[string]string `mapstructure:"at_rest"`
	Speaking map[string]string `mapstructure:"speaking"`
}

// Cue is an actor key: a spoken line or a named behavior
type Cue struct {
	Actor  string
	Text   string
	Action string
}

// actionCue is the mapping form of a cue
type actionCue struct {
	Action string `mapstructure:"action"`
}

// Choice is a menu of options
type Choice struct {
	Options []*Option
}

// Option is one menu entry with its branch
type Option struct {
	Text         string
	Require      []string
	HideAfterUse bool
	Branch       []Line
}

// optionTags are the option-only keys of a branch line
type optionTags struct {
	Require      string `mapstructure:"require"`
	HideAfterUse bool   `mapstructure:"hide_after_use"`
}

// Parse decodes and validates a conversation script
func Parse(name string, data []byte) (*Script, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("convo %s: %w", name, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("convo %s: top level must be a mapping: %w", name, ErrMalformed)
	}
	root := doc.Content[0]

	top := make(map[string]*yaml.Node, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		top[root.Content[i].Value] = resolve(root.Content[i+1])
	}
	for _, key := range requiredKeys {
		if _, ok := top[key]; !ok {
			return nil, fmt.Errorf("convo %s: %q: %w", name, key, ErrMissingKey)
		}
	}

	s := &Script{
		Name:      name,
		AtRest:    make(map[string]string),
		Speaking:  make(map[string]string),
		Variables: make(map[string]any),
		Labels:    make(map[string][]Line),
	}
	if err := decodeOptional(top["at_rest"], &s.AtRest); err != nil {
		return nil, fmt.Errorf("convo %s: at_rest: %w", name, err)
	}
	if err := decodeOptional(top["speaking"], &s.Speaking); err != nil {
		return nil, fmt.Errorf("convo %s: speaking: %w", name, err)
	}
	if err := decodeOptional(top["variables"], &s.Variables); err != nil {
		return nil, fmt.Errorf("convo %s: variables: %w", name, err)
	}
	if n, ok := top["stand_at"]; ok {
		s.StandAt = n.Value
	}

	for key, node := range top {
		if node.Kind != yaml.SequenceNode {
			continue
		}
		lines, err := parseLines(node)
		if err != nil {
			return nil, fmt.Errorf("convo %s: label %q: %w", name, key, err)
		}
		s.Labels[key] = lines
	}
	if _, ok := s.Labels[StartLabel]; !ok {
		return nil, fmt.Errorf("convo %s: %q must be a list: %w", name, StartLabel, ErrMalformed)
	}

	if err := s.validateLabels(); err != nil {
		return nil, fmt.Errorf("convo %s: %w", name, err)
	}
	return s, nil
}

// resolve follows aliases to the anchored node
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// decodeOptional decodes a node, treating null and {} the same
func decodeOptional(n *yaml.Node, out any) error {
	if n == nil || n.Tag == "!!null" {
		return nil
	}
	return n.Decode(out)
}

func parseLines(seq *yaml.Node) ([]Line, error) {
	lines := make([]Line, 0, len(seq.Content))
	for _, item := range seq.Content {
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: must be a mapping: %w", item.Line, ErrMalformed)
		}
		line, err := parseLine(item, false)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// parseLine reads a command mapping. Option tags are skipped when allowTags is set.
func parseLine(m *yaml.Node, allowTags bool) (Line, error) {
	var line Line
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i].Value, resolve(m.Content[i+1])
		if allowTags && (key == tagRequire || key == tagHideAfterUse) {
			continue
		}
		kind, isCommand := commandKinds[key]
		if !isCommand {
			cue, err := parseCue(key, val)
			if err != nil {
				return Line{}, err
			}
			line.Cues = append(line.Cues, cue)
			continue
		}
		cmd, err := parseCommand(kind, val)
		if err != nil {
			return Line{}, fmt.Errorf("line %d: %s: %w", val.Line, key, err)
		}
		line.Commands = append(line.Commands, cmd)
	}
	return line, nil
}

func parseCue(actor string, val *yaml.Node) (Cue, error) {
	switch val.Kind {
	case yaml.ScalarNode:
		return Cue{Actor: actor, Text: val.Value}, nil
	case yaml.MappingNode:
		var raw map[string]any
		if err := val.Decode(&raw); err != nil {
			return Cue{}, err
		}
		var ac actionCue
		if err := strictDecode(raw, &ac); err != nil {
			return Cue{}, fmt.Errorf("line %d: actor %q: %w", val.Line, actor, err)
		}
		if ac.Action == "" {
			return Cue{}, fmt.Errorf("line %d: actor %q: mapping needs an action: %w", val.Line, actor, ErrMalformed)
		}
		return Cue{Actor: actor, Action: ac.Action}, nil
	default:
		return Cue{}, fmt.Errorf("line %d: actor %q: cue must be text or a mapping: %w", val.Line, actor, ErrMalformed)
	}
}

func parseCommand(kind CommandKind, val *yaml.Node) (Command, error) {
	cmd := Command{Kind: kind}
	switch kind {
	case CmdGoto, CmdTake, CmdPlaySound:
		if val.Kind != yaml.ScalarNode {
			return cmd, fmt.Errorf("argument must be text: %w", ErrMalformed)
		}
		cmd.Text = strings.TrimSpace(val.Value)

	case CmdGive:
		if val.Kind != yaml.ScalarNode {
			return cmd, fmt.Errorf("argument must be text: %w", ErrMalformed)
		}
		cmd.Give = parseGive(val.Value)

	case CmdUpdateLocals, CmdUpdateGlobals:
		cmd.Vars = make(map[string]any)
		if err := val.Decode(&cmd.Vars); err != nil {
			return cmd, err
		}

	case CmdUpdateAnimations:
		var raw map[string]any
		if err := val.Decode(&raw); err != nil {
			return cmd, err
		}
		if err := strictDecode(raw, &cmd.Anim); err != nil {
			return cmd, err
		}

	case CmdChoice:
		choice, err := parseChoice(val)
		if err != nil {
			return cmd, err
		}
		cmd.Choice = choice
	}
	return cmd, nil
}

func parseGive(arg string) Give {
	arg = strings.TrimSpace(arg)
	if m := giveWithID.FindStringSubmatch(arg); m != nil {
		return Give{
			Name: strings.TrimSpace(m[giveWithID.SubexpIndex("name")]),
			ID:   strings.TrimSpace(m[giveWithID.SubexpIndex("id")]),
		}
	}
	return Give{Name: arg}
}

// parseChoice reads the option mapping. An option is either a single
// command mapping (a one-line branch) or a list of lines; in the list form
// the option tags may appear in the first line.
func parseChoice(val *yaml.Node) (*Choice, error) {
	if val.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("options must be a mapping: %w", ErrMalformed)
	}
	choice := &Choice{}
	for i := 0; i+1 < len(val.Content); i += 2 {
		text, body := val.Content[i].Value, resolve(val.Content[i+1])
		opt := &Option{Text: text}

		var tagNode *yaml.Node
		switch body.Kind {
		case yaml.MappingNode:
			tagNode = body
			line, err := parseLine(body, true)
			if err != nil {
				return nil, fmt.Errorf("option %q: %w", text, err)
			}
			opt.Branch = []Line{line}
		case yaml.SequenceNode:
			for j, item := range body.Content {
				item = resolve(item)
				if item.Kind != yaml.MappingNode {
					return nil, fmt.Errorf("option %q: line %d must be a mapping: %w", text, item.Line, ErrMalformed)
				}
				if j == 0 {
					tagNode = item
				}
				line, err := parseLine(item, j == 0)
				if err != nil {
					return nil, fmt.Errorf("option %q: %w", text, err)
				}
				opt.Branch = append(opt.Branch, line)
			}
		case yaml.ScalarNode:
			// An empty option just closes the menu.
			if body.Tag != "!!null" && body.Value != "" {
				return nil, fmt.Errorf("option %q: body must be a mapping or a list: %w", text, ErrMalformed)
			}
		}

		if tagNode != nil {
			tags, err := decodeTags(tagNode)
			if err != nil {
				return nil, fmt.Errorf("option %q: %w", text, err)
			}
			opt.Require = splitRequire(tags.Require)
			opt.HideAfterUse = tags.HideAfterUse
		}
		choice.Options = append(choice.Options, opt)
	}
	return choice, nil
}

func decodeTags(m *yaml.Node) (optionTags, error) {
	var raw map[string]any
	if err := m.Decode(&raw); err != nil {
		return optionTags{}, err
	}
	filtered := make(map[string]any, 2)
	for _, k := range []string{tagRequire, tagHideAfterUse} {
		if v, ok := raw[k]; ok {
			filtered[k] = v
		}
	}
	var tags optionTags
	err := mapstructure.WeakDecode(filtered, &tags)
	return tags, err
}

func splitRequire(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// strictDecode rejects keys the target struct does not know
func strictDecode(in any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// validateLabels checks that every goto, including those in choice
// branches, names a label of this script
func (s *Script) validateLabels() error {
	names := make([]string, 0, len(s.Labels))
	for name := range s.Labels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.checkLines(s.Labels[name]); err != nil {
			return fmt.Errorf("label %q: %w", name, err)
		}
	}
	return nil
}

func (s *Script) checkLines(lines []Line) error {
	for _, line := range lines {
		for _, cmd := range line.Commands {
			switch cmd.Kind {
			case CmdGoto:
				if cmd.Text == ExitLabel {
					continue
				}
				if _, ok := s.Labels[cmd.Text]; !ok {
					return fmt.Errorf("goto %q: %w", cmd.Text, ErrUnknownLabel)
				}
			case CmdChoice:
				for _, opt := range cmd.Choice.Options {
					if err := s.checkLines(opt.Branch); err != nil {
						return fmt.Errorf("option %q: %w", opt.Text, err)
					}
				}
			}
		}
	}
	return nil
}

// Behaviors returns every behavior name used by actor cues, sorted
func (s *Script) Behaviors() []string {
	seen := make(map[string]struct{})
	var walk func(lines []Line)
	walk = func(lines []Line) {
		for _, line := range lines {
			for _, cue := range line.Cues {
				if cue.Action != "" {
					seen[cue.Action] = struct{}{}
				}
			}
			for _, cmd := range line.Commands {
				if cmd.Choice != nil {
					for _, opt := range cmd.Choice.Options {
						walk(opt.Branch)
					}
				}
			}
		}
	}
	for _, lines := range s.Labels {
		walk(lines)
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

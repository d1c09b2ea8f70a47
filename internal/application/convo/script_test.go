package convo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuScript = `
at_rest:
  main: stand_front
speaking:
  main: talk_right
variables:
  asked: false
stand_at: kiosk
start:
  - goto: menu
menu:
  - choice:
      Ask:
        hide_after_use: true
        update_locals:
          asked: true
        goto: menu
      Tell me more:
        - require: asked, badge
          sam: More.
        - sam: Even more.
      Leave:
  - goto: menu
`

func TestParse_Structure(t *testing.T) {
	s, err := Parse("menu", []byte(menuScript))
	require.NoError(t, err)

	assert.Equal(t, "kiosk", s.StandAt)
	assert.Equal(t, map[string]string{"main": "stand_front"}, s.AtRest)
	assert.Equal(t, false, s.Variables["asked"])
	require.Contains(t, s.Labels, "menu")

	menu := s.Labels["menu"]
	require.Len(t, menu, 2)
	require.Len(t, menu[0].Commands, 1)
	ch := menu[0].Commands[0].Choice
	require.NotNil(t, ch)
	require.Len(t, ch.Options, 3)

	ask := ch.Options[0]
	assert.Equal(t, "Ask", ask.Text, "options keep file order")
	assert.True(t, ask.HideAfterUse)
	require.Len(t, ask.Branch, 1)
	kinds := []CommandKind{}
	for _, c := range ask.Branch[0].Commands {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []CommandKind{CmdUpdateLocals, CmdGoto}, kinds, "tags are stripped, commands keep order")

	more := ch.Options[1]
	assert.Equal(t, []string{"asked", "badge"}, more.Require)
	require.Len(t, more.Branch, 2)
	assert.Equal(t, []Cue{{Actor: "sam", Text: "More."}}, more.Branch[0].Cues)

	leave := ch.Options[2]
	assert.Empty(t, leave.Branch)
}

func TestParse_MissingRequiredKey(t *testing.T) {
	full := map[string]string{
		"at_rest":   "at_rest: {}\n",
		"speaking":  "speaking: {}\n",
		"variables": "variables: {}\n",
		"start":     "start:\n  - goto: exit\n",
	}

	for _, missing := range requiredKeys {
		t.Run(missing, func(t *testing.T) {
			doc := ""
			for _, key := range requiredKeys {
				if key != missing {
					doc += full[key]
				}
			}
			_, err := Parse("broken", []byte(doc))
			assert.ErrorIs(t, err, ErrMissingKey)
		})
	}
}

func TestParse_UnknownLabel(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"top level", "start:\n  - goto: nowhere\n"},
		{"inside choice", "start:\n  - choice:\n      Go:\n        goto: nowhere\n"},
		{"inside list option", "start:\n  - choice:\n      Go:\n        - sam: hi\n        - goto: nowhere\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "at_rest: {}\nspeaking: {}\nvariables: {}\n" + tt.body
			_, err := Parse("broken", []byte(doc))
			assert.ErrorIs(t, err, ErrUnknownLabel)
		})
	}
}

func TestParse_ExitIsNotALabel(t *testing.T) {
	_, err := Parse("ok", []byte("at_rest: {}\nspeaking: {}\nvariables: {}\nstart:\n  - goto: exit\n"))
	assert.NoError(t, err)
}

const aliasScript = `
at_rest: {}
speaking: {}
variables: {}
bye: &bye
  - sam: Goodbye.
farewell: *bye
start:
  - &hello
    sam: Hello.
  - *hello
  - choice:
      Again: &again
        goto: start
      Once more: *again
      Leave:
        - *hello
        - goto: farewell
`

func TestParse_Aliases(t *testing.T) {
	s, err := Parse("alias", []byte(aliasScript))
	require.NoError(t, err)

	require.Contains(t, s.Labels, "farewell")
	assert.Equal(t, s.Labels["bye"], s.Labels["farewell"])

	start := s.Labels[StartLabel]
	require.Len(t, start, 3)
	assert.Equal(t, []Cue{{Actor: "sam", Text: "Hello."}}, start[0].Cues)
	assert.Equal(t, start[0], start[1])

	opts := start[2].Commands[0].Choice.Options
	require.Len(t, opts, 3)
	assert.Equal(t, opts[0].Branch, opts[1].Branch)
	require.Len(t, opts[2].Branch, 2)
	assert.Equal(t, "sam", opts[2].Branch[0].Cues[0].Actor)
	assert.Equal(t, "farewell", opts[2].Branch[1].Commands[0].Text)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not a mapping", "- just\n- a list\n"},
		{"line is a scalar", "at_rest: {}\nspeaking: {}\nvariables: {}\nstart:\n  - hello\n"},
		{"cue mapping without action", "at_rest: {}\nspeaking: {}\nvariables: {}\nstart:\n  - sam:\n      dance: true\n"},
		{"start is not a list", "at_rest: {}\nspeaking: {}\nvariables: {}\nstart: nope\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("broken", []byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseGive(t *testing.T) {
	tests := []struct {
		arg  string
		want Give
	}{
		{"ticket", Give{Name: "ticket"}},
		{"ticket (golden_ticket)", Give{Name: "ticket", ID: "golden_ticket"}},
		{"old key  ( key_2 )", Give{Name: "old key", ID: "key_2"}},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, parseGive(tt.arg))
		})
	}
}

func TestScript_Behaviors(t *testing.T) {
	doc := `
at_rest: {}
speaking: {}
variables: {}
start:
  - sam:
      action: jump
  - choice:
      Wave:
        main:
          action: face_left
`
	s, err := Parse("b", []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"face_left", "jump"}, s.Behaviors())
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/adventure/internal/application/convo"
	"github.com/younwookim/adventure/internal/application/scene/adventure"
	"github.com/younwookim/adventure/internal/application/system"
)

var demoScenes = []string{"station", "platform"}

func newDemoWorld(t *testing.T) *adventure.World {
	t.Helper()
	loader, err := newLoader("")
	require.NoError(t, err)
	cfg, err := loader.LoadGame()
	require.NoError(t, err)
	return adventure.NewWorld(cfg, loader, system.NopSound{}, demoScripts())
}

func newDemoScene(t *testing.T, w *adventure.World, name string) *adventure.Scene {
	t.Helper()
	s, err := adventure.New(w, name)
	require.NoError(t, err)
	s.SetInputSource(func() system.InputState { return system.InputState{Choice: -1} })
	return s
}

func run(s *adventure.Scene, seconds float64) {
	for elapsed := 0.0; elapsed < seconds; elapsed += 0.05 {
		s.Tick(0.05)
	}
}

func TestEmbeddedConfigs(t *testing.T) {
	w := newDemoWorld(t)
	assert.Equal(t, "Last Train", w.Config.Name)
	assert.Equal(t, "station", w.Config.FirstScene)
	assert.ElementsMatch(t, demoScenes, demoScripts().Names())

	behaviors := adventure.NewBehaviors()
	for _, name := range demoScenes {
		t.Run(name, func(t *testing.T) {
			newDemoScene(t, newDemoWorld(t), name)

			convos, err := w.Loader.ListConvos(name)
			require.NoError(t, err)
			require.NotEmpty(t, convos)
			for _, c := range convos {
				data, err := w.Loader.ReadConvo(name, c)
				require.NoError(t, err)
				sc, err := convo.Parse(c, data)
				require.NoError(t, err, c)
				for _, b := range sc.Behaviors() {
					assert.True(t, behaviors.Has(b), "%s uses %s", c, b)
				}
			}
		})
	}
}

func TestStation_BuyTicket(t *testing.T) {
	w := newDemoWorld(t)
	s := newDemoScene(t, w, "station")
	c := s.Conversation()

	s.ClickWorld(720, 200)
	require.True(t, c.Active())
	assert.Equal(t, "salesman", c.Name())
	assert.Equal(t, convo.WaitWalk, c.Waiting())

	run(s, 3)
	inga, _ := s.Main()
	assert.Equal(t, "kiosk", inga.WalkpathPoint)
	require.Equal(t, convo.WaitSpeech, c.Waiting())

	s.HandleIntent(system.SkipIntent{})
	opts, ok := c.PendingChoice()
	require.True(t, ok)
	assert.Equal(t, []string{"How much is a ticket?", "Never mind."}, opts)

	s.HandleIntent(system.ChooseIntent{Index: 0})
	require.Equal(t, convo.WaitSpeech, c.Waiting())
	s.HandleIntent(system.SkipIntent{})

	opts, ok = c.PendingChoice()
	require.True(t, ok)
	assert.Equal(t, []string{"One ticket, please.", "Never mind."}, opts)

	s.HandleIntent(system.ChooseIntent{Index: 0})
	assert.True(t, w.Inventory.Has("ticket_1"))
	assert.True(t, w.Store.Globals.Truthy(varHasTicket))

	s.HandleIntent(system.SkipIntent{})
	assert.False(t, c.Active())

	s.ClickWorld(720, 200)
	require.True(t, c.Active())
	assert.Equal(t, "thanks", c.Name())
}

func TestStation_GateNeedsTicket(t *testing.T) {
	w := newDemoWorld(t)
	s := newDemoScene(t, w, "station")

	s.ClickWorld(900, 60)
	inga, _ := s.Main()
	assert.Equal(t, "entrance", inga.WalkpathPoint)
	assert.Zero(t, inga.BlockingActions())
	assert.Equal(t, "no_ticket", s.Conversation().Name())
}

func TestStation_BoardTrain(t *testing.T) {
	w := newDemoWorld(t)
	w.Store.Globals.Set(varHasTicket, true)
	s := newDemoScene(t, w, "station")

	s.ClickWorld(900, 60)
	run(s, 4)
	inga, _ := s.Main()
	assert.Equal(t, "gate", inga.WalkpathPoint)

	next, err := s.Update(0)
	require.NoError(t, err)
	p, ok := next.(*adventure.Scene)
	require.True(t, ok)
	assert.Equal(t, "platform", p.Name())
	assert.Len(t, p.BackgroundConversations(), 1)
	_, visited := w.Visited["station"]
	assert.True(t, visited)
}

func TestPlatform_Board(t *testing.T) {
	w := newDemoWorld(t)
	item, err := w.NewItem("ticket", "ticket_1")
	require.NoError(t, err)
	w.Inventory.Put(item)
	s := newDemoScene(t, w, "platform")

	assert.True(t, s.BackgroundConversationRunning("announcer"))
	s.ClickWorld(650, 20)
	run(s, 3)
	assert.False(t, s.BackgroundConversationRunning("announcer"))
	c := s.Conversation()
	require.True(t, c.Active())
	assert.Equal(t, "board", c.Name())

	s.HandleIntent(system.SkipIntent{})
	assert.False(t, c.Active())
	assert.False(t, w.Inventory.Has("ticket_1"))
	assert.True(t, w.Store.Globals.Truthy(varBoarded))
	assert.False(t, s.AcceptsClicks())

	inga, _ := s.Main()
	assert.Equal(t, "edge", inga.WalkpathPoint)
}

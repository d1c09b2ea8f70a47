package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name  string
		taken []string
		want  string
	}{
		{"nothing taken", nil, "ticket_1"},
		{"first taken", []string{"ticket_1"}, "ticket_2"},
		{"gap is reused", []string{"ticket_1", "ticket_3"}, "ticket_2"},
		{"other names ignored", []string{"badge_1"}, "ticket_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := make(map[string]bool)
			for _, id := range tt.taken {
				set[id] = true
			}
			got := NextID("ticket", func(id string) bool { return set[id] })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEventTypes(t *testing.T) {
	assert.Equal(t, EventType("walk_path_completed"), EventWalkPathCompleted)
	assert.Equal(t, EventType("walk_completed"), EventWalkCompleted)
}

func TestInventory(t *testing.T) {
	inv := NewInventory()
	ticket := &Actor{ID: "ticket_1", Name: "ticket"}
	badge := &Actor{ID: "badge", Name: "badge"}

	inv.Put(ticket)
	inv.Put(badge)
	assert.True(t, inv.Has("ticket_1"))
	assert.Equal(t, []string{"ticket_1", "badge"}, inv.IDs())

	got, ok := inv.Take("ticket_1")
	assert.True(t, ok)
	assert.Same(t, ticket, got)
	assert.False(t, inv.Has("ticket_1"))
	assert.Equal(t, 1, inv.Len())

	_, ok = inv.Take("ticket_1")
	assert.False(t, ok, "taking twice fails")

	inv.Put(badge)
	assert.Equal(t, []string{"badge"}, inv.IDs(), "re-putting does not duplicate")
}

package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	hub := NewHub("test", nil, HubOptions{})
	r := NewRegistry()

	a1 := NewClient(hub, nil, "alice")
	a2 := NewClient(hub, nil, "alice")
	b := NewClient(hub, nil, "bob")

	r.Register(a1)
	r.Register(a2)
	r.Register(b)
	assert.Equal(t, 3, r.Len(), "connections of one user are tracked separately")
	assert.Equal(t, []string{"alice", "bob"}, r.ActiveUserIDs())

	assert.True(t, r.Unregister(a1))
	assert.False(t, r.Unregister(a1), "second unregister is a no-op")
	assert.False(t, r.Contains(a1))
	assert.True(t, r.Contains(a2))
	assert.Equal(t, []string{"alice", "bob"}, r.ActiveUserIDs())

	r.Unregister(a2)
	assert.Equal(t, []string{"bob"}, r.ActiveUserIDs())
	assert.Len(t, r.Snapshot(), 1)
}

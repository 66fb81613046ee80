package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteroom-server/core"
)

// Walks the full collaboration sequence: two clients editing one room, a
// third joining after the document has content, with a second room proving
// isolation throughout.
func TestCollaborationScenario(t *testing.T) {
	reg := NewRegistry()

	// A joins an empty room: no document yet, member list is exactly {A}.
	members := reg.Join("r1", "A")
	require.Equal(t, []core.MemberID{"A"}, members)
	_, set := reg.Document("r1")
	assert.False(t, set, "fresh room must have no document payload")

	// B joins: member list grows, still no document.
	members = reg.Join("r1", "B")
	require.Equal(t, []core.MemberID{"A", "B"}, members)
	_, set = reg.Document("r1")
	assert.False(t, set)

	// A writes; an unrelated room stays untouched.
	reg.Join("r2", "Z")
	reg.UpdateDocument("r1", "hello", nil)

	doc, set := reg.Document("r1")
	require.True(t, set)
	assert.Equal(t, "hello", doc)
	_, set = reg.Document("r2")
	assert.False(t, set, "update must not leak into another room")

	// B overwrites: last write wins.
	reg.UpdateDocument("r1", "hello world", nil)
	doc, _ = reg.Document("r1")
	assert.Equal(t, "hello world", doc)

	// C joins late and sees the then-current document and full member list.
	members = reg.Join("r1", "C")
	require.Equal(t, []core.MemberID{"A", "B", "C"}, members)
	doc, set = reg.Document("r1")
	require.True(t, set)
	assert.Equal(t, "hello world", doc)

	// Departures shrink the set without touching the document.
	require.True(t, reg.Leave("r1", "A"))
	assert.Equal(t, []core.MemberID{"B", "C"}, reg.Members("r1"))
	doc, _ = reg.Document("r1")
	assert.Equal(t, "hello world", doc)
}

package runtime

import (
	"chat-relay/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register_And_Lookup(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	conn := domain.ConnID(uuid.NewString())

	// Given no user is connected
	req.Empty(registry.ListAll())

	// When a user registers
	registry.Register("u1", "alice", conn)

	// Then the registry resolves the user by ID and by connection
	user, ok := registry.Lookup("u1")
	req.True(ok)
	req.Equal("alice", user.Username)
	req.Equal(conn, user.Conn)

	userID, ok := registry.FindByConn(conn)
	req.True(ok)
	req.Equal("u1", userID)

	req.Len(registry.ListAll(), 1)
}

func TestRegistry_ReRegister_Overwrites_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	oldConn := domain.ConnID(uuid.NewString())
	newConn := domain.ConnID(uuid.NewString())

	// Given a registered user
	registry.Register("u1", "alice", oldConn)

	// When the same user ID registers again on a new connection
	registry.Register("u1", "alice2", newConn)

	// Then the entry is replaced, not duplicated
	req.Len(registry.ListAll(), 1)
	user, ok := registry.Lookup("u1")
	req.True(ok)
	req.Equal("alice2", user.Username)
	req.Equal(newConn, user.Conn)

	// And the stale connection index entry is gone
	_, ok = registry.FindByConn(oldConn)
	req.False(ok)
	userID, ok := registry.FindByConn(newConn)
	req.True(ok)
	req.Equal("u1", userID)
}

func TestRegistry_Remove_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	conn := domain.ConnID(uuid.NewString())

	// Given a registered user
	registry.Register("u1", "alice", conn)

	// When the user is removed twice
	registry.Remove("u1")
	registry.Remove("u1")

	// Then nothing resolves anymore and no error occurred
	_, ok := registry.Lookup("u1")
	req.False(ok)
	_, ok = registry.FindByConn(conn)
	req.False(ok)
	req.Empty(registry.ListAll())
}

func TestRegistry_FindByConn_Unknown_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// When looking up a connection that never registered
	_, ok := registry.FindByConn(domain.ConnID(uuid.NewString()))

	// Then there is no match
	req.False(ok)
}

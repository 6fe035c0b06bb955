package runtime

import (
	"chat-relay/domain"
)

// Registry is the sole source of truth for who is online. It keeps a
// secondary index from connection handle to user ID so that disconnect
// cleanup never scans the whole user table.
//
// Registry is not internally locked: the Engine serializes every access
// inside its own critical section.
type Registry struct {
	users map[string]domain.User
	conns map[domain.ConnID]string
}

func NewRegistry() *Registry {
	return &Registry{
		users: make(map[string]domain.User),
		conns: make(map[domain.ConnID]string),
	}
}

// Register inserts or replaces the entry for userID. Re-registration
// overwrites the previous connection handle and drops its index entry.
func (r *Registry) Register(userID, username string, conn domain.ConnID) {
	if prev, ok := r.users[userID]; ok && prev.Conn != conn {
		delete(r.conns, prev.Conn)
	}
	r.users[userID] = domain.User{UserID: userID, Username: username, Conn: conn}
	r.conns[conn] = userID
}

func (r *Registry) Lookup(userID string) (domain.User, bool) {
	u, ok := r.users[userID]
	return u, ok
}

// FindByConn recovers the departing user's identity from the transport
// layer's own handle. Used on disconnect only.
func (r *Registry) FindByConn(conn domain.ConnID) (string, bool) {
	userID, ok := r.conns[conn]
	return userID, ok
}

// Remove deletes the entry unconditionally. No error if absent.
func (r *Registry) Remove(userID string) {
	if u, ok := r.users[userID]; ok {
		delete(r.conns, u.Conn)
	}
	delete(r.users, userID)
}

// ListAll returns the online users. Order is unspecified but the slice is
// built once per call, so a single broadcast sees one consistent order.
func (r *Registry) ListAll() []domain.User {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out
}

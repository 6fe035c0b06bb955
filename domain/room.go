package domain

// DefaultRooms are pre-created and can never be garbage-collected,
// even with zero members.
var DefaultRooms = []string{"general", "random", "support"}

// Room groups members around an append-only message history.
// Membership is a set; history order is chronological order.
type Room struct {
	ID      string
	Members map[string]struct{}
	History []Message
}

func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		Members: make(map[string]struct{}),
		History: nil,
	}
}

// IsDefault reports whether the room survives an empty member set.
func IsDefault(roomID string) bool {
	for _, id := range DefaultRooms {
		if id == roomID {
			return true
		}
	}
	return false
}

// Package event defines the events flowing through the relay: the wire
// payloads delivered to clients and the telemetry envelope consumed by
// the observability handlers.
package event

// Name is a wire-level event name. The vocabulary is a stable contract
// shared with every client implementation.
type Name string

const (
	ConnectionResponse Name = "connection_response"
	UserListUpdate     Name = "user_list_update"
	RoomHistory        Name = "room_history"
	UserJoined         Name = "user_joined"
	UserLeft           Name = "user_left"
	MessageDelivery    Name = "message"
)

// ConnectionAck acknowledges a fresh transport connection.
type ConnectionAck struct {
	Data string `json:"data"`
}

// UserInfo is one entry of a user_list_update snapshot.
type UserInfo struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Presence is the payload of user_joined and user_left.
type Presence struct {
	User string `json:"user"`
}

// ChatMessage is the payload of message, and the element type of a
// room_history sequence.
type ChatMessage struct {
	User      string `json:"user"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Package runtime binds the user registry and the room store to transport
// events: registration, presence, message relay, disconnect cleanup.
// It orchestrates the relay without containing transport or UI logic.
package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/moderation"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Engine drives the per-connection state machine:
// Unregistered -> Registered -> member of zero or more rooms -> Disconnected.
//
// Every operation runs as one atomic critical section over the registry and
// the room store. Outbound sends are non-blocking by Transport contract, so
// dispatching them inside the section never holds the lock across a slow
// network write.
//
// Failed preconditions (unknown user, unknown room, empty text) are silent
// no-ops: best-effort presence, no error channel back to the client.
type Engine struct {
	mu        sync.Mutex
	log       *slog.Logger
	registry  *Registry
	rooms     *RoomStore
	transport contract.Transport
	moderator moderation.Moderator
	telemetry chan event.Event
}

func NewEngine(log *slog.Logger, transport contract.Transport,
	moderator moderation.Moderator, telemetryBufferSize int) *Engine {
	return &Engine{
		log:       log,
		registry:  NewRegistry(),
		rooms:     NewRoomStore(),
		transport: transport,
		moderator: moderator,
		telemetry: make(chan event.Event, telemetryBufferSize),
	}
}

// TelemetryEvents exposes the observability stream drained by the
// telemetry worker.
func (e *Engine) TelemetryEvents() chan event.Event {
	return e.telemetry
}

// Connect acknowledges a fresh connection. No user state changes yet: a
// connection only enters the registry through Register.
func (e *Engine) Connect(conn domain.ConnID) {
	e.log.Debug("Client connected", "conn", conn)
	e.transport.SendTo(conn, event.ConnectionResponse, event.ConnectionAck{Data: "Connected"})
}

// Register inserts or replaces the identity for userID, then broadcasts
// the full user list snapshot to every connected client.
func (e *Engine) Register(conn domain.ConnID, userID, username string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.registry.Register(userID, username, conn)
	e.log.Info("User registered", "username", username)
	e.transport.BroadcastAll(event.UserListUpdate, e.userListSnapshot())
}

// JoinRoom subscribes the connection to the room group, records
// membership, replays history to the joiner only, and notifies the rest
// of the room. Join never unsubscribes the connection from other rooms:
// multi-room membership is supported end to end.
func (e *Engine) JoinRoom(conn domain.ConnID, roomID, userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, ok := e.registry.Lookup(userID)
	if !ok {
		return
	}

	e.transport.Subscribe(conn, roomID)
	e.rooms.AddMember(roomID, userID)

	history := lo.Map(e.rooms.History(roomID), func(m domain.Message, _ int) event.ChatMessage {
		return event.ChatMessage{User: m.Author, Message: m.Content, Timestamp: m.Timestamp}
	})
	e.transport.SendTo(conn, event.RoomHistory, history)
	e.transport.SendToRoom(roomID, event.UserJoined, event.Presence{User: user.Username}, conn)

	e.publish(event.PresenceChangedType, event.PresenceChanged{
		Room: roomID, Username: user.Username, Joined: true,
	})
}

// LeaveRoom unsubscribes the connection and removes membership. The
// user_left notification goes to the room group only when the removal
// happened and the room survived it; the leaver already unsubscribed, so
// excluding them is moot.
func (e *Engine) LeaveRoom(conn domain.ConnID, roomID, userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, ok := e.registry.Lookup(userID)
	if !ok {
		return
	}
	if !e.rooms.Exists(roomID) {
		return
	}

	e.transport.Unsubscribe(conn, roomID)

	removed, deleted := e.rooms.RemoveMember(roomID, userID)
	if removed && !deleted {
		e.transport.SendToRoom(roomID, event.UserLeft, event.Presence{User: user.Username}, "")
	}

	e.publish(event.PresenceChangedType, event.PresenceChanged{
		Room: roomID, Username: user.Username, Joined: false,
	})
}

// PostMessage relays a message to the room group, sender included, after
// appending it to history. Author is the username captured now. Messages
// to unknown rooms are dropped with no error surfaced.
func (e *Engine) PostMessage(conn domain.ConnID, roomID, userID, text, timestamp string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, ok := e.registry.Lookup(userID)
	if !ok || text == "" {
		return
	}

	sanitized, foundWords := e.moderator.Censor(text)
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	if !e.rooms.Exists(roomID) {
		e.log.Debug("Message dropped, unknown room", "room", roomID, "user_id", userID)
		return
	}

	msg := domain.Message{Author: user.Username, Content: sanitized, Timestamp: timestamp}
	e.rooms.AppendMessage(roomID, msg)
	e.transport.SendToRoom(roomID, event.MessageDelivery, event.ChatMessage{
		User: msg.Author, Message: msg.Content, Timestamp: msg.Timestamp,
	}, "")

	e.publish(event.MessageRelayedType, event.MessageRelayed{
		Room: roomID, Author: msg.Author, Content: msg.Content,
	})
	for _, word := range foundWords {
		e.publish(event.CensorshipHit, event.Censored{Room: roomID, Word: word})
	}
}

// Disconnect runs the terminal cleanup for a connection: membership
// removal in every room the user occupied, user_left notifications for
// the rooms that survived, then registry removal and a fresh user list
// broadcast. A connection that never registered is a no-op.
func (e *Engine) Disconnect(conn domain.ConnID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	userID, ok := e.registry.FindByConn(conn)
	if !ok {
		return
	}
	user, _ := e.registry.Lookup(userID)

	for _, roomID := range e.rooms.RoomsOf(userID) {
		e.transport.Unsubscribe(conn, roomID)
		removed, deleted := e.rooms.RemoveMember(roomID, userID)
		if removed && !deleted {
			e.transport.SendToRoom(roomID, event.UserLeft, event.Presence{User: user.Username}, "")
		}
		e.publish(event.PresenceChangedType, event.PresenceChanged{
			Room: roomID, Username: user.Username, Joined: false,
		})
	}

	e.registry.Remove(userID)
	e.log.Info("User disconnected", "username", user.Username)
	e.transport.BroadcastAll(event.UserListUpdate, e.userListSnapshot())
}

func (e *Engine) userListSnapshot() []event.UserInfo {
	return lo.Map(e.registry.ListAll(), func(u domain.User, _ int) event.UserInfo {
		return event.UserInfo{UserID: u.UserID, Username: u.Username}
	})
}

// publish pushes a telemetry event without ever blocking the critical
// section. A full channel loses the event.
func (e *Engine) publish(t event.Type, payload any) {
	select {
	case e.telemetry <- event.Event{Type: t, CreatedAt: time.Now().UTC(), Payload: payload}:
	default:
		e.log.Debug("Observability telemetry event lost")
	}
}

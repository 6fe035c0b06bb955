// Package ws is the WebSocket transport adapter: JSON frames in both
// directions, per-connection send buffers, and room group addressing.
// The engine never sees a websocket; the adapter never touches chat state.
package ws

import (
	"chat-relay/domain/event"
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Inbound event vocabulary. Each frame carries the sender's connection
// implicitly; the adapter makes it an explicit engine parameter.
const (
	inboundRegister  = "register"
	inboundJoinRoom  = "join_room"
	inboundLeaveRoom = "leave_room"
	inboundMessage   = "message"
)

var validate = validator.New()

// Frame is one inbound client frame. Data stays raw until the event name
// selects a payload shape.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutboundFrame is what the hub writes to a connection.
type OutboundFrame struct {
	Event event.Name `json:"event"`
	Data  any        `json:"data"`
}

type RegisterPayload struct {
	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"username" validate:"required"`
}

type RoomPayload struct {
	Room   string `json:"room" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
}

type MessagePayload struct {
	Room      string `json:"room" validate:"required"`
	UserID    string `json:"user_id" validate:"required"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// decodePayload unmarshals and validates an inbound payload. Malformed
// frames are dropped by the caller: fail open, no error channel back.
func decodePayload(data json.RawMessage, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return err
	}
	return validate.Struct(out)
}

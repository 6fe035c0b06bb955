package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePayload_Valid_Register(t *testing.T) {
	req := require.New(t)

	var payload RegisterPayload
	err := decodePayload(json.RawMessage(`{"user_id":"u1","username":"alice"}`), &payload)

	req.NoError(err)
	req.Equal("u1", payload.UserID)
	req.Equal("alice", payload.Username)
}

func TestDecodePayload_Rejects_Missing_Required_Fields(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name string
		raw  string
		out  any
	}{
		{
			name: "Register without user_id",
			raw:  `{"username":"alice"}`,
			out:  &RegisterPayload{},
		},
		{
			name: "Register without username",
			raw:  `{"user_id":"u1"}`,
			out:  &RegisterPayload{},
		},
		{
			name: "Join without room",
			raw:  `{"user_id":"u1"}`,
			out:  &RoomPayload{},
		},
		{
			name: "Message without user_id",
			raw:  `{"room":"general","message":"hi"}`,
			out:  &MessagePayload{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Error(decodePayload(json.RawMessage(tt.raw), tt.out))
		})
	}
}

func TestDecodePayload_Rejects_Malformed_JSON(t *testing.T) {
	req := require.New(t)

	var payload RoomPayload
	req.Error(decodePayload(json.RawMessage(`{"room":`), &payload))
}

func TestDecodePayload_Message_Text_May_Be_Empty(t *testing.T) {
	req := require.New(t)

	// Empty text passes structural validation; the relay drops it later
	var payload MessagePayload
	err := decodePayload(json.RawMessage(`{"room":"general","user_id":"u1","message":""}`), &payload)

	req.NoError(err)
	req.Empty(payload.Message)
}

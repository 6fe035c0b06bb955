package runtime

import (
	"chat-relay/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoomStore_Default_Rooms_Exist_From_Start(t *testing.T) {
	req := require.New(t)
	store := NewRoomStore()

	// Then the three default rooms exist with empty members
	for _, id := range domain.DefaultRooms {
		req.True(store.Exists(id))
		req.Empty(store.Members(id))
		req.Empty(store.History(id))
	}
}

func TestRoomStore_Default_Room_Survives_Last_Member_Leaving(t *testing.T) {
	req := require.New(t)
	store := NewRoomStore()

	// Given a default room with a single member
	store.AddMember("general", "u1")

	// When the last member is removed
	removed, deleted := store.RemoveMember("general", "u1")

	// Then the removal happened but the room is immortal
	req.True(removed)
	req.False(deleted)
	req.True(store.Exists("general"))
	req.Empty(store.Members("general"))
}

func TestRoomStore_AdHoc_Room_Is_Garbage_Collected(t *testing.T) {
	req := require.New(t)
	store := NewRoomStore()

	// Given an ad-hoc room created on first join
	store.AddMember("temp", "u1")
	store.AppendMessage("temp", domain.Message{Author: "alice", Content: "hi"})
	req.True(store.Exists("temp"))

	// When its only member is removed
	removed, deleted := store.RemoveMember("temp", "u1")

	// Then the room and its history are gone
	req.True(removed)
	req.True(deleted)
	req.False(store.Exists("temp"))
	req.Empty(store.History("temp"))
	req.Empty(store.Members("temp"))
	req.Empty(store.RoomsOf("u1"))
}

func TestRoomStore_AddMember_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	store := NewRoomStore()

	// When the same user joins the same room twice
	store.AddMember("general", "u1")
	store.AddMember("general", "u1")

	// Then membership is unchanged in size
	req.Len(store.Members("general"), 1)
}

func TestRoomStore_RemoveMember_Not_A_Member(t *testing.T) {
	req := require.New(t)
	store := NewRoomStore()
	store.AddMember("general", "u1")

	// When removing a user that never joined
	removed, deleted := store.RemoveMember("general", "u2")

	// Then nothing happened
	req.False(removed)
	req.False(deleted)
	req.Len(store.Members("general"), 1)
}

func TestRoomStore_History_Preserves_Append_Order(t *testing.T) {
	req := require.New(t)
	store := NewRoomStore()
	m1 := domain.Message{Author: "alice", Content: "one", Timestamp: "t1"}
	m2 := domain.Message{Author: "bob", Content: "two", Timestamp: "t2"}
	m3 := domain.Message{Author: "alice", Content: "three", Timestamp: "t3"}

	// When messages are appended in order
	store.AppendMessage("general", m1)
	store.AppendMessage("general", m2)
	store.AppendMessage("general", m3)

	// Then any later reader sees the exact append order
	req.Equal([]domain.Message{m1, m2, m3}, store.History("general"))
}

func TestRoomStore_AppendMessage_Unknown_Room_Is_A_NoOp(t *testing.T) {
	req := require.New(t)
	store := NewRoomStore()

	// When appending to a room that does not exist
	store.AppendMessage("ghost", domain.Message{Author: "alice", Content: "hi"})

	// Then no room was created
	req.False(store.Exists("ghost"))
	req.Empty(store.History("ghost"))
}

func TestRoomStore_RoomsOf_Snapshots_All_Memberships(t *testing.T) {
	req := require.New(t)
	store := NewRoomStore()

	// Given a user in two rooms
	store.AddMember("general", "u1")
	store.AddMember("temp", "u1")
	store.AddMember("random", "u2")

	// When asking for the user's rooms
	rooms := store.RoomsOf("u1")

	// Then both memberships are reported
	req.ElementsMatch([]string{"general", "temp"}, rooms)
}

func TestRoomStore_History_Returns_A_Copy(t *testing.T) {
	req := require.New(t)
	store := NewRoomStore()
	store.AppendMessage("general", domain.Message{Author: "alice", Content: "hi"})

	// When a caller mutates the returned slice
	history := store.History("general")
	history[0].Content = "tampered"

	// Then the stored history is untouched
	req.Equal("hi", store.History("general")[0].Content)
}

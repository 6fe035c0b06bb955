package runtime

import (
	"chat-relay/domain"
)

// RoomStore owns every room: member sets and append-only histories.
// The three default rooms exist from construction and are never deleted;
// any other room is created lazily on first join and garbage-collected
// when its member set empties.
//
// Like Registry, RoomStore relies on the Engine for mutual exclusion.
type RoomStore struct {
	rooms map[string]*domain.Room
}

func NewRoomStore() *RoomStore {
	s := &RoomStore{rooms: make(map[string]*domain.Room)}
	for _, id := range domain.DefaultRooms {
		s.rooms[id] = domain.NewRoom(id)
	}
	return s
}

// EnsureRoom returns the existing room or creates an empty one.
func (s *RoomStore) EnsureRoom(roomID string) *domain.Room {
	if room, ok := s.rooms[roomID]; ok {
		return room
	}
	room := domain.NewRoom(roomID)
	s.rooms[roomID] = room
	return room
}

func (s *RoomStore) Exists(roomID string) bool {
	_, ok := s.rooms[roomID]
	return ok
}

// AddMember is idempotent and auto-creates the room.
func (s *RoomStore) AddMember(roomID, userID string) {
	room := s.EnsureRoom(roomID)
	room.Members[userID] = struct{}{}
}

// RemoveMember removes userID if present and reports whether removal
// occurred, and whether the room was deleted as a consequence. A
// non-default room that empties is dropped entirely: there is no one
// left to notify.
func (s *RoomStore) RemoveMember(roomID, userID string) (removed, deleted bool) {
	room, ok := s.rooms[roomID]
	if !ok {
		return false, false
	}
	if _, ok := room.Members[userID]; !ok {
		return false, false
	}
	delete(room.Members, userID)

	if len(room.Members) == 0 && !domain.IsDefault(roomID) {
		delete(s.rooms, roomID)
		return true, true
	}
	return true, false
}

// AppendMessage is a no-op when the room does not exist; callers check
// existence first when they care.
func (s *RoomStore) AppendMessage(roomID string, msg domain.Message) {
	room, ok := s.rooms[roomID]
	if !ok {
		return
	}
	room.History = append(room.History, msg)
}

// History returns a copy of the room's messages in append order.
// Unknown rooms yield an empty sequence.
func (s *RoomStore) History(roomID string) []domain.Message {
	room, ok := s.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]domain.Message, len(room.History))
	copy(out, room.History)
	return out
}

// Members returns a copy of the room's member set.
func (s *RoomStore) Members(roomID string) map[string]struct{} {
	room, ok := s.rooms[roomID]
	if !ok {
		return nil
	}
	out := make(map[string]struct{}, len(room.Members))
	for id := range room.Members {
		out[id] = struct{}{}
	}
	return out
}

// RoomsOf returns a snapshot of every room currently containing userID.
// Disconnect cleanup iterates this snapshot so that removals during the
// walk cannot invalidate it.
func (s *RoomStore) RoomsOf(userID string) []string {
	var out []string
	for id, room := range s.rooms {
		if _, ok := room.Members[userID]; ok {
			out = append(out, id)
		}
	}
	return out
}

package ws

import (
	"chat-relay/domain"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Engine is the slice of the relay core the adapter drives. Defined here
// so the adapter depends on behavior, not on the runtime package.
type Engine interface {
	Connect(conn domain.ConnID)
	Disconnect(conn domain.ConnID)
	Register(conn domain.ConnID, userID, username string)
	JoinRoom(conn domain.ConnID, roomID, userID string)
	LeaveRoom(conn domain.ConnID, roomID, userID string)
	PostMessage(conn domain.ConnID, roomID, userID, text, timestamp string)
}

// Server upgrades HTTP requests and bridges frames to engine calls.
type Server struct {
	log            *slog.Logger
	hub            *Hub
	engine         Engine
	sendBufferSize int
	upgrader       websocket.Upgrader
}

func NewServer(log *slog.Logger, hub *Hub, engine Engine, sendBufferSize int) *Server {
	return &Server{
		log:            log,
		hub:            hub,
		engine:         engine,
		sendBufferSize: sendBufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The relay has no auth layer; origin filtering belongs to a
			// reverse proxy in front of it.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler for the websocket endpoint.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.serveWS)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("Upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	id := domain.ConnID(uuid.NewString())
	client := newClient(id, conn, s.sendBufferSize, s.log)
	s.hub.register(client)

	go client.writePump()

	s.engine.Connect(id)

	// Blocks until the connection dies; disconnect is the only teardown
	// trigger at this layer.
	client.readPump(func(frame Frame) {
		s.dispatch(id, frame)
	})

	s.engine.Disconnect(id)
	s.hub.unregister(id)
	close(client.send)
}

// dispatch routes one inbound frame to the matching engine operation.
// Unknown events and invalid payloads are dropped: best-effort relay,
// no error surface back to the client.
func (s *Server) dispatch(conn domain.ConnID, frame Frame) {
	switch frame.Event {
	case inboundRegister:
		var p RegisterPayload
		if err := decodePayload(frame.Data, &p); err != nil {
			s.log.Debug("Dropping register frame", "conn", conn, "err", err)
			return
		}
		s.engine.Register(conn, p.UserID, p.Username)

	case inboundJoinRoom:
		var p RoomPayload
		if err := decodePayload(frame.Data, &p); err != nil {
			s.log.Debug("Dropping join_room frame", "conn", conn, "err", err)
			return
		}
		s.engine.JoinRoom(conn, p.Room, p.UserID)

	case inboundLeaveRoom:
		var p RoomPayload
		if err := decodePayload(frame.Data, &p); err != nil {
			s.log.Debug("Dropping leave_room frame", "conn", conn, "err", err)
			return
		}
		s.engine.LeaveRoom(conn, p.Room, p.UserID)

	case inboundMessage:
		var p MessagePayload
		if err := decodePayload(frame.Data, &p); err != nil {
			s.log.Debug("Dropping message frame", "conn", conn, "err", err)
			return
		}
		s.engine.PostMessage(conn, p.Room, p.UserID, p.Message, p.Timestamp)

	default:
		s.log.Debug("Unknown inbound event", "conn", conn, "event", frame.Event)
	}
}

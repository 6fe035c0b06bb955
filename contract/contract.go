//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain"
	"chat-relay/domain/event"
	"context"
	"reflect"
)

// Transport is the delivery surface the engine relies on. Every send is
// best-effort and non-blocking: a slow or saturated connection drops
// frames instead of stalling the caller.
type Transport interface {
	// SendTo delivers an event to a single connection.
	SendTo(conn domain.ConnID, name event.Name, payload any)
	// SendToRoom delivers an event to every connection subscribed to the
	// room's group, optionally skipping one connection.
	SendToRoom(roomID string, name event.Name, payload any, exclude domain.ConnID)
	// BroadcastAll delivers an event to every currently open connection.
	BroadcastAll(name event.Name, payload any)
	// Subscribe adds a connection to a room's group address.
	Subscribe(conn domain.ConnID, roomID string)
	// Unsubscribe removes a connection from a room's group address.
	Unsubscribe(conn domain.ConnID, roomID string)
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

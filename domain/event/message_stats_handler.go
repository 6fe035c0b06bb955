package event

import (
	"chat-relay/errors"
	"log/slog"
	"sync"

	"github.com/abadojack/whatlanggo"
)

// MessageStatsHandler handles events emitted when a message is relayed.
// It keeps per-room and per-language counters for observability and logs
// the detected language of each message.
type MessageStatsHandler struct {
	mu      sync.Mutex
	log     *slog.Logger
	perRoom map[string]uint64
	perLang map[string]uint64
}

func NewMessageStatsHandler(log *slog.Logger) *MessageStatsHandler {
	return &MessageStatsHandler{
		log:     log,
		perRoom: make(map[string]uint64),
		perLang: make(map[string]uint64),
	}
}

func (h *MessageStatsHandler) Handle(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch event.Type {
	case MessageRelayedType:
		payload, ok := event.Payload.(MessageRelayed)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		info := whatlanggo.Detect(payload.Content)
		lang := info.Lang.Iso6391()

		h.perRoom[payload.Room]++
		h.perLang[lang]++

		h.log.Debug("Message relayed",
			"room", payload.Room,
			"author", payload.Author,
			"lang", lang,
			"room_total", h.perRoom[payload.Room])
	}
}

// Totals returns a snapshot of the per-room counters.
func (h *MessageStatsHandler) Totals() map[string]uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]uint64, len(h.perRoom))
	for room, n := range h.perRoom {
		out[room] = n
	}
	return out
}

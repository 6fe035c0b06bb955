package event

import "time"

type Type string

const (
	MessageRelayedType  Type = "MESSAGE_RELAYED"
	PresenceChangedType Type = "PRESENCE_CHANGED"
	CensorshipHit       Type = "CENSORSHIP_HIT"
	ChannelCapacityType Type = "CHANNEL_CAPACITY"
)

// Event is the telemetry envelope published by the engine and drained by
// the telemetry worker. Delivery is best-effort: the engine never blocks
// on a full telemetry channel.
type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

type MessageRelayed struct {
	Room    string
	Author  string
	Content string
}

type PresenceChanged struct {
	Room     string
	Username string
	Joined   bool
}

type Censored struct {
	Room string
	Word string
}

type ChannelCapacity struct {
	ChannelName string
	Capacity    int
	Length      int
}

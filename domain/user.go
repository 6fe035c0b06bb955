// Package domain contains core concepts of the chat relay.
// This file defines connected users and their transport identity.
// No runtime, network, or UI logic should be added here.
package domain

// ConnID identifies a single transport connection.
// It is assigned by the transport adapter, never by the caller.
type ConnID string

// User is a registered identity. UserID is caller-supplied and unique;
// re-registration overwrites the previous connection handle.
type User struct {
	UserID   string
	Username string
	Conn     ConnID
}

package models

import "time"

type EventKind string

const (
	EventRegistered EventKind = "Registered"
	EventLoggedIn   EventKind = "LoggedIn"
	EventUpdated    EventKind = "Updated"
)

// Event is a notification emitted by a successful registry operation.
// Seq is assigned by the registry and grows by one per event; Username and
// Email carry the resulting values and are empty for LoggedIn.
type Event struct {
	Seq       int64     `json:"seq"`
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	Identity  string    `json:"identity"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

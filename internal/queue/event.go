// Package queue carries entity change events over RabbitMQ: the publisher
// used by the services and the consumer that keeps the audit log.
package queue

import "time"

// Action is the kind of write an event reports.
type Action string

const (
	ActionCreated Action = "CREATED"
	ActionUpdated Action = "UPDATED"
	ActionDeleted Action = "DELETED"
)

// EntityEvent is published after every successful write. It identifies
// the row only; consumers that need the data read it back over the API.
type EntityEvent struct {
	Entity     string    `json:"entity"`
	Action     Action    `json:"action"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

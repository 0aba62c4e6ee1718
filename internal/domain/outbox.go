package domain

import "time"

// OutboxEvent is a pending integration event written in the same
// transaction as the state change it announces.
type OutboxEvent struct {
	ID          string
	Topic       string
	Payload     []byte
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

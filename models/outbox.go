package models

import "time"

// OutboxKind is the delivery channel of an [OutboxMessage].
type OutboxKind string

const (
	OutboxEmail OutboxKind = "email"
	OutboxPush  OutboxKind = "push"
)

// OutboxMessage is an email or push notification accepted by the development
// API. Nothing is delivered; the outbox is the record of what would be sent.
type OutboxMessage struct {
	ID         string     `json:"_id"`
	Kind       OutboxKind `json:"kind"`
	Recipients []string   `json:"recipients"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"created_at"`
}

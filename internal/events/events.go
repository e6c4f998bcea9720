// Package events publishes board and task lifecycle events to NATS.
// Publishing is best effort: a failed publish is logged and never fails the
// request that produced it.
package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Subjects for domain events.
const (
	SubjectBoards = "kanmind.boards"
	SubjectTasks  = "kanmind.tasks"
)

// Event types.
const (
	BoardCreated = "board.created"
	BoardUpdated = "board.updated"
	BoardDeleted = "board.deleted"
	TaskCreated  = "task.created"
	TaskUpdated  = "task.updated"
	TaskDeleted  = "task.deleted"
)

type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Publisher is what services publish through. The zero dependency for tests
// is Discard.
type Publisher interface {
	Publish(subject, eventType string, payload interface{})
}

// NatsPublisher publishes events over a NATS connection.
type NatsPublisher struct {
	nc     *nats.Conn
	logger *log.Logger
}

func NewNatsPublisher(nc *nats.Conn, logger *log.Logger) *NatsPublisher {
	return &NatsPublisher{nc: nc, logger: logger}
}

func (p *NatsPublisher) Publish(subject, eventType string, payload interface{}) {
	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Printf("Error encoding %s event: %v", eventType, err)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Printf("Error publishing %s event: %v", eventType, err)
	}
}

// Discard drops every event. Used when NATS is not configured and in tests.
type Discard struct{}

func (Discard) Publish(subject, eventType string, payload interface{}) {}

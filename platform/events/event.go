// Package events carries in-process notifications between components, such
// as the phone library announcing that its metadata finished loading.
// This is part of the platform layer and contains no business logic.
package events

import (
	"context"
	"time"
)

// Event is a named notification. Subscribers match on EventName.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent supplies OccurredAt for embedding event types.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler reacts to one event.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Publisher is the side a producer such as the phone loader needs. Publish
// must not block on handlers.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Subscriber is the side a module registering reactions needs.
type Subscriber interface {
	Subscribe(eventName string, handler Handler)
}

// Bus is both sides, as wired in main.
type Bus interface {
	Publisher
	Subscriber
}

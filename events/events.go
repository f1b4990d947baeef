// Package events описывает доменные события команды и способы их доставки
// (websocket-лента, RabbitMQ).
package events

import (
	"context"
	"errors"
	"time"
)

type Type string

const (
	TrainingCreated Type = "training.created"
	TrainingDeleted Type = "training.deleted"
	MatchCreated    Type = "match.created"
	MatchUpdated    Type = "match.updated"
	MatchDeleted    Type = "match.deleted"
	MatchSignedUp   Type = "match.signup"
	LeaveRequested  Type = "leave.created"
	VenueReserved   Type = "venue.created"
	PhotoAdded      Type = "photo.created"
	PhotoDeleted    Type = "photo.deleted"
	CheckinLogged   Type = "checkin.created"
)

type Event struct {
	Type       Type        `json:"type"`
	EntityID   int         `json:"entity_id"`
	ActorID    int         `json:"actor_id"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func New(eventType Type, entityID, actorID int, payload interface{}) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		ActorID:    actorID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Multi рассылает событие всем получателям, даже если кто-то из них вернул ошибку.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error {
	return nil
}

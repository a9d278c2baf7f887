// Package events announces booking lifecycle changes on the message bus.
// Publishing happens after the store write and never fails the operation.
package events

import (
	"context"
	"time"

	"wardrobe/pkg/kafka"
	"wardrobe/pkg/logger"
	"wardrobe/pkg/middleware"
	"wardrobe/pkg/model"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"

	SchemaVersion = "1"
	Source        = "wardrobe-api"
)

type BookingEvent struct {
	Booking        *model.Booking      `json:"booking"`
	PreviousStatus model.BookingStatus `json:"previous_status,omitempty"`
	OccurredAt     time.Time           `json:"occurred_at"`
}

type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type Publisher struct {
	producer MessagePublisher
	timeout  time.Duration
	log      *logger.Logger
}

func NewPublisher(producer MessagePublisher, timeout time.Duration, log *logger.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		timeout:  timeout,
		log:      log,
	}
}

func (p *Publisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCreated, BookingEvent{
		Booking:    booking,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) BookingStatusChanged(ctx context.Context, booking *model.Booking, from model.BookingStatus) {
	p.publish(ctx, TypeBookingStatusChanged, BookingEvent{
		Booking:        booking,
		PreviousStatus: from,
		OccurredAt:     time.Now().UTC(),
	})
}

// publish outlives the request: the caller's cancellation is dropped and
// replaced by the publisher's own timeout.
func (p *Publisher) publish(ctx context.Context, eventType string, event BookingEvent) {
	correlationID := middleware.RequestIDFromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	msg, err := kafka.NewMessage().
		WithKey(event.Booking.ID).
		WithValue(event).
		WithEventType(eventType).
		WithCorrelationID(correlationID).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		Build()
	if err != nil {
		p.log.Error("Failed to build booking event", "type", eventType, "booking_id", event.Booking.ID, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish booking event",
			"type", eventType,
			"booking_id", event.Booking.ID,
			"error", err,
		)
	}
}

// Nop discards events; used when the bus is disabled.
type Nop struct{}

func (Nop) BookingCreated(context.Context, *model.Booking) {}

func (Nop) BookingStatusChanged(context.Context, *model.Booking, model.BookingStatus) {}

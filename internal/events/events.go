// Package events publishes live-update notifications for the booking board. Messages are keyed
// by room id so a relay consuming the topic sees one room's updates in order.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"strconv"
	"time"

	"icpac/config"
	"icpac/infras/kafka"
	"icpac/infras/otel"
	"icpac/shared/constant"
	"icpac/shared/metrics"
	"icpac/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Type string

const (
	TypeBookingUpdate          Type = "booking_update"
	TypeRoomAvailabilityUpdate Type = "room_availability_update"
	TypeBookingStatusChange    Type = "booking_status_change"
)

const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionCancelled = "cancelled"
)

// Message is the envelope the browser client decodes.
type Message struct {
	Type      Type   `json:"type"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

type BookingUpdate struct {
	Action  string `json:"action"`
	RoomID  int64  `json:"room_id"`
	Booking any    `json:"booking"`
}

type RoomAvailabilityUpdate struct {
	RoomID    int64  `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type BookingStatusChange struct {
	BookingID      string `json:"booking_id"`
	RoomID         int64  `json:"room_id"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
	ChangedBy      string `json:"changed_by"`
	Reason         string `json:"reason,omitempty"`
}

// Publisher never fails the caller: delivery problems are logged and counted.
type Publisher interface {
	Publish(ctx context.Context, roomID int64, eventType Type, data any)
}

type publisherImpl struct {
	producer kafka.Producer
	topic    string
	otel     otel.Otel
}

// New returns a Kafka-backed publisher, or a no-op one when Kafka or write notifications are
// switched off.
func New(cfg *config.Config, producer kafka.Producer, otel otel.Otel) Publisher {
	if !cfg.Kafka.Enable || !cfg.Booking.PublishOnWrites || producer == nil {
		log.Info().Msg("Live-update events disabled")

		return noopPublisher{}
	}

	return &publisherImpl{
		producer: producer,
		topic:    cfg.Kafka.BookingTopic,
		otel:     otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, roomID int64, eventType Type, data any) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"event.type": string(eventType),
		"room_id":    roomID,
	})

	msg := kafka.Message{
		Key: strconv.FormatInt(roomID, 10),
		Value: Message{
			Type:      eventType,
			Data:      data,
			Timestamp: timezone.Format(timezone.Now(), time.RFC3339),
		},
	}

	err := p.producer.SendMessages(ctx, p.topic, msg)
	metrics.IncEventPublished(string(eventType), err == nil)

	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("type", string(eventType)).Int64("room_id", roomID).Msg("failed to publish live-update event")
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, int64, Type, any) {}

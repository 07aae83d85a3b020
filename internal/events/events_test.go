package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"icpac/config"
	"icpac/infras/kafka"
	kafkaMocks "icpac/infras/kafka/mocks"
	otelMocks "icpac/infras/otel/mocks"
	"icpac/internal/events"
)

func enabledConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.BookingTopic = "booking-events"
	cfg.Booking.PublishOnWrites = true

	return cfg
}

func TestPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	producer := kafkaMocks.NewMockProducer(ctrl)

	publisher := events.New(enabledConfig(), producer, otelMocks.NewOtel())

	producer.EXPECT().
		SendMessages(gomock.Any(), "booking-events", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			require.Len(t, messages, 1)
			assert.Equal(t, "4", messages[0].Key)

			msg, ok := messages[0].Value.(events.Message)
			require.True(t, ok)
			assert.Equal(t, events.TypeRoomAvailabilityUpdate, msg.Type)
			assert.NotEmpty(t, msg.Timestamp)
			assert.Equal(t, events.RoomAvailabilityUpdate{RoomID: 4, StartDate: "2030-06-03", EndDate: "2030-06-03"}, msg.Data)

			return nil
		})

	publisher.Publish(context.Background(), 4, events.TypeRoomAvailabilityUpdate,
		events.RoomAvailabilityUpdate{RoomID: 4, StartDate: "2030-06-03", EndDate: "2030-06-03"})
}

func TestPublisher_SwallowsBrokerErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	producer := kafkaMocks.NewMockProducer(ctrl)

	publisher := events.New(enabledConfig(), producer, otelMocks.NewOtel())

	producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), 1, events.TypeBookingUpdate, events.BookingUpdate{Action: events.ActionCreated, RoomID: 1})
	})
}

func TestPublisher_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	producer := kafkaMocks.NewMockProducer(ctrl)

	cfg := enabledConfig()
	cfg.Kafka.Enable = false

	// no SendMessages expectation: any call fails the test
	events.New(cfg, producer, otelMocks.NewOtel()).Publish(context.Background(), 1, events.TypeBookingUpdate, nil)

	cfg = enabledConfig()
	cfg.Booking.PublishOnWrites = false
	events.New(cfg, producer, otelMocks.NewOtel()).Publish(context.Background(), 1, events.TypeBookingUpdate, nil)
}

package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
)

// Publisher публикует события о бронированиях в Kafka.
// Ошибки публикации только логируются: бронирование уже зафиксировано.
type Publisher struct {
	writer       MessageWriter
	topic        string
	writeTimeout time.Duration
	log          Logger
	now          func() time.Time
}

// NewKafkaPublisher создает издателя поверх kafka.Writer.
// Без брокеров возвращает издателя, который ничего не отправляет.
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration, log Logger) *Publisher {
	if len(brokers) == 0 {
		log.Warn("Booking notifications disabled (no kafka brokers configured)")
		return NewPublisher(nil, topic, writeTimeout, log)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: writeTimeout,
	}
	return NewPublisher(writer, topic, writeTimeout, log)
}

// NewPublisher создает издателя с произвольным writer. nil writer отключает публикацию.
func NewPublisher(writer MessageWriter, topic string, writeTimeout time.Duration, log Logger) *Publisher {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &Publisher{
		writer:       writer,
		topic:        topic,
		writeTimeout: writeTimeout,
		log:          log,
		now:          time.Now,
	}
}

func (p *Publisher) BookingCreated(ctx context.Context, booking *domain.Booking) {
	p.publish(ctx, EventBookingCreated, booking)
}

func (p *Publisher) BookingCancelled(ctx context.Context, booking *domain.Booking) {
	p.publish(ctx, EventBookingCancelled, booking)
}

// Close закрывает writer, дожидаясь отправки буфера
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *Publisher) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if p.writer == nil || booking == nil {
		return
	}

	msg, err := p.message(eventType, booking)
	if err != nil {
		p.log.Error("notifications: build %s for booking_id=%d: %v", eventType, booking.ID, err)
		return
	}

	// отмена запроса клиента не должна прерывать отправку уже принятого события
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		p.log.Error("notifications: publish %s for booking_id=%d: %v", eventType, booking.ID, err)
		return
	}

	p.log.Info("notifications: published %s to %s for booking_id=%d", eventType, p.topic, booking.ID)
}

func (p *Publisher) message(eventType string, booking *domain.Booking) (kafka.Message, error) {
	start, end := booking.Interval()
	event := BookingEvent{
		EventID:            uuid.NewString(),
		EventType:          eventType,
		OccurredAt:         p.now().UTC(),
		BookingID:          booking.ID,
		StudioID:           booking.StudioID,
		ArtistID:           booking.ArtistID,
		ClientID:           booking.ClientID,
		StartTime:          start,
		EndTime:            end,
		Status:             string(booking.Status),
		ServiceName:        booking.ServiceName,
		CancellationReason: booking.CancellationReason,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatInt(booking.ID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(eventType)},
		},
	}, nil
}

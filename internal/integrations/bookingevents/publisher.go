package bookingevents

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StayService/internal/domain"
)

// Publisher публикует события бронирований после фиксации транзакции.
// Ошибки отправки логируются и не влияют на результат запроса.
type Publisher struct {
	producer Producer
	topic    string
	metrics  Metrics
	logger   Logger
	now      func() time.Time
}

// NewPublisher создает новый экземпляр Publisher
// metrics может быть nil
func NewPublisher(producer Producer, topic string, metrics Metrics, logger Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Publish отправляет событие; ключ сообщения - ID бронирования, чтобы события одного бронирования шли по порядку
func (p *Publisher) Publish(ctx context.Context, eventType Type, booking *domain.Booking, payment *domain.Payment) {
	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Booking:    newBooking(booking),
		Payment:    newPayment(payment),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Publish: failed to marshal event type=%s booking=%d: %v", eventType, booking.ID, err)
		return
	}

	headers := map[string]string{
		"event_id":   event.ID,
		"event_type": string(eventType),
	}

	err = p.producer.Publish(ctx, p.topic, strconv.FormatInt(booking.ID, 10), payload, headers)
	if p.metrics != nil {
		p.metrics.IncEventPublished(string(eventType), err)
	}
	if err != nil {
		p.logger.Warn("Publish: failed to send event type=%s booking=%d: %v", eventType, booking.ID, err)
		return
	}

	p.logger.Info("Publish: sent event id=%s type=%s booking=%d", event.ID, eventType, booking.ID)
}

// Noop публикатор для выключенной интеграции
type Noop struct{}

// Publish ничего не делает
func (Noop) Publish(context.Context, Type, *domain.Booking, *domain.Payment) {}

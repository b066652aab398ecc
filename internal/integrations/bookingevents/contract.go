package bookingevents

import "context"

// Producer транспорт событий (Kafka)
type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Metrics учет отправленных событий
type Metrics interface {
	IncEventPublished(eventType string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

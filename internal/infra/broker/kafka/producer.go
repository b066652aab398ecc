package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"
)

// ErrNoBrokers возвращается, если список брокеров пуст
var ErrNoBrokers = errors.New("kafka: no brokers configured")

// Producer синхронный продюсер, ждет подтверждения от всех реплик
type Producer struct {
	sync sarama.SyncProducer
}

// NewProducer подключается к брокерам
func NewProducer(brokers []string, clientID string, timeout time.Duration) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Version = sarama.V2_8_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 3
	cfg.Net.MaxOpenRequests = 1
	if timeout > 0 {
		cfg.Producer.Timeout = timeout
		cfg.Net.DialTimeout = timeout
	}

	sync, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{sync: sync}, nil
}

// NewProducerFromSync оборачивает готовый SyncProducer (используется в тестах с sarama/mocks)
func NewProducerFromSync(sync sarama.SyncProducer) *Producer {
	return &Producer{sync: sync}
}

// Publish отправляет сообщение и ждет подтверждения
func (p *Producer) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var hs []sarama.RecordHeader
	for k, v := range headers {
		hs = append(hs, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}
	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(payload),
		Headers: hs,
	}
	_, _, err := p.sync.SendMessage(msg)
	return err
}

// Close закрывает соединения с брокерами
func (p *Producer) Close() error {
	if p.sync == nil {
		return nil
	}
	return p.sync.Close()
}

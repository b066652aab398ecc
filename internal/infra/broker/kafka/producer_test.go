package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_Publish(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		if string(key) != "42" {
			return errors.New("unexpected key " + string(key))
		}
		if msg.Topic != "stay.bookings" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		if len(msg.Headers) != 1 || string(msg.Headers[0].Key) != "event_type" {
			return errors.New("missing event_type header")
		}
		return nil
	})

	p := NewProducerFromSync(sp)
	err := p.Publish(context.Background(), "stay.bookings", "42", []byte(`{}`), map[string]string{"event_type": "booking.created"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestProducer_PublishFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

	p := NewProducerFromSync(sp)
	err := p.Publish(context.Background(), "stay.bookings", "1", []byte(`{}`), nil)
	assert.ErrorIs(t, err, sarama.ErrNotLeaderForPartition)
	require.NoError(t, p.Close())
}

func TestProducer_CancelledContext(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	p := NewProducerFromSync(sp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, "stay.bookings", "1", nil, nil), context.Canceled)
	require.NoError(t, p.Close())
}

func TestNewProducer_NoBrokers(t *testing.T) {
	_, err := NewProducer(nil, "stay-service", 0)
	assert.ErrorIs(t, err, ErrNoBrokers)
}

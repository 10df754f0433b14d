package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	defaultWriteTimeout = 10 * time.Second
	defaultBatchSize    = 100
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type DefaultKafkaPublisher struct {
	writer       messageWriter
	writeTimeout time.Duration
	batchSize    int
	maxRetries   int
	backoff      time.Duration
}

func NewDefaultKafkaPublisher(brokers []string) *DefaultKafkaPublisher {
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	})
}

func newPublisher(w messageWriter) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer:       w,
		writeTimeout: defaultWriteTimeout,
		batchSize:    defaultBatchSize,
		maxRetries:   3,
		backoff:      time.Second,
	}
}

// Publish writes msgs to topic in batches, each batch retried with a linear
// backoff. Keys are hashed so events of one sales page keep their order.
func (k *DefaultKafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	if topic == "" {
		return errors.New("kafka topic is required")
	}

	now := time.Now()
	var errs []error
	for start := 0; start < len(msgs); start += k.batchSize {
		end := start + k.batchSize
		if end > len(msgs) {
			end = len(msgs)
		}

		batch := make([]kafka.Message, 0, end-start)
		for _, m := range msgs[start:end] {
			batch = append(batch, kafka.Message{
				Topic: topic,
				Key:   m.Key,
				Value: m.Value,
				Time:  now,
			})
		}
		if err := k.writeWithRetry(batch); err != nil {
			errs = append(errs, fmt.Errorf("batch %d-%d: %w", start, end, err))
		}
	}
	return errors.Join(errs...)
}

func (k *DefaultKafkaPublisher) writeWithRetry(batch []kafka.Message) error {
	var err error
	for attempt := 1; attempt <= k.maxRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), k.writeTimeout)
		err = k.writer.WriteMessages(ctx, batch...)
		cancel()
		if err == nil {
			return nil
		}
		if attempt < k.maxRetries {
			time.Sleep(time.Duration(attempt) * k.backoff)
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", k.maxRetries, err)
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}

package publisher

import (
	"context"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type DefaultKafkaPublisher struct {
	writer *kafka.Writer
}

func NewDefaultKafkaPublisher(brokers []string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (k *DefaultKafkaPublisher) Publish(ctx context.Context, topic string, msgs ...domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	now := time.Now()
	km := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  now,
			Topic: topic,
		})
	}

	return k.writer.WriteMessages(ctx, km...)
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}

// Package events publishes audit records to Kafka. Publishing is
// best-effort: the gallery works identically with no brokers at all.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
)

const Topic = "gallery-activity"

type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher wraps a kafka writer. A nil writer yields a publisher
// that drops everything, which keeps call sites unconditional.
func NewPublisher(writer *kafka.Writer) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) PublishActivity(ctx context.Context, log *entity.ActivityLog) error {
	if p.writer == nil {
		return nil
	}

	value, err := json.Marshal(log)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("activity-%s", log.Action)),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

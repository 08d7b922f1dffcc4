package config

import (
	"strings"

	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter builds a writer for the audit event topic. Returns nil
// when no brokers are configured; event publishing is optional.
func NewKafkaWriter(brokers, topic string) *kafka.Writer {
	if brokers == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

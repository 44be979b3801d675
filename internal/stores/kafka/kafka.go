// Package kafka publishes the notification events services emit after the fact
// (account created, order placed). Producing is best-effort: the publishing
// service never blocks a request on the broker, and a missing broker only
// costs the events.
package kafka

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

type Conf struct {
	client *kgo.Client
}

// NewConf connects a producer to the brokers in the comma-separated list.
func NewConf(brokers string) (*Conf, error) {
	if brokers == "" {
		return nil, fmt.Errorf("no kafka brokers configured")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(brokers, ",")...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kafka client: %w", err)
	}
	return &Conf{client: client}, nil
}

// ProduceMessage synchronously produces one record. Callers that must not
// block a request run this in a goroutine and log the error.
func (c *Conf) ProduceMessage(topic string, key []byte, value []byte) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("kafka is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record := &kgo.Record{Topic: topic, Key: key, Value: value}
	if err := c.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("producing to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and shuts the producer down.
func (c *Conf) Close() {
	if c != nil && c.client != nil {
		c.client.Close()
	}
}

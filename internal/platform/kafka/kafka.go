package kafka

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Client wraps a franz-go producer for the notification topic.
type Client struct {
	kgo *kgo.Client
}

// New connects to the brokers and makes sure the topic exists so the first
// publish does not race topic auto-creation.
// Returns nil if no brokers are configured (notifications then stay in the
// outbox and are only visible through the relay's log).
func New(ctx context.Context, brokers []string, topic string) (*Client, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	admin := kadm.NewClient(client)
	if _, err := admin.CreateTopic(ctx, 1, 1, nil, topic); err != nil {
		// Topic may already exist; anything else is fatal at startup.
		if exists, lookupErr := topicExists(ctx, admin, topic); lookupErr != nil || !exists {
			client.Close()
			return nil, fmt.Errorf("ensure topic %q: %w", topic, err)
		}
	}
	return &Client{kgo: client}, nil
}

func topicExists(ctx context.Context, admin *kadm.Client, topic string) (bool, error) {
	details, err := admin.ListTopics(ctx, topic)
	if err != nil {
		return false, err
	}
	return details.Has(topic), nil
}

// Publish produces one record keyed by key and blocks until acked.
func (c *Client) Publish(ctx context.Context, key string, value []byte) error {
	record := &kgo.Record{Key: []byte(key), Value: value}
	return c.kgo.ProduceSync(ctx, record).FirstErr()
}

// Close flushes and closes the producer.
func (c *Client) Close() {
	c.kgo.Close()
}

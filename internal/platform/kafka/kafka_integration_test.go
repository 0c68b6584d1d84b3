//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"licibit/internal/notify"
	"licibit/internal/platform/kafka"
	"licibit/pkg/testutil/containers"
)

type KafkaSuite struct {
	suite.Suite
	brokers []string
}

func TestKafkaSuite(t *testing.T) {
	suite.Run(t, new(KafkaSuite))
}

func (s *KafkaSuite) SetupSuite() {
	s.brokers = containers.GetManager().GetRedpanda(s.T()).Brokers
}

func (s *KafkaSuite) consume(topic string, want int) []*kgo.Record {
	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var records []*kgo.Record
	for len(records) < want {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(fetches.Err())
		records = append(records, fetches.Records()...)
	}
	return records
}

func (s *KafkaSuite) TestPublishRoundTrip() {
	ctx := context.Background()

	client, err := kafka.New(ctx, s.brokers, "licibit.test.publish")
	s.Require().NoError(err)
	s.Require().NotNil(client)
	defer client.Close()

	s.Require().NoError(client.Publish(ctx, "42", []byte(`{"kind":"proposal_submitted"}`)))

	records := s.consume("licibit.test.publish", 1)
	s.Equal("42", string(records[0].Key))
	s.JSONEq(`{"kind":"proposal_submitted"}`, string(records[0].Value))
}

func (s *KafkaSuite) TestNoBrokersDisablesClient() {
	client, err := kafka.New(context.Background(), nil, "licibit.test.disabled")
	s.Require().NoError(err)
	s.Nil(client)
}

// The relay must drain the outbox into the broker and mark rows dispatched so
// they are not re-published on the next tick.
func (s *KafkaSuite) TestRelayDrainsOutbox() {
	ctx := context.Background()

	client, err := kafka.New(ctx, s.brokers, "licibit.test.relay")
	s.Require().NoError(err)
	defer client.Close()

	outbox := notify.NewMemoryOutbox()
	payload, err := json.Marshal(notify.Payload{TenderName: "Torre Mirador", State: "accepted"})
	s.Require().NoError(err)
	s.Require().NoError(outbox.Enqueue(ctx, &notify.Notification{
		Kind:      notify.KindProposalDecided,
		Payload:   payload,
		CreatedAt: time.Now(),
	}))

	relay := notify.NewRelay(outbox, client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(relay.DrainOnce(ctx))

	records := s.consume("licibit.test.relay", 1)
	var got notify.Notification
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(notify.KindProposalDecided, got.Kind)

	var body notify.Payload
	s.Require().NoError(json.Unmarshal(got.Payload, &body))
	s.Equal("Torre Mirador", body.TenderName)

	pending, err := outbox.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)
}

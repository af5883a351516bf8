// Package kafka carries the service's event plumbing: the outbound booking
// event publisher and the supervised inbound replication consumers.
package kafka

import (
	"context"
	"encoding/json"

	zlog "github.com/rs/zerolog/log"
	skafka "github.com/segmentio/kafka-go"

	"github.com/rso-takle-mamo/booking-service/internal/contracts/event"
)

// Writer is the subset of segmentio's kafka.Writer the publisher needs,
// kept narrow so tests can inject a fake.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Publisher writes booking events to a single topic, keyed by booking id so
// one booking's events land on one partition in publication order. No retry
// here: a failed write surfaces to the caller.
type Publisher struct {
	writer Writer
	topic  string
}

func NewPublisher(brokers []string, topic string) *Publisher {
	w := &skafka.Writer{
		Addr:         skafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &skafka.Hash{},
		RequiredAcks: skafka.RequireAll,
	}
	w.Completion = func(messages []skafka.Message, err error) {
		if err != nil {
			return
		}
		for _, m := range messages {
			zlog.Info().
				Str("topic", topic).
				Str("key", string(m.Key)).
				Int("partition", m.Partition).
				Int64("offset", m.Offset).
				Msg("event delivered")
		}
	}
	return &Publisher{writer: w, topic: topic}
}

// NewPublisherWithWriter injects a custom writer. Tests use this.
func NewPublisherWithWriter(w Writer, topic string) *Publisher {
	return &Publisher{writer: w, topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, ev event.Outbound) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	meta := ev.Meta()
	if err := p.writer.WriteMessages(ctx, skafka.Message{
		Key:   []byte(ev.Key()),
		Value: body,
	}); err != nil {
		zlog.Error().Err(err).
			Str("event_id", meta.EventID.String()).
			Str("event_type", meta.EventType).
			Str("topic", p.topic).
			Msg("event publish failed")
		return err
	}

	zlog.Info().
		Str("event_id", meta.EventID.String()).
		Str("event_type", meta.EventType).
		Str("topic", p.topic).
		Str("key", ev.Key()).
		Msg("event published")
	return nil
}

func (p *Publisher) Close() error { return p.writer.Close() }

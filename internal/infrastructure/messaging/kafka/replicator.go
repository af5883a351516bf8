package kafka

import (
	"context"
	"fmt"
	"time"

	zlog "github.com/rs/zerolog/log"
	skafka "github.com/segmentio/kafka-go"

	"github.com/rso-takle-mamo/booking-service/internal/contracts/event"
)

// Fetcher is the subset of segmentio's kafka.Reader the replicator needs.
type Fetcher interface {
	FetchMessage(ctx context.Context) (skafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Applier handles one decoded inbound event.
type Applier interface {
	Apply(ctx context.Context, ev event.Inbound) error
}

// Replicator consumes one inbound topic and projects its events into the
// local read model. Offsets are committed only after the handler succeeds,
// so processing is at-least-once and the handlers must stay idempotent.
//
// Run supervises the consume loop: any abnormal exit (fetch error, panic)
// is logged and the loop restarts with a fresh reader after a backoff,
// instead of leaving replication silently stopped.
type Replicator struct {
	name           string
	newReader      func() Fetcher
	apply          Applier
	connectBackoff time.Duration
	handlerTimeout time.Duration
}

type ReplicatorConfig struct {
	Name           string
	Brokers        []string
	Topic          string
	GroupID        string
	ConnectBackoff time.Duration
	HandlerTimeout time.Duration
}

func NewReplicator(cfg ReplicatorConfig, apply Applier) *Replicator {
	return &Replicator{
		name: cfg.Name,
		newReader: func() Fetcher {
			return skafka.NewReader(skafka.ReaderConfig{
				Brokers: cfg.Brokers,
				Topic:   cfg.Topic,
				GroupID: cfg.GroupID,
				MaxWait: time.Second,
			})
		},
		apply:          apply,
		connectBackoff: cfg.ConnectBackoff,
		handlerTimeout: cfg.HandlerTimeout,
	}
}

// NewReplicatorWithReader injects a reader factory. Tests use this.
func NewReplicatorWithReader(name string, newReader func() Fetcher, apply Applier, connectBackoff, handlerTimeout time.Duration) *Replicator {
	return &Replicator{
		name:           name,
		newReader:      newReader,
		apply:          apply,
		connectBackoff: connectBackoff,
		handlerTimeout: handlerTimeout,
	}
}

// Run blocks until ctx is cancelled, restarting the consume loop whenever it
// exits abnormally.
func (r *Replicator) Run(ctx context.Context) {
	zlog.Info().Str("replicator", r.name).Msg("replicator starting")
	for {
		err := r.consume(ctx)
		if ctx.Err() != nil {
			zlog.Info().Str("replicator", r.name).Msg("replicator stopped")
			return
		}
		zlog.Error().Err(err).
			Str("replicator", r.name).
			Dur("backoff", r.connectBackoff).
			Msg("consume loop exited, restarting")
		if !sleepCtx(ctx, r.connectBackoff) {
			zlog.Info().Str("replicator", r.name).Msg("replicator stopped")
			return
		}
	}
}

func (r *Replicator) consume(ctx context.Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("consume loop panic: %v", p)
		}
	}()

	reader := r.newReader()
	defer reader.Close()

	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		r.handle(ctx, reader, m)
	}
}

func (r *Replicator) handle(ctx context.Context, reader Fetcher, m skafka.Message) {
	ev, err := event.Decode(m.Value)
	if err != nil {
		// Poison-message policy: log and skip without committing. The
		// message reappears on redelivery until a later commit moves past it.
		zlog.Warn().Err(err).
			Str("replicator", r.name).
			Str("topic", m.Topic).
			Int64("offset", m.Offset).
			Msg("undecodable event skipped")
		return
	}

	hctx, cancel := context.WithTimeout(ctx, r.handlerTimeout)
	err = r.apply.Apply(hctx, ev)
	cancel()
	if err != nil {
		// No commit: this message is redelivered and retried.
		zlog.Error().Err(err).
			Str("replicator", r.name).
			Str("topic", m.Topic).
			Int64("offset", m.Offset).
			Msg("event handler failed")
		return
	}

	if err := reader.CommitMessages(ctx, m); err != nil {
		zlog.Error().Err(err).
			Str("replicator", r.name).
			Int64("offset", m.Offset).
			Msg("offset commit failed")
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

package booking

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/rso-takle-mamo/booking-service/internal/contracts/event"
)

// NoopPublisher drops events. Used in local runs without a broker.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, ev event.Outbound) error {
	zlog.Debug().
		Str("event_id", ev.Meta().EventID.String()).
		Str("event_type", ev.Meta().EventType).
		Msg("event dropped (noop publisher)")
	return nil
}

package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/rso-takle-mamo/booking-service/internal/contracts/event"
	"github.com/rso-takle-mamo/booking-service/internal/domain"
	"github.com/rso-takle-mamo/booking-service/internal/security"
)

// Cancel moves a booking the caller owns to cancelled and announces it.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor security.UserContext) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != actor.UserID {
		return nil, domain.ErrForbidden("you can only cancel your own bookings")
	}
	if err := b.Cancel(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	if err := s.pub.Publish(ctx, event.NewBookingCancelled(b)); err != nil {
		return nil, err
	}
	return b, nil
}

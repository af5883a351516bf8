package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rso-takle-mamo/booking-service/internal/contracts/event"
	"github.com/rso-takle-mamo/booking-service/internal/domain"
	"github.com/rso-takle-mamo/booking-service/internal/security"
)

type CreateCmd struct {
	Actor     security.UserContext
	TenantID  uuid.UUID
	ServiceID uuid.UUID
	StartTime time.Time
	Notes     string
}

// Create books a time slot. Preconditions run cheapest-first: input
// validation, catalog lookup, tenant and active checks, then the
// availability call. The availability oracle is only consulted once the
// request is known to be authorized and well-formed.
func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Booking, error) {
	now := s.clock.Now()
	if !cmd.StartTime.After(now) {
		return nil, domain.ErrValidation("start time must be in the future")
	}

	svc, err := s.lookupService(ctx, cmd.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.TenantID != cmd.TenantID {
		return nil, domain.ErrForbidden("you can only book services from your own tenant")
	}
	if !svc.IsActive {
		return nil, domain.ErrConflict("service_inactive", "the selected service is not currently available for booking")
	}

	end := cmd.StartTime.Add(time.Duration(svc.DurationMinutes) * time.Minute)
	res, err := s.avail.CheckAvailability(ctx, cmd.TenantID, cmd.ServiceID, cmd.StartTime, end)
	if err != nil {
		return nil, err
	}
	if !res.Available {
		return nil, domain.ErrConflict("slot_unavailable", conflictMessage(res.Conflicts))
	}

	b, err := domain.NewBooking(cmd.TenantID, cmd.Actor.UserID, cmd.ServiceID, cmd.StartTime, svc.DurationMinutes, cmd.Notes, now)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// Publish is not transactional with the write: a failure here surfaces
	// to the caller even though the booking row exists.
	if err := s.pub.Publish(ctx, event.NewBookingCreated(b)); err != nil {
		return nil, err
	}
	return b, nil
}

func conflictMessage(conflicts []Conflict) string {
	if len(conflicts) == 0 {
		return "the requested time slot is not available"
	}
	parts := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		parts = append(parts, fmt.Sprintf("%s: %s - %s",
			c.Type, c.OverlapStart.UTC().Format("15:04"), c.OverlapEnd.UTC().Format("15:04")))
	}
	return "the requested time slot is not available due to the following conflicts: " + strings.Join(parts, ", ")
}

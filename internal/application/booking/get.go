package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/rso-takle-mamo/booking-service/internal/domain"
	"github.com/rso-takle-mamo/booking-service/internal/security"
)

// GetByID fetches one booking. Customers may only see their own bookings;
// providers see anything inside their tenant.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor security.UserContext) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsCustomer() {
		if b.OwnerID != actor.UserID {
			return nil, domain.ErrForbidden("you can only view your own bookings")
		}
	} else if b.TenantID != actor.TenantID {
		return nil, domain.ErrForbidden("booking belongs to another tenant")
	}
	return b, nil
}

package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rso-takle-mamo/booking-service/internal/domain"
	"github.com/rso-takle-mamo/booking-service/internal/security"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type ListFilter struct {
	TenantID *uuid.UUID
	From     *time.Time
	To       *time.Time
	Status   *domain.BookingStatus
	Offset   int
	Limit    int
}

type ListResult struct {
	Items  []*domain.Booking
	Total  int
	Offset int
	Limit  int
}

// List returns a page of bookings ordered by start time ascending. The base
// set depends on the caller: customers see their own bookings, optionally
// narrowed to one tenant; providers see their whole tenant and may not
// filter by tenant at all.
func (s *Service) List(ctx context.Context, f ListFilter, actor security.UserContext) (*ListResult, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, domain.ErrValidation("unknown booking status")
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	} else if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	q := BookingQuery{
		From:   f.From,
		To:     f.To,
		Status: f.Status,
		Offset: f.Offset,
		Limit:  f.Limit,
	}
	if actor.IsCustomer() {
		owner := actor.UserID
		q.OwnerID = &owner
		q.TenantID = f.TenantID
	} else {
		if f.TenantID != nil {
			return nil, domain.ErrForbidden("providers cannot filter by tenant")
		}
		if actor.TenantID == uuid.Nil {
			return nil, domain.ErrForbidden("provider identity is missing a tenant")
		}
		tenant := actor.TenantID
		q.TenantID = &tenant
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Offset: f.Offset, Limit: f.Limit}, nil
}

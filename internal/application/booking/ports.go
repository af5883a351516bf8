package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rso-takle-mamo/booking-service/internal/contracts/event"
	"github.com/rso-takle-mamo/booking-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// BookingRepo is the persistence collaborator for bookings. This service is
// the only writer.
type BookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	List(ctx context.Context, q BookingQuery) ([]*domain.Booking, int, error)
}

// BookingQuery is the repository-side shape of a list request: the base set
// (owner or tenant) plus optional post-filters, offset/limit pagination.
type BookingQuery struct {
	OwnerID  *uuid.UUID
	TenantID *uuid.UUID
	From     *time.Time
	To       *time.Time
	Status   *domain.BookingStatus
	Offset   int
	Limit    int
}

// ServiceReader reads the replicated service catalog. Replication owns writes;
// booking logic only ever reads.
type ServiceReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

type ConflictType string

const (
	ConflictTimeBlock    ConflictType = "TimeBlock"
	ConflictWorkingHours ConflictType = "WorkingHours"
	ConflictBooking      ConflictType = "Booking"
	ConflictBufferTime   ConflictType = "BufferTime"
	ConflictUnspecified  ConflictType = "Unspecified"
)

type Conflict struct {
	Type         ConflictType
	OverlapStart time.Time
	OverlapEnd   time.Time
}

type AvailabilityResult struct {
	Available bool
	Conflicts []Conflict
}

// AvailabilityChecker is the remote oracle with authoritative knowledge of
// schedule conflicts. A transport-level failure must surface as
// service_unavailable, never as an availability verdict.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, tenantID, serviceID uuid.UUID, start, end time.Time) (AvailabilityResult, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, ev event.Outbound) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

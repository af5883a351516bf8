package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxNotesLen = 1000

type Booking struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	OwnerID   uuid.UUID
	ServiceID uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking builds a pending booking for the given slot. The end time is
// derived from the service duration, never caller-supplied.
func NewBooking(tenantID, ownerID, serviceID uuid.UUID, start time.Time, durationMinutes int, notes string, now time.Time) (*Booking, error) {
	if tenantID == uuid.Nil {
		return nil, ErrValidation("tenant_id is required")
	}
	if ownerID == uuid.Nil {
		return nil, ErrValidation("owner_id is required")
	}
	if serviceID == uuid.Nil {
		return nil, ErrValidation("service_id is required")
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > maxNotesLen {
		return nil, ErrValidation("notes must be <= 1000 chars")
	}
	if durationMinutes <= 0 {
		return nil, ErrValidation("service duration must be positive")
	}
	if !start.After(now) {
		return nil, ErrValidation("booking start time must be in the future")
	}

	b := &Booking{
		ID:        uuid.New(),
		TenantID:  tenantID,
		OwnerID:   ownerID,
		ServiceID: serviceID,
		StartTime: start.UTC(),
		EndTime:   start.UTC().Add(time.Duration(durationMinutes) * time.Minute),
		Status:    StatusPending,
		Notes:     notes,
	}
	b.StampNew(now)
	return b, nil
}

// Cancel is the only status transition a booking supports today. It is legal
// from pending/confirmed only.
func (b *Booking) Cancel(now time.Time) error {
	switch b.Status {
	case StatusCancelled:
		return ErrConflict("status", "booking is already cancelled")
	case StatusCompleted:
		return ErrConflict("status", "cannot cancel a completed booking")
	}
	b.Status = StatusCancelled
	b.Touch(now)
	return nil
}

func (b *Booking) StampNew(now time.Time) {
	b.CreatedAt = now.UTC()
	b.UpdatedAt = now.UTC()
}

func (b *Booking) Touch(now time.Time) {
	b.UpdatedAt = now.UTC()
}

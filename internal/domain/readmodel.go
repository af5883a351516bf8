package domain

import (
	"time"

	"github.com/google/uuid"
)

// Timestamped is implemented by every locally persisted entity so that save
// paths stamp created/updated times explicitly, without runtime type inspection.
type Timestamped interface {
	StampNew(now time.Time)
	Touch(now time.Time)
}

// Service is a read-model replica of the catalog service's Service entity.
// It is created, updated and deleted only by replicated catalog events;
// booking logic treats it as read-only ground truth for duration and
// availability eligibility.
type Service struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	CategoryID      uuid.UUID
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Service) StampNew(now time.Time) {
	s.CreatedAt = now.UTC()
	s.UpdatedAt = now.UTC()
}

func (s *Service) Touch(now time.Time) { s.UpdatedAt = now.UTC() }

// Category is a read-model replica, read-only to booking logic.
type Category struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) StampNew(now time.Time) {
	c.CreatedAt = now.UTC()
	c.UpdatedAt = now.UTC()
}

func (c *Category) Touch(now time.Time) { c.UpdatedAt = now.UTC() }

// Tenant is a read-model replica of the tenant service's business profile.
type Tenant struct {
	ID           uuid.UUID
	BusinessName string
	Email        string
	Phone        string
	Address      string
	TimeZone     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Tenant) StampNew(now time.Time) {
	t.CreatedAt = now.UTC()
	t.UpdatedAt = now.UTC()
}

func (t *Tenant) Touch(now time.Time) { t.UpdatedAt = now.UTC() }

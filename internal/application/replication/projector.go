// Package replication applies upstream tenant and catalog events to the
// local read-model tables. It is the only writer for services, categories
// and tenants; booking logic only reads them.
package replication

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/rso-takle-mamo/booking-service/internal/application/booking"
	"github.com/rso-takle-mamo/booking-service/internal/contracts/event"
	"github.com/rso-takle-mamo/booking-service/internal/domain"
)

type ServiceRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	Insert(ctx context.Context, s *domain.Service) error
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Insert(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TenantRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	Insert(ctx context.Context, t *domain.Tenant) error
	Update(ctx context.Context, t *domain.Tenant) error
}

type Cache interface {
	Delete(ctx context.Context, keys ...string) error
}

type Clock interface{ Now() time.Time }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// Projector holds one handler per inbound event variant. Every handler is
// idempotent so redelivered messages are absorbed: creates skip existing
// rows, updates and deletes warn and no-op on absent rows.
type Projector struct {
	services   ServiceRepo
	categories CategoryRepo
	tenants    TenantRepo
	cache      Cache
	clock      Clock
}

type Option func(*Projector)

func WithClock(c Clock) Option {
	return func(p *Projector) { p.clock = c }
}

// WithCache enables invalidation of cached service entries on edit/delete.
func WithCache(c Cache) Option {
	return func(p *Projector) { p.cache = c }
}

func NewProjector(services ServiceRepo, categories CategoryRepo, tenants TenantRepo, opts ...Option) *Projector {
	p := &Projector{
		services:   services,
		categories: categories,
		tenants:    tenants,
		clock:      realClock{},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Apply dispatches one decoded event to its handler. The switch covers the
// whole closed inbound set; the default arm only fires if a new variant is
// added to the contract package without a handler here.
func (p *Projector) Apply(ctx context.Context, ev event.Inbound) error {
	switch e := ev.(type) {
	case *event.TenantCreated:
		return p.tenantCreated(ctx, e)
	case *event.TenantUpdated:
		return p.tenantUpdated(ctx, e)
	case *event.ServiceCreated:
		return p.serviceCreated(ctx, e)
	case *event.ServiceEdited:
		return p.serviceEdited(ctx, e)
	case *event.ServiceDeleted:
		return p.serviceDeleted(ctx, e)
	case *event.CategoryCreated:
		return p.categoryCreated(ctx, e)
	case *event.CategoryEdited:
		return p.categoryEdited(ctx, e)
	case *event.CategoryDeleted:
		return p.categoryDeleted(ctx, e)
	default:
		return errors.New("unhandled inbound event variant")
	}
}

func isNotFound(err error) bool {
	var ae *domain.AppError
	return errors.As(err, &ae) && ae.Code == domain.CodeNotFound
}

func (p *Projector) tenantCreated(ctx context.Context, e *event.TenantCreated) error {
	if _, err := p.tenants.GetByID(ctx, e.TenantID); err == nil {
		zlog.Warn().Str("tenant_id", e.TenantID.String()).Msg("tenant already exists, skipping create")
		return nil
	} else if !isNotFound(err) {
		return err
	}

	t := &domain.Tenant{
		ID:           e.TenantID,
		BusinessName: e.BusinessName,
		Email:        e.BusinessEmail,
		Phone:        e.BusinessPhone,
		Address:      e.Address,
	}
	t.StampNew(p.clock.Now())
	if err := p.tenants.Insert(ctx, t); err != nil {
		return err
	}
	zlog.Info().Str("tenant_id", e.TenantID.String()).Msg("tenant replicated")
	return nil
}

func (p *Projector) tenantUpdated(ctx context.Context, e *event.TenantUpdated) error {
	existing, err := p.tenants.GetByID(ctx, e.TenantID)
	if err != nil {
		if isNotFound(err) {
			zlog.Warn().Str("tenant_id", e.TenantID.String()).Msg("tenant not found for update, skipping")
			return nil
		}
		return err
	}

	existing.BusinessName = e.BusinessName
	existing.Email = e.BusinessEmail
	existing.Phone = e.BusinessPhone
	existing.Address = e.Address
	existing.Touch(p.clock.Now())
	return p.tenants.Update(ctx, existing)
}

func (p *Projector) serviceCreated(ctx context.Context, e *event.ServiceCreated) error {
	if _, err := p.services.GetByID(ctx, e.ServiceID); err == nil {
		zlog.Warn().Str("service_id", e.ServiceID.String()).Msg("service already exists, skipping create")
		return nil
	} else if !isNotFound(err) {
		return err
	}

	s := &domain.Service{
		ID:              e.ServiceID,
		TenantID:        e.TenantID,
		CategoryID:      e.CategoryID,
		Name:            e.Name,
		Description:     e.Description,
		DurationMinutes: e.DurationMinutes,
		Price:           e.Price,
		IsActive:        e.IsActive,
	}
	s.StampNew(p.clock.Now())
	if err := p.services.Insert(ctx, s); err != nil {
		return err
	}
	zlog.Info().Str("service_id", e.ServiceID.String()).Msg("service replicated")
	return nil
}

func (p *Projector) serviceEdited(ctx context.Context, e *event.ServiceEdited) error {
	existing, err := p.services.GetByID(ctx, e.ServiceID)
	if err != nil {
		if isNotFound(err) {
			zlog.Warn().Str("service_id", e.ServiceID.String()).Msg("service not found for update, skipping")
			return nil
		}
		return err
	}

	existing.TenantID = e.TenantID
	existing.CategoryID = e.CategoryID
	existing.Name = e.Name
	existing.Description = e.Description
	existing.DurationMinutes = e.DurationMinutes
	existing.Price = e.Price
	existing.IsActive = e.IsActive
	existing.Touch(p.clock.Now())
	if err := p.services.Update(ctx, existing); err != nil {
		return err
	}
	p.invalidateService(ctx, e.ServiceID)
	return nil
}

func (p *Projector) serviceDeleted(ctx context.Context, e *event.ServiceDeleted) error {
	if _, err := p.services.GetByID(ctx, e.ServiceID); err != nil {
		if isNotFound(err) {
			zlog.Warn().Str("service_id", e.ServiceID.String()).Msg("service not found for delete, skipping")
			return nil
		}
		return err
	}
	if err := p.services.Delete(ctx, e.ServiceID); err != nil {
		return err
	}
	p.invalidateService(ctx, e.ServiceID)
	return nil
}

func (p *Projector) categoryCreated(ctx context.Context, e *event.CategoryCreated) error {
	if _, err := p.categories.GetByID(ctx, e.CategoryID); err == nil {
		zlog.Warn().Str("category_id", e.CategoryID.String()).Msg("category already exists, skipping create")
		return nil
	} else if !isNotFound(err) {
		return err
	}

	c := &domain.Category{
		ID:       e.CategoryID,
		TenantID: e.TenantID,
		Name:     e.Name,
	}
	c.StampNew(p.clock.Now())
	return p.categories.Insert(ctx, c)
}

func (p *Projector) categoryEdited(ctx context.Context, e *event.CategoryEdited) error {
	existing, err := p.categories.GetByID(ctx, e.CategoryID)
	if err != nil {
		if isNotFound(err) {
			zlog.Warn().Str("category_id", e.CategoryID.String()).Msg("category not found for update, skipping")
			return nil
		}
		return err
	}

	existing.TenantID = e.TenantID
	existing.Name = e.Name
	existing.Touch(p.clock.Now())
	return p.categories.Update(ctx, existing)
}

func (p *Projector) categoryDeleted(ctx context.Context, e *event.CategoryDeleted) error {
	if _, err := p.categories.GetByID(ctx, e.CategoryID); err != nil {
		if isNotFound(err) {
			zlog.Warn().Str("category_id", e.CategoryID.String()).Msg("category not found for delete, skipping")
			return nil
		}
		return err
	}
	return p.categories.Delete(ctx, e.CategoryID)
}

func (p *Projector) invalidateService(ctx context.Context, id uuid.UUID) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Delete(ctx, booking.ServiceCacheKey(id)); err != nil {
		zlog.Warn().Err(err).Str("service_id", id.String()).Msg("service cache invalidation failed")
	}
}

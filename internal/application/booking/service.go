package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/rso-takle-mamo/booking-service/internal/domain"
)

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// Service orchestrates the booking lifecycle: validation, catalog and
// availability checks, persistence and event publication.
type Service struct {
	repo     BookingRepo
	services ServiceReader
	avail    AvailabilityChecker
	pub      EventPublisher
	cache    Cache
	clock    Clock

	serviceTTL time.Duration
}

type Option func(*Service)

func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithCache enables the read-through cache for service catalog lookups.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.serviceTTL = ttl
	}
}

func NewService(repo BookingRepo, services ServiceReader, avail AvailabilityChecker, pub EventPublisher, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		services: services,
		avail:    avail,
		pub:      pub,
		clock:    realClock{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// lookupService resolves a catalog entry cache-first. Cache failures are
// logged and treated as misses; the replicated table stays authoritative.
func (s *Service) lookupService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	key := serviceCacheKey(id)
	if s.cache != nil {
		var cached domain.Service
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("service cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, svc, s.serviceTTL); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("service cache write failed")
		}
	}
	return svc, nil
}

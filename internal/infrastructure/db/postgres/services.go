package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rso-takle-mamo/booking-service/internal/domain"
)

type ServiceRepo struct {
	db *sql.DB
}

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

func (r *ServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	row := r.db.QueryRowContext(ctx, getServiceSQL, id)

	var s domain.Service
	err := row.Scan(
		&s.ID, &s.TenantID, &s.CategoryID, &s.Name, &s.Description,
		&s.DurationMinutes, &s.Price, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("service not found")
	}
	if err != nil {
		return nil, domain.ErrDatabase("select", "service", err)
	}
	return &s, nil
}

func (r *ServiceRepo) Insert(ctx context.Context, s *domain.Service) error {
	_, err := r.db.ExecContext(ctx, insertServiceSQL,
		s.ID, s.TenantID, s.CategoryID, s.Name, s.Description,
		s.DurationMinutes, s.Price, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return domain.ErrDatabase("insert", "service", err)
	}
	return nil
}

func (r *ServiceRepo) Update(ctx context.Context, s *domain.Service) error {
	_, err := r.db.ExecContext(ctx, updateServiceSQL,
		s.ID, s.TenantID, s.CategoryID, s.Name, s.Description,
		s.DurationMinutes, s.Price, s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		return domain.ErrDatabase("update", "service", err)
	}
	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, deleteServiceSQL, id)
	if err != nil {
		return domain.ErrDatabase("delete", "service", err)
	}
	return nil
}

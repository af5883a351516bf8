package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rso-takle-mamo/booking-service/internal/domain"
)

type TenantRepo struct {
	db *sql.DB
}

func NewTenantRepo(db *sql.DB) *TenantRepo { return &TenantRepo{db: db} }

func (r *TenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx, getTenantSQL, id)

	var t domain.Tenant
	err := row.Scan(
		&t.ID, &t.BusinessName, &t.Email, &t.Phone, &t.Address, &t.TimeZone,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("tenant not found")
	}
	if err != nil {
		return nil, domain.ErrDatabase("select", "tenant", err)
	}
	return &t, nil
}

func (r *TenantRepo) Insert(ctx context.Context, t *domain.Tenant) error {
	_, err := r.db.ExecContext(ctx, insertTenantSQL,
		t.ID, t.BusinessName, t.Email, t.Phone, t.Address, t.TimeZone,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return domain.ErrDatabase("insert", "tenant", err)
	}
	return nil
}

func (r *TenantRepo) Update(ctx context.Context, t *domain.Tenant) error {
	_, err := r.db.ExecContext(ctx, updateTenantSQL,
		t.ID, t.BusinessName, t.Email, t.Phone, t.Address, t.TimeZone, t.UpdatedAt,
	)
	if err != nil {
		return domain.ErrDatabase("update", "tenant", err)
	}
	return nil
}

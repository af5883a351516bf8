package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rso-takle-mamo/booking-service/internal/domain"
)

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, getCategorySQL, id)

	var c domain.Category
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("category not found")
	}
	if err != nil {
		return nil, domain.ErrDatabase("select", "category", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Insert(ctx context.Context, c *domain.Category) error {
	_, err := r.db.ExecContext(ctx, insertCategorySQL,
		c.ID, c.TenantID, c.Name, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return domain.ErrDatabase("insert", "category", err)
	}
	return nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	_, err := r.db.ExecContext(ctx, updateCategorySQL,
		c.ID, c.TenantID, c.Name, c.UpdatedAt,
	)
	if err != nil {
		return domain.ErrDatabase("update", "category", err)
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, deleteCategorySQL, id)
	if err != nil {
		return domain.ErrDatabase("delete", "category", err)
	}
	return nil
}

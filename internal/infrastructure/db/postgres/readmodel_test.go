package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rso-takle-mamo/booking-service/internal/domain"
)

func TestServiceRepo_RoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewServiceRepo(db)
	now := time.Now().UTC()
	s := &domain.Service{
		ID: uuid.New(), TenantID: uuid.New(), CategoryID: uuid.New(),
		Name: "haircut", Description: "30 min", DurationMinutes: 30, Price: 25, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}

	t.Run("insert", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO services").
			WithArgs(
				s.ID, s.TenantID, s.CategoryID, s.Name, s.Description,
				s.DurationMinutes, s.Price, s.IsActive, s.CreatedAt, s.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))
		assert.NoError(t, repo.Insert(context.Background(), s))
	})

	t.Run("get_maps_row", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "tenant_id", "category_id", "name", "description",
			"duration_minutes", "price", "is_active", "created_at", "updated_at",
		}).AddRow(
			s.ID, s.TenantID, s.CategoryID, s.Name, s.Description,
			s.DurationMinutes, s.Price, s.IsActive, s.CreatedAt, s.UpdatedAt,
		)
		mock.ExpectQuery("SELECT (.+) FROM services WHERE id =").
			WithArgs(s.ID).
			WillReturnRows(rows)

		got, err := repo.GetByID(context.Background(), s.ID)
		require.NoError(t, err)
		assert.Equal(t, 30, got.DurationMinutes)
		assert.True(t, got.IsActive)
	})

	t.Run("get_missing_is_not_found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM services WHERE id =").
			WithArgs(s.ID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(context.Background(), s.ID)
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeNotFound, ae.Code)
	})

	t.Run("delete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM services WHERE id =").
			WithArgs(s.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(context.Background(), s.ID))
	})
}

func TestTenantRepo_RoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTenantRepo(db)
	now := time.Now().UTC()
	tn := &domain.Tenant{
		ID: uuid.New(), BusinessName: "Oak Barbershop",
		Email: "hi@oak.example", Phone: "+38641111222", Address: "Trg 1", TimeZone: "Europe/Ljubljana",
		CreatedAt: now, UpdatedAt: now,
	}

	t.Run("insert_and_update", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO tenants").
			WithArgs(tn.ID, tn.BusinessName, tn.Email, tn.Phone, tn.Address, tn.TimeZone, tn.CreatedAt, tn.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		assert.NoError(t, repo.Insert(context.Background(), tn))

		mock.ExpectExec("UPDATE tenants SET").
			WithArgs(tn.ID, tn.BusinessName, tn.Email, tn.Phone, tn.Address, tn.TimeZone, tn.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Update(context.Background(), tn))
	})

	t.Run("get_maps_row", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "business_name", "email", "phone", "address", "time_zone", "created_at", "updated_at",
		}).AddRow(tn.ID, tn.BusinessName, tn.Email, tn.Phone, tn.Address, tn.TimeZone, tn.CreatedAt, tn.UpdatedAt)
		mock.ExpectQuery("SELECT (.+) FROM tenants WHERE id =").
			WithArgs(tn.ID).
			WillReturnRows(rows)

		got, err := repo.GetByID(context.Background(), tn.ID)
		require.NoError(t, err)
		assert.Equal(t, "Oak Barbershop", got.BusinessName)
	})
}

func TestCategoryRepo_RoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepo(db)
	now := time.Now().UTC()
	c := &domain.Category{ID: uuid.New(), TenantID: uuid.New(), Name: "hair", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec("INSERT INTO categories").
		WithArgs(c.ID, c.TenantID, c.Name, c.CreatedAt, c.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	assert.NoError(t, repo.Insert(context.Background(), c))

	mock.ExpectExec("DELETE FROM categories WHERE id =").
		WithArgs(c.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), c.ID))
}

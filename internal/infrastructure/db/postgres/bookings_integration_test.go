package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rso-takle-mamo/booking-service/internal/application/booking"
	"github.com/rso-takle-mamo/booking-service/internal/domain"
)

const bookingsSchema = `
CREATE TABLE bookings (
	id         UUID PRIMARY KEY,
	tenant_id  UUID NOT NULL,
	owner_id   UUID NOT NULL,
	service_id UUID NOT NULL,
	start_time TIMESTAMPTZ NOT NULL,
	end_time   TIMESTAMPTZ NOT NULL,
	status     TEXT NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);`

// setupTestDatabase starts a throwaway postgres container and applies the
// bookings schema. Skipped with -short or when Docker is unavailable.
func setupTestDatabase(t *testing.T) *sql.DB {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	if _, err := testcontainers.NewDockerClientWithOpts(ctx); err != nil {
		t.Skipf("skipping integration test because Docker is unavailable: %v", err)
	}

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := sql.Open("postgres",
		"postgres://testuser:testpass@"+host+":"+port.Port()+"/testdb?sslmode=disable")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(ctx))
	_, err = db.ExecContext(ctx, bookingsSchema)
	require.NoError(t, err)
	return db
}

func TestBookingRepo_Integration(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewBookingRepo(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tenant := uuid.New()
	owner := uuid.New()

	mustBooking := func(start time.Time) *domain.Booking {
		b, err := domain.NewBooking(tenant, owner, uuid.New(), start, 30, "", now)
		require.NoError(t, err)
		return b
	}

	t.Run("create_get_round_trip", func(t *testing.T) {
		b, err := domain.NewBooking(tenant, owner, uuid.New(),
			now.Add(24*time.Hour), 45, "bring documents", now)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, b))

		got, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
		assert.Equal(t, b.TenantID, got.TenantID)
		assert.Equal(t, b.OwnerID, got.OwnerID)
		assert.Equal(t, domain.StatusPending, got.Status)
		assert.Equal(t, "bring documents", got.Notes)
		assert.True(t, b.StartTime.Equal(got.StartTime))
		assert.True(t, b.EndTime.Equal(got.EndTime))
	})

	t.Run("get_missing_maps_to_not_found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.CodeNotFound, appErr.Code)
	})

	t.Run("update_persists_cancellation", func(t *testing.T) {
		b := mustBooking(now.Add(48 * time.Hour))
		require.NoError(t, repo.Create(ctx, b))

		require.NoError(t, b.Cancel(now.Add(time.Hour)))
		require.NoError(t, repo.Update(ctx, b))

		got, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, got.Status)
	})

	t.Run("list_filters_and_paginates", func(t *testing.T) {
		otherOwner := uuid.New()
		for i := 0; i < 5; i++ {
			b := mustBooking(now.Add(time.Duration(100+i) * time.Hour))
			require.NoError(t, repo.Create(ctx, b))
		}
		stranger, err := domain.NewBooking(tenant, otherOwner, uuid.New(),
			now.Add(200*time.Hour), 30, "", now)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, stranger))

		from := now.Add(99 * time.Hour)
		items, total, err := repo.List(ctx, booking.BookingQuery{
			OwnerID: &owner,
			From:    &from,
			Offset:  0,
			Limit:   3,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, items, 3)
		// Ordered by start_time ascending.
		assert.True(t, items[0].StartTime.Before(items[1].StartTime))
		for _, b := range items {
			assert.Equal(t, owner, b.OwnerID)
		}
	})
}

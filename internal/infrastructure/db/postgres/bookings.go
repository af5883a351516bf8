// Package postgres holds the sql repositories for the booking write model
// and the replicated read-model tables.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rso-takle-mamo/booking-service/internal/application/booking"
	"github.com/rso-takle-mamo/booking-service/internal/domain"
)

type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	_, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.ID, b.TenantID, b.OwnerID, b.ServiceID,
		b.StartTime, b.EndTime, string(b.Status), b.Notes,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return domain.ErrDatabase("insert", "booking", err)
	}
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, getBookingSQL, id)

	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("booking not found")
	}
	if err != nil {
		return nil, domain.ErrDatabase("select", "booking", err)
	}
	return b, nil
}

func (r *BookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	_, err := r.db.ExecContext(ctx, updateBookingSQL,
		b.ID, b.StartTime, b.EndTime, string(b.Status), b.Notes, b.UpdatedAt,
	)
	if err != nil {
		return domain.ErrDatabase("update", "booking", err)
	}
	return nil
}

// List applies the query's filters in SQL, orders by start time ascending and
// pages by offset/limit. The returned total counts the filtered set before
// pagination.
func (r *BookingRepo) List(ctx context.Context, q booking.BookingQuery) ([]*domain.Booking, int, error) {
	var where []string
	var args []any
	argN := 1

	add := func(cond string, v any) {
		where = append(where, fmt.Sprintf(cond, argN))
		args = append(args, v)
		argN++
	}

	if q.OwnerID != nil {
		add("owner_id = $%d", *q.OwnerID)
	}
	if q.TenantID != nil {
		add("tenant_id = $%d", *q.TenantID)
	}
	if q.From != nil {
		add("start_time >= $%d", q.From.UTC())
	}
	if q.To != nil {
		add("end_time <= $%d", q.To.UTC())
	}
	if q.Status != nil {
		add("status = $%d", string(*q.Status))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countRow := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings "+whereSQL, args...)
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, domain.ErrDatabase("count", "booking", err)
	}

	listSQL := fmt.Sprintf(`
SELECT %s
FROM bookings
%s
ORDER BY start_time ASC, id ASC
LIMIT $%d OFFSET $%d`, bookingColumns, whereSQL, argN, argN+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, domain.ErrDatabase("select", "booking", err)
	}
	defer rows.Close()

	var out []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, domain.ErrDatabase("scan", "booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.ErrDatabase("scan", "booking", err)
	}
	return out, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var status string
	err := row.Scan(
		&b.ID, &b.TenantID, &b.OwnerID, &b.ServiceID,
		&b.StartTime, &b.EndTime, &status, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatus(status)
	return &b, nil
}

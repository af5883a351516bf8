package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	assert.NoError(t, err)
	return tt.UTC()
}

func TestNewBooking(t *testing.T) {
	now := mustTime(t, "2025-12-25T10:00:00Z")
	tenantID := uuid.New()
	ownerID := uuid.New()
	serviceID := uuid.New()

	t.Run("end_time_derived_from_duration", func(t *testing.T) {
		start := now.Add(2 * time.Hour)
		b, err := NewBooking(tenantID, ownerID, serviceID, start, 30, "bring towel", now)
		assert.NoError(t, err)
		assert.Equal(t, start, b.StartTime)
		assert.Equal(t, start.Add(30*time.Minute), b.EndTime)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, now, b.CreatedAt)
		assert.Equal(t, now, b.UpdatedAt)
	})

	t.Run("start_in_past_rejected", func(t *testing.T) {
		_, err := NewBooking(tenantID, ownerID, serviceID, now.Add(-time.Minute), 30, "", now)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be in the future")
	})

	t.Run("start_equal_now_rejected", func(t *testing.T) {
		_, err := NewBooking(tenantID, ownerID, serviceID, now, 30, "", now)
		assert.Error(t, err)
	})

	t.Run("notes_too_long", func(t *testing.T) {
		_, err := NewBooking(tenantID, ownerID, serviceID, now.Add(time.Hour), 30, strings.Repeat("x", 1001), now)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "notes")
	})

	t.Run("missing_ids_rejected", func(t *testing.T) {
		_, err := NewBooking(uuid.Nil, ownerID, serviceID, now.Add(time.Hour), 30, "", now)
		assert.Error(t, err)
	})
}

func TestBooking_Cancel(t *testing.T) {
	now := mustTime(t, "2025-12-25T10:00:00Z")

	cases := []struct {
		status  BookingStatus
		wantErr bool
	}{
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusCancelled, true},
		{StatusCompleted, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			b := &Booking{ID: uuid.New(), Status: tc.status}
			err := b.Cancel(now)
			if tc.wantErr {
				assert.Error(t, err)
				var ae *AppError
				assert.ErrorAs(t, err, &ae)
				assert.Equal(t, CodeConflict, ae.Code)
				assert.Equal(t, tc.status, b.Status, "status must be unchanged on rejected cancel")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, StatusCancelled, b.Status)
			assert.Equal(t, now, b.UpdatedAt)
		})
	}
}

package event

import "github.com/rso-takle-mamo/booking-service/internal/domain"

// NewBookingCreated snapshots a freshly persisted booking.
func NewBookingCreated(b *domain.Booking) BookingCreated {
	return BookingCreated{
		Envelope:  NewEnvelope(TypeBookingCreated, b.CreatedAt),
		BookingID: b.ID,
		TenantID:  b.TenantID,
		OwnerID:   b.OwnerID,
		ServiceID: b.ServiceID,
		StartTime: b.StartTime.UTC(),
		EndTime:   b.EndTime.UTC(),
		Status:    string(b.Status),
		Notes:     b.Notes,
	}
}

func NewBookingCancelled(b *domain.Booking) BookingCancelled {
	return BookingCancelled{
		Envelope:  NewEnvelope(TypeBookingCancelled, b.UpdatedAt),
		BookingID: b.ID,
		TenantID:  b.TenantID,
		OwnerID:   b.OwnerID,
		ServiceID: b.ServiceID,
	}
}

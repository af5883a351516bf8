package dto

import "github.com/rso-takle-mamo/booking-service/internal/domain"

func ToBookingResp(b *domain.Booking) BookingResp {
	return BookingResp{
		ID:        b.ID.String(),
		TenantID:  b.TenantID.String(),
		OwnerID:   b.OwnerID.String(),
		ServiceID: b.ServiceID.String(),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func ToBookingPage(items []*domain.Booking, offset, limit, total int) PageResp[BookingResp] {
	out := PageResp[BookingResp]{
		Items:  make([]BookingResp, 0, len(items)),
		Offset: offset,
		Limit:  limit,
		Total:  total,
	}
	for _, b := range items {
		out.Items = append(out.Items, ToBookingResp(b))
	}
	return out
}

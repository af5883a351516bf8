package dto

import "time"

type CreateBookingReq struct {
	TenantID  string    `json:"tenant_id"`
	ServiceID string    `json:"service_id"`
	StartTime time.Time `json:"start_time"`
	Notes     string    `json:"notes"`
}

// BookingResp is the stable API response model.
type BookingResp struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	OwnerID   string    `json:"owner_id"`
	ServiceID string    `json:"service_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PageResp[T any] struct {
	Items  []T `json:"items"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

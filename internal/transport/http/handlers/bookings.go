package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rso-takle-mamo/booking-service/internal/application/booking"
	"github.com/rso-takle-mamo/booking-service/internal/domain"
	"github.com/rso-takle-mamo/booking-service/internal/transport/http/dto"
	"github.com/rso-takle-mamo/booking-service/internal/transport/http/middleware"
	"github.com/rso-takle-mamo/booking-service/internal/transport/http/response"
	"github.com/rso-takle-mamo/booking-service/internal/transport/http/validate"
)

type BookingsHandler struct {
	svc *booking.Service
}

func NewBookingsHandler(svc *booking.Service) *BookingsHandler {
	return &BookingsHandler{svc: svc}
}

// Create books a slot. Customer-only; the tenant comes from the request body
// because a customer may book across tenants.
func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.User(r)
	if !ok {
		response.Err(w, r, domain.ErrUnauthenticated("missing identity"))
		return
	}
	if !actor.IsCustomer() {
		response.Err(w, r, domain.ErrForbidden("only customers can create bookings"))
		return
	}

	var req dto.CreateBookingReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid json body"))
		return
	}
	if req.TenantID == "" {
		response.Err(w, r, domain.ErrForbidden("tenant id is required"))
		return
	}
	tenantID, err := validate.UUIDField(req.TenantID, "tenant_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	serviceID, err := validate.UUIDField(req.ServiceID, "service_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	if req.StartTime.IsZero() {
		response.Err(w, r, domain.ErrValidationMeta("invalid request field", map[string]string{
			"start_time": "must be an RFC3339 timestamp",
		}))
		return
	}

	b, err := h.svc.Create(r.Context(), booking.CreateCmd{
		Actor:     actor,
		TenantID:  tenantID,
		ServiceID: serviceID,
		StartTime: req.StartTime.UTC(),
		Notes:     req.Notes,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToBookingResp(b))
}

func (h *BookingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.User(r)
	if !ok {
		response.Err(w, r, domain.ErrUnauthenticated("missing identity"))
		return
	}
	id, err := validate.UUIDField(chi.URLParam(r, "booking_id"), "booking_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	b, err := h.svc.GetByID(r.Context(), id, actor)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToBookingResp(b))
}

func (h *BookingsHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.User(r)
	if !ok {
		response.Err(w, r, domain.ErrUnauthenticated("missing identity"))
		return
	}

	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	f := booking.ListFilter{Offset: offset, Limit: limit}

	if v := q.Get("tenant_id"); v != "" {
		id, err := validate.UUIDField(v, "tenant_id")
		if err != nil {
			response.Err(w, r, err)
			return
		}
		f.TenantID = &id
	} else if actor.IsCustomer() {
		// Customers pick the tenant whose bookings they want to see;
		// providers are pinned to their own tenant instead.
		response.Err(w, r, domain.ErrForbidden("tenant id is required to list bookings"))
		return
	}

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"from": "must be RFC3339 timestamp",
			}))
			return
		}
		tt := t.UTC()
		f.From = &tt
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"to": "must be RFC3339 timestamp",
			}))
			return
		}
		tt := t.UTC()
		f.To = &tt
	}
	if v := q.Get("status"); v != "" {
		st := domain.BookingStatus(v)
		f.Status = &st
	}

	res, err := h.svc.List(r.Context(), f, actor)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToBookingPage(res.Items, res.Offset, res.Limit, res.Total))
}

// Cancel is customer-only; ownership is enforced by the service.
func (h *BookingsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.User(r)
	if !ok {
		response.Err(w, r, domain.ErrUnauthenticated("missing identity"))
		return
	}
	if !actor.IsCustomer() {
		response.Err(w, r, domain.ErrForbidden("only customers can cancel bookings"))
		return
	}
	id, err := validate.UUIDField(chi.URLParam(r, "booking_id"), "booking_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	b, err := h.svc.Cancel(r.Context(), id, actor)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToBookingResp(b))
}

// Package availability is the HTTP adapter for the remote availability
// oracle. Every transport-level failure maps to a single retriable
// service_unavailable error; only a decoded 2xx payload may carry the
// business verdict.
package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/rso-takle-mamo/booking-service/internal/application/booking"
	"github.com/rso-takle-mamo/booking-service/internal/domain"
	appctx "github.com/rso-takle-mamo/booking-service/internal/pkg/context"
)

const checkPath = "/availability/v1/check"

type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		// Per-call deadline comes from the request context.
		http: &http.Client{Timeout: 0},
	}
}

type checkRequest struct {
	TenantID  uuid.UUID `json:"tenantId"`
	ServiceID uuid.UUID `json:"serviceId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type wireConflict struct {
	Type         string    `json:"type"`
	OverlapStart time.Time `json:"overlapStart"`
	OverlapEnd   time.Time `json:"overlapEnd"`
}

type checkResponse struct {
	IsAvailable bool           `json:"isAvailable"`
	Conflicts   []wireConflict `json:"conflicts"`
}

func (c *Client) CheckAvailability(ctx context.Context, tenantID, serviceID uuid.UUID, start, end time.Time) (booking.AvailabilityResult, error) {
	body, err := json.Marshal(checkRequest{
		TenantID:  tenantID,
		ServiceID: serviceID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
	})
	if err != nil {
		return booking.AvailabilityResult{}, domain.ErrUnavailable("availability service is unavailable, please retry later")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+checkPath, bytes.NewReader(body))
	if err != nil {
		return booking.AvailabilityResult{}, c.unavailable(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if reqID := appctx.GetRequestID(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	startedAt := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return booking.AvailabilityResult{}, c.unavailable(err, "transport")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zlog.Warn().
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(startedAt)).
			Msg("availability check returned non-2xx")
		return booking.AvailabilityResult{}, domain.ErrUnavailable("availability service is unavailable, please retry later")
	}

	var wire checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return booking.AvailabilityResult{}, c.unavailable(err, "decode response")
	}

	zlog.Debug().
		Bool("available", wire.IsAvailable).
		Int("conflicts", len(wire.Conflicts)).
		Dur("duration", time.Since(startedAt)).
		Msg("availability check completed")

	res := booking.AvailabilityResult{Available: wire.IsAvailable}
	for _, wc := range wire.Conflicts {
		res.Conflicts = append(res.Conflicts, booking.Conflict{
			Type:         parseConflictType(wc.Type),
			OverlapStart: wc.OverlapStart,
			OverlapEnd:   wc.OverlapEnd,
		})
	}
	return res, nil
}

func (c *Client) unavailable(err error, stage string) error {
	zlog.Warn().Err(err).Str("stage", stage).Msg("availability check failed")
	return domain.ErrUnavailable("availability service is unavailable, please retry later")
}

func parseConflictType(raw string) booking.ConflictType {
	switch booking.ConflictType(raw) {
	case booking.ConflictTimeBlock, booking.ConflictWorkingHours, booking.ConflictBooking, booking.ConflictBufferTime:
		return booking.ConflictType(raw)
	default:
		return booking.ConflictUnspecified
	}
}

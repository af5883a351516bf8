package response

import "net/http"

// RequestIDFromRequest extracts the request id set by the request-id
// middleware from the response-bound header, falling back to the inbound one.
func RequestIDFromRequest(r *http.Request) string {
	if v := r.Header.Get("X-Request-Id"); v != "" {
		return v
	}
	return r.Header.Get("X-Request-ID")
}

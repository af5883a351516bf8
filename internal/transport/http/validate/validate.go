package validate

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/rso-takle-mamo/booking-service/internal/domain"
)

func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// UUIDField parses a required uuid request field.
func UUIDField(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrValidationMeta("invalid request field", map[string]string{
			field: "must be a uuid",
		})
	}
	return id, nil
}

// Package event defines the wire contract shared with the upstream platform:
// a flat JSON document with camelCase fields, discriminated by eventType.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// outbound (booking-events)
	TypeBookingCreated   = "BookingCreated"
	TypeBookingCancelled = "BookingCancelled"

	// inbound (tenant-events)
	TypeTenantCreated = "TenantCreated"
	TypeTenantUpdated = "TenantUpdated"

	// inbound (service-catalog-events)
	TypeServiceCreated  = "ServiceCreated"
	TypeServiceEdited   = "ServiceEdited"
	TypeServiceDeleted  = "ServiceDeleted"
	TypeCategoryCreated = "CategoryCreated"
	TypeCategoryEdited  = "CategoryEdited"
	TypeCategoryDeleted = "CategoryDeleted"
)

var (
	ErrMalformed   = errors.New("malformed event payload")
	ErrUnknownType = errors.New("unknown event type")
)

// Envelope carries the fields every event shares. Concrete events embed it so
// the wire document stays flat.
type Envelope struct {
	EventID   uuid.UUID `json:"eventId"`
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEnvelope(eventType string, now time.Time) Envelope {
	return Envelope{EventID: uuid.New(), EventType: eventType, Timestamp: now.UTC()}
}

// Outbound is the closed set of events this service publishes. Key returns
// the partition key so one booking's events stay ordered for any consumer.
type Outbound interface {
	Meta() Envelope
	Key() string
}

type BookingCreated struct {
	Envelope
	BookingID uuid.UUID `json:"bookingId"`
	TenantID  uuid.UUID `json:"tenantId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	ServiceID uuid.UUID `json:"serviceId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
}

type BookingCancelled struct {
	Envelope
	BookingID uuid.UUID `json:"bookingId"`
	TenantID  uuid.UUID `json:"tenantId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	ServiceID uuid.UUID `json:"serviceId"`
}

func (e BookingCreated) Meta() Envelope   { return e.Envelope }
func (e BookingCreated) Key() string      { return e.BookingID.String() }
func (e BookingCancelled) Meta() Envelope { return e.Envelope }
func (e BookingCancelled) Key() string    { return e.BookingID.String() }

// Inbound is the closed set of replicated upstream events. Dispatch is an
// exhaustive type switch over these variants; a new variant added here fails
// to compile until every switch handles it.
type Inbound interface{ isInbound() }

type TenantCreated struct {
	Envelope
	TenantID      uuid.UUID `json:"tenantId"`
	BusinessName  string    `json:"businessName"`
	BusinessEmail string    `json:"businessEmail"`
	BusinessPhone string    `json:"businessPhone"`
	Address       string    `json:"address"`
}

type TenantUpdated struct {
	Envelope
	TenantID      uuid.UUID `json:"tenantId"`
	BusinessName  string    `json:"businessName"`
	BusinessEmail string    `json:"businessEmail"`
	BusinessPhone string    `json:"businessPhone"`
	Address       string    `json:"address"`
}

type ServiceCreated struct {
	Envelope
	ServiceID       uuid.UUID `json:"serviceId"`
	TenantID        uuid.UUID `json:"tenantId"`
	CategoryID      uuid.UUID `json:"categoryId"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	IsActive        bool      `json:"isActive"`
}

type ServiceEdited struct {
	Envelope
	ServiceID       uuid.UUID `json:"serviceId"`
	TenantID        uuid.UUID `json:"tenantId"`
	CategoryID      uuid.UUID `json:"categoryId"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	IsActive        bool      `json:"isActive"`
}

type ServiceDeleted struct {
	Envelope
	ServiceID uuid.UUID `json:"serviceId"`
}

type CategoryCreated struct {
	Envelope
	CategoryID uuid.UUID `json:"categoryId"`
	TenantID   uuid.UUID `json:"tenantId"`
	Name       string    `json:"name"`
}

type CategoryEdited struct {
	Envelope
	CategoryID uuid.UUID `json:"categoryId"`
	TenantID   uuid.UUID `json:"tenantId"`
	Name       string    `json:"name"`
}

type CategoryDeleted struct {
	Envelope
	CategoryID uuid.UUID `json:"categoryId"`
}

func (TenantCreated) isInbound()   {}
func (TenantUpdated) isInbound()   {}
func (ServiceCreated) isInbound()  {}
func (ServiceEdited) isInbound()   {}
func (ServiceDeleted) isInbound()  {}
func (CategoryCreated) isInbound() {}
func (CategoryEdited) isInbound()  {}
func (CategoryDeleted) isInbound() {}

// Decode turns a raw message body into an inbound variant. Malformed JSON or
// a missing discriminator maps to ErrMalformed; a well-formed document with a
// discriminator outside the closed set maps to ErrUnknownType. Consumers must
// treat both as skippable.
func Decode(data []byte) (Inbound, error) {
	var probe struct {
		EventType string `json:"eventType"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if probe.EventType == "" {
		return nil, fmt.Errorf("%w: missing eventType", ErrMalformed)
	}

	decodeInto := func(dst Inbound) (Inbound, error) {
		if err := json.Unmarshal(data, dst); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return dst, nil
	}

	switch probe.EventType {
	case TypeTenantCreated:
		return decodeInto(&TenantCreated{})
	case TypeTenantUpdated:
		return decodeInto(&TenantUpdated{})
	case TypeServiceCreated:
		return decodeInto(&ServiceCreated{})
	case TypeServiceEdited:
		return decodeInto(&ServiceEdited{})
	case TypeServiceDeleted:
		return decodeInto(&ServiceDeleted{})
	case TypeCategoryCreated:
		return decodeInto(&CategoryCreated{})
	case TypeCategoryEdited:
		return decodeInto(&CategoryEdited{})
	case TypeCategoryDeleted:
		return decodeInto(&CategoryDeleted{})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, probe.EventType)
	}
}

package security

import (
	"github.com/google/uuid"

	"github.com/rso-takle-mamo/booking-service/internal/domain"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// UserContext is the per-request identity: derived once from the verified
// token at request entry and passed explicitly into application operations.
// It is a value type and never mutated after construction.
type UserContext struct {
	UserID   uuid.UUID
	TenantID uuid.UUID // uuid.Nil for customers without a tenant binding
	Role     Role
}

// NewUserContext validates the raw claim values. The upstream identity
// provider historically encoded roles numerically ("0" provider, "1"
// customer); both forms are accepted.
func NewUserContext(userID, tenantID, role string) (UserContext, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return UserContext{}, domain.ErrUnauthenticated("invalid or missing user id claim")
	}

	var tid uuid.UUID
	if tenantID != "" {
		tid, err = uuid.Parse(tenantID)
		if err != nil {
			return UserContext{}, domain.ErrUnauthenticated("invalid tenant id claim")
		}
	}

	r, err := parseRole(role)
	if err != nil {
		return UserContext{}, err
	}

	return UserContext{UserID: uid, TenantID: tid, Role: r}, nil
}

func parseRole(raw string) (Role, error) {
	switch raw {
	case "customer", "Customer", "1":
		return RoleCustomer, nil
	case "provider", "Provider", "0":
		return RoleProvider, nil
	default:
		return "", domain.ErrUnauthenticated("invalid or missing role claim")
	}
}

func (u UserContext) IsCustomer() bool { return u.Role == RoleCustomer }

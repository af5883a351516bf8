package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rso-takle-mamo/booking-service/internal/security"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, uid, tenant, role, issuer string) string {
	t.Helper()
	claims := Claims{
		UserID:   uid,
		TenantID: tenant,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware_Require(t *testing.T) {
	auth := NewAuth(testSecret, "auth-service")

	var captured security.UserContext
	var hit bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, hit = User(r)
		w.WriteHeader(http.StatusOK)
	})
	protected := auth.Require(next)

	do := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rr := httptest.NewRecorder()
		hit = false
		protected.ServeHTTP(rr, req)
		return rr
	}

	t.Run("valid_token_builds_identity", func(t *testing.T) {
		uid := uuid.New()
		tenant := uuid.New()
		rr := do("Bearer " + signToken(t, testSecret, uid.String(), tenant.String(), "customer", "auth-service"))

		require.Equal(t, http.StatusOK, rr.Code)
		require.True(t, hit)
		assert.Equal(t, uid, captured.UserID)
		assert.Equal(t, tenant, captured.TenantID)
		assert.Equal(t, security.RoleCustomer, captured.Role)
	})

	t.Run("numeric_role_claims_are_accepted", func(t *testing.T) {
		rr := do("Bearer " + signToken(t, testSecret, uuid.NewString(), uuid.NewString(), "0", "auth-service"))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, security.RoleProvider, captured.Role)
	})

	t.Run("missing_header_is_401", func(t *testing.T) {
		rr := do("")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, hit)
	})

	t.Run("wrong_secret_is_401", func(t *testing.T) {
		rr := do("Bearer " + signToken(t, "other-secret", uuid.NewString(), "", "customer", "auth-service"))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong_issuer_is_401", func(t *testing.T) {
		rr := do("Bearer " + signToken(t, testSecret, uuid.NewString(), "", "customer", "someone-else"))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage_uid_claim_is_401", func(t *testing.T) {
		rr := do("Bearer " + signToken(t, testSecret, "not-a-uuid", "", "customer", "auth-service"))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

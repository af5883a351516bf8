package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rso-takle-mamo/booking-service/internal/security"
	"github.com/rso-takle-mamo/booking-service/internal/transport/http/response"
)

type ctxKey string

const ctxUser ctxKey = "user_context"

type Claims struct {
	UserID   string `json:"uid"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	secret []byte
	issuer string
}

func NewAuth(secret, issuer string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret), issuer: issuer}
}

// Require verifies the bearer token and builds the immutable identity value
// handlers pass into application operations. It is constructed once here;
// nothing downstream re-reads claims.
func (a *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.parse(r)
		if err != nil {
			response.Fail(
				w,
				http.StatusUnauthorized,
				"unauthenticated",
				"unauthenticated",
				map[string]string{"reason": err.Error()},
				response.RequestIDFromRequest(r),
			)
			return
		}

		user, err := security.NewUserContext(claims.UserID, claims.TenantID, claims.Role)
		if err != nil {
			response.Err(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *AuthMiddleware) parse(r *http.Request) (*Claims, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, errors.New("missing bearer token")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	if a.issuer != "" && claims.Issuer != a.issuer {
		return nil, errors.New("invalid issuer")
	}
	return claims, nil
}

// User returns the identity stored by Require. The second return is false on
// routes that skipped the middleware.
func User(r *http.Request) (security.UserContext, bool) {
	u, ok := r.Context().Value(ctxUser).(security.UserContext)
	return u, ok
}

// WithUser injects an identity directly, bypassing token verification.
// Handler tests use this.
func WithUser(ctx context.Context, u security.UserContext) context.Context {
	return context.WithValue(ctx, ctxUser, u)
}

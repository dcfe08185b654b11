package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"restaurant-backend/restaurant-svc/internal/domain"
)

const (
	MsgNoToken      = "No token, authorization denied"
	MsgTokenExpired = "Session expired, please log in again"
	MsgTokenInvalid = "Token is not valid"
	MsgForbidden    = "Forbidden: Insufficient permissions"
)

type Verifier interface {
	Verify(token string) (*Claims, error)
}

type claimsKey struct{}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Denial describes why a request was refused.
type Denial struct {
	Status  int
	Message string
}

// Authorize checks the request's bearer token against roles. No roles means
// any authenticated caller.
func Authorize(verifier Verifier, r *http.Request, roles ...domain.Role) (*Claims, *Denial) {
	token := BearerToken(r)
	if token == "" {
		return nil, &Denial{Status: http.StatusUnauthorized, Message: MsgNoToken}
	}

	claims, err := verifier.Verify(token)
	if errors.Is(err, ErrTokenExpired) {
		return nil, &Denial{Status: http.StatusUnauthorized, Message: MsgTokenExpired}
	}
	if err != nil {
		return nil, &Denial{Status: http.StatusUnauthorized, Message: MsgTokenInvalid}
	}

	if !allowed(claims.Role, roles) {
		return nil, &Denial{Status: http.StatusForbidden, Message: MsgForbidden}
	}
	return claims, nil
}

// Require wraps next with Authorize and stores the claims on the request context.
func Require(verifier Verifier, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, denial := Authorize(verifier, r, roles...)
			if denial != nil {
				Deny(w, denial)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func allowed(role domain.Role, roles []domain.Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func Deny(w http.ResponseWriter, d *Denial) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(d.Status)
	json.NewEncoder(w).Encode(map[string]string{"message": d.Message})
}

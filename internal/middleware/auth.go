package middleware

import (
	"context"
	"net/http"

	"github.com/dkrasnov/backoffice/internal/domain"
	internal_errors "github.com/dkrasnov/backoffice/internal/errors"
	jwt_internal "github.com/dkrasnov/backoffice/internal/jwt"
	"github.com/dkrasnov/backoffice/internal/utils"
)

// Key to store the session claims in the request context
type key int

const UserClaimsKey key = 0

const SessionCookieName = "token"

// Auth holds dependencies for the authentication gate.
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires a valid session token.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that additionally requires the admin role.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

var errNotAuthenticated = &internal_errors.ErrorWithStatusCode{Message: "Not authenticated", StatusCode: http.StatusUnauthorized}

// extractClaims reads the session cookie and verifies the token. A missing
// cookie and an invalid token are indistinguishable to the client.
func (a *Auth) extractClaims(r *http.Request) (*jwt_internal.Claims, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, errNotAuthenticated
	}

	claims, err := a.jwtService.DecodeToken(cookie.Value)
	if err != nil {
		return nil, errNotAuthenticated
	}

	return claims, nil
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := a.extractClaims(r)
			if err != nil {
				utils.WriteError(w, err)
				return
			}

			if adminOnly && claims.Role != domain.RoleAdmin {
				utils.WriteError(w, &internal_errors.ErrorWithStatusCode{Message: "Access denied", StatusCode: http.StatusForbidden})
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext retrieves the session claims attached by the gate.
func GetClaimsFromContext(r *http.Request) *jwt_internal.Claims {
	claims, ok := r.Context().Value(UserClaimsKey).(*jwt_internal.Claims)
	if !ok {
		return nil
	}
	return claims
}

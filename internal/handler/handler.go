package handler

import (
	"net/http"

	"github.com/dkrasnov/backoffice/internal/config"
	"github.com/dkrasnov/backoffice/internal/jwt"
	"github.com/dkrasnov/backoffice/internal/middleware"
	"github.com/dkrasnov/backoffice/internal/service"
)

type Handler struct {
	auth    service.AuthService
	origins service.OriginService
	users   service.UserService
	profile service.ProfileService
	cfg     *config.Config

	// Derived once at wiring time from the configured frontend URL.
	cookieDomain string
}

func New(auth service.AuthService, origins service.OriginService, users service.UserService, profile service.ProfileService, cfg *config.Config) *Handler {
	return &Handler{
		auth:         auth,
		origins:      origins,
		users:        users,
		profile:      profile,
		cfg:          cfg,
		cookieDomain: jwt.DeriveCookieDomain(cfg.Public.FrontendUrl),
	}
}

// sessionCookie builds the session cookie with issuance attributes. The
// Domain attribute is attached only in production: browsers reject dotted
// domains for bare localhost, so development binds to the exact host.
func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.Production(),
	}
	if h.cfg.Production() && h.cookieDomain != "" {
		cookie.Domain = h.cookieDomain
	}
	return cookie
}

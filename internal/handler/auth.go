package handler

import (
	"net/http"

	"github.com/dkrasnov/backoffice/internal/domain"
	"github.com/dkrasnov/backoffice/internal/middleware"
	"github.com/dkrasnov/backoffice/internal/utils"
)

type credentials struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := utils.DecodeValidate(r.Body, &creds); err != nil {
		utils.WriteError(w, err)
		return
	}

	token, user, err := h.auth.Login(domain.Credentials{Email: creds.Email, Password: creds.Password})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	// Auth responses must never be cached.
	w.Header().Set("Cache-Control", "no-store")
	http.SetCookie(w, h.sessionCookie(token, int(h.cfg.JwtTTL().Seconds())))

	utils.WriteJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	// Attributes must match the ones set at login or the browser keeps the
	// cookie. The token itself stays valid until expiry (stateless scheme).
	http.SetCookie(w, h.sessionCookie("", -1))

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the session claims of the authenticated caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)
	if claims == nil {
		utils.WriteError(w, errNotAuthenticated)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":    claims.UserId,
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}

package handler

import (
	"net/http"

	"github.com/dkrasnov/backoffice/internal/errors"
	"github.com/dkrasnov/backoffice/internal/service"
	"github.com/dkrasnov/backoffice/internal/utils"
)

// GetDeveloperProfile is the only public data endpoint: the portfolio card
// shown on the login page. A missing profile is not an error to the client.
func (h *Handler) GetDeveloperProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profile.DeveloperProfile()
	if err != nil {
		if errors.IsNotFound(err) {
			utils.WriteJSON(w, http.StatusOK, map[string]*service.DeveloperProfile{"developerProfile": nil})
			return
		}
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]service.DeveloperProfile{"developerProfile": profile})
}

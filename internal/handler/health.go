package handler

import (
	"net/http"

	"github.com/dkrasnov/backoffice/internal/utils"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

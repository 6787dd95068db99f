package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dkrasnov/backoffice/internal/domain"
	"github.com/dkrasnov/backoffice/internal/utils"
)

type allowedHostBody struct {
	Url         string `validate:"required" json:"url"`
	DisplayName string `validate:"required,max=64" json:"displayName"`
}

type allowedHostResponse struct {
	Message     string               `json:"message"`
	AllowedHost domain.TrustedOrigin `json:"allowedHost"`
}

func (h *Handler) GetAllowedHosts(w http.ResponseWriter, r *http.Request) {
	origins, err := h.origins.Origins()
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string][]domain.TrustedOrigin{"allowedHosts": origins})
}

func (h *Handler) CreateAllowedHost(w http.ResponseWriter, r *http.Request) {
	var body allowedHostBody
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	created, err := h.origins.Create(body.Url, body.DisplayName)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, allowedHostResponse{
		Message:     "Allowed host created successfully",
		AllowedHost: created,
	})
}

func (h *Handler) UpdateAllowedHost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var body allowedHostBody
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	updated, err := h.origins.Update(id, body.Url, body.DisplayName)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, allowedHostResponse{
		Message:     "Allowed host updated successfully",
		AllowedHost: updated,
	})
}

func (h *Handler) DeleteAllowedHost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	deleted, err := h.origins.Delete(id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, allowedHostResponse{
		Message:     "Allowed host deleted successfully",
		AllowedHost: deleted,
	})
}

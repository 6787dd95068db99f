package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dkrasnov/backoffice/internal/domain"
	"github.com/dkrasnov/backoffice/internal/service"
	"github.com/dkrasnov/backoffice/internal/utils"
)

type createUserBody struct {
	Email        string `validate:"required,email" json:"email"`
	Password     string `validate:"required,min=6" json:"password"`
	FirstName    string `validate:"required" json:"firstName"`
	LastName     string `validate:"required" json:"lastName"`
	Username     string `json:"username"`
	Address      string `json:"address"`
	Occupation   string `json:"occupation"`
	Organization string `json:"organization"`
	Role         *int   `validate:"required,oneof=0 1" json:"role"`
}

type updateUserBody struct {
	Email        string `validate:"required,email" json:"email"`
	Password     string `validate:"omitempty,min=6" json:"password"`
	FirstName    string `validate:"required" json:"firstName"`
	LastName     string `validate:"required" json:"lastName"`
	Username     string `json:"username"`
	Address      string `json:"address"`
	Occupation   string `json:"occupation"`
	Organization string `json:"organization"`
	Role         *int   `validate:"required,oneof=0 1" json:"role"`
}

type userResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Users()
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string][]domain.User{"users": users})
}

func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	var body createUserBody
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	created, err := h.users.Create(service.UserParams{
		Email:        body.Email,
		Password:     body.Password,
		Username:     body.Username,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Address:      body.Address,
		Occupation:   body.Occupation,
		Organization: body.Organization,
		Role:         domain.Role(*body.Role),
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, userResponse{Message: "User created successfully", User: created})
}

func (h *Handler) EditUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body updateUserBody
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	updated, err := h.users.Update(id, service.UserParams{
		Email:        body.Email,
		Password:     body.Password,
		Username:     body.Username,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Address:      body.Address,
		Occupation:   body.Occupation,
		Organization: body.Organization,
		Role:         domain.Role(*body.Role),
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, userResponse{Message: "User updated successfully", User: updated})
}

type toggleUserBody struct {
	Id       string `validate:"required" json:"id"`
	IsActive bool   `json:"isActive"`
}

// DisableUser toggles the active flag: an active user is disabled and vice
// versa, mirroring the admin table's single toggle button.
func (h *Handler) DisableUser(w http.ResponseWriter, r *http.Request) {
	var body toggleUserBody
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	user, err := h.users.ToggleActive(body.Id, !body.IsActive)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	message := "User Enabled"
	if body.IsActive {
		message = "User Disabled"
	}
	utils.WriteJSON(w, http.StatusOK, userResponse{Message: message, User: user})
}

type deleteUserBody struct {
	Id string `validate:"required" json:"id"`
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var body deleteUserBody
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	deleted, err := h.users.Delete(body.Id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, userResponse{Message: "User deleted successfully", User: deleted})
}

package service

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/dkrasnov/backoffice/internal/domain"
	internal_errors "github.com/dkrasnov/backoffice/internal/errors"
	"github.com/dkrasnov/backoffice/internal/logger"
)

type UserService interface {
	Users() ([]domain.User, error)
	Create(params UserParams) (domain.User, error)
	Update(id string, params UserParams) (domain.User, error)
	ToggleActive(id string, active bool) (domain.User, error)
	Delete(id string) (domain.User, error)
}

type UserStorage interface {
	Users() ([]domain.User, error)
	User(id string) (domain.User, error)
	SaveUser(user domain.User) (domain.User, error)
	UpdateUser(user domain.User) (domain.User, error)
	SetUserActive(id string, active bool) (domain.User, error)
	DeleteUser(id string) (domain.User, error)
}

// UserParams carries admin-entered fields for create/update. Password is
// optional on update; empty keeps the stored hash.
type UserParams struct {
	Email        string
	Password     string
	Username     string
	FirstName    string
	LastName     string
	Address      string
	Occupation   string
	Organization string
	Role         domain.Role
}

type User struct {
	storage UserStorage
}

func NewUser(storage UserStorage) *User {
	return &User{storage: storage}
}

func (u *User) Users() ([]domain.User, error) {
	users, err := u.storage.Users()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PassHash = ""
	}
	return users, nil
}

func (u *User) Create(params UserParams) (domain.User, error) {
	if params.Password == "" {
		return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "Password is required", StatusCode: http.StatusBadRequest}
	}
	passHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	created, err := u.storage.SaveUser(domain.User{
		Email:        params.Email,
		Username:     params.Username,
		PassHash:     string(passHash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Address:      params.Address,
		Occupation:   params.Occupation,
		Organization: params.Organization,
		Role:         params.Role,
		IsActive:     true,
	})
	if err != nil {
		return domain.User{}, err
	}

	created.PassHash = ""
	return created, nil
}

func (u *User) Update(id string, params UserParams) (domain.User, error) {
	// Password is rehashed only when a new one is supplied.
	var passHash string
	if params.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Error("failed to hash password", "error", err)
			return domain.User{}, err
		}
		passHash = string(hash)
	}

	updated, err := u.storage.UpdateUser(domain.User{
		Id:           id,
		Email:        params.Email,
		Username:     params.Username,
		PassHash:     passHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Address:      params.Address,
		Occupation:   params.Occupation,
		Organization: params.Organization,
		Role:         params.Role,
	})
	if err != nil {
		return domain.User{}, err
	}

	updated.PassHash = ""
	return updated, nil
}

func (u *User) ToggleActive(id string, active bool) (domain.User, error) {
	user, err := u.storage.SetUserActive(id, active)
	if err != nil {
		return domain.User{}, err
	}
	user.PassHash = ""
	return user, nil
}

func (u *User) Delete(id string) (domain.User, error) {
	existing, err := u.storage.User(id)
	if err != nil {
		return domain.User{}, err
	}
	if existing.IsLocked {
		return domain.User{}, &internal_errors.ErrorWithStatusCode{
			Message:    "This user is locked and cannot be deleted",
			StatusCode: http.StatusBadRequest,
		}
	}

	deleted, err := u.storage.DeleteUser(id)
	if err != nil {
		return domain.User{}, err
	}
	deleted.PassHash = ""
	return deleted, nil
}

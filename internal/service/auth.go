package service

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dkrasnov/backoffice/internal/domain"
	"github.com/dkrasnov/backoffice/internal/errors"
	"github.com/dkrasnov/backoffice/internal/logger"
)

type AuthService interface {
	Login(creds domain.Credentials) (string, domain.User, error)
}

type CredentialStorage interface {
	UserByEmail(email string) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

type Auth struct {
	storage CredentialStorage
	jwt     Jwt
}

func NewAuth(storage CredentialStorage, jwt Jwt) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

// Unknown email, inactive account and wrong password all collapse to this
// one message so the endpoint cannot be used to enumerate accounts.
var errInvalidLogin = &errors.ErrorWithStatusCode{
	Message:    "Invalid credentials or inactive account",
	StatusCode: http.StatusUnauthorized,
}

// Login verifies credentials and returns a signed session token plus the
// sanitized user record.
func (a *Auth) Login(creds domain.Credentials) (string, domain.User, error) {
	email := strings.ToLower(creds.Email)

	user, err := a.storage.UserByEmail(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", domain.User{}, errInvalidLogin
		}
		return "", domain.User{}, err
	}

	if !user.IsActive {
		return "", domain.User{}, errInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Debug("password verification failed", "email", email)
		return "", domain.User{}, errInvalidLogin
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create session token", "user_id", user.Id, "error", err)
		return "", domain.User{}, err
	}

	user.PassHash = ""
	return token, user, nil
}

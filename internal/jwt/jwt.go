package jwt

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dkrasnov/backoffice/internal/domain"
	internal_errors "github.com/dkrasnov/backoffice/internal/errors"
	"github.com/dkrasnov/backoffice/internal/logger"
)

// Claims is the identity embedded in a session token.
type Claims struct {
	UserId string
	Email  string
	Role   domain.Role
}

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (*Claims, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

// errInvalidToken is the single outcome for every verification failure:
// malformed input, wrong signature, wrong algorithm and expiry all look the
// same to the caller, so responses cannot leak why a token was rejected.
var errInvalidToken = &internal_errors.ErrorWithStatusCode{Message: "Not authenticated", StatusCode: http.StatusUnauthorized}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":   user.Id,
		"email": user.Email,
		"role":  int(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", err
	}

	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (*Claims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		logger.Log.Debug("token verification failed", "error", err)
		return nil, errInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}

	uid, ok := mapClaims["uid"].(string)
	if !ok {
		return nil, errInvalidToken
	}
	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil, errInvalidToken
	}
	role, ok := mapClaims["role"].(float64)
	if !ok {
		return nil, errInvalidToken
	}

	return &Claims{UserId: uid, Email: email, Role: domain.Role(role)}, nil
}

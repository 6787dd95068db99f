package domain

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dkrasnov/backoffice/internal/errors"
)

// TrustedOrigin is a scheme+host value permitted to make credentialed
// cross-origin requests against the API. Locked rows are seeded by the
// system and must not be deletable from the admin UI.
type TrustedOrigin struct {
	Id          int64     `json:"id"`
	Url         string    `json:"url"`
	DisplayName string    `json:"displayName"`
	IsLocked    bool      `json:"isLocked"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NormalizeOrigin canonicalizes an origin URL before it is stored or
// compared: lowercased scheme and host, no path, query or trailing slash.
// Uniqueness in the store holds on the normalized form, so two entries
// differing only by case or a trailing slash cannot coexist.
func NormalizeOrigin(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimRight(trimmed, "/")

	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", &errors.ErrorWithStatusCode{Message: "Host must be an origin like https://app.example.com", StatusCode: http.StatusBadRequest}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &errors.ErrorWithStatusCode{Message: "Host must use http or https", StatusCode: http.StatusBadRequest}
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return "", &errors.ErrorWithStatusCode{Message: "Host must not contain a path, query or credentials", StatusCode: http.StatusBadRequest}
	}

	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host), nil
}

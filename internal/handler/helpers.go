package handler

import (
	"fmt"
	"net/http"
	"strconv"

	internal_errors "github.com/dkrasnov/backoffice/internal/errors"
)

var errNotAuthenticated = &internal_errors.ErrorWithStatusCode{Message: "Not authenticated", StatusCode: http.StatusUnauthorized}

// parseIntParam parses an integer route parameter with a meaningful error.
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("invalid %s: must be an integer", paramName),
			StatusCode: http.StatusBadRequest,
		}
	}
	return val, nil
}

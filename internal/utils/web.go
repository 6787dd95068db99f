package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dkrasnov/backoffice/internal/errors"
	"github.com/dkrasnov/backoffice/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError translates a typed error into the wire format: the status from
// ErrorWithStatusCode, 500 otherwise. Internal detail never leaves the
// process on a 500.
func WriteError(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.ErrorWithStatusCode); ok {
		WriteJSON(w, e.StatusCode, errorResponse{Error: e.Message})
		return
	}
	logger.Log.Error("unclassified handler error", "error", err)
	WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "An unexpected error occurred"})
}

func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("invalid request body", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request body failed validation", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Required fields missing or invalid", StatusCode: http.StatusBadRequest}
	}
	return nil
}

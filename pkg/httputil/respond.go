package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/scorewell/engrave/pkg/errors"
)

// errorEnvelope is the JSON body of every failed response.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as a JSON error envelope, deriving the HTTP status
// from the error's code.
func WriteError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	WriteJSON(w, StatusForCode(code), errorEnvelope{
		Error: errorBody{
			Code:    string(code),
			Message: errors.UserMessage(err),
		},
	})
}

// StatusForCode maps a domain error code to an HTTP status code.
// Unknown codes map to 500.
func StatusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPath,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnresolvable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

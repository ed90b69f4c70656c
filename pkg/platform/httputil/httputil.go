// Package httputil provides JSON response helpers shared by all handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aohus/political-metrics/pkg/domainerrors"
	"github.com/aohus/political-metrics/pkg/platform/sentinel"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError translates a domain or sentinel error into a JSON error
// response. Unclassified errors surface as 500 without leaking internals.
func WriteError(w http.ResponseWriter, err error) {
	if errors.Is(err, sentinel.ErrNotFound) {
		writeErrorBody(w, http.StatusNotFound, string(domainerrors.CodeNotFound), "not found")
		return
	}
	if errors.Is(err, sentinel.ErrUnavailable) {
		writeErrorBody(w, http.StatusServiceUnavailable, string(domainerrors.CodeInternal), "temporarily unavailable")
		return
	}

	code := domainerrors.CodeOf(err)
	var de *domainerrors.Error
	if errors.As(err, &de) {
		writeErrorBody(w, statusFor(code), string(code), de.Message)
		return
	}
	writeErrorBody(w, http.StatusInternalServerError, string(code), "internal error")
}

func statusFor(code domainerrors.Code) int {
	switch code {
	case domainerrors.CodeValidation:
		return http.StatusBadRequest
	case domainerrors.CodeNotFound:
		return http.StatusNotFound
	case domainerrors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// Package httputil maps domain errors onto HTTP responses so every handler
// serializes failures the same way.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	derrors "attest/pkg/domain-errors"
)

var statusByCode = map[derrors.Code]int{
	derrors.CodeInvalidArgument: http.StatusBadRequest,
	derrors.CodeDuplicateAsset:  http.StatusConflict,
	derrors.CodeNotFound:        http.StatusNotFound,
	derrors.CodeAlreadyRevoked:  http.StatusConflict,
	derrors.CodeUnauthorized:    http.StatusUnauthorized,
	derrors.CodeUnavailable:     http.StatusServiceUnavailable,
	derrors.CodeTimeout:         http.StatusGatewayTimeout,
	derrors.CodeInternal:        http.StatusInternalServerError,
}

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError serializes a domain error. Internal errors omit the description
// so implementation detail never leaks to callers.
func WriteError(w http.ResponseWriter, err error) {
	code := derrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := errorBody{Error: string(code)}
	var de *derrors.Error
	if code != derrors.CodeInternal && errors.As(err, &de) {
		body.Description = de.Message
	}

	WriteJSON(w, status, body)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/autoharness/cartool-core/internal/functions"
	"github.com/autoharness/cartool-core/internal/property"
	"github.com/autoharness/cartool-core/internal/vhal"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest         = "bad_request"
	ErrCodeNotFound           = "not_found"
	ErrCodeUnauthorized       = "unauthorised"
	ErrCodeForbidden          = "forbidden"
	ErrCodeNotAuthorized      = "not_authorized"
	ErrCodeNotAvailable       = "not_available"
	ErrCodeRejected           = "rejected"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeInternal           = "internal_error"
	ErrCodeMethodNotAllow     = "method_not_allowed"
)

// internalMessage is the only text a client sees for a 500.
const internalMessage = "internal server error"

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeUnauthorized writes a 401 error response.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// writeForbidden writes a 403 error response.
func writeForbidden(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, ErrCodeForbidden, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, internalMessage)
}

// functionError classifies an error returned by a function call.
// Internal failures carry the opaque message.
func functionError(err error) Error {
	e := Error{Message: err.Error()}

	var accessErr *property.AccessError
	switch {
	case errors.As(err, &accessErr) && errors.Is(err, property.ErrNotAuthorized):
		e.Status, e.Code, e.Message = http.StatusForbidden, ErrCodeNotAuthorized, accessErr.Error()
	case errors.As(err, &accessErr) && errors.Is(err, property.ErrNotAvailable):
		e.Status, e.Code, e.Message = http.StatusConflict, ErrCodeNotAvailable, accessErr.Error()
	case errors.Is(err, functions.ErrUnknownFunction):
		e.Status, e.Code = http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, functions.ErrInvalidArguments):
		e.Status, e.Code = http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, vhal.ErrServiceUnavailable):
		e.Status, e.Code, e.Message = http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "vehicle service unavailable"
	case errors.Is(err, vhal.ErrWriteRejected),
		errors.Is(err, vhal.ErrReadRejected),
		errors.Is(err, vhal.ErrTypeMismatch),
		errors.Is(err, vhal.ErrUnknownProperty):
		e.Status, e.Code = http.StatusUnprocessableEntity, ErrCodeRejected
	default:
		e.Status, e.Code, e.Message = http.StatusInternalServerError, ErrCodeInternal, internalMessage
	}
	return e
}

// writeFunctionError logs err and writes its classified response.
func (s *Server) writeFunctionError(w http.ResponseWriter, r *http.Request, name string, err error) {
	e := functionError(err)
	if e.Status >= http.StatusInternalServerError {
		s.logger.Error("function call failed",
			"function", name,
			"error", err,
			"request_id", r.Context().Value(ctxKeyRequestID),
		)
	}
	writeJSON(w, e.Status, e)
}

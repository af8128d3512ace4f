package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/finplan/internal/domain"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Field     string `json:"field,omitempty"`
	Operation string `json:"operation,omitempty"`
	ErrorID   string `json:"error_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// writeInternalError answers 500 with an id the client can quote; the cause
// is only logged.
func writeInternalError(w http.ResponseWriter) string {
	id := uuid.New().String()
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:     "Internal server error",
		ErrorID:   id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	return id
}

// RequireMethod validates the HTTP method and returns true if it matches.
// If it doesn't match, it writes a 405 response and returns false.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func jsonTypeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

// DecodeJSON reads and decodes JSON from the request body into v. Fields
// missing from the body keep the values v already holds.
// Returns false and writes a 400 error if decoding fails.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil || r.Body == http.NoBody {
		WriteError(w, http.StatusBadRequest, "Request body is required")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			ve := domain.NewValidationError(typeErr.Field, "must be %s, got %s", jsonTypeName(typeErr.Type), typeErr.Value)
			WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: ve.Error(),
				Kind:  string(domain.KindValidation),
				Field: ve.Field,
			})
			return false
		}
		WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return false
	}
	return true
}

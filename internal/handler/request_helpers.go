package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/veylan/ForgeLedger_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// Parameters:
//   - r: The HTTP request containing the JSON body
//   - w: The HTTP response writer to send error responses
//   - req: Pointer to the request struct to decode into (must implement validation tags)
//   - actionName: Human-readable name for the action (e.g., "Refining calculation")
//
// Returns:
//   - error: nil if successful, error if decoding or validation failed
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	// Decode JSON body
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	// Log the decoded request at debug level
	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	// Validate the request struct
	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam retrieves and validates a required query parameter from the request.
// If the parameter is missing or empty, it writes an error response and returns false.
// If ok is false, the HTTP response has already been written and the handler should return.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		http.Error(w, fmt.Sprintf(ErrMsgMissingQueryParam, paramName), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter from the request.
// Unlike GetQueryParam, this does not write an error response if the parameter is missing.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// respondServiceError logs a failed service call and writes the mapped error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	log.Error(fmt.Sprintf("%s failed", opName), "error", err)

	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, statusCode, userMsg)
}

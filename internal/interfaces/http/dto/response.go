package dto

import "net/http"

// Response is the envelope for every API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries the machine-readable error code and message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewErrorResponse wraps an error code and message in an error envelope
func NewErrorResponse(code, message string) Response {
	return Response{Success: false, Error: &ErrorBody{Code: code, Message: message}}
}

// Error codes surfaced by the API layer itself
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// GetHTTPStatus maps a domain error code to an HTTP status
func GetHTTPStatus(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "CONFLICT", "ALREADY_VOIDED", "ORDER_ALREADY_RECEIVED":
		return http.StatusConflict
	case "VALIDATION_FAILURE", "MISSING_COLUMNS", "UNDECODABLE_FILE", "BAD_REQUEST":
		return http.StatusBadRequest
	case "INSUFFICIENT_STOCK", "PAYMENT_INSUFFICIENT", "INSUFFICIENT_POINTS", "INVALID_STATE":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

package response

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Error:   err,
	})
}

// ErrorWithCode writes a failure envelope carrying a stable machine-readable code.
func ErrorWithCode(w http.ResponseWriter, statusCode int, message, code string, err interface{}) {
	JSON(w, statusCode, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		ErrorCode: code,
	})
}

func ValidationError(w http.ResponseWriter, statusCode int, errors interface{}) {
	JSON(w, statusCode, Response{
		Success:   false,
		Message:   "Validation failed",
		Error:     errors,
		ErrorCode: "VALIDATION_FAILED",
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message, nil)
}

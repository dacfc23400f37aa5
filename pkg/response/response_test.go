package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorWithCodeOmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()

	ErrorWithCode(rec, http.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"Invalid credentials","error_code":"INVALID_CREDENTIALS"}`, rec.Body.String())
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()

	ValidationError(rec, http.StatusUnprocessableEntity, map[string]string{"email": "email is required"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Validation failed","error_code":"VALIDATION_FAILED","error":{"email":"email is required"}}`, rec.Body.String())
}

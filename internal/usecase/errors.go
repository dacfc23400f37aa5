package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidSpecialization      = errors.New("invalid specialization")
	ErrPasswordMismatch           = errors.New("passwords do not match")
	ErrWeakPassword               = errors.New("password does not meet strength requirements")
	ErrEmailAlreadyExists         = errors.New("email already exists")
	ErrPhoneAlreadyExists         = errors.New("phone number already exists")
	ErrLicenseAlreadyExists       = errors.New("license number already exists")
	ErrInvalidCredentials         = errors.New("invalid credentials")
	ErrAccountNotActiveOrVerified = errors.New("account not active or not verified")
)

const (
	CodeInvalidSpecialization      = "INVALID_SPECIALIZATION"
	CodePasswordMismatch           = "PASSWORD_MISMATCH"
	CodeWeakPassword               = "WEAK_PASSWORD"
	CodeEmailExists                = "EMAIL_EXISTS"
	CodePhoneExists                = "PHONE_EXISTS"
	CodeLicenseExists              = "LICENSE_EXISTS"
	CodeValidationFailed           = "VALIDATION_FAILED"
	CodeInvalidCredentials         = "INVALID_CREDENTIALS"
	CodeAccountNotActiveOrVerified = "ACCOUNT_NOT_ACTIVE_OR_VERIFIED"
)

// ValidationError lists structural violations by field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// ErrorCode returns the stable code of a workflow error, or "" when err is
// not one of them.
func ErrorCode(err error) string {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return CodeValidationFailed
	case errors.Is(err, ErrInvalidSpecialization):
		return CodeInvalidSpecialization
	case errors.Is(err, ErrPasswordMismatch):
		return CodePasswordMismatch
	case errors.Is(err, ErrWeakPassword):
		return CodeWeakPassword
	case errors.Is(err, ErrEmailAlreadyExists):
		return CodeEmailExists
	case errors.Is(err, ErrPhoneAlreadyExists):
		return CodePhoneExists
	case errors.Is(err, ErrLicenseAlreadyExists):
		return CodeLicenseExists
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrAccountNotActiveOrVerified):
		return CodeAccountNotActiveOrVerified
	}
	return ""
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// duplicateError maps a unique violation raised by the store to the
// matching registration error.
func duplicateError(err error) (error, bool) {
	switch {
	case isDuplicateKeyError(err, "email"):
		return ErrEmailAlreadyExists, true
	case isDuplicateKeyError(err, "phone"):
		return ErrPhoneAlreadyExists, true
	case isDuplicateKeyError(err, "license"):
		return ErrLicenseAlreadyExists, true
	}
	return nil, false
}

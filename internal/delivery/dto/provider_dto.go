package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ClinicAddressRequest struct {
	Street string `json:"street" validate:"required"`
	City   string `json:"city" validate:"required"`
	State  string `json:"state" validate:"required"`
	Zip    string `json:"zip" validate:"required"`
}

type RegisterProviderRequest struct {
	FirstName         string               `json:"first_name" validate:"required"`
	LastName          string               `json:"last_name" validate:"required"`
	Email             string               `json:"email" validate:"required,email"`
	PhoneNumber       string               `json:"phone_number" validate:"required"`
	Password          string               `json:"password" validate:"required"`
	ConfirmPassword   string               `json:"confirm_password" validate:"required"`
	Specialization    string               `json:"specialization" validate:"required"`
	LicenseNumber     string               `json:"license_number" validate:"required"`
	YearsOfExperience *int                 `json:"years_of_experience"`
	ClinicAddress     ClinicAddressRequest `json:"clinic_address"`
}

// LoginRequest is validated by the login workflow itself so that blank
// credentials fail the same way as wrong ones.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response DTOs

type RegisterProviderResponse struct {
	ProviderID         uuid.UUID `json:"provider_id"`
	Email              string    `json:"email"`
	VerificationStatus string    `json:"verification_status"`
}

type ClinicAddressResponse struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type ProviderResponse struct {
	ID                 uuid.UUID             `json:"id"`
	FirstName          string                `json:"first_name"`
	LastName           string                `json:"last_name"`
	Email              string                `json:"email"`
	PhoneNumber        string                `json:"phone_number"`
	Specialization     string                `json:"specialization"`
	LicenseNumber      string                `json:"license_number"`
	YearsOfExperience  *int                  `json:"years_of_experience,omitempty"`
	ClinicAddress      ClinicAddressResponse `json:"clinic_address"`
	VerificationStatus string                `json:"verification_status"`
	IsActive           bool                  `json:"is_active"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	ExpiresIn   int64             `json:"expires_in"`
	TokenType   string            `json:"token_type"`
	Provider    *ProviderResponse `json:"provider"`
}

package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "PENDING"
	VerificationStatusVerified VerificationStatus = "VERIFIED"
	VerificationStatusRejected VerificationStatus = "REJECTED"
)

// Lower is the wire form used in responses and token claims.
func (s VerificationStatus) Lower() string {
	return strings.ToLower(string(s))
}

// Specializations accepted at registration.
var Specializations = []string{
	"Cardiology",
	"Dermatology",
	"Pediatrics",
	"Orthopedics",
	"Neurology",
	"General Medicine",
}

func IsAllowedSpecialization(s string) bool {
	for _, allowed := range Specializations {
		if s == allowed {
			return true
		}
	}
	return false
}

// Provider is a registered healthcare practitioner account.
type Provider struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id" validate:"required"`
	FirstName          string             `gorm:"type:varchar(50);not null" json:"first_name" validate:"required,min=2,max=50"`
	LastName           string             `gorm:"type:varchar(50);not null" json:"last_name" validate:"required,min=2,max=50"`
	Email              string             `gorm:"type:varchar(100);not null;uniqueIndex:uq_providers_email" json:"email" validate:"required,email,max=100"`
	PhoneNumber        string             `gorm:"type:varchar(20);not null;uniqueIndex:uq_providers_phone_number" json:"phone_number" validate:"required,max=20,provider_phone"`
	PasswordHash       string             `gorm:"type:varchar(255);not null" json:"-" validate:"required"`
	Specialization     string             `gorm:"type:varchar(100);not null" json:"specialization" validate:"required,min=3,max=100"`
	LicenseNumber      string             `gorm:"type:varchar(50);not null;uniqueIndex:uq_providers_license_number" json:"license_number" validate:"required,max=50,alphanum"`
	YearsOfExperience  *int               `json:"years_of_experience,omitempty" validate:"omitempty,gte=0,lte=50"`
	ClinicStreet       string             `gorm:"type:varchar(200);not null" json:"clinic_street" validate:"required,max=200"`
	ClinicCity         string             `gorm:"type:varchar(100);not null" json:"clinic_city" validate:"required,max=100"`
	ClinicState        string             `gorm:"type:varchar(50);not null" json:"clinic_state" validate:"required,max=50"`
	ClinicZip          string             `gorm:"type:varchar(20);not null" json:"clinic_zip" validate:"required,us_zip"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);not null" json:"verification_status" validate:"required,oneof=PENDING VERIFIED REJECTED"`
	IsActive           bool               `gorm:"not null" json:"is_active"`
	CreatedAt          time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"not null" json:"updated_at"`
}

func (Provider) TableName() string {
	return "providers"
}

// CanAuthenticate reports whether the account may log in or hold a session.
func (p *Provider) CanAuthenticate() bool {
	return p.IsActive && p.VerificationStatus == VerificationStatusVerified
}

package converter

import (
	"health-first-server/internal/delivery/dto"
	"health-first-server/internal/domain/entity"
)

// RegisterRequestToProvider copies the profile fields of a registration
// request into a new Provider. Credentials and lifecycle fields are left to
// the registration workflow.
func RegisterRequestToProvider(req *dto.RegisterProviderRequest) *entity.Provider {
	return &entity.Provider{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		Specialization:    req.Specialization,
		LicenseNumber:     req.LicenseNumber,
		YearsOfExperience: req.YearsOfExperience,
		ClinicStreet:      req.ClinicAddress.Street,
		ClinicCity:        req.ClinicAddress.City,
		ClinicState:       req.ClinicAddress.State,
		ClinicZip:         req.ClinicAddress.Zip,
	}
}

// ProviderToResponse converts a Provider entity to ProviderResponse DTO
func ProviderToResponse(provider *entity.Provider) *dto.ProviderResponse {
	if provider == nil {
		return nil
	}

	return &dto.ProviderResponse{
		ID:                provider.ID,
		FirstName:         provider.FirstName,
		LastName:          provider.LastName,
		Email:             provider.Email,
		PhoneNumber:       provider.PhoneNumber,
		Specialization:    provider.Specialization,
		LicenseNumber:     provider.LicenseNumber,
		YearsOfExperience: provider.YearsOfExperience,
		ClinicAddress: dto.ClinicAddressResponse{
			Street: provider.ClinicStreet,
			City:   provider.ClinicCity,
			State:  provider.ClinicState,
			Zip:    provider.ClinicZip,
		},
		VerificationStatus: provider.VerificationStatus.Lower(),
		IsActive:           provider.IsActive,
		CreatedAt:          provider.CreatedAt,
		UpdatedAt:          provider.UpdatedAt,
	}
}

func ProviderToRegisterResponse(provider *entity.Provider) *dto.RegisterProviderResponse {
	if provider == nil {
		return nil
	}

	return &dto.RegisterProviderResponse{
		ProviderID:         provider.ID,
		Email:              provider.Email,
		VerificationStatus: provider.VerificationStatus.Lower(),
	}
}

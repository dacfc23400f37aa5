package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"health-first-server/internal/converter"
	"health-first-server/internal/delivery/dto"
	"health-first-server/internal/domain/entity"
	"health-first-server/internal/domain/repository"
	"health-first-server/internal/service"
	"health-first-server/pkg/jwt"
	"health-first-server/pkg/password"
	"health-first-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ProviderUsecase interface {
	Register(ctx context.Context, req *dto.RegisterProviderRequest) (*entity.Provider, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type providerUsecase struct {
	log                 *logrus.Logger
	providerRepo        repository.ProviderRepository
	hasher              password.Hasher
	jwtService          *jwt.JWTService
	validator           *validator.CustomValidator
	auditService        service.AuditService
	notificationService service.NotificationService
}

func NewProviderUsecase(
	log *logrus.Logger,
	providerRepo repository.ProviderRepository,
	hasher password.Hasher,
	jwtService *jwt.JWTService,
	validator *validator.CustomValidator,
	auditService service.AuditService,
	notificationService service.NotificationService,
) ProviderUsecase {
	return &providerUsecase{
		log:                 log,
		providerRepo:        providerRepo,
		hasher:              hasher,
		jwtService:          jwtService,
		validator:           validator,
		auditService:        auditService,
		notificationService: notificationService,
	}
}

func (u *providerUsecase) Register(ctx context.Context, req *dto.RegisterProviderRequest) (*entity.Provider, error) {
	if !entity.IsAllowedSpecialization(req.Specialization) {
		return nil, ErrInvalidSpecialization
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !password.IsStrong(req.Password) {
		return nil, ErrWeakPassword
	}

	if err := u.checkDuplicates(ctx, req); err != nil {
		return nil, err
	}

	hashedPassword, err := u.hasher.Hash(ctx, req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	now := time.Now().UTC()
	provider := converter.RegisterRequestToProvider(req)
	provider.ID = uuid.New()
	provider.PasswordHash = hashedPassword
	provider.VerificationStatus = entity.VerificationStatusPending
	provider.IsActive = true
	provider.CreatedAt = now
	provider.UpdatedAt = now

	if err := u.validator.Validate(provider); err != nil {
		return nil, &ValidationError{Fields: u.validator.FormatValidationErrors(err)}
	}

	// The store's unique constraints settle races the checks above missed.
	if err := u.providerRepo.Create(ctx, provider); err != nil {
		if dupErr, ok := duplicateError(err); ok {
			return nil, dupErr
		}
		u.log.Warnf("Failed to create provider: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, &provider.ID, entity.AuditActionProviderRegister, "provider", provider.ID.String(), converter.ProviderToRegisterResponse(provider)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.notificationService.ProviderRegistered(ctx, provider)

	return provider, nil
}

func (u *providerUsecase) checkDuplicates(ctx context.Context, req *dto.RegisterProviderRequest) error {
	checks := []struct {
		exists func(context.Context, string) (bool, error)
		value  string
		err    error
	}{
		{u.providerRepo.ExistsByEmail, req.Email, ErrEmailAlreadyExists},
		{u.providerRepo.ExistsByPhoneNumber, req.PhoneNumber, ErrPhoneAlreadyExists},
		{u.providerRepo.ExistsByLicenseNumber, req.LicenseNumber, ErrLicenseAlreadyExists},
	}

	for _, check := range checks {
		exists, err := check.exists(ctx, check.value)
		if err != nil {
			u.log.Warnf("Failed to check provider uniqueness: %+v", err)
			return err
		}
		if exists {
			return check.err
		}
	}
	return nil
}

func (u *providerUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, ErrInvalidCredentials
	}

	provider, err := u.providerRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find provider by email: %+v", err)
		return nil, err
	}
	if provider == nil {
		u.auditLoginFailure(ctx, nil, CodeInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	if !provider.CanAuthenticate() {
		u.auditLoginFailure(ctx, &provider.ID, CodeAccountNotActiveOrVerified)
		return nil, ErrAccountNotActiveOrVerified
	}

	if err := u.hasher.Verify(ctx, provider.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			return nil, err
		}
		u.auditLoginFailure(ctx, &provider.ID, CodeInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	accessToken, _, err := u.jwtService.GenerateAccessToken(jwt.Identity{
		ProviderID:         provider.ID,
		Email:              provider.Email,
		Specialization:     provider.Specialization,
		VerificationStatus: provider.VerificationStatus.Lower(),
	})
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, &provider.ID, entity.AuditActionProviderLogin, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
		TokenType:   jwt.TokenTypeBearer,
		Provider:    converter.ProviderToResponse(provider),
	}, nil
}

func (u *providerUsecase) auditLoginFailure(ctx context.Context, providerID *uuid.UUID, code string) {
	metadata := entity.JSON{"error_code": code}
	if err := u.auditService.LogAction(ctx, providerID, entity.AuditActionProviderLoginFailed, metadata); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}
}

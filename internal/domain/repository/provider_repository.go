package repository

import (
	"context"

	"health-first-server/internal/domain/entity"
)

// ProviderRepository is the credential store. Uniqueness of email, phone
// number and license number is enforced by the store itself; Create returns
// the underlying unique violation when one of them is taken.
type ProviderRepository interface {
	// FindByEmail returns nil, nil when no provider has the email.
	FindByEmail(ctx context.Context, email string) (*entity.Provider, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error)
	ExistsByLicenseNumber(ctx context.Context, licenseNumber string) (bool, error)
	Create(ctx context.Context, provider *entity.Provider) error
}

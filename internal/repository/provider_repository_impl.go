package repository

import (
	"context"
	"errors"

	"health-first-server/internal/domain/entity"
	domainRepo "health-first-server/internal/domain/repository"

	"gorm.io/gorm"
)

type providerRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) domainRepo.ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) FindByEmail(ctx context.Context, email string) (*entity.Provider, error) {
	var provider entity.Provider
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *providerRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	return r.exists(ctx, "phone_number = ?", phoneNumber)
}

func (r *providerRepository) ExistsByLicenseNumber(ctx context.Context, licenseNumber string) (bool, error) {
	return r.exists(ctx, "license_number = ?", licenseNumber)
}

func (r *providerRepository) exists(ctx context.Context, query string, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Provider{}).Where(query, value).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *providerRepository) Create(ctx context.Context, provider *entity.Provider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}

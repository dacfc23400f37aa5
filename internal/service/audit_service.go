package service

import (
	"context"
	"time"

	"health-first-server/internal/domain/entity"
	"health-first-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuditService interface {
	LogCreate(ctx context.Context, providerID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogAction(ctx context.Context, providerID *uuid.UUID, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, providerID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.LogAction(ctx, providerID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"new_value": newValue,
	})
}

// LogAction logs an arbitrary action with free-form metadata
func (s *auditService) LogAction(ctx context.Context, providerID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		ProviderID: providerID,
		Action:     action,
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

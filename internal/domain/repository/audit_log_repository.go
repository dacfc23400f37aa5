package repository

import (
	"context"

	"health-first-server/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
}

package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"health-first-server/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAuditRepo struct {
	logs []*entity.AuditLog
	err  error
}

func (m *memoryAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, log)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAuditLogCreate(t *testing.T) {
	repo := &memoryAuditRepo{}
	svc := NewAuditService(quietLogger(), repo)
	id := uuid.New()

	err := svc.LogCreate(context.Background(), &id, entity.AuditActionProviderRegister, "provider", id.String(), map[string]string{"email": "john.doe@clinic.com"})
	require.NoError(t, err)

	require.Len(t, repo.logs, 1)
	got := repo.logs[0]
	assert.Equal(t, &id, got.ProviderID)
	assert.Equal(t, entity.AuditActionProviderRegister, got.Action)
	assert.Equal(t, "provider", got.Metadata["entity"])
	assert.Equal(t, id.String(), got.Metadata["entity_id"])
	assert.False(t, got.CreatedAt.IsZero())
}

func TestAuditLogActionPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("store down")
	svc := NewAuditService(quietLogger(), &memoryAuditRepo{err: storeErr})

	err := svc.LogAction(context.Background(), nil, entity.AuditActionProviderLoginFailed, entity.JSON{"error_code": "INVALID_CREDENTIALS"})
	assert.ErrorIs(t, err, storeErr)
}

func TestRegistrationEvent(t *testing.T) {
	provider := &entity.Provider{
		ID:        uuid.New(),
		Email:     "john.doe@clinic.com",
		FirstName: "John",
		LastName:  "Doe",
	}
	at := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	event := registrationEvent(provider, at)

	assert.Equal(t, EventProviderRegistered, event["event"])
	assert.Equal(t, provider.ID.String(), event["provider_id"])
	assert.Equal(t, "john.doe@clinic.com", event["email"])
	assert.Equal(t, "2026-10-14T09:30:00Z", event["occurred_at"])
	assert.NotContains(t, event, "password_hash")
}

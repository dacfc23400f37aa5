package service

import (
	"context"
	"time"

	"health-first-server/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	EventProviderRegistered = "provider.registered"

	notificationTimeout = 5 * time.Second
	notificationMaxLen  = 10000
)

// NotificationService hands registration events to an external mailer.
// Delivery is fire-and-forget: callers are never blocked or failed by it.
type NotificationService interface {
	ProviderRegistered(ctx context.Context, provider *entity.Provider)
}

type redisNotificationService struct {
	client *redis.Client
	log    *logrus.Logger
	stream string
}

func NewRedisNotificationService(client *redis.Client, log *logrus.Logger, stream string) NotificationService {
	return &redisNotificationService{
		client: client,
		log:    log,
		stream: stream,
	}
}

func (s *redisNotificationService) ProviderRegistered(ctx context.Context, provider *entity.Provider) {
	values := registrationEvent(provider, time.Now().UTC())

	// Detach from the request so the append outlives the response.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
	go func() {
		defer cancel()
		err := s.client.XAdd(ctx, &redis.XAddArgs{
			Stream: s.stream,
			MaxLen: notificationMaxLen,
			Approx: true,
			Values: values,
		}).Err()
		if err != nil {
			s.log.Warnf("Failed to publish %s notification for %s: %+v", EventProviderRegistered, provider.ID, err)
		}
	}()
}

func registrationEvent(provider *entity.Provider, at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"event":       EventProviderRegistered,
		"provider_id": provider.ID.String(),
		"email":       provider.Email,
		"first_name":  provider.FirstName,
		"last_name":   provider.LastName,
		"occurred_at": at.Format(time.RFC3339),
	}
}

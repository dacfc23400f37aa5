package middleware

import (
	"context"
	"net/http"
	"strings"

	"health-first-server/internal/domain/entity"
	"health-first-server/internal/domain/repository"
	"health-first-server/pkg/jwt"
	"health-first-server/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	ProviderKey contextKey = "provider"
	ClaimsKey   contextKey = "claims"
)

const bearerPrefix = "Bearer "

type AuthMiddleware struct {
	log          *logrus.Logger
	jwtService   *jwt.JWTService
	providerRepo repository.ProviderRepository
}

func NewAuthMiddleware(log *logrus.Logger, jwtService *jwt.JWTService, providerRepo repository.ProviderRepository) *AuthMiddleware {
	return &AuthMiddleware{
		log:          log,
		jwtService:   jwtService,
		providerRepo: providerRepo,
	}
}

// Authenticate attaches the provider behind a valid bearer token to the
// request context. It never rejects a request: a missing, malformed or
// unverifiable token leaves the request unauthenticated and the decision to
// RequireAuthentication.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			m.log.Debugf("Token verification failed: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		provider, err := m.providerRepo.FindByEmail(r.Context(), claims.Email)
		if err != nil {
			m.log.Warnf("Failed to load provider for token: %+v", err)
			next.ServeHTTP(w, r)
			return
		}
		if provider == nil || !provider.CanAuthenticate() {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ProviderKey, provider)
		ctx = context.WithValue(ctx, ClaimsKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthentication rejects requests that Authenticate left without a
// provider.
func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ProviderFromContext(r.Context()); !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProviderFromContext extracts the authenticated provider from context
func ProviderFromContext(ctx context.Context) (*entity.Provider, bool) {
	provider, ok := ctx.Value(ProviderKey).(*entity.Provider)
	return provider, ok && provider != nil
}

// ClaimsFromContext extracts the verified token claims from context
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims)
	return claims, ok && claims != nil
}

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"health-first-server/config"
	"health-first-server/internal/delivery/http/handler"
	"health-first-server/internal/delivery/http/middleware"
	"health-first-server/internal/domain/entity"
	"health-first-server/internal/usecase"
	"health-first-server/pkg/jwt"
	"health-first-server/pkg/metrics"
	"health-first-server/pkg/password"
	"health-first-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryProviderRepo struct {
	mu        sync.Mutex
	providers map[string]*entity.Provider
}

func (m *memoryProviderRepo) FindByEmail(ctx context.Context, email string) (*entity.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.providers[email], nil
}

func (m *memoryProviderRepo) any(match func(*entity.Provider) bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.providers {
		if match(p) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryProviderRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.any(func(p *entity.Provider) bool { return p.Email == email })
}

func (m *memoryProviderRepo) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	return m.any(func(p *entity.Provider) bool { return p.PhoneNumber == phoneNumber })
}

func (m *memoryProviderRepo) ExistsByLicenseNumber(ctx context.Context, licenseNumber string) (bool, error) {
	return m.any(func(p *entity.Provider) bool { return p.LicenseNumber == licenseNumber })
}

func (m *memoryProviderRepo) Create(ctx context.Context, provider *entity.Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[provider.Email] = provider
	return nil
}

type discardAudit struct{}

func (discardAudit) LogCreate(ctx context.Context, providerID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return nil
}

func (discardAudit) LogAction(ctx context.Context, providerID *uuid.UUID, action string, metadata entity.JSON) error {
	return nil
}

type discardNotifier struct{}

func (discardNotifier) ProviderRegistered(ctx context.Context, provider *entity.Provider) {}

func newTestServer(t *testing.T) (*httptest.Server, *memoryProviderRepo) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := &memoryProviderRepo{providers: make(map[string]*entity.Provider)}
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "health-first-server", AccessExpiry: time.Hour})
	customValidator := validator.NewValidator()
	hasher := password.NewBcryptHasher(bcrypt.MinCost, 4)

	appMetrics := metrics.NewMetrics()

	providerUsecase := usecase.NewProviderUsecase(log, repo, hasher, jwtService, customValidator, discardAudit{}, discardNotifier{})
	router := NewRouter(
		handler.NewProviderHandler(log, providerUsecase, customValidator, appMetrics),
		middleware.NewAuthMiddleware(log, jwtService, repo),
		middleware.NewCORSMiddleware(),
		middleware.NewLoggerMiddleware(log),
		middleware.NewRecoveryMiddleware(log),
		middleware.NewMetricsMiddleware(appMetrics),
		appMetrics,
	)

	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server, repo
}

func do(t *testing.T, method, url, token, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

const registerBody = `{
	"first_name": "John",
	"last_name": "Doe",
	"email": "john.doe@clinic.com",
	"phone_number": "+15551234567",
	"password": "SecurePassword123!",
	"confirm_password": "SecurePassword123!",
	"specialization": "Cardiology",
	"license_number": "MD123456789",
	"years_of_experience": 10,
	"clinic_address": {"street": "123 Medical Center Dr", "city": "New York", "state": "NY", "zip": "10001"}
}`

func TestProviderLifecycle(t *testing.T) {
	server, repo := newTestServer(t)
	base := server.URL + "/api/v1/provider"

	status, _ := do(t, http.MethodPost, base+"/register", "", registerBody)
	require.Equal(t, http.StatusCreated, status)

	status, body := do(t, http.MethodPost, base+"/register", "", registerBody)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, `"error_code":"EMAIL_EXISTS"`)

	loginBody := `{"email":"john.doe@clinic.com","password":"SecurePassword123!"}`
	status, body = do(t, http.MethodPost, base+"/login", "", loginBody)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, `"error_code":"ACCOUNT_NOT_ACTIVE_OR_VERIFIED"`)

	repo.providers["john.doe@clinic.com"].VerificationStatus = entity.VerificationStatusVerified

	status, body = do(t, http.MethodPost, base+"/login", "", loginBody)
	require.Equal(t, http.StatusOK, status)

	var login struct {
		Data struct {
			AccessToken string `json:"access_token"`
			ExpiresIn   int64  `json:"expires_in"`
			TokenType   string `json:"token_type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &login))
	assert.Equal(t, int64(3600), login.Data.ExpiresIn)
	assert.Equal(t, "Bearer", login.Data.TokenType)

	status, body = do(t, http.MethodGet, base+"/me", "Bearer "+login.Data.AccessToken, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"email":"john.doe@clinic.com"`)

	status, _ = do(t, http.MethodGet, base+"/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, http.MethodGet, base+"/me", "bearer "+login.Data.AccessToken, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// A token on a public route is ignored rather than rejected.
	status, _ = do(t, http.MethodPost, base+"/login", "Bearer garbage", loginBody)
	assert.Equal(t, http.StatusOK, status)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	server, repo := newTestServer(t)
	base := server.URL + "/api/v1/provider"

	status, _ := do(t, http.MethodPost, base+"/register", "", registerBody)
	require.Equal(t, http.StatusCreated, status)
	repo.providers["john.doe@clinic.com"].VerificationStatus = entity.VerificationStatusVerified

	statusUnknown, unknown := do(t, http.MethodPost, base+"/login", "", `{"email":"nobody@clinic.com","password":"SecurePassword123!"}`)
	statusWrong, wrong := do(t, http.MethodPost, base+"/login", "", `{"email":"john.doe@clinic.com","password":"WrongPassword123!"}`)
	statusBlank, blank := do(t, http.MethodPost, base+"/login", "", `{"email":"","password":""}`)

	assert.Equal(t, http.StatusUnauthorized, statusUnknown)
	assert.Equal(t, statusUnknown, statusWrong)
	assert.Equal(t, statusUnknown, statusBlank)
	assert.Equal(t, unknown, wrong)
	assert.Equal(t, unknown, blank)
	assert.JSONEq(t, `{"success":false,"message":"Invalid credentials","error_code":"INVALID_CREDENTIALS"}`, unknown)
}

func TestHealthCheck(t *testing.T) {
	server, _ := newTestServer(t)

	status, body := do(t, http.MethodGet, server.URL+"/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestMetricsUseRouteTemplates(t *testing.T) {
	server, _ := newTestServer(t)

	status, _ := do(t, http.MethodPost, server.URL+"/api/v1/provider/login", "", `{}`)
	require.Equal(t, http.StatusUnauthorized, status)

	status, body := do(t, http.MethodGet, server.URL+"/metrics", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `health_first_http_requests_total{method="POST",path="/api/v1/provider/login",status="401"} 1`)
	assert.Contains(t, body, `health_first_login_attempts_total{result="INVALID_CREDENTIALS"} 1`)
}

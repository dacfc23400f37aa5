package jwt

import (
	"strings"
	"testing"
	"time"

	"health-first-server/config"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		Issuer:       "health-first-server",
		AccessExpiry: time.Hour,
	})
}

func testIdentity() Identity {
	return Identity{
		ProviderID:         uuid.New(),
		Email:              "john.doe@clinic.com",
		Specialization:     "Cardiology",
		VerificationStatus: "verified",
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()
	identity := testIdentity()

	token, expiresAt, err := svc.GenerateAccessToken(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity.ProviderID, claims.ProviderID)
	assert.Equal(t, identity.Email, claims.Email)
	assert.Equal(t, identity.Email, claims.Subject)
	assert.Equal(t, RoleProvider, claims.Role)
	assert.Equal(t, "Cardiology", claims.Specialization)
	assert.Equal(t, "verified", claims.VerificationStatus)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateAccessToken(testIdentity())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestValidateRejectsTamperedSignature(t *testing.T) {
	svc := newTestService()
	token, _, err := svc.GenerateAccessToken(testIdentity())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.ValidateToken(tampered)
	assert.Error(t, err)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	other := NewJWTService(config.JWTConfig{Secret: "other", Issuer: "health-first-server", AccessExpiry: time.Hour})
	token, _, err := other.GenerateAccessToken(testIdentity())
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(token)
	assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)
}

func TestValidateRejectsMalformedToken(t *testing.T) {
	_, err := newTestService().ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = newTestService().ValidateToken("")
	assert.Error(t, err)
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		Email: "john.doe@clinic.com",
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "health-first-server",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(token)
	assert.Error(t, err)
}

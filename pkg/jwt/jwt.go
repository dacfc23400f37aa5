package jwt

import (
	"errors"
	"time"

	"health-first-server/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeBearer = "Bearer"
	RoleProvider    = "provider"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	ProviderID         uuid.UUID `json:"provider_id"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	Specialization     string    `json:"specialization"`
	VerificationStatus string    `json:"verification_status"`
	jwt.RegisteredClaims
}

// Identity is the subset of a provider that ends up in a token.
type Identity struct {
	ProviderID         uuid.UUID
	Email              string
	Specialization     string
	VerificationStatus string
}

type JWTService struct {
	config config.JWTConfig
	now    func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

// GenerateAccessToken signs a provider token and returns it together with
// its expiry time.
func (s *JWTService) GenerateAccessToken(identity Identity) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.config.AccessExpiry)
	claims := Claims{
		ProviderID:         identity.ProviderID,
		Email:              identity.Email,
		Role:               RoleProvider,
		Specialization:     identity.Specialization,
		VerificationStatus: identity.VerificationStatus,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   identity.Email,
			Issuer:    s.config.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signedToken, expiresAt, nil
}

// ValidateToken checks signature, algorithm, issuer and time claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	}, opts...)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *JWTService) GetAccessExpiry() time.Duration {
	return s.config.AccessExpiry
}

package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/identity-squad/user-api/internal/core/domain"
	"github.com/identity-squad/user-api/internal/core/ports"
)

// JWTTokenService signs and verifies HS256 tokens carrying id + role claims.
// Verification does no I/O, so it never blocks on network or database calls.
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTTokenService builds a token service with the process-wide signing
// secret. Rotating the secret invalidates all outstanding tokens.
func NewJWTTokenService(secret string, ttl time.Duration) ports.TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTTokenService{secret: []byte(secret), ttl: ttl}
}

func (s *JWTTokenService) Issue(identity domain.Identity) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  identity.ID,
		"role": string(identity.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and decodes the embedded identity.
func (s *JWTTokenService) Verify(token string) (domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	// JSON numbers decode as float64 in MapClaims.
	sub, ok := claims["sub"].(float64)
	if !ok {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	role := domain.Role(roleStr)
	if !role.Valid() {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	return domain.Identity{ID: int64(sub), Role: role}, nil
}

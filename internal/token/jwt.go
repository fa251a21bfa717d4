// Package token verifies the signed access tokens minted by the Acont auth
// backend. Tokens are HS256 JWTs carrying a role claim; the edge only ever
// validates them, it never mints one in production (Generate exists for the
// login service contract and for tests).
package token

import (
	"context"
	"errors"
	"time"

	"acont-edge/internal/gate"
	dErrors "acont-edge/pkg/domain-errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the access-token claim set. The role claim drives the edge
// authorization table; everything else is standard registered claims.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RevocationList answers whether a token id has been revoked. Implementations
// live in the revocation subpackage.
type RevocationList interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Service validates and (for tests and the login flow) signs access tokens.
type Service struct {
	signingKey []byte
	issuer     string
	revocation RevocationList
}

// Option configures a Service.
type Option func(*Service)

// WithRevocationList enables a revocation check after signature validation.
func WithRevocationList(rl RevocationList) Option {
	return func(s *Service) { s.revocation = rl }
}

// New builds a token Service. An empty issuer disables issuer verification,
// matching deployments where the backend has not set one.
func New(signingKey, issuer string, opts ...Option) *Service {
	s := &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Generate signs an access token for subject with the given role.
func (s *Service) Generate(subject, role string, expiresIn time.Duration) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// Verify validates tokenString and returns the identity it asserts, in the
// shape the gate consumes. Every failure maps to a CodeUnauthorized domain
// error; the caller treats them all as "not authenticated".
func (s *Service) Verify(ctx context.Context, tokenString string) (*gate.Identity, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	if s.revocation != nil {
		if claims.ID == "" {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token missing jti")
		}
		revoked, err := s.revocation.IsRevoked(ctx, claims.ID)
		if err != nil {
			// Fail closed: an unreachable revocation list denies access.
			return nil, dErrors.New(dErrors.CodeUnavailable, "revocation check failed")
		}
		if revoked {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has been revoked")
		}
	}

	return &gate.Identity{
		Subject: claims.Subject,
		Role:    claims.Role,
		JTI:     claims.ID,
	}, nil
}

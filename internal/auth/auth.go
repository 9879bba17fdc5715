package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/storefront/internal/config"
	"marketplace/storefront/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Authenticator resolves a bearer token into the caller's session.
type Authenticator interface {
	Session(ctx context.Context, token string) (*domain.Session, error)
}

// Claims mirrors the access tokens issued by the hosted identity provider.
// The role may be carried at the top level or inside app_metadata.
type Claims struct {
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

func (c *Claims) role() string {
	if r, ok := c.AppMetadata["role"].(string); ok && r != "" {
		return r
	}
	return c.Role
}

func (c *Claims) name() string {
	for _, key := range []string{"name", "full_name"} {
		if n, ok := c.UserMetadata[key].(string); ok && n != "" {
			return n
		}
	}
	return ""
}

type jwtAuthenticator struct {
	secret    []byte
	issuer    string
	adminRole string
}

func NewJWTAuthenticator(cfg config.AuthConfig) (Authenticator, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	return &jwtAuthenticator{
		secret:    []byte(cfg.JWTSecret),
		issuer:    cfg.Issuer,
		adminRole: cfg.AdminRole,
	}, nil
}

func (a *jwtAuthenticator) Session(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	role := claims.role()
	if a.adminRole != "" && role == a.adminRole {
		role = domain.RoleAdmin
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}

	return &domain.Session{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.name(),
		Role:      role,
		ExpiresAt: expires,
	}, nil
}

// anonymous is used when no secret is configured: every token is rejected,
// so admin routes stay closed.
type anonymous struct{}

func NewAnonymous() Authenticator {
	return anonymous{}
}

func (anonymous) Session(ctx context.Context, token string) (*domain.Session, error) {
	return nil, fmt.Errorf("%w: authentication is not configured", domain.ErrUnauthorized)
}

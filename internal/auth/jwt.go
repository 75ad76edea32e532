// Package auth issues and validates the bearer tokens that guard the
// system views (audits, users, configuration).
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/pkg/ctxutil"
)

// RoleOperator is the role of active staff accounts without superuser rights.
const RoleOperator = "operador"

// clockSkew tolerated on exp/iat between the issuing host and this server.
const clockSkew = 30 * time.Second

var errEmptyToken = errors.New("token is empty")

// Claims is the payload of a SAPL access token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"usr,omitempty"`
	Role     string `json:"role,omitempty"`
}

// UserID returns the numeric subject.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid subject %q", c.Subject)
	}
	return id, nil
}

// JWTManager signs and verifies HS256 access tokens for one issuer.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
	parser    *jwt.Parser
}

// NewJWTManager creates a manager. Config validation guarantees the secret
// is at least 32 bytes.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	m := &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       time.Now,
	}
	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	return m
}

// RoleFor maps a user account to the role claim its tokens carry.
// Superusers get ctxutil.RoleAdmin; inactive users get no role.
func RoleFor(u domain.User) string {
	switch {
	case !u.IsActive:
		return ""
	case u.IsSuperuser:
		return ctxutil.RoleAdmin
	default:
		return RoleOperator
	}
}

// IssueFor signs a token for u. Inactive accounts are rejected.
func (m *JWTManager) IssueFor(u domain.User) (string, error) {
	role := RoleFor(u)
	if role == "" {
		return "", fmt.Errorf("issue token for %q: %w", u.Username, domain.ErrForbidden)
	}
	return m.sign(u.ID, u.Username, role)
}

// GenerateAccessToken signs a token for a bare user id and role.
func (m *JWTManager) GenerateAccessToken(userID int64, role string) (string, error) {
	return m.sign(userID, "", role)
}

func (m *JWTManager) sign(userID int64, username, role string) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
		Role:     role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer and expiry and returns the claims.
func (m *JWTManager) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errEmptyToken
	}
	claims := &Claims{}
	if _, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

// ValidateAccessToken returns the user id and role carried by a valid token.
func (m *JWTManager) ValidateAccessToken(tokenString string) (int64, string, error) {
	claims, err := m.Parse(tokenString)
	if err != nil {
		return 0, "", err
	}
	userID, err := claims.UserID()
	if err != nil {
		return 0, "", err
	}
	return userID, claims.Role, nil
}

// ValidateToken satisfies the auth middleware's validator.
func (m *JWTManager) ValidateToken(_ context.Context, token string) (int64, string, error) {
	return m.ValidateAccessToken(token)
}

package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	internalauth "github.com/segusengineering/worksync/internal/auth"
)

// StaticTokenProvider serves the bearer token handed to the agent at startup.
// JWT tokens are inspected (without signature verification, the agent does
// not hold the signing key) so an expired token fails fast with
// ErrAuthRequired instead of a rejected dial. Opaque tokens pass through
// untouched.
type StaticTokenProvider struct {
	token string
	now   func() time.Time
}

func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{
		token: strings.TrimPrefix(strings.TrimSpace(token), "Bearer "),
		now:   time.Now,
	}
}

func (p *StaticTokenProvider) Token() (string, error) {
	if p.token == "" {
		return "", internalauth.ErrAuthRequired
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(p.token, claims); err != nil {
		// Not a JWT: treat as an opaque bearer token and let the backend
		// judge it.
		return p.token, nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return p.token, nil
	}
	if exp.Before(p.now()) {
		return "", fmt.Errorf("token expired at %s: %w", exp.Format(time.RFC3339), internalauth.ErrAuthRequired)
	}
	return p.token, nil
}

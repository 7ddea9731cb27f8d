package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/assetbrowser/internal/clock"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultMargin is how long before expiry a cached token is refreshed.
	DefaultMargin = time.Minute
	// DefaultTTL is assumed for tokens that carry no readable expiry.
	DefaultTTL = time.Hour
)

// TokenProvider returns the access token to send as a bearer token.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// Static is a fixed access token.
type Static string

func (s Static) AccessToken(_ context.Context) (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// SourceFunc fetches a fresh access token.
type SourceFunc func(ctx context.Context) (string, error)

// CachedProvider caches the token returned by Source until Margin before
// its expiry. The expiry is read from the token's exp claim when the
// token is a JWT and is now+TTL otherwise. The zero values of Clock,
// Margin and TTL mean the real clock, DefaultMargin and DefaultTTL.
type CachedProvider struct {
	Source SourceFunc
	Clock  clock.Clock
	Margin time.Duration
	TTL    time.Duration

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func (p *CachedProvider) AccessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if p.token != "" && now.Before(p.expiresAt.Add(-p.margin())) {
		return p.token, nil
	}

	if p.Source == nil {
		return "", ErrNoToken
	}
	token, err := p.Source(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch access token: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}

	expiresAt, ok := Expiry(token)
	if !ok {
		expiresAt = now.Add(p.ttl())
	}
	if !now.Before(expiresAt) {
		return "", ErrTokenExpired
	}

	p.token = token
	p.expiresAt = expiresAt
	return token, nil
}

// Invalidate drops the cached token so the next call fetches a new one.
func (p *CachedProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	p.expiresAt = time.Time{}
}

// ExpiresAt returns the expiry of the cached token, or the zero time.
func (p *CachedProvider) ExpiresAt() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expiresAt
}

func (p *CachedProvider) now() time.Time {
	if p.Clock == nil {
		return time.Now()
	}
	return p.Clock.Now()
}

func (p *CachedProvider) margin() time.Duration {
	if p.Margin <= 0 {
		return DefaultMargin
	}
	return p.Margin
}

func (p *CachedProvider) ttl() time.Duration {
	if p.TTL <= 0 {
		return DefaultTTL
	}
	return p.TTL
}

// Expiry reads the exp claim of a JWT without verifying its signature.
// The DAM verifies the token; the client only needs to know when to
// refresh it.
func Expiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// IsTokenError reports whether err means no usable token is available.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrNoToken) || errors.Is(err, ErrTokenExpired)
}

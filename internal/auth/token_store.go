package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"ajurnie/internal/cache"
)

const (
	revokedTokenKeyPrefix = "revoked:session:"
	resetTokenKeyPrefix   = "reset:password:"
)

// ResetTokenTTL bounds how long a password reset link stays usable.
const ResetTokenTTL = time.Hour

// TokenStoreInterface defines the server-side token state operations:
// logout denylisting and one-shot password reset tokens.
type TokenStoreInterface interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	StoreResetToken(ctx context.Context, email, token string) error
	ConsumeResetToken(ctx context.Context, email, token string) (bool, error)
}

// TokenStore keeps token state in Redis. Session tokens are stateless
// JWTs, so "logout" is a denylist entry that outlives the token itself.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// RevokeToken denylists a session token id until its natural expiry.
func (s *TokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := revokedTokenKeyPrefix + tokenID
	return s.cache.Set(ctx, key, []byte("1"), ttl)
}

// IsTokenRevoked checks the denylist. A redis outage reads as not
// revoked; the token still expires on its own.
func (s *TokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedTokenKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}

// StoreResetToken stores a password reset token for an email, replacing
// any previous one.
func (s *TokenStore) StoreResetToken(ctx context.Context, email, token string) error {
	key := resetTokenKeyPrefix + email
	return s.cache.Set(ctx, key, []byte(token), ResetTokenTTL)
}

// ConsumeResetToken validates a reset token and removes it on success so
// a link cannot be replayed. A mismatched attempt leaves the stored token
// in place.
func (s *TokenStore) ConsumeResetToken(ctx context.Context, email, token string) (bool, error) {
	key := resetTokenKeyPrefix + email
	stored, err := s.cache.Get(ctx, key)
	if err != nil || stored == nil {
		return false, err
	}
	if subtle.ConstantTimeCompare(stored, []byte(token)) != 1 {
		return false, nil
	}
	return true, s.cache.Delete(ctx, key)
}

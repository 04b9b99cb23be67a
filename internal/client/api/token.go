package api

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/noteeasy/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the durable-store key holding the bearer token.
const TokenKey = "user_token"

// TokenStore supplies the bearer token attached to requests and invalidates
// it when the backend rejects it.
type TokenStore interface {
	// Token returns the current token, or "" when none is usable.
	Token(ctx context.Context) (string, error)

	// Invalidate removes the stored token (called on a 401 response).
	Invalidate(ctx context.Context) error

	// Save stores a new token.
	Save(ctx context.Context, token string) error
}

// KVTokenStore keeps the token in the durable KV store. Tokens that parse as
// JWTs with an expiry in the past are treated as absent, so requests never
// carry a token the backend is guaranteed to reject.
type KVTokenStore struct {
	kv storage.KV
}

func NewKVTokenStore(kv storage.KV) *KVTokenStore {
	return &KVTokenStore{kv: kv}
}

func (s *KVTokenStore) Token(ctx context.Context) (string, error) {
	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if !ok || token == "" {
		return "", nil
	}
	if expired(token) {
		return "", nil
	}
	return token, nil
}

func (s *KVTokenStore) Invalidate(ctx context.Context) error {
	return s.kv.Delete(ctx, TokenKey)
}

func (s *KVTokenStore) Save(ctx context.Context, token string) error {
	return s.kv.Set(ctx, TokenKey, token)
}

// expired reports whether token is a JWT whose exp claim has passed. The
// signature is not verified here; only the backend can do that. Opaque
// (non-JWT) tokens are never considered expired.
func expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

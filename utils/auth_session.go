package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const authSessionPrefix = "authSession:"

// AuthSession is the cached record of a live login. Keyed by the hash
// of the issued token, so presenting a token the cache has never seen
// (or one revoked since) fails authentication.
type AuthSession struct {
	AccountID string    `json:"accountId"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
}

// SaveAuthSession stores a session under the token hash with a TTL
// matching the token lifetime.
func SaveAuthSession(client *redis.Client, tokenHash string, session AuthSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, authSessionPrefix+tokenHash, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession retrieves a session by token hash.
func GetAuthSession(client *redis.Client, tokenHash string) (*AuthSession, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, authSessionPrefix+tokenHash).Result()
	if err != nil {
		return nil, err
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// DeleteAuthSession revokes a session.
func DeleteAuthSession(client *redis.Client, tokenHash string) error {
	ctx := context.Background()
	return client.Del(ctx, authSessionPrefix+tokenHash).Err()
}

// Package session provides Redis-backed storage for refresh-token
// sessions.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mgavilanes/campline-be/internal/models"
	"github.com/redis/go-redis/v9"
)

// sessionData is the payload stored for each refresh token.
type sessionData struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Store implements refresh token storage using Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// New creates a Redis-backed session store from a redis:// URL.
func New(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Store{client: client, prefix: "refresh:"}, nil
}

// NewWithClient creates a store from an existing Redis client.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client, prefix: "refresh:"}
}

func (s *Store) key(tokenHash string) string {
	return s.prefix + tokenHash
}

// Save stores a refresh session under the token hash with expiration.
func (s *Store) Save(ctx context.Context, tokenHash string, user models.User, expiresAt time.Time) error {
	data := sessionData{
		UserID:    user.ID,
		Name:      user.Name,
		CreatedAt: time.Now(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour // Default 30 days
	}

	if err := s.client.Set(ctx, s.key(tokenHash), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh session: %w", err)
	}
	return nil
}

// Lookup retrieves the session for a token hash and returns the user
// identity it was issued to.
func (s *Store) Lookup(ctx context.Context, tokenHash string) (models.User, error) {
	jsonData, err := s.client.Get(ctx, s.key(tokenHash)).Result()
	if err == redis.Nil {
		return models.User{}, fmt.Errorf("session not found or expired")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("lookup refresh session: %w", err)
	}

	var data sessionData
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return models.User{}, fmt.Errorf("unmarshal session data: %w", err)
	}

	return models.User{ID: data.UserID, Name: data.Name}, nil
}

// Revoke deletes a refresh session. Revoking an absent token is not
// an error.
func (s *Store) Revoke(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, s.key(tokenHash)).Err(); err != nil {
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

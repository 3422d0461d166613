// Package sessionstore provides the Redis session backend. Keys expire with
// the session, so Redis itself prunes expired sessions.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
)

const (
	keySession      = "club:session:"       // + token hash → session JSON
	keyUserSessions = "club:user-sessions:" // + user id → set of token hashes
)

// RedisStore implements repository.SessionRepository on Redis.
type RedisStore struct {
	client *redis.Client
}

var _ repository.SessionRepository = (*RedisStore)(nil)

// NewRedisStoreFromURL connects to redisURL and verifies the connection.
func NewRedisStoreFromURL(redisURL string, log logrus.FieldLogger) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infof("[SessionStore] Connected to Redis at %s", opts.Addr)
	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func userKey(userID int64) string {
	return keyUserSessions + strconv.FormatInt(userID, 10)
}

// Create stores the session with a TTL matching its expiry.
func (s *RedisStore) Create(ctx context.Context, session *models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("create session: already expired")
	}

	data, err := json.Marshal(record(session))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, keySession+session.TokenHash, data, ttl).Result()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if !ok {
		return fmt.Errorf("create session: %w", &repository.UniqueViolationError{
			Column: "token_hash",
			Err:    errors.New("token hash already stored"),
		})
	}

	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, userKey(session.UserID), session.TokenHash)
	// Sessions share one TTL, so the newest session always outlives the index.
	pipe.Expire(ctx, userKey(session.UserID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("index session: %w", err)
	}
	return nil
}

// GetByTokenHash loads a session; missing or expired keys yield repository.ErrNotFound.
func (s *RedisStore) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	data, err := s.client.Get(ctx, keySession+tokenHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get session: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	session := rec.model()
	session.TokenHash = tokenHash
	return session, nil
}

// UpdateLastUsed is a no-op for Redis; last-use tracking lives in the database backend.
func (s *RedisStore) UpdateLastUsed(ctx context.Context, id string, at time.Time) error {
	return nil
}

// DeleteByTokenHash removes a session; unknown hashes are ignored.
func (s *RedisStore) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	session, err := s.GetByTokenHash(ctx, tokenHash)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, keySession+tokenHash)
	pipe.SRem(ctx, userKey(session.UserID), tokenHash)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteByUserID removes every live session of a user.
func (s *RedisStore) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	hashes, err := s.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("list user sessions: %w", err)
	}
	if len(hashes) == 0 {
		return 0, nil
	}

	keys := make([]string, len(hashes))
	for i, h := range hashes {
		keys[i] = keySession + h
	}

	pipe := s.client.TxPipeline()
	deleted := pipe.Del(ctx, keys...)
	pipe.Del(ctx, userKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("delete user sessions: %w", err)
	}
	return deleted.Val(), nil
}

// DeleteExpired reports zero: Redis expires session keys on its own.
func (s *RedisStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// sessionRecord is the stored JSON form; models.Session hides the hash from JSON.
type sessionRecord struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
	UserAgent  *string   `json:"user_agent,omitempty"`
	IPAddress  *string   `json:"ip_address,omitempty"`
}

func record(s *models.Session) sessionRecord {
	return sessionRecord{
		ID:         s.ID,
		UserID:     s.UserID,
		ExpiresAt:  s.ExpiresAt,
		CreatedAt:  s.CreatedAt,
		LastUsedAt: s.LastUsedAt,
		UserAgent:  s.UserAgent,
		IPAddress:  s.IPAddress,
	}
}

func (r sessionRecord) model() *models.Session {
	return &models.Session{
		ID:         r.ID,
		UserID:     r.UserID,
		ExpiresAt:  r.ExpiresAt,
		CreatedAt:  r.CreatedAt,
		LastUsedAt: r.LastUsedAt,
		UserAgent:  r.UserAgent,
		IPAddress:  r.IPAddress,
	}
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bookello/booking-console/internal/core/domain"
)

const (
	tokenKey  = "console:auth_token"
	recordKey = "console:auth_user"

	connectTimeout = 5 * time.Second
)

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisStore keeps the session pair under two fixed Redis keys, for kiosk
// deployments where the console process restarts but the session must outlive
// the host. Writes go through a pipeline so the pair stays a unit.
type RedisStore struct {
	client *redis.Client
	log    zerolog.Logger

	mu      sync.RWMutex
	session *domain.Session
	token   string
	ready   bool
}

func NewRedisStore(client *redis.Client, log zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, log: log}
}

// Load resolves the persisted pair. A half pair or an unparsable record is
// cleared and the session starts anonymous. Only an unreachable Redis is an
// error — the store stays not-ready so gates keep answering Pending.
func (s *RedisStore) Load(ctx context.Context) error {
	token, tokenErr := s.client.Get(ctx, tokenKey).Result()
	record, recordErr := s.client.Get(ctx, recordKey).Result()

	if isInfraErr(tokenErr) || isInfraErr(recordErr) {
		return fmt.Errorf("session load: %w", errors.Join(tokenErr, recordErr))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.ready = true }()

	if errors.Is(tokenErr, redis.Nil) || errors.Is(recordErr, redis.Nil) {
		s.deletePair(ctx)
		return nil
	}

	session, err := decodeSession([]byte(record), token)
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding persisted session")
		s.deletePair(ctx)
		return nil
	}

	s.session = &session
	s.token = token
	return nil
}

func (s *RedisStore) Save(ctx context.Context, session domain.Session, token string) error {
	normalized := session.Normalize()
	raw, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, recordKey, raw, 0)
	pipe.Set(ctx, tokenKey, token, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.session = &normalized
	s.token = token
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.client.Del(ctx, tokenKey, recordKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.session = nil
	s.token = ""
	return nil
}

func (s *RedisStore) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	clone := *s.session
	return &clone
}

func (s *RedisStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *RedisStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// deletePair best-effort removes both keys. Callers hold mu; a failed delete
// is logged, the in-memory state is anonymous either way.
func (s *RedisStore) deletePair(ctx context.Context) {
	if err := s.client.Del(ctx, tokenKey, recordKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear stale session keys")
	}
	s.session = nil
	s.token = ""
}

func isInfraErr(err error) bool {
	return err != nil && !errors.Is(err, redis.Nil)
}

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const sessionTTL = 24 * time.Hour

// RedisSessionStore persists sessions in Redis so any API node can serve any
// session. Sessions expire after a day of inactivity.
type RedisSessionStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	if client == nil {
		panic("engine: redis client cannot be nil")
	}
	return &RedisSessionStore{
		redis:  client,
		tracer: otel.Tracer("scheduler.internal.engine.sessions"),
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (s *RedisSessionStore) Load(ctx context.Context, id string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "engine.load_session")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("engine: failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("engine: failed to decode session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	ctx, span := s.tracer.Start(ctx, "engine.save_session")
	defer span.End()

	data, err := json.Marshal(session)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("engine: failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(session.ID), data, sessionTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("engine: failed to persist session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "engine.delete_session")
	defer span.End()

	if err := s.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("engine: failed to delete session: %w", err)
	}
	return nil
}

package redis

import (
	"context"
	"encoding/json"
	"time"

	"cet-mentor-be/internal/constant"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "mentor:session:"

// SessionRepository is the Redis-backed alternative to the in-memory session
// store, for deployments where the backend runs more than one replica.
// Same contract: last-write-wins, TTL owned by the store.
type SessionRepository struct {
	client *redis.Client
	logger logger.ILogger
}

func NewSessionRepository(url string, log logger.ILogger) (*SessionRepository, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &SessionRepository{client: client, logger: log}, nil
}

func (r *SessionRepository) Save(session *store.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		r.logger.Error("session", "Failed to marshal session", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.client.Set(ctx, keyPrefix+session.ID, data, constant.SessionInactivityWindow).Err(); err != nil {
		r.logger.Warn("session", "Failed to save session to redis", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		return nil, false
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Warn("session", "Corrupt session payload in redis", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	r.client.Del(ctx, keyPrefix+sessionID)
}

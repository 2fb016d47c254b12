package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/cookie-table/internal/entity"
)

const sessionKeyPrefix = "session:"

// SessionRepoImpl provides a concrete implementation for the SessionRepository interface using Redis.
type SessionRepoImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepo creates a new instance of SessionRepoImpl. The TTL bounds
// both the anti-forgery token and any pending flash notices.
func NewSessionRepo(client *redis.Client, ttl time.Duration) *SessionRepoImpl {
	return &SessionRepoImpl{client: client, ttl: ttl}
}

func (r *SessionRepoImpl) tokenKey(sessionID string) string {
	return fmt.Sprintf("%s%s:token", sessionKeyPrefix, sessionID)
}

func (r *SessionRepoImpl) flashKey(sessionID string) string {
	return fmt.Sprintf("%s%s:flash", sessionKeyPrefix, sessionID)
}

// SaveToken stores the anti-forgery token for a session with the configured
// expiry. SET with expiry is atomic, so a racing save cannot leave a
// token without a TTL.
func (r *SessionRepoImpl) SaveToken(ctx context.Context, sessionID, token string) error {
	return r.client.Set(ctx, r.tokenKey(sessionID), token, r.ttl).Err()
}

// Token returns the stored anti-forgery token, or an empty string when the
// session is unknown or has expired.
func (r *SessionRepoImpl) Token(ctx context.Context, sessionID string) (string, error) {
	val, err := r.client.Get(ctx, r.tokenKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// PushFlash appends a notice to the session's flash list and refreshes the
// list expiry so notices never outlive the session.
func (r *SessionRepoImpl) PushFlash(ctx context.Context, sessionID string, notice entity.FlashNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return err
	}
	key := r.flashKey(sessionID)
	if err := r.client.RPush(ctx, key, payload).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, r.ttl).Err()
}

// PopFlashes drains the session's flash list, returning notices in the
// order they were pushed. Undecodable payloads are skipped.
func (r *SessionRepoImpl) PopFlashes(ctx context.Context, sessionID string) ([]entity.FlashNotice, error) {
	key := r.flashKey(sessionID)
	values, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil, err
	}

	notices := make([]entity.FlashNotice, 0, len(values))
	for _, value := range values {
		var notice entity.FlashNotice
		if err := json.Unmarshal([]byte(value), &notice); err != nil {
			continue
		}
		notices = append(notices, notice)
	}
	return notices, nil
}

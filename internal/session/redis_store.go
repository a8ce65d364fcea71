package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var severities = []Severity{SeveritySuccess, SeverityError, SeverityWarning}

// RedisStore keeps session state in a Redis hash per token plus one list
// per flash severity. All keys expire after the configured TTL, which is
// refreshed on every load, so idle sessions die on the Redis side.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, token string) (State, error) {
	key := sessKey(token)
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return State{}, fmt.Errorf("redis session load: %w", err)
	}
	if len(fields) == 0 {
		return State{}, nil
	}
	s.rdb.Expire(ctx, key, s.ttl)

	userID, err := strconv.ParseInt(fields["user_id"], 10, 64)
	if err != nil {
		return State{}, fmt.Errorf("redis session load: corrupt user_id %q", fields["user_id"])
	}
	return State{UserID: userID, Username: fields["username"]}, nil
}

func (s *RedisStore) Bind(ctx context.Context, token string, userID int64, username string) error {
	key := sessKey(token)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, "user_id", strconv.FormatInt(userID, 10), "username", username)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis session bind: %w", err)
	}
	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	keys := []string{sessKey(token)}
	for _, sev := range severities {
		keys = append(keys, flashKey(token, sev))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis session destroy: %w", err)
	}
	return nil
}

func (s *RedisStore) PushFlash(ctx context.Context, token string, severity Severity, message string) error {
	key := flashKey(token, severity)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis flash push: %w", err)
	}
	return nil
}

// DrainFlash reads and deletes every pending flash list in one transaction.
// Concurrent requests for the same token get last-reader-wins semantics.
func (s *RedisStore) DrainFlash(ctx context.Context, token string) (map[Severity][]string, error) {
	pipe := s.rdb.TxPipeline()
	cmds := make(map[Severity]*redis.StringSliceCmd, len(severities))
	for _, sev := range severities {
		key := flashKey(token, sev)
		cmds[sev] = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis flash drain: %w", err)
	}

	out := make(map[Severity][]string)
	for sev, cmd := range cmds {
		if msgs := cmd.Val(); len(msgs) > 0 {
			out[sev] = msgs
		}
	}
	return out, nil
}

func sessKey(token string) string {
	return "sess:" + token
}

func flashKey(token string, severity Severity) string {
	return "sess:" + token + ":flash:" + string(severity)
}

package mazestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "maze:"
	// defaultRunLockExpiry bounds run claims on mazes stored without a TTL.
	defaultRunLockExpiry = time.Hour
)

// RedisStore keeps mazes in Redis as JSON with a TTL. Run claims are redsync
// mutexes, so runs are exclusive across every process sharing the Redis.
type RedisStore struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisStore initializes a RedisStore with the provided Redis client and TTL.
func NewRedisStore(client *redis.Client, ttlSeconds int) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	store := &RedisStore{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

func mazeKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Save implements i.MazeStore.
func (s *RedisStore) Save(ctx context.Context, id uuid.UUID, m *maze.Maze) error {
	b, err := json.Marshal(m.FromOriginal())
	if err != nil {
		return fmt.Errorf("encoding maze %s: %w", id, err)
	}
	return s.client.Set(ctx, mazeKey(id), b, s.ttl).Err()
}

// ByID implements i.MazeStore.
func (s *RedisStore) ByID(ctx context.Context, id uuid.UUID) (*maze.Maze, error) {
	b, err := s.client.Get(ctx, mazeKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, i.ErrMazeNotFound
	}
	if err != nil {
		return nil, err
	}

	var m maze.Maze
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decoding maze %s: %w", id, err)
	}
	return &m, nil
}

// Delete implements i.MazeStore.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, mazeKey(id)).Err()
}

// LockRun implements i.MazeStore. The claim expires with the maze, so a crashed
// process cannot hold a maze forever.
func (s *RedisStore) LockRun(ctx context.Context, id uuid.UUID) (func(), error) {
	expiry := s.ttl
	if expiry <= 0 {
		expiry = defaultRunLockExpiry
	}
	mutex := s.locker.NewMutex(mazeKey(id)+":run_lock", redsync.WithTries(1), redsync.WithExpiry(expiry))
	if err := mutex.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) {
			return nil, fmt.Errorf("%w: %w", i.ErrRunLocked, err)
		}
		return nil, fmt.Errorf("locking maze %s: %w", id, err)
	}

	return func() {
		_, _ = mutex.Unlock()
	}, nil
}

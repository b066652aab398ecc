package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	defaultPrefix = "stay:idempotency:"

	// reserveTTL время жизни метки выполняющегося запроса
	reserveTTL = 30 * time.Second
)

// Record сохраненный ответ на запрос с ключом идемпотентности
type Record struct {
	Status      int       `json:"status"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// InFlight запрос с этим ключом еще выполняется, ответа пока нет
func (r *Record) InFlight() bool {
	return r.Status == 0
}

// redisClient подмножество команд go-redis, которые использует хранилище
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store хранилище ответов в Redis с ограниченным временем жизни
type Store struct {
	client redisClient
	prefix string
	ttl    time.Duration
}

// NewStore создает хранилище. client обычно *redis.Client.
func NewStore(client redisClient, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: defaultPrefix,
		ttl:    ttl,
	}
}

// Get возвращает запись по ключу. found=false, если ключа нет или он истек.
func (s *Store) Get(ctx context.Context, key string) (*Record, bool, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - redis get: %v", ErrRedis, err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("%w: Get - unmarshal: %v", ErrDecode, err)
	}

	return &rec, true, nil
}

// Reserve ставит метку выполняющегося запроса, если по ключу еще ничего нет.
// false - ключ уже занят другим запросом или сохраненным ответом.
func (s *Store) Reserve(ctx context.Context, key string) (bool, error) {
	raw, err := json.Marshal(&Record{OccurredAt: time.Now().UTC()})
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - marshal: %v", ErrEncode, err)
	}

	ok, err := s.client.SetNX(ctx, s.prefix+key, raw, reserveTTL).Result()
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - redis setnx: %v", ErrRedis, err)
	}

	return ok, nil
}

// Save сохраняет ответ поверх метки Reserve
func (s *Store) Save(ctx context.Context, key string, rec *Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal: %v", ErrEncode, err)
	}

	if err := s.client.Set(ctx, s.prefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - redis set: %v", ErrRedis, err)
	}

	return nil
}

// Release снимает метку, чтобы запрос можно было повторить
func (s *Store) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: Release - redis del: %v", ErrRedis, err)
	}
	return nil
}

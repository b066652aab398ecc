package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			delete(f.ttls, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestStore_SaveAndGet(t *testing.T) {
	client := newFakeRedis()
	store := NewStore(client, time.Hour)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(ctx, "k1", &Record{Status: 201, Body: []byte(`{"id":1}`)}))
	assert.Equal(t, time.Hour, client.ttls[defaultPrefix+"k1"])

	rec, found, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 201, rec.Status)
	assert.JSONEq(t, `{"id":1}`, string(rec.Body))
}

func TestStore_ReserveThenSave(t *testing.T) {
	client := newFakeRedis()
	store := NewStore(client, time.Hour)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, reserveTTL, client.ttls[defaultPrefix+"k"])

	// второй запрос с тем же ключом видит метку
	ok, err = store.Reserve(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	rec, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, rec.InFlight())

	require.NoError(t, store.Save(ctx, "k", &Record{Status: 201}))
	assert.Equal(t, time.Hour, client.ttls[defaultPrefix+"k"])

	rec, _, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 201, rec.Status)
	assert.False(t, rec.InFlight())
}

func TestStore_Release(t *testing.T) {
	client := newFakeRedis()
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	_, err := store.Reserve(ctx, "k")
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "k"))

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	ok, err := store.Reserve(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_Errors(t *testing.T) {
	client := newFakeRedis()
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	client.data[defaultPrefix+"broken"] = "not json"
	_, _, err := store.Get(ctx, "broken")
	assert.ErrorIs(t, err, ErrDecode)

	client.failGet = errors.New("connection refused")
	_, _, err = store.Get(ctx, "broken")
	assert.ErrorIs(t, err, ErrRedis)
}

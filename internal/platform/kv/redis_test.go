package kv

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisGetSetDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedis(client, "shiftpay:")
	ctx := context.Background()

	mock.ExpectGet("shiftpay:k").RedisNil()
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectSet("shiftpay:k", "v", 0).SetVal("OK")
	require.NoError(t, store.Set(ctx, "k", "v"))

	mock.ExpectGet("shiftpay:k").SetVal("v")
	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)

	mock.ExpectDel("shiftpay:k").SetVal(1)
	require.NoError(t, store.Delete(ctx, "k"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisGetPropagatesErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedis(client, "")

	mock.ExpectGet("k").SetErr(redis.ErrClosed)
	_, _, err := store.Get(context.Background(), "k")
	require.ErrorIs(t, err, redis.ErrClosed)
}

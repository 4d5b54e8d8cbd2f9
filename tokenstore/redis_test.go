package tokenstore_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/pos-console/tokenstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*tokenstore.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return tokenstore.NewRedisStore(client, "pos-console:"), mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	require.Equal(t, "pos-console:token", store.RedisKey())

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, tokenstore.ErrNoToken)
	require.NoError(t, store.Clear(ctx))

	require.NoError(t, store.Save(ctx, "a.b.c"))
	stored, err := mr.Get("pos-console:token")
	require.NoError(t, err)
	require.Equal(t, "a.b.c", stored)

	token, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "a.b.c", token)

	require.NoError(t, store.Clear(ctx))
	require.False(t, mr.Exists("pos-console:token"))
}

func TestRedisStoreSharedBetweenConsoles(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	first := tokenstore.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "pos-console:")
	second := tokenstore.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "pos-console:")

	require.NoError(t, first.Save(ctx, "shared"))
	token, err := second.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "shared", token)

	require.NoError(t, second.Clear(ctx))
	require.False(t, tokenstore.Has(ctx, first))
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, tokenstore.ErrNoToken)
}

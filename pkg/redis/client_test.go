package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, environment string) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient("redis://"+mr.Addr(), environment)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("not-a-url", "test")
	assert.Error(t, err)
}

func TestClient_SetGetDelete(t *testing.T) {
	client, _ := newTestClient(t, "test")
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k", "v", time.Minute))

	got, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, client.Delete(ctx, "k"))

	_, err = client.Get(ctx, "k")
	assert.True(t, IsNil(err))
}

func TestClient_BuildKeyScopesByEnvironment(t *testing.T) {
	client, mr := newTestClient(t, "staging")
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k", "v", time.Minute))

	assert.Equal(t, "staging:k", client.BuildKey("k"))
	assert.True(t, mr.Exists("staging:k"))
	assert.False(t, mr.Exists("k"))
}

func TestClient_BuildKeyWithoutPrefix(t *testing.T) {
	client, _ := newTestClient(t, "")
	assert.Equal(t, "k", client.BuildKey("k"))
}

func TestClient_TTLExpiry(t *testing.T) {
	client, mr := newTestClient(t, "test")
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k", "v", 30*time.Second))

	mr.FastForward(31 * time.Second)

	_, err := client.Get(ctx, "k")
	assert.True(t, IsNil(err))
}

func TestClient_Health(t *testing.T) {
	client, mr := newTestClient(t, "test")
	require.NoError(t, client.Health(context.Background()))

	mr.Close()
	assert.Error(t, client.Health(context.Background()))
}

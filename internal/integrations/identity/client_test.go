package identity

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashBooking/pkg/logger"
)

func newIdentityServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		switch r.URL.Path {
		case "/internal/users/u-1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"uid":"u-1","displayName":"Thandi","email":"thandi@example.com"}`))
		case "/internal/users/broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_GetUser(t *testing.T) {
	var calls int32
	srv := newIdentityServer(t, &calls)
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, 0, logger.NewWithWriter(io.Discard, "error"))

	user, err := c.GetUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Thandi", user.DisplayName)
	assert.Equal(t, "thandi@example.com", user.Email)

	_, err = c.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = c.GetUser(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetUserWithGracefulDegradation(t *testing.T) {
	var calls int32
	srv := newIdentityServer(t, &calls)
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, 0, logger.NewWithWriter(io.Discard, "error"))

	_, err := c.GetUserWithGracefulDegradation(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrServiceDegraded)

	_, err = c.GetUserWithGracefulDegradation(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClient_GetUserUsesRedisCache(t *testing.T) {
	var calls int32
	srv := newIdentityServer(t, &calls)
	defer srv.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := NewClient(srv.URL, time.Second, rdb, time.Minute, logger.NewWithWriter(io.Discard, "error"))

	for i := 0; i < 3; i++ {
		user, err := c.GetUser(context.Background(), "u-1")
		require.NoError(t, err)
		assert.Equal(t, "Thandi", user.DisplayName)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, mr.Exists(cacheKeyPrefix+"u-1"))
}

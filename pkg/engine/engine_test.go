package engine_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gitar-cli/gitar/pkg/cache"
	"github.com/gitar-cli/gitar/pkg/engine"
	"github.com/gitar-cli/gitar/pkg/httpclient"
	"github.com/gitar-cli/gitar/pkg/throttle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, ttl time.Duration) *engine.Engine {
	t.Helper()
	store := cache.New(t.TempDir(), nil)
	client := httpclient.New(httpclient.Options{})
	gov := throttle.New(10)
	return engine.New(store, client, gov, func(string) time.Duration { return ttl }, nil)
}

func TestFetchLiveThenServesFromCacheWithinTTL(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("ETag", `"v1"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("body"))
	}))
	defer srv.Close()

	e := newEngine(t, time.Hour)
	req := engine.Request{Method: http.MethodGet, URL: srv.URL, Domain: "example.com", Category: "project", AuthDiscriminator: "user:1"}

	resp1, err := e.Fetch(context.Background(), req, throttle.Override{})
	require.NoError(t, err)
	assert.Equal(t, engine.SourceFresh, resp1.Source)

	resp2, err := e.Fetch(context.Background(), req, throttle.Override{})
	require.NoError(t, err)
	assert.Equal(t, engine.SourceCached, resp2.Source)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchRevalidatesOn304(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		if n == 1 {
			w.Header().Set("ETag", `"v1"`)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("body"))
			return
		}
		assert.Equal(t, `"v1"`, r.Header.Get("If-None-Match"))
		w.WriteHeader(http.StatusNotModified)
	}))
	defer srv.Close()

	e := newEngine(t, 0) // ttl=0 forces revalidation every time
	req := engine.Request{Method: http.MethodGet, URL: srv.URL, Domain: "example.com", Category: "project", AuthDiscriminator: "user:1"}

	resp1, err := e.Fetch(context.Background(), req, throttle.Override{})
	require.NoError(t, err)
	assert.Equal(t, engine.SourceFresh, resp1.Source)

	resp2, err := e.Fetch(context.Background(), req, throttle.Override{})
	require.NoError(t, err)
	assert.Equal(t, engine.SourceRevalidated, resp2.Source)
	assert.Equal(t, "body", string(resp2.Body))
}

func TestFetchRefreshBypassesCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("body"))
	}))
	defer srv.Close()

	e := newEngine(t, time.Hour)
	req := engine.Request{Method: http.MethodGet, URL: srv.URL, Domain: "example.com", Category: "project", AuthDiscriminator: "user:1"}

	_, err := e.Fetch(context.Background(), req, throttle.Override{})
	require.NoError(t, err)

	req.Refresh = true
	resp, err := e.Fetch(context.Background(), req, throttle.Override{})
	require.NoError(t, err)
	assert.Equal(t, engine.SourceFresh, resp.Source)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestFetchClassifiesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	e := newEngine(t, time.Hour)
	req := engine.Request{Method: http.MethodGet, URL: srv.URL, Domain: "example.com", Category: "project", AuthDiscriminator: "user:1"}

	_, err := e.Fetch(context.Background(), req, throttle.Override{})
	require.Error(t, err)
}

func TestFetchWithDisabledCacheAlwaysLive(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("body"))
	}))
	defer srv.Close()

	client := httpclient.New(httpclient.Options{})
	gov := throttle.New(10)
	e := engine.New(cache.Disabled(), client, gov, func(string) time.Duration { return time.Hour }, nil)
	req := engine.Request{Method: http.MethodGet, URL: srv.URL, Domain: "example.com", Category: "project", AuthDiscriminator: "user:1"}

	_, err := e.Fetch(context.Background(), req, throttle.Override{})
	require.NoError(t, err)
	_, err = e.Fetch(context.Background(), req, throttle.Override{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

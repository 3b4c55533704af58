package sustainability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/integrations/worldbank"
)

const indicatorBody = `[
	{"page": 1, "pages": 1, "per_page": 200, "total": 2},
	[
		{"country": {"id": "WLD", "value": "World"}, "date": "2024", "value": 4.3},
		{"country": {"id": "WLD", "value": "World"}, "date": "2023", "value": null}
	]
]`

func stubService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("WORLDBANK_API_BASE", server.URL)
	return NewService(worldbank.NewClient())
}

func TestGetCachesWithinTTL(t *testing.T) {
	var calls int64
	svc := stubService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(indicatorBody))
	})

	first, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, first.CO2PerCapita, 1)
	assert.Equal(t, 4.3, first.CO2PerCapita[0].Value)
	fetched := atomic.LoadInt64(&calls)
	assert.Equal(t, int64(4), fetched)

	second, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, fetched, atomic.LoadInt64(&calls))
}

func TestGetRefreshesAfterTTL(t *testing.T) {
	var calls int64
	svc := stubService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(indicatorBody))
	})

	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	first, err := svc.Get(context.Background())
	require.NoError(t, err)

	current = current.Add(cacheTTL + time.Minute)
	second, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, int64(8), atomic.LoadInt64(&calls))
}

func TestGetServesStaleCopyOnUpstreamFailure(t *testing.T) {
	var fail atomic.Bool
	svc := stubService(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(indicatorBody))
	})

	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	first, err := svc.Get(context.Background())
	require.NoError(t, err)

	fail.Store(true)
	current = current.Add(cacheTTL + time.Minute)
	stale, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, stale)
}

func TestGetFailsWithNothingCached(t *testing.T) {
	svc := stubService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := svc.Get(context.Background())
	assert.Error(t, err)
}

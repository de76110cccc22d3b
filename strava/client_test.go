package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	// Keep tests fast.
	c.rateLimiter.minInterval = 0
	return c
}

func TestGetAllActivitiesPaginates(t *testing.T) {
	// Three full pages of 200 then a short page.
	pageSizes := map[int]int{1: 200, 2: 200, 3: 37}
	var gotAuth string

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		assert.Equal(t, "200", r.URL.Query().Get("per_page"))

		n := pageSizes[page]
		batch := make([]Activity, n)
		for i := range batch {
			batch[i] = Activity{ID: int64(page*1000 + i), Type: "Run"}
		}
		w.Header().Set("X-RateLimit-Usage", fmt.Sprintf("%d,%d", page, page))
		json.NewEncoder(w).Encode(batch)
	})

	all, err := c.GetAllActivities(context.Background(), "tok123", time.Unix(1759276800, 0))
	require.NoError(t, err)
	assert.Len(t, all, 437)
	assert.Equal(t, "Bearer tok123", gotAuth)

	short, daily := c.RateLimitStatus()
	assert.Equal(t, 100-3, short)
	assert.Equal(t, 1000-3, daily)
}

func TestGetActivitiesPassesAfter(t *testing.T) {
	after := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, strconv.FormatInt(after.Unix(), 10), r.URL.Query().Get("after"))
		json.NewEncoder(w).Encode([]Activity{})
	})
	_, err := c.GetActivities(context.Background(), "tok", after, 1, 100)
	require.NoError(t, err)
}

func TestGetActivitiesErrorStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Authorization Error"}`, http.StatusUnauthorized)
	})
	_, err := c.GetActivities(context.Background(), "bad", time.Time{}, 1, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestRateLimiterUpdateFromHeaders(t *testing.T) {
	rl := NewRateLimiter()
	h := http.Header{}
	h.Set("X-RateLimit-Usage", "34,512")
	h.Set("X-RateLimit-Limit", "200,2000")
	rl.UpdateFromHeaders(h)

	short, daily := rl.Status()
	assert.Equal(t, 200-34, short)
	assert.Equal(t, 2000-512, daily)
}

func TestRateLimiterWaitRespectsContext(t *testing.T) {
	rl := NewRateLimiter()
	rl.shortUsage = rl.shortLimit // exhausted

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

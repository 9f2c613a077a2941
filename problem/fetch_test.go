package problem

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: serve watermelonPage at the given paths, 404 elsewhere
func setupProblemServer(t *testing.T, paths ...string) (*httptest.Server, *[]string) {
	requested := []string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		for _, p := range paths {
			if r.URL.Path == p {
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte(watermelonPage))
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &requested
}

// TestFetch_Success verifies fetching and extracting a page
func TestFetch_Success(t *testing.T) {
	server, _ := setupProblemServer(t, "/contest/4/problem/A")
	fetcher := NewFetcher(server.URL, time.Second)
	fetcher.now = func() time.Time { return testTime }

	rec, err := fetcher.Fetch(context.Background(), server.URL+"/contest/4/problem/A")
	require.NoError(t, err)

	assert.Equal(t, "4A", rec.ProblemID)
	assert.Equal(t, server.URL+"/contest/4/problem/A", rec.URL)
	assert.Equal(t, "A. Watermelon", rec.ProblemName)
	assert.Len(t, rec.TestCases, 2)
	assert.Equal(t, "2024-03-09 14:05:07", rec.CreatedDate)
}

// TestFetch_HTTPError verifies non-200 responses are errors
func TestFetch_HTTPError(t *testing.T) {
	server, _ := setupProblemServer(t)
	fetcher := NewFetcher(server.URL, time.Second)

	_, err := fetcher.Fetch(context.Background(), server.URL+"/contest/4/problem/A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP error: 404")
}

// TestFetchByID_ContestFirst verifies the contest page is tried first
func TestFetchByID_ContestFirst(t *testing.T) {
	server, requested := setupProblemServer(t, "/contest/4/problem/A", "/problemset/problem/4/A")
	fetcher := NewFetcher(server.URL, time.Second)

	rec, err := fetcher.FetchByID(context.Background(), "4A")
	require.NoError(t, err)

	assert.Equal(t, "4A", rec.ProblemID)
	assert.Equal(t, []string{"/contest/4/problem/A"}, *requested)
}

// TestFetchByID_FallsBackToProblemset verifies the problemset fallback
func TestFetchByID_FallsBackToProblemset(t *testing.T) {
	server, requested := setupProblemServer(t, "/problemset/problem/4/A")
	fetcher := NewFetcher(server.URL, time.Second)

	rec, err := fetcher.FetchByID(context.Background(), "4A")
	require.NoError(t, err)

	assert.Equal(t, "4A", rec.ProblemID)
	assert.Equal(t, server.URL+"/problemset/problem/4/A", rec.URL)
	assert.Equal(t, []string{"/contest/4/problem/A", "/problemset/problem/4/A"}, *requested)
}

// TestFetchByID_AllFail verifies the error when neither page exists
func TestFetchByID_AllFail(t *testing.T) {
	server, _ := setupProblemServer(t)
	fetcher := NewFetcher(server.URL, time.Second)

	_, err := fetcher.FetchByID(context.Background(), "4A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch problem 4A")
}

// TestFetchByID_InvalidID verifies ids are validated before any request
func TestFetchByID_InvalidID(t *testing.T) {
	server, requested := setupProblemServer(t)
	fetcher := NewFetcher(server.URL, time.Second)

	_, err := fetcher.FetchByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnresolvable)
	assert.Empty(t, *requested)
}

// TestNewFetcher_Defaults verifies default base URL and timeout
func TestNewFetcher_Defaults(t *testing.T) {
	fetcher := NewFetcher("", 0)

	assert.Equal(t, DefaultBaseURL, fetcher.baseURL)
	assert.Equal(t, 10*time.Second, fetcher.client.Timeout)
}

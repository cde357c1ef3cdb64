package solver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hltvharvest/pkg/config"
	"hltvharvest/pkg/logger"
)

func testConfigs(solverURL string) (*config.SolverConfig, *config.RetryConfig) {
	return &config.SolverConfig{
			URL:            solverURL,
			RequestTimeout: 5 * time.Second,
			SolveTimeout:   time.Second,
		}, &config.RetryConfig{
			MaxAttempts: 3,
			Delay:       time.Millisecond,
		}
}

func solverHandler(t *testing.T, status, html string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "request.get", req.Cmd)
		assert.NotZero(t, req.MaxTimeout)

		resp := response{Status: status}
		resp.Solution.Status = http.StatusOK
		resp.Solution.Response = html
		json.NewEncoder(w).Encode(resp)
	}
}

func TestFetchReturnsSolvedDocument(t *testing.T) {
	server := httptest.NewServer(solverHandler(t, "ok", "<html>page</html>"))
	defer server.Close()

	solverCfg, retryCfg := testConfigs(server.URL)
	client := NewClient(solverCfg, retryCfg, nil, logger.NewNopLogger())

	html, err := client.Fetch(context.Background(), "https://www.hltv.org/results?offset=0")
	require.NoError(t, err)
	assert.Equal(t, "<html>page</html>", html)
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		solverHandler(t, "ok", "<html>late</html>")(w, r)
	}))
	defer server.Close()

	solverCfg, retryCfg := testConfigs(server.URL)
	client := NewClient(solverCfg, retryCfg, nil, logger.NewNopLogger())

	html, err := client.Fetch(context.Background(), "https://www.hltv.org/results?offset=0")
	require.NoError(t, err)
	assert.Equal(t, "<html>late</html>", html)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchExhaustionLogsFailedURL(t *testing.T) {
	server := httptest.NewServer(solverHandler(t, "error", ""))
	defer server.Close()

	failLog := NewFailureLog(filepath.Join(t.TempDir(), "failed_urls.txt"))
	solverCfg, retryCfg := testConfigs(server.URL)
	client := NewClient(solverCfg, retryCfg, failLog, logger.NewNopLogger())

	const target = "https://www.hltv.org/matches/2370001/a-vs-b"
	_, err := client.Fetch(context.Background(), target)
	require.Error(t, err)

	urls, err := failLog.URLs()
	require.NoError(t, err)
	assert.Equal(t, []string{target}, urls)
}

func TestFetchCancellationSkipsFailureLog(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The first attempt fails retryably after cancelling the context,
	// so the retry wait aborts the fetch mid-flight.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cancel()
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	failLog := NewFailureLog(filepath.Join(t.TempDir(), "failed_urls.txt"))
	solverCfg, retryCfg := testConfigs(server.URL)
	client := NewClient(solverCfg, retryCfg, failLog, logger.NewNopLogger())

	_, err := client.Fetch(ctx, "https://www.hltv.org/matches/2370002/c-vs-d")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	urls, err := failLog.URLs()
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestFailureLogAppendsInOrder(t *testing.T) {
	failLog := NewFailureLog(filepath.Join(t.TempDir(), "failed_urls.txt"))

	require.NoError(t, failLog.Append("https://example.com/a"))
	require.NoError(t, failLog.Append("https://example.com/b"))

	urls, err := failLog.URLs()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
}

func TestFailureLogMissingFile(t *testing.T) {
	failLog := NewFailureLog(filepath.Join(t.TempDir(), "failed_urls.txt"))

	urls, err := failLog.URLs()
	require.NoError(t, err)
	assert.Empty(t, urls)
}

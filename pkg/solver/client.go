package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hltvharvest/pkg/config"
	errs "hltvharvest/pkg/errors"
	"hltvharvest/pkg/logger"
	"hltvharvest/pkg/retry"
)

// request is the FlareSolverr request payload
type request struct {
	Cmd        string `json:"cmd"`
	URL        string `json:"url"`
	MaxTimeout int64  `json:"maxTimeout"`
}

// response is the FlareSolverr response envelope
type response struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Solution struct {
		URL      string `json:"url"`
		Status   int    `json:"status"`
		Response string `json:"response"`
	} `json:"solution"`
}

// Client fetches documents through a FlareSolverr proxy. The proxy
// solves anti-bot challenges; the client owns the bounded retry loop
// against it and records exhausted locators in the failure log.
type Client struct {
	httpClient   *http.Client
	solverURL    string
	solveTimeout time.Duration
	maxAttempts  int
	retryDelay   time.Duration
	failures     *FailureLog
	logger       logger.Logger
}

// NewClient creates a solver client from configuration
func NewClient(solverCfg *config.SolverConfig, retryCfg *config.RetryConfig, failures *FailureLog, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: solverCfg.RequestTimeout,
		},
		solverURL:    solverCfg.URL,
		solveTimeout: solverCfg.SolveTimeout,
		maxAttempts:  retryCfg.MaxAttempts,
		retryDelay:   retryCfg.Delay,
		failures:     failures,
		logger:       log,
	}
}

// Fetch retrieves the rendered document at url. Transient failures are
// retried a bounded number of times with a fixed sleep between
// attempts; on exhaustion the url is appended to the failure log and
// the last error is returned.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	cfg := &retry.Config{
		MaxAttempts: c.maxAttempts,
		Backoff:     &retry.ConstantBackoff{Delay: c.retryDelay},
		RetryIf:     retry.DefaultRetryIf,
		Context:     ctx,
		Logger:      c.logger,
	}

	html, err := retry.DoWithResult(func() (string, error) {
		return c.solve(ctx, url)
	}, cfg)

	if err != nil {
		// The failure log records urls the upstream could not serve.
		// A cancelled context is the run being interrupted, not an
		// upstream failure, so the url is not recorded.
		if ctx.Err() == nil && c.failures != nil {
			if logErr := c.failures.Append(url); logErr != nil {
				c.logger.WithError(logErr).Error("failed to record url in failure log")
			}
		}
		return "", err
	}

	return html, nil
}

// solve performs a single request against the FlareSolverr endpoint
func (c *Client) solve(ctx context.Context, url string) (string, error) {
	payload, err := json.Marshal(request{
		Cmd:        "request.get",
		URL:        url,
		MaxTimeout: c.solveTimeout.Milliseconds(),
	})
	if err != nil {
		return "", &errs.Error{
			Type:    errs.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to encode solver request: %v", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.solverURL, bytes.NewReader(payload))
	if err != nil {
		return "", &errs.Error{
			Type:    errs.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create solver request: %v", err),
		}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	c.logger.DebugWithFields("sending solver request", map[string]interface{}{
		"url": url,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("solver request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &errs.Error{
			Type:    errs.ErrorTypeSolver,
			Message: fmt.Sprintf("solver returned status %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}

	var solved response
	if err := json.NewDecoder(resp.Body).Decode(&solved); err != nil {
		return "", &errs.Error{
			Type:    errs.ErrorTypeSolver,
			Message: fmt.Sprintf("failed to decode solver response: %v", err),
		}
	}

	if solved.Status != "ok" {
		return "", &errs.Error{
			Type:    errs.ErrorTypeSolver,
			Message: fmt.Sprintf("solver returned non-ok status: %s", solved.Message),
		}
	}

	c.logger.DebugWithFields("solver request completed", map[string]interface{}{
		"url":      url,
		"status":   solved.Solution.Status,
		"duration": time.Since(start),
	})

	return solved.Solution.Response, nil
}

package adapters

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

const defaultHTTPTimeout = 60 * time.Second
const defaultHTTPRetries = 3
const defaultHTTPRetryDelay = 200 * time.Millisecond
const maxHTTPRetryDelay = 2 * time.Second

type httpRetryConfig struct {
	timeout   time.Duration
	retries   int
	baseDelay time.Duration
}

func normalizeHTTPConfig(timeoutSec int, retries int, delayMs int) httpRetryConfig {
	cfg := httpRetryConfig{
		timeout:   time.Duration(timeoutSec) * time.Second,
		retries:   retries,
		baseDelay: time.Duration(delayMs) * time.Millisecond,
	}
	if cfg.timeout <= 0 {
		cfg.timeout = defaultHTTPTimeout
	}
	if cfg.retries <= 0 {
		cfg.retries = defaultHTTPRetries
	}
	if cfg.baseDelay <= 0 {
		cfg.baseDelay = defaultHTTPRetryDelay
	}
	return cfg
}

// archiveGet issues a GET against an archive endpoint, retrying
// transport errors, 5xx and 429 responses with capped exponential
// backoff.  Any other response is handed back to the caller, status
// included.
func archiveGet(ctx context.Context, rawURL string, username string, apiKey string, cfg httpRetryConfig) (*http.Response, error) {
	client := &http.Client{Timeout: cfg.timeout}
	var lastErr error
	for attempt := 0; attempt < cfg.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, requestCanceled(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create request").
				WithCause(err)
		}
		applyBasicAuth(req, username, apiKey)
		resp, err := client.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, requestCanceled(ctxErr)
			}
			lastErr = err
		} else if retryableStatus(resp.StatusCode) && attempt < cfg.retries-1 {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		} else {
			return resp, nil
		}
		if attempt < cfg.retries-1 {
			delay := backoffDelay(attempt, cfg.baseDelay)
			log.Debug().
				Str("url", rawURL).
				Int("attempt", attempt+1).
				Dur("delay", delay).
				Msg("retrying archive request")
			time.Sleep(delay)
		}
	}
	if lastErr == nil {
		lastErr = errors.New("request failed")
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("request failed").
		WithCause(lastErr)
}

// applyBasicAuth attaches credentials when an API key is configured.
// The username falls back to "api", the convention token-authenticated
// mirror frontends expect.
func applyBasicAuth(req *http.Request, username string, apiKey string) {
	if strings.TrimSpace(apiKey) == "" {
		return
	}
	user := strings.TrimSpace(username)
	if user == "" {
		user = "api"
	}
	req.SetBasicAuth(user, apiKey)
}

func retryableStatus(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}

func backoffDelay(attempt int, base time.Duration) time.Duration {
	delay := base * time.Duration(1<<attempt)
	if delay > maxHTTPRetryDelay {
		delay = maxHTTPRetryDelay
	}
	jitter := time.Duration(time.Now().UnixNano() % int64(delay/2+1))
	return delay + jitter
}

func requestCanceled(cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("request canceled").
		WithCause(cause)
}

package nftbridge

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

// RequestExecutor handles the throttle, retry classification, and backoff.
type RequestExecutor struct {
	sdk *NFTBridge
}

func NewRequestExecutor(sdk *NFTBridge) *RequestExecutor {
	return &RequestExecutor{sdk: sdk}
}

// ExecuteWithRetry runs a single logical call against one provider.
//
// Every attempt, including the first, is preceded by the fixed rate-limit
// delay. Transport errors and 429 responses are retried with exponential
// backoff up to MaxRetries additional attempts; the backoff sleep and the
// throttle sleep are additive, never merged. Any other non-2xx status is
// terminal on first occurrence, as is a 2xx body that fails to parse as
// JSON. Each call owns its own attempt budget; nothing is shared across
// calls.
func (re *RequestExecutor) ExecuteWithRetry(ctx context.Context, providerName string, adapter ProviderAdapter, req *NormalizedRequest) (*NormalizedResponse, error) {
	cfg := re.sdk.config

	attempts := 0
	var lastErr error
	for {
		if err := re.sdk.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		logger.KV(xlog.DEBUG, "provider", providerName, "attempt", attempts+1, "endpoint", req.Endpoint)
		resp, err := adapter.ExecuteRequest(ctx, req)
		switch {
		case err != nil:
			// Transport-level failure: DNS, refused connection, timeout.
			lastErr = err
		case adapter.IsRateLimitError(resp):
			// 429. Retry-After is deliberately not consulted.
			lastErr = errors.Newf("provider %s rate limited (HTTP %d)", providerName, resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			logger.KV(xlog.DEBUG, "provider", providerName, "status", resp.StatusCode, "reason", "not retrying")
			return nil, newStatusError(resp.StatusCode, http.StatusText(resp.StatusCode))
		case len(resp.Data) > 0 && !json.Valid(resp.Data):
			return nil, newInvalidJSONError(errors.Newf("provider %s returned a non-JSON body", providerName))
		default:
			if attempts > 0 {
				logger.KV(xlog.DEBUG, "provider", providerName, "status", "succeeded", "attempts", attempts+1)
			}
			return resp, nil
		}

		if attempts >= cfg.MaxRetries {
			logger.KV(xlog.WARNING, "provider", providerName, "status", "retries exhausted", "err", lastErr)
			return nil, newRetryExhaustedError(lastErr)
		}
		wait := re.calculateBackoff(cfg.BaseBackoff, attempts)
		logger.KV(xlog.DEBUG, "provider", providerName, "err", lastErr, "backoff", wait, "attempt", attempts+1, "max", cfg.MaxRetries)
		if err := sleepCtx(ctx, wait); err != nil {
			return nil, err
		}
		attempts++
	}
}

func (re *RequestExecutor) calculateBackoff(base time.Duration, attempt int) time.Duration {
	return base * (1 << attempt) // base * 2^attempt
}

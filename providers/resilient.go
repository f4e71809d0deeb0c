package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"weatherdash.app/errors"
)

// resilientClient wraps an http.Client with a bounded retry and a circuit
// breaker. Retries are capped (at most two attempts total by default); the
// breaker keeps a flapping upstream from being hammered.
type resilientClient struct {
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
	breaker    *gobreaker.CircuitBreaker
}

func newResilientClient(name string, timeout time.Duration, maxRetries int) *resilientClient {
	return &resilientClient{
		client:     &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		retryDelay: 500 * time.Millisecond,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// Do issues the request built by buildRequest, retrying transport failures
// and 5xx responses up to maxRetries extra attempts. Non-5xx status codes
// are returned to the caller without retry.
func (c *resilientClient) Do(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt > 0 {
			timer := time.NewTimer(c.retryDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := c.breaker.Execute(func() (interface{}, error) {
			resp, execErr := c.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, fmt.Errorf("server error: status %d", resp.StatusCode)
			}
			return resp, nil
		})
		if err == nil {
			return result.(*http.Response), nil
		}

		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, errors.NewFetchError("upstream temporarily unavailable", err)
		}
		lastErr = err
	}

	return nil, lastErr
}

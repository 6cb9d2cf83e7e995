// Copyright 2026 GitAR Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package httpclient implements GitAR's single-request HTTP transport:
// execute one request, classify transport errors/5xx/429 as retryable,
// 3 attempts with 0.5s/1s/2s ±20%-jitter backoff, 10s connect /
// 60s-per-attempt timeouts, 5-hop redirect cap. Built on
// github.com/hashicorp/go-retryablehttp, the same library SharanRP's
// gh-notif uses to wrap go-github's transport.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	maxAttempts    = 3
	connectTimeout = 10 * time.Second
	attemptTimeout = 60 * time.Second
	maxRedirects   = 5
)

var backoffSchedule = []time.Duration{
	500 * time.Millisecond,
	1 * time.Second,
	2 * time.Second,
}

// Response is a single executed HTTP round trip's result.
type Response struct {
	Status  int
	Headers http.Header
	Body    []byte
	Elapsed time.Duration
}

// Options configures a Client. Zero value uses the package defaults.
type Options struct {
	ConnectTimeout time.Duration
	AttemptTimeout time.Duration
	MaxRedirects   int
	MaxAttempts    int
	Logger         *slog.Logger
}

// Client executes single HTTP requests with retry/backoff.
type Client struct {
	rc *retryablehttp.Client
}

// New builds a Client. A nil/zero Options uses the package's literal
// defaults (3 attempts, 10s connect, 60s/attempt, 5 redirects).
func New(opts Options) *Client {
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = connectTimeout
	}
	if opts.AttemptTimeout == 0 {
		opts.AttemptTimeout = attemptTimeout
	}
	if opts.MaxRedirects == 0 {
		opts.MaxRedirects = maxRedirects
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = maxAttempts
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: opts.ConnectTimeout}).DialContext,
	}

	base := &http.Client{
		Timeout:   opts.AttemptTimeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= opts.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", opts.MaxRedirects)
			}
			return nil
		},
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = base
	rc.RetryMax = opts.MaxAttempts - 1
	rc.RetryWaitMin = backoffSchedule[0]
	rc.RetryWaitMax = backoffSchedule[len(backoffSchedule)-1]
	rc.CheckRetry = checkRetry
	rc.Backoff = jitteredBackoff
	rc.Logger = nil // GitAR logs via slog at the engine layer, not per-attempt

	return &Client{rc: rc}
}

// Execute performs one logical request, transparently retrying per the
// policy above.
func (c *Client) Execute(ctx context.Context, method, url string, headers http.Header, body []byte) (*Response, error) {
	start := time.Now()

	var req *retryablehttp.Request
	var err error
	if body != nil {
		req, err = retryablehttp.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	} else {
		req, err = retryablehttp.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.rc.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    respBody,
		Elapsed: time.Since(start),
	}, nil
}

// checkRetry classifies which failures are retryable: DNS/TCP/TLS/timeout
// transport errors and HTTP 5xx/429 are retryable; other 4xx are not.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) {
			return true, nil
		}
		// Treat anything else the transport surfaced (connection refused,
		// TLS handshake failure, ...) as retryable.
		return true, nil
	}
	if resp == nil {
		return false, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return true, nil
	}
	if resp.StatusCode >= 500 {
		return true, nil
	}
	return false, nil
}

// jitteredBackoff implements the literal 0.5s/1s/2s ±20%-jitter schedule,
// rather than go-retryablehttp's default full-exponential curve.
func jitteredBackoff(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
	idx := attemptNum
	if idx < 0 {
		idx = 0
	}
	if idx >= len(backoffSchedule) {
		idx = len(backoffSchedule) - 1
	}
	base := backoffSchedule[idx]

	jitter := 1 + (rand.Float64()*0.4 - 0.2) // ±20%
	return time.Duration(float64(base) * jitter)
}

func classifyTransportError(err error) error {
	return fmt.Errorf("request failed after retries: %w", err)
}

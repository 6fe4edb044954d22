// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
)

// Baseline headers that mimic a modern browser. Thin header sets draw 403s
// from several of these surfaces. Individual fetches can override any of
// them per request.
var baseHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.8,*/*;q=0.7",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
	"Referer":         "https://www.google.com/",
}

// 🌐 Client is the shared HTTP helper every adapter fetches through.
// It retries failed requests with a short exponential backoff and stamps
// the configured user agent on everything.
type Client struct {
	http      *http.Client
	userAgent string
	sleep     func(ctx context.Context, d time.Duration) error
}

// 🏭 NewClient builds the shared fetch client
func NewClient(userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: userAgent,
		sleep:     sleepCtx,
	}
}

// 📥 GetJSON fetches a URL and decodes the JSON response into v
func (c *Client) GetJSON(ctx context.Context, rawURL string, headers map[string]string, v any) error {
	resp, err := c.do(ctx, rawURL, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Errorf("decoding response from %s: %w", rawURL, err)
	}
	return nil
}

// 📄 GetText fetches a URL and returns up to limit bytes of the body as
// text (limit <= 0 reads everything)
func (c *Client) GetText(ctx context.Context, rawURL string, headers map[string]string, limit int64) (string, error) {
	resp, err := c.do(ctx, rawURL, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	reader := io.Reader(resp.Body)
	if limit > 0 {
		reader = io.LimitReader(resp.Body, limit)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", errors.Errorf("reading response from %s: %w", rawURL, err)
	}
	return string(data), nil
}

// do performs a GET with retries. Every failure is retried up to
// maxAttempts with 1s, 2s... pauses; the pauses respect ctx cancellation.
func (c *Client) do(ctx context.Context, rawURL string, headers map[string]string) (*http.Response, error) {
	logger := zerolog.Ctx(ctx)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, time.Duration(1<<(attempt-1))*time.Second); err != nil {
				return nil, err
			}
		}

		resp, err := c.attempt(ctx, rawURL, headers)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, err
		}
		logger.Warn().
			Int("attempt", attempt+1).
			Int("max_attempts", maxAttempts).
			Str("url", rawURL).
			Err(err).
			Msg("request failed")
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, rawURL string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	for k, v := range baseHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Errorf("making request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	return resp, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

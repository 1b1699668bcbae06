// Package httputil provides the HTTP client and fetch helpers shared by the
// KlonTV pipeline, plus input sanitization utilities.
package httputil

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Default headers sent with every request unless overridden by the caller.
const (
	UserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	acceptHTML     = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	acceptLanguage = "uk-UA,uk;q=0.9,en-US;q=0.5,en;q=0.3"
)

// maxBodySize caps page reads; KlonTV pages are well under this.
const maxBodySize = 10 * 1024 * 1024

// StatusError reports a non-success HTTP status. It is distinguishable from
// transport failures via errors.As.
type StatusError struct {
	Code   int
	Status string
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.Code, e.Status, e.URL)
}

// NewClient creates a hardened HTTP client with secure defaults.
// The 10 second timeout bounds every pipeline fetch; failed fetches are
// final for a request, retries are not performed here.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			MaxIdleConnsPerHost: 5,
		},
	}
}

// GetText performs a GET request with the default browser-like headers
// merged under the caller's overrides and returns the body as text.
func GetText(ctx context.Context, client *http.Client, url string, headers map[string]string) (string, error) {
	if err := ValidateURL(url); err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	decorate(req, headers)

	return do(client, req)
}

// PostForm performs a POST with a pre-encoded form body and the default
// headers merged under the caller's overrides.
func PostForm(ctx context.Context, client *http.Client, url string, body string, headers map[string]string) (string, error) {
	if err := ValidateURL(url); err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	decorate(req, headers)

	return do(client, req)
}

// decorate applies default headers, then caller overrides on top.
func decorate(req *http.Request, overrides map[string]string) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", acceptHTML)
	req.Header.Set("Accept-Language", acceptLanguage)
	for k, v := range overrides {
		req.Header.Set(k, v)
	}
}

func do(client *http.Client, req *http.Request) (string, error) {
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Status: resp.Status, URL: req.URL.String()}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return string(body), nil
}

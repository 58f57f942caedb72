package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/tunedl/internal/domain"
)

const (
	defaultTimeout = 10 * time.Minute
	pingTimeout    = 5 * time.Second
	userAgent      = "tunedl/1.0"

	// maxBodySize caps JSON payloads; spotdl stderr in "details" can be long
	maxBodySize = 4 << 20
)

type requestIDKey struct{}

// WithRequestID tags ctx so the request carries an X-Request-Id header
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id set by WithRequestID, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client implements domain.DownloadRepository, domain.OrganizeRepository
// and domain.HealthChecker for the download service
type Client struct {
	baseURL    string
	httpClient *http.Client
	pingClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new download service client. A zero timeout uses
// the default, which is long because /download blocks until spotdl exits.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		pingClient: &http.Client{Timeout: pingTimeout},
		logger:     logger,
	}
}

// BaseURL returns the service root without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs a request and returns the status code and body. Any failure
// to complete the round trip is reported as domain.ErrServerOffline.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (int, []byte, error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if id := RequestID(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	c.logger.Debug("service request", "method", method, "url", reqURL, "request_id", RequestID(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("service request failed", "url", reqURL, "error", err)
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrServerOffline, err)
	}

	return resp.StatusCode, data, nil
}

// decode parses a JSON payload into dest
func (c *Client) decode(status int, body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "status", status, "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}

// Download posts the URL as a form field to /download
func (c *Client) Download(ctx context.Context, rawURL string) (domain.DownloadResult, int, error) {
	form := url.Values{}
	form.Set("url", rawURL)

	var result domain.DownloadResult
	status, body, err := c.do(ctx, http.MethodPost, "/download",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return result, status, err
	}

	if err := c.decode(status, body, &result); err != nil {
		return result, status, err
	}
	return result, status, nil
}

// Organize posts an empty request to /organize
func (c *Client) Organize(ctx context.Context) (domain.OrganizeResult, int, error) {
	var result domain.OrganizeResult
	status, body, err := c.do(ctx, http.MethodPost, "/organize", nil, "")
	if err != nil {
		return result, status, err
	}

	if err := c.decode(status, body, &result); err != nil {
		return result, status, err
	}
	return result, status, nil
}

// FileURL returns the per-file download route with the name percent-encoded
func (c *Client) FileURL(name string) string {
	return c.baseURL + FilePath(name)
}

// FetchFile streams GET /download/{name} into w
func (c *Client) FetchFile(ctx context.Context, name string, w io.Writer) (int64, error) {
	reqURL := c.FileURL(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if id := RequestID(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("file fetch failed", "url", reqURL, "error", err)
		return 0, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("%w: %s", domain.ErrFileNotFound, name)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to write %s: %w", name, err)
	}
	return n, nil
}

// Ping reports whether the service answers. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.pingClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return fmt.Errorf("%w: timed out", domain.ErrServerOffline)
		}
		return fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
	return nil
}

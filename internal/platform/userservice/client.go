// Package userservice is the HTTP client for the user service, which owns the
// users that tasks can be assigned to.
package userservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dfnabiullin/task-service/internal/config"
	"github.com/dfnabiullin/task-service/internal/platform/logger"
	"github.com/dfnabiullin/task-service/internal/redact"
	"github.com/google/uuid"
)

const usersPath = "/api/v1/users/"

// ErrRemote is returned when the user service answers with a non-2xx status.
var ErrRemote = errors.New("user service request failed")

// RemoteError carries the status returned by the user service.
type RemoteError struct {
	StatusCode int
	Path       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s returned %d", ErrRemote, e.Path, e.StatusCode)
}

// Unwrap allows errors.Is(err, ErrRemote).
func (e *RemoteError) Unwrap() error {
	return ErrRemote
}

// TokenGenerator mints the bearer token attached to outbound requests.
type TokenGenerator interface {
	GenerateServiceToken(ctx context.Context, subject string) (string, error)
}

// Client calls the user service over HTTP.
type Client struct {
	url    string
	client *http.Client
	tokens TokenGenerator
	logger *slog.Logger
}

// NewClient creates a client for the user service at cfg.URL. tokens may be
// nil, in which case requests are sent without an Authorization header.
func NewClient(cfg config.UserServiceConfig, tokens TokenGenerator, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:    strings.TrimSuffix(cfg.URL, "/"),
		client: &http.Client{Timeout: cfg.Timeout},
		tokens: tokens,
		logger: logger.With(slog.String("component", "user_client")),
	}
}

// SetHTTPClient replaces the default http.Client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.client = client
}

// CheckUserExists asks the user service for id. Any 2xx answer means the user
// exists; every other outcome is returned as an error.
func (c *Client) CheckUserExists(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, c.logger)
	path := usersPath + id.String()

	start := time.Now()
	res, err := c.DoRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		log.Warn("user service unreachable",
			slog.String("user_uuid", id.String()),
			slog.String("error", redact.Error(err)))
		return err
	}
	defer func() { _ = res.Body.Close() }()
	_, _ = io.Copy(io.Discard, res.Body)

	log.Debug("user service responded",
		slog.String("user_uuid", id.String()),
		slog.Int("status", res.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &RemoteError{StatusCode: res.StatusCode, Path: path}
	}
	return nil
}

// DoRequest sends a request to path relative to the client's base URL.
func (c *Client) DoRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	u, err := url.Parse(c.url + path)
	if err != nil {
		return nil, fmt.Errorf("invalid user service url: %w", err)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build user service request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if rid := logger.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	if c.tokens != nil {
		token, err := c.tokens.GenerateServiceToken(ctx, "task-service")
		if err != nil {
			return nil, fmt.Errorf("failed to sign user service request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user service request failed: %w", err)
	}
	return res, nil
}

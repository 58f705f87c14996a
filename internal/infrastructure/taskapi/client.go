package taskapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wrfweb/taskmonitor/internal/domain"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
)

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *logger.Logger
}

type ClientConfig struct {
	BaseURL string
	// Timeout of zero leaves requests unbounded; a hung request never resolves.
	Timeout   time.Duration
	UserAgent string
	// Transport defaults to http.DefaultTransport. Decorators such as
	// CSRFTransport and RequestIDTransport wrap it.
	Transport http.RoundTripper
	Logger    *logger.Logger
}

func NewClient(cfg ClientConfig) *Client {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger: log.Named("taskapi"),
	}
}

// CheckStatus issues GET /api/tasks/{id}/check.
func (c *Client) CheckStatus(ctx context.Context, taskID string) (*domain.StatusPayload, error) {
	return c.do(ctx, http.MethodGet, taskID, "check", "task_check")
}

// RunTask issues POST /api/tasks/{id}/run with an empty JSON request.
func (c *Client) RunTask(ctx context.Context, taskID string) (*domain.StatusPayload, error) {
	return c.do(ctx, http.MethodPost, taskID, "run", "task_run")
}

func (c *Client) taskURL(taskID, action string) string {
	return fmt.Sprintf("%s/api/tasks/%s/%s", c.baseURL, url.PathEscape(taskID), action)
}

func (c *Client) do(ctx context.Context, method, taskID, action, event string) (*domain.StatusPayload, error) {
	if taskID == "" {
		return nil, domain.ErrTaskIDRequired
	}

	start := time.Now()
	target := c.taskURL(taskID, action)

	httpReq, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if method != http.MethodGet {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debugw(event+"_request",
		"method", method,
		"url", target,
		"task_id", taskID,
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warnw(event+"_network_error", "task_id", taskID, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debugw(event+"_response",
		"task_id", taskID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"resp_bytes", len(respBody),
	)

	if resp.StatusCode != http.StatusOK {
		c.logger.Warnw(event+"_bad_status", "task_id", taskID, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrResponseNotOK, resp.StatusCode)
	}

	var payload domain.StatusPayload
	if err := json.Unmarshal(respBody, &payload); err != nil {
		c.logger.Warnw(event+"_parse_error", "task_id", taskID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodePayload, err)
	}

	return &payload, nil
}

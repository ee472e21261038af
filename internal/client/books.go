package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storyviewer/internal/config"
	"storyviewer/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type BookClient interface {
	ListRuns(ctx context.Context) ([]domain.Run, error)
	GetBook(ctx context.Context, runID string) (*domain.Book, error)
}

// APIError is a non-2xx answer from the book API. Message carries the
// server-provided error text when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Describe turns a client error into the text shown to the user: the server
// message, else the HTTP status, else the raw error.
func Describe(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

type bookClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	httpClient *resty.Client
}

func NewBookClient(cfg config.ViewerConfig) BookClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetHeader("Accept", "application/json")

	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
		log.Infof("🔗 Using proxy: %s", cfg.Proxy)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &bookClient{
		rl:         rl,
		baseURL:    cfg.BaseURL,
		httpClient: client,
	}
}

func (c *bookClient) ListRuns(ctx context.Context) ([]domain.Run, error) {
	c.rl.Take()

	var payload domain.RunList
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&payload).
		Get("/api/runs")

	// The run listing carries no error contract; only the status is reported.
	if failed(resp) {
		return nil, &APIError{StatusCode: resp.StatusCode()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	log.Debugf("Fetched %d runs", len(payload.Runs))
	if payload.Runs == nil {
		return []domain.Run{}, nil
	}
	return payload.Runs, nil
}

func (c *bookClient) GetBook(ctx context.Context, runID string) (*domain.Book, error) {
	c.rl.Take()

	var book domain.Book
	var payload domain.ErrorPayload
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("run", runID).
		SetResult(&book).
		SetError(&payload).
		Get("/api/book")

	if failed(resp) {
		// An unparseable error body leaves payload empty and falls back to the status.
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: payload.Error}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch book %s: %w", runID, err)
	}

	log.Debugf("Fetched book %s with %d pages", runID, len(book.Pages))
	return &book, nil
}

// failed reports whether the server answered with a non-2xx status
func failed(resp *resty.Response) bool {
	if resp == nil || resp.RawResponse == nil {
		return false
	}
	code := resp.StatusCode()
	return code < http.StatusOK || code >= http.StatusMultipleChoices
}

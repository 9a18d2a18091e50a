// Package marketlens is the HTTP adapter for the Market Lens
// fundamental-analysis API. It owns request construction, authentication,
// the retry policy, and the mapping of HTTP failures onto block error kinds.
package marketlens

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/de-tools/report-atlas/pkg/models/api"
	"github.com/de-tools/report-atlas/pkg/models/domain"
)

const (
	pathCachedReport        = "/api/fundamental/cached_report"
	pathCachedReportPeriods = "/api/fundamental/cached_report_periods"
	pathPredefinedQuestions = "/api/fundamental/predefined_report_questions"
	pathReportSummary       = "/api/fundamental/report_summary"
)

// RetryPolicy bounds the sequential retry of transient failures.
// Only connection errors, timeouts and 5xx responses are retried; the wait
// grows exponentially from WaitTime up to MaxWaitTime.
type RetryPolicy struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// DefaultRetryPolicy matches the upstream service's documented limits:
// three attempts, one second base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, WaitTime: time.Second, MaxWaitTime: 30 * time.Second}
}

// Config carries everything needed to talk to the API. The APIKey is the
// resolved credential the host injects at invocation time.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retry   RetryPolicy
}

// Client is a thin authenticated wrapper around the API. It keeps no state
// between calls beyond the configured transport.
type Client struct {
	http     *resty.Client
	attempts int
}

// NewClient validates cfg and builds a client. An empty API key or a
// non-positive timeout is a validation error, caught before any I/O.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.Validationf("api key must not be empty")
	}
	if cfg.Timeout <= 0 {
		return nil, domain.Validationf("timeout must be positive, got %s", cfg.Timeout)
	}
	retry := cfg.Retry
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy()
	}

	hc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(retry.MaxAttempts - 1).
		SetRetryWaitTime(retry.WaitTime).
		SetRetryMaxWaitTime(retry.MaxWaitTime).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode() >= 500
		})

	return &Client{http: hc, attempts: retry.MaxAttempts}, nil
}

// CachedReport fetches the cached analysis for a ticker and optional period.
func (c *Client) CachedReport(ctx context.Context, query domain.ReportQuery) (api.CachedReportResponse, error) {
	params := map[string]string{"ticker": query.Ticker}
	if query.Year != nil {
		params["year"] = strconv.Itoa(*query.Year)
	}
	if query.Quarter != nil {
		params["quarter"] = strconv.Itoa(*query.Quarter)
	}

	var out api.CachedReportResponse
	err := c.get(ctx, pathCachedReport, params, &out)
	return out, err
}

// CachedPeriods lists the periods a cached report exists for.
func (c *Client) CachedPeriods(ctx context.Context, ticker string) (api.PeriodsResponse, error) {
	var out api.PeriodsResponse
	err := c.get(ctx, pathCachedReportPeriods, map[string]string{"ticker": ticker}, &out)
	return out, err
}

// PredefinedQuestions lists every predefined question, all groups included.
func (c *Client) PredefinedQuestions(ctx context.Context) (api.QuestionsResponse, error) {
	var out api.QuestionsResponse
	err := c.get(ctx, pathPredefinedQuestions, nil, &out)
	return out, err
}

// ReportSummary asks the API to generate a customized summary.
func (c *Client) ReportSummary(ctx context.Context, req api.SummaryRequest) (api.SummaryResponse, error) {
	var out api.SummaryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(pathReportSummary)
	if err != nil {
		return out, domain.Timeoutf(
			"request to %s failed after %d attempts: %v", pathReportSummary, c.attempts, err)
	}
	if resp.IsError() {
		return out, c.mapErrorResponse(pathReportSummary, resp)
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return out, domain.Renderf("failed to parse %s response: %v", pathReportSummary, err)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(path)
	if err != nil {
		return domain.Timeoutf("request to %s failed after %d attempts: %v", path, c.attempts, err)
	}
	if resp.IsError() {
		return c.mapErrorResponse(path, resp)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return domain.Renderf("failed to parse %s response: %v", path, err)
	}
	return nil
}

// mapErrorResponse converts a non-2xx response into the block error taxonomy.
func (c *Client) mapErrorResponse(path string, resp *resty.Response) *domain.BlockError {
	detail := errorDetail(resp)

	switch code := resp.StatusCode(); {
	case code == 400 || code == 422:
		return domain.Validationf("the API rejected the request%s", detail)
	case code == 401 || code == 403:
		return domain.Authf("authentication failed, check the API key%s", detail)
	case code == 404:
		return domain.NotFoundf("no cached data found for the requested parameters%s", detail)
	case code == 429:
		return domain.Timeoutf("rate limit exceeded, retry later%s", detail)
	case code >= 500:
		return domain.Timeoutf("server error %d from %s after %d attempts%s", code, path, c.attempts, detail)
	default:
		return domain.Timeoutf("unexpected status %d from %s%s", code, path, detail)
	}
}

func errorDetail(resp *resty.Response) string {
	var body api.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Detail != "" {
		return fmt.Sprintf(": %s", body.Detail)
	}
	return ""
}

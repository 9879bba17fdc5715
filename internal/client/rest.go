package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"marketplace/storefront/internal/config"
	"marketplace/storefront/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// restClient talks to a PostgREST-compatible endpoint (the hosted
// datastore's REST gateway) under /rest/v1.
type restClient struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client

	// Circuit breaker for 429 responses
	circuitBreakerMutex sync.RWMutex
	throttledUntil      time.Time
	circuitBreakerDelay time.Duration
}

// apiError is the error body PostgREST returns.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func newRESTClient(cfg config.DataSourceConfig) *restClient {
	key := cfg.ServiceKey
	if key == "" {
		key = cfg.APIKey
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.RestURL, "/")+"/rest/v1").
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("apikey", cfg.APIKey)
	if key != "" {
		client.SetHeader("Authorization", "Bearer "+key)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &restClient{
		rl:                  rl,
		httpClient:          client,
		circuitBreakerDelay: time.Duration(cfg.CircuitBreakerDelay) * time.Second,
	}
}

type request struct {
	method string
	table  string
	query  map[string]string
	prefer string
	body   any
}

func filterQuery(filter *repository.Filter, query map[string]string) map[string]string {
	if query == nil {
		query = map[string]string{}
	}
	if filter != nil {
		query[filter.Column] = "eq." + fmt.Sprint(filter.Value)
	}
	return query
}

func eqID(id string) map[string]string {
	return map[string]string{"id": "eq." + id}
}

// do executes the request and decodes a JSON body into out when out is not nil.
func (c *restClient) do(ctx context.Context, req request, out any) (*resty.Response, error) {
	if c.isCircuitBreakerOpen() {
		remaining := c.getRemainingCircuitBreakerTime()
		return nil, fmt.Errorf("circuit breaker is open - requests disabled for %v more", remaining.Round(time.Second))
	}

	c.rl.Take()

	r := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(req.query)
	if req.prefer != "" {
		r.SetHeader("Prefer", req.prefer)
	}
	if req.body != nil {
		r.SetBody(req.body)
	}

	resp, err := r.Execute(req.method, "/"+req.table)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to call %s %s: %w", req.method, req.table, err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		c.triggerCircuitBreaker()
		return nil, fmt.Errorf("rate limited by data source on %s", req.table)
	}

	if resp.IsError() {
		var apiErr apiError
		if jsonErr := json.Unmarshal(resp.Bytes(), &apiErr); jsonErr == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("data source error %s on %s: %s", apiErr.Code, req.table, apiErr.Message)
		}
		return nil, fmt.Errorf("HTTP error on %s: %d %s", req.table, resp.StatusCode(), resp.Status())
	}

	if out != nil && len(resp.Bytes()) > 0 {
		if err := json.Unmarshal(resp.Bytes(), out); err != nil {
			return nil, fmt.Errorf("failed to decode %s response: %w", req.table, err)
		}
	}

	return resp, nil
}

// count asks for an exact row count via the Content-Range header.
func (c *restClient) count(ctx context.Context, table string, query map[string]string) (int, error) {
	if query == nil {
		query = map[string]string{}
	}
	query["select"] = "id"

	resp, err := c.do(ctx, request{
		method: http.MethodHead,
		table:  table,
		query:  query,
		prefer: "count=exact",
	}, nil)
	if err != nil {
		return 0, err
	}

	return parseContentRange(resp.Header().Get("Content-Range"))
}

// parseContentRange reads the total from values like "0-24/3573" or "*/0".
func parseContentRange(value string) (int, error) {
	_, total, found := strings.Cut(value, "/")
	if !found || total == "*" {
		return 0, errors.New("data source did not return an exact count")
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("invalid Content-Range %q: %w", value, err)
	}
	return n, nil
}

func (c *restClient) isCircuitBreakerOpen() bool {
	c.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(c.throttledUntil)
	wasTriggered := !c.throttledUntil.IsZero()
	c.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		c.circuitBreakerMutex.Lock()
		if !c.throttledUntil.IsZero() && now.After(c.throttledUntil) {
			c.throttledUntil = time.Time{}
			log.Infof("✅ Data source circuit breaker re-enabled - requests are now allowed")
		}
		c.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (c *restClient) triggerCircuitBreaker() {
	c.circuitBreakerMutex.Lock()
	defer c.circuitBreakerMutex.Unlock()

	c.throttledUntil = time.Now().Add(c.circuitBreakerDelay)
	log.Warnf("🚫 Data source circuit breaker activated! Requests disabled until %v",
		c.throttledUntil.Format("15:04:05"))
}

func (c *restClient) getRemainingCircuitBreakerTime() time.Duration {
	c.circuitBreakerMutex.RLock()
	defer c.circuitBreakerMutex.RUnlock()

	remaining := time.Until(c.throttledUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (c *restClient) Close() error {
	return c.httpClient.Close()
}

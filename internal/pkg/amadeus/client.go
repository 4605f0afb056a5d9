package amadeus

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/metrics"
)

const ProviderName = "amadeus"

// Config for the Amadeus self-service API client.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	// MaxRetries is the number of extra attempts after a rate limit, 5xx or
	// transport failure. Zero means a single attempt.
	MaxRetries int
	// Limiter is optional.
	Limiter    Limiter
	HTTPClient *http.Client
}

// Client performs authenticated calls to the travel data API and decodes
// the provider payload into the typed schema of this package.
type Client struct {
	baseURL    string
	maxRetries int
	limiter    Limiter
	httpClient *http.Client
	token      *tokenSource
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		baseURL:    baseURL,
		maxRetries: cfg.MaxRetries,
		limiter:    cfg.Limiter,
		httpClient: httpClient,
		token: &tokenSource{
			sem:          make(chan struct{}, 1),
			httpClient:   httpClient,
			url:          baseURL + tokenPath,
			clientID:     cfg.ClientID,
			clientSecret: cfg.ClientSecret,
			now:          time.Now,
		},
	}
}

// get issues a GET against path and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, operation, path string, query url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 200ms * 2^(attempt-1)
			backoff := time.Duration(200*(1<<(attempt-1))) * time.Millisecond
			slog.InfoContext(ctx, "retrying provider request with exponential backoff",
				slog.String("operation", operation),
				slog.Duration("backoff", backoff),
				slog.Int("next_attempt", attempt+1))

			if !sleepCtx(ctx, backoff) {
				return newProviderError(operation, ErrRequestFailed, ctx.Err())
			}
		}

		err := c.do(ctx, operation, path, query, out)
		if err == nil {
			return nil
		}

		lastErr = err
		if !retryable(err) {
			break
		}
	}

	slog.ErrorContext(ctx, "provider request failed",
		slog.String("operation", operation),
		slog.String("error", lastErr.Error()))

	return lastErr
}

func (c *Client) do(ctx context.Context, operation, path string, query url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Allow(ctx, ProviderName); err != nil {
			if retryable(err) {
				return &ProviderError{Operation: operation, Err: err}
			}
			return newProviderError(operation, ErrRequestFailed, err)
		}
	}

	token, err := c.token.Token(ctx)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return newProviderError(operation, ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.amadeus+json, application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveProvider(ProviderName, operation, 0, time.Since(start))
		return newProviderError(operation, ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	metrics.ObserveProvider(ProviderName, operation, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		c.token.Invalidate()
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(operation, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newProviderError(operation, ErrMalformedPayload, err)
	}

	return nil
}

type errorBody struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
	// the token endpoint answers with OAuth2 style errors
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// statusError maps a non 2xx response to a ProviderError, keeping the
// provider's own explanation when the body carries one.
func statusError(operation string, resp *http.Response) *ProviderError {
	perr := &ProviderError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Err:        sentinelForStatus(resp.StatusCode),
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		perr.Detail = strings.TrimSpace(string(raw))
		return perr
	}

	switch {
	case len(body.Errors) > 0 && body.Errors[0].Detail != "":
		perr.Detail = body.Errors[0].Detail
	case len(body.Errors) > 0:
		perr.Detail = body.Errors[0].Title
	case body.ErrorDescription != "":
		perr.Detail = body.ErrorDescription
	default:
		perr.Detail = body.Error
	}

	return perr
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

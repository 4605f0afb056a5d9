package amadeus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/metrics"
)

const (
	tokenPath         = "/v1/security/oauth2/token"
	tokenExpiryMargin = 10 * time.Second
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// tokenSource caches the client credentials access token. sem is a one slot
// lock held during a refresh so concurrent callers share one token request,
// while a caller whose context ends stops waiting for it.
type tokenSource struct {
	sem          chan struct{}
	httpClient   *http.Client
	url          string
	clientID     string
	clientSecret string
	accessToken  string
	expiresAt    time.Time
	now          func() time.Time
}

func (t *tokenSource) Token(ctx context.Context) (string, error) {
	select {
	case t.sem <- struct{}{}:
	case <-ctx.Done():
		return "", newProviderError("authenticate", ErrRequestFailed, ctx.Err())
	}
	defer func() { <-t.sem }()

	if t.accessToken != "" && t.now().Before(t.expiresAt.Add(-tokenExpiryMargin)) {
		return t.accessToken, nil
	}

	if t.clientID == "" || t.clientSecret == "" {
		perr := newProviderError("authenticate", ErrUnauthorized, nil)
		perr.Detail = "client credentials missing"
		return "", perr
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", t.clientID)
	form.Set("client_secret", t.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, strings.NewReader(form.Encode()))
	if err != nil {
		return "", newProviderError("authenticate", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		metrics.ObserveProvider(ProviderName, "token", 0, time.Since(start))
		return "", newProviderError("authenticate", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	metrics.ObserveProvider(ProviderName, "token", resp.StatusCode, time.Since(start))

	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", statusError("authenticate", resp)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", newProviderError("authenticate", ErrMalformedPayload, err)
	}

	if tr.AccessToken == "" {
		perr := newProviderError("authenticate", ErrMalformedPayload, nil)
		perr.Detail = "token response has no access_token"
		return "", perr
	}

	t.accessToken = tr.AccessToken
	t.expiresAt = t.now().Add(time.Duration(tr.ExpiresIn) * time.Second)

	return t.accessToken, nil
}

// Invalidate drops the cached token, forcing a refresh on the next call.
func (t *tokenSource) Invalidate() {
	t.sem <- struct{}{}
	defer func() { <-t.sem }()

	t.accessToken = ""
	t.expiresAt = time.Time{}
}

package strava

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/teemow/intervals-mcp/internal/config"
	"github.com/teemow/intervals-mcp/internal/instrumentation"
	"github.com/teemow/intervals-mcp/internal/logging"
	"github.com/teemow/intervals-mcp/internal/upstream"
)

// BaseURL is the Strava API host.
const BaseURL = "https://www.strava.com"

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host, for tests against httptest servers.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder used for token-refresh counters.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// Client is the secondary-API accessor. It fetches activity detail from
// Strava with a bearer token, refreshing the token when needed. Refreshed
// tokens are returned to callers, never written back to the configuration.
type Client struct {
	cfg     *config.Config
	http    *upstream.Client
	baseURL string
	logger  logging.Logger
	metrics *instrumentation.Metrics
}

// New creates a Strava client.
func New(cfg *config.Config, httpClient *upstream.Client, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		http:    httpClient,
		baseURL: BaseURL,
		logger:  logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) tokenURL() string {
	return c.baseURL + "/oauth/token"
}

// Refresh exchanges the configured refresh token for a new access token.
// It fails with a ConfigError before any network call when the client id,
// client secret, or refresh token is absent, and with an AuthError when the
// token endpoint answers with status >= 400. A failed refresh has no
// further fallback and is never retried.
func (c *Client) Refresh(ctx context.Context) (TokenTriple, error) {
	if missing := c.cfg.MissingRefresh(); len(missing) > 0 {
		return TokenTriple{}, upstream.NewConfigError(missing...)
	}

	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("refresh_token", c.cfg.RefreshToken)
	form.Set("grant_type", "refresh_token")

	env, err := c.http.PostForm(ctx, c.tokenURL(), form)
	if err != nil {
		c.recordRefresh(ctx, instrumentation.OAuthResultFailure)
		return TokenTriple{}, err
	}
	if env.Status >= http.StatusBadRequest {
		c.recordRefresh(ctx, instrumentation.OAuthResultFailure)
		c.logger.Warn("token refresh rejected", logging.KeyStatus, env.Status)
		return TokenTriple{}, &upstream.AuthError{Status: env.Status, Body: env.Data}
	}

	c.recordRefresh(ctx, instrumentation.OAuthResultSuccess)
	triple := tripleFromBody(env.Data)
	c.logger.Debug("token refreshed",
		"access_token", logging.SanitizeToken(triple.AccessToken),
		"expires_at", triple.ExpiresAt)
	return triple, nil
}

func (c *Client) recordRefresh(ctx context.Context, result string) {
	if c.metrics != nil {
		c.metrics.RecordOAuthTokenRefresh(ctx, result)
	}
}

// FetchActivity fetches a single activity from Strava.
//
// A statically configured access token is used directly; otherwise a fresh
// one is obtained via Refresh. If the first attempt answers 401 and a
// refresh token is configured, the token is refreshed and the request
// reissued exactly once; the retry deliberately omits the
// include_all_efforts parameter carried by the first attempt (behavior kept
// from the original deployment, pinned by tests). A 401 with no refresh
// token configured is returned as-is.
func (c *Client) FetchActivity(ctx context.Context, activityID string) (*ActivityResult, error) {
	if !c.cfg.StravaReady() {
		return nil, upstream.NewConfigError(c.cfg.MissingStrava()...)
	}

	var refreshed *TokenTriple
	token := c.cfg.AccessToken
	if token == "" {
		triple, err := c.Refresh(ctx)
		if err != nil {
			return nil, err
		}
		refreshed = &triple
		token = triple.AccessToken
	}

	activityURL := fmt.Sprintf("%s/api/v3/activities/%s", c.baseURL, activityID)
	env, err := c.http.Get(ctx, activityURL,
		map[string]string{"include_all_efforts": "true"},
		upstream.BearerAuth(token))
	if err != nil {
		return nil, err
	}

	if env.Status == http.StatusUnauthorized && c.cfg.RefreshToken != "" {
		c.logger.Info("unauthorized, refreshing token and retrying once",
			logging.Activity(activityID))
		triple, err := c.Refresh(ctx)
		if err != nil {
			return nil, fmt.Errorf("refresh after 401: %w", err)
		}
		refreshed = &triple

		env, err = c.http.Get(ctx, activityURL, nil, upstream.BearerAuth(triple.AccessToken))
		if err != nil {
			return nil, err
		}
	}

	result := &ActivityResult{Status: env.Status, Data: env.Data}
	if refreshed != nil {
		result.AccessToken = refreshed.AccessToken
		result.RefreshToken = refreshed.RefreshToken
		result.ExpiresAt = refreshed.ExpiresAt
	}
	return result, nil
}

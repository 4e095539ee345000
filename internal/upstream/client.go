package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teemow/intervals-mcp/internal/logging"
)

// DefaultTimeout bounds every upstream call, including token refreshes.
const DefaultTimeout = 20 * time.Second

// Authorizer mutates an outbound request to carry credentials.
type Authorizer func(*http.Request)

// BasicAuth returns an Authorizer that sets HTTP Basic credentials.
func BasicAuth(username, password string) Authorizer {
	return func(req *http.Request) {
		req.SetBasicAuth(username, password)
	}
}

// BearerAuth returns an Authorizer that sets an OAuth2 bearer token.
func BearerAuth(token string) Authorizer {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// Client performs timed HTTP calls against the upstream APIs and shapes
// every response into an Envelope. Network-level failures come back as
// *TransportError; non-2xx statuses are not errors.
type Client struct {
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a Client. A nil httpClient gets the default 20s-timeout
// client; a nil logger discards output (required for stdio transport).
func NewClient(httpClient *http.Client, logger logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Client{httpClient: httpClient, logger: logger}
}

// Get issues a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, rawURL string, params map[string]string, auth Authorizer) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{Op: "GET " + rawURL, Err: err}
	}
	if len(params) > 0 {
		q := req.URL.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	if auth != nil {
		auth(req)
	}
	return c.do(req, &Envelope{URL: rawURL, Params: params})
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, rawURL string, payload interface{}, auth Authorizer) (*Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "POST " + rawURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if auth != nil {
		auth(req)
	}
	return c.do(req, &Envelope{URL: rawURL, Payload: payload})
}

// PostForm issues a form-encoded POST. Form fields routinely carry secrets
// (client secrets, refresh tokens), so the envelope records only the URL.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Op: "POST " + rawURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, &Envelope{URL: rawURL})
}

func (c *Client) do(req *http.Request, env *Envelope) (*Envelope, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed",
			"method", req.Method,
			"url", req.URL.Redacted(),
			logging.KeyError, err.Error())
		return nil, &TransportError{Op: req.Method + " " + req.URL.Redacted(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read " + req.URL.Redacted(), Err: err}
	}

	env.Status = resp.StatusCode
	env.Data = ParseBody(body)

	c.logger.Debug("upstream request completed",
		"method", req.Method,
		"url", req.URL.Redacted(),
		logging.KeyStatus, resp.StatusCode,
		logging.KeyDuration, time.Since(start).String())
	return env, nil
}

package intervals

import (
	"context"
	"fmt"
	"time"
	// The trailing-four-weeks window is computed in Europe/Berlin; embed the
	// timezone database so scratch containers resolve it.
	_ "time/tzdata"

	"github.com/teemow/intervals-mcp/internal/config"
	"github.com/teemow/intervals-mcp/internal/upstream"
)

// BaseURL is the Intervals.icu API host.
const BaseURL = "https://intervals.icu"

// basicAuthUser is the fixed Basic-auth username; the password is the
// configured API key.
const basicAuthUser = "API_KEY"

// windowDays is the length of the default trailing events window.
const windowDays = 28

// windowLocation is the civil time zone the default window is computed in.
const windowLocation = "Europe/Berlin"

var berlin = func() *time.Location {
	loc, err := time.LoadLocation(windowLocation)
	if err != nil {
		// Unreachable with time/tzdata compiled in.
		panic(fmt.Sprintf("load %s: %v", windowLocation, err))
	}
	return loc
}()

// Option configures a Client.
type Option func(*Client)

// WithClock overrides the clock used for the trailing-window computation.
// Tests use this to pin "today".
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithBaseURL overrides the API host, for tests against httptest servers.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// Client calls the Intervals.icu calendar/wellness API on behalf of the
// configured athlete. It performs no credential checks itself; callers gate
// on config.MissingIntervals before invoking it.
type Client struct {
	cfg     *config.Config
	http    *upstream.Client
	baseURL string
	now     func() time.Time
}

// New creates an Intervals.icu client.
func New(cfg *config.Config, httpClient *upstream.Client, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		http:    httpClient,
		baseURL: BaseURL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) auth() upstream.Authorizer {
	return upstream.BasicAuth(basicAuthUser, c.cfg.APIKey)
}

func (c *Client) eventsURL() string {
	return fmt.Sprintf("%s/api/v1/athlete/%s/events", c.baseURL, c.cfg.AthleteID)
}

// DefaultWindow returns the trailing window [today - 28 days, today] as
// YYYY-MM-DD strings, with "today" taken in Europe/Berlin.
func (c *Client) DefaultWindow() (oldest, newest string) {
	today := c.now().In(berlin)
	return today.AddDate(0, 0, -windowDays).Format(time.DateOnly),
		today.Format(time.DateOnly)
}

// Events fetches calendar events between oldest and newest (YYYY-MM-DD,
// both inclusive as interpreted by the remote API).
func (c *Client) Events(ctx context.Context, oldest, newest string) (*upstream.Envelope, error) {
	params := map[string]string{"oldest": oldest, "newest": newest}
	return c.http.Get(ctx, c.eventsURL(), params, c.auth())
}

// EventsLastFourWeeks fetches calendar events for the default trailing
// window.
func (c *Client) EventsLastFourWeeks(ctx context.Context) (*upstream.Envelope, error) {
	oldest, newest := c.DefaultWindow()
	return c.Events(ctx, oldest, newest)
}

// CreateEvent creates a planned calendar entry.
func (c *Client) CreateEvent(ctx context.Context, spec EventSpec) (*upstream.Envelope, error) {
	return c.http.PostJSON(ctx, c.eventsURL(), spec, c.auth())
}

// Wellness fetches the athlete's wellness records between oldest and newest
// (YYYY-MM-DD).
func (c *Client) Wellness(ctx context.Context, oldest, newest string) (*upstream.Envelope, error) {
	url := fmt.Sprintf("%s/api/v1/athlete/%s/wellness", c.baseURL, c.cfg.AthleteID)
	params := map[string]string{"oldest": oldest, "newest": newest}
	return c.http.Get(ctx, url, params, c.auth())
}

// Activity fetches a single activity by id.
func (c *Client) Activity(ctx context.Context, activityID string) (*upstream.Envelope, error) {
	url := fmt.Sprintf("%s/api/v1/activity/%s", c.baseURL, activityID)
	return c.http.Get(ctx, url, nil, c.auth())
}

// ActivityComments fetches the message thread for an activity.
func (c *Client) ActivityComments(ctx context.Context, activityID string) (*upstream.Envelope, error) {
	url := fmt.Sprintf("%s/api/v1/activity/%s/messages", c.baseURL, activityID)
	return c.http.Get(ctx, url, nil, c.auth())
}

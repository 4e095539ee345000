package strava

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/intervals-mcp/internal/config"
	"github.com/teemow/intervals-mcp/internal/upstream"
)

// fakeStrava is a test double for the Strava API that counts token and
// resource requests and records the queries the resource endpoint saw.
type fakeStrava struct {
	srv *httptest.Server

	refreshCalls  int
	resourceCalls int
	resourceAuth  []string
	resourceQuery []string
	lastForm      map[string]string

	refreshStatus  int
	refreshBody    string
	resourceStatus func(call int) int
}

func newFakeStrava(t *testing.T) *fakeStrava {
	t.Helper()
	f := &fakeStrava{
		refreshStatus:  http.StatusOK,
		refreshBody:    `{"access_token": "fresh-token", "refresh_token": "fresh-refresh", "expires_at": 1718460000}`,
		resourceStatus: func(int) int { return http.StatusOK },
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls++
		require.NoError(t, r.ParseForm())
		f.lastForm = map[string]string{}
		for k := range r.PostForm {
			f.lastForm[k] = r.PostForm.Get(k)
		}
		w.WriteHeader(f.refreshStatus)
		_, _ = w.Write([]byte(f.refreshBody))
	})
	mux.HandleFunc("/api/v3/activities/", func(w http.ResponseWriter, r *http.Request) {
		f.resourceCalls++
		f.resourceAuth = append(f.resourceAuth, r.Header.Get("Authorization"))
		f.resourceQuery = append(f.resourceQuery, r.URL.RawQuery)
		w.WriteHeader(f.resourceStatus(f.resourceCalls))
		_, _ = w.Write([]byte(`{"id": 4711, "name": "Morning Ride"}`))
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeStrava) client(cfg *config.Config) *Client {
	return New(cfg, upstream.NewClient(f.srv.Client(), nil), WithBaseURL(f.srv.URL))
}

func fullConfig() *config.Config {
	return &config.Config{
		ClientID:     "42",
		ClientSecret: "shhh",
		AccessToken:  "static-token",
		RefreshToken: "refresh-me",
	}
}

func TestRefresh_MissingConfigIsTerminal(t *testing.T) {
	f := newFakeStrava(t)
	c := f.client(&config.Config{ClientID: "42"})

	_, err := c.Refresh(context.Background())
	require.Error(t, err)

	var cfgErr *upstream.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{config.EnvClientSecret, config.EnvRefreshToken}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "STRAVA_CLIENT_SECRET")
	assert.Contains(t, err.Error(), "STRAVA_REFRESH_TOKEN")
	assert.Zero(t, f.refreshCalls, "no network call may be made on a config error")
}

func TestRefresh_SendsFormEncodedGrant(t *testing.T) {
	f := newFakeStrava(t)
	c := f.client(fullConfig())

	triple, err := c.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"client_id":     "42",
		"client_secret": "shhh",
		"refresh_token": "refresh-me",
		"grant_type":    "refresh_token",
	}, f.lastForm)
	assert.Equal(t, "fresh-token", triple.AccessToken)
	assert.Equal(t, "fresh-refresh", triple.RefreshToken)
	assert.Equal(t, int64(1718460000), triple.ExpiresAt)
}

func TestRefresh_UpstreamRejectionSurfacesStatusAndBody(t *testing.T) {
	f := newFakeStrava(t)
	f.refreshStatus = http.StatusBadRequest
	f.refreshBody = `{"message": "Bad Request", "errors": [{"field": "refresh_token"}]}`
	c := f.client(fullConfig())

	_, err := c.Refresh(context.Background())
	require.Error(t, err)

	var authErr *upstream.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusBadRequest, authErr.Status)
	body, ok := authErr.Body.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Bad Request", body["message"])
	assert.Equal(t, 1, f.refreshCalls, "a failed refresh is never retried")
}

func TestRefresh_AbsentResponseFieldsDefaultToZero(t *testing.T) {
	f := newFakeStrava(t)
	f.refreshBody = `{}`
	c := f.client(fullConfig())

	triple, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, triple.AccessToken)
	assert.Empty(t, triple.RefreshToken)
	assert.Zero(t, triple.ExpiresAt)
}

func TestFetchActivity_NotReadyIsTerminal(t *testing.T) {
	f := newFakeStrava(t)
	c := f.client(&config.Config{})

	_, err := c.FetchActivity(context.Background(), "4711")
	require.Error(t, err)

	var cfgErr *upstream.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{
		config.EnvClientID,
		config.EnvClientSecret,
		config.EnvRefreshToken + " or " + config.EnvAccessToken,
	}, cfgErr.Missing)
	assert.Zero(t, f.refreshCalls)
	assert.Zero(t, f.resourceCalls)
}

func TestFetchActivity_StaticTokenNoRefresh(t *testing.T) {
	f := newFakeStrava(t)
	c := f.client(fullConfig())

	result, err := c.FetchActivity(context.Background(), "4711")
	require.NoError(t, err)

	assert.Equal(t, 1, f.resourceCalls)
	assert.Zero(t, f.refreshCalls)
	assert.Equal(t, []string{"Bearer static-token"}, f.resourceAuth)
	assert.Equal(t, []string{"include_all_efforts=true"}, f.resourceQuery)

	assert.Equal(t, http.StatusOK, result.Status)
	assert.Empty(t, result.AccessToken, "no refresh happened, so no triple is reported")
	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Morning Ride", data["name"])
}

func TestFetchActivity_RefreshesWhenNoStaticToken(t *testing.T) {
	f := newFakeStrava(t)
	cfg := fullConfig()
	cfg.AccessToken = ""
	c := f.client(cfg)

	result, err := c.FetchActivity(context.Background(), "4711")
	require.NoError(t, err)

	assert.Equal(t, 1, f.refreshCalls)
	assert.Equal(t, 1, f.resourceCalls)
	assert.Equal(t, []string{"Bearer fresh-token"}, f.resourceAuth)

	assert.Equal(t, "fresh-token", result.AccessToken)
	assert.Equal(t, "fresh-refresh", result.RefreshToken)
	assert.Equal(t, int64(1718460000), result.ExpiresAt)
}

func TestFetchActivity_RetryOn401(t *testing.T) {
	f := newFakeStrava(t)
	f.resourceStatus = func(call int) int {
		if call == 1 {
			return http.StatusUnauthorized
		}
		return http.StatusOK
	}
	c := f.client(fullConfig())

	result, err := c.FetchActivity(context.Background(), "4711")
	require.NoError(t, err)

	assert.Equal(t, 2, f.resourceCalls, "exactly one retry")
	assert.Equal(t, 1, f.refreshCalls, "exactly one refresh")
	assert.Equal(t, []string{"Bearer static-token", "Bearer fresh-token"}, f.resourceAuth)

	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, "fresh-token", result.AccessToken)
}

func TestFetchActivity_RetryDropsIncludeAllEfforts(t *testing.T) {
	// The retry intentionally omits the include_all_efforts parameter the
	// first attempt carries. This test pins that asymmetry so changing it
	// is a deliberate, visible decision.
	f := newFakeStrava(t)
	f.resourceStatus = func(call int) int {
		if call == 1 {
			return http.StatusUnauthorized
		}
		return http.StatusOK
	}
	c := f.client(fullConfig())

	_, err := c.FetchActivity(context.Background(), "4711")
	require.NoError(t, err)

	require.Len(t, f.resourceQuery, 2)
	assert.Equal(t, "include_all_efforts=true", f.resourceQuery[0])
	assert.Empty(t, f.resourceQuery[1])
}

func TestFetchActivity_401WithoutRefreshTokenPassesThrough(t *testing.T) {
	f := newFakeStrava(t)
	f.resourceStatus = func(int) int { return http.StatusUnauthorized }
	cfg := fullConfig()
	cfg.RefreshToken = ""
	c := f.client(cfg)

	result, err := c.FetchActivity(context.Background(), "4711")
	require.NoError(t, err)

	assert.Equal(t, 1, f.resourceCalls, "no retry without a refresh token")
	assert.Zero(t, f.refreshCalls)
	assert.Equal(t, http.StatusUnauthorized, result.Status)
}

func TestFetchActivity_Persistent401RetriesOnlyOnce(t *testing.T) {
	f := newFakeStrava(t)
	f.resourceStatus = func(int) int { return http.StatusUnauthorized }
	c := f.client(fullConfig())

	result, err := c.FetchActivity(context.Background(), "4711")
	require.NoError(t, err)

	assert.Equal(t, 2, f.resourceCalls)
	assert.Equal(t, 1, f.refreshCalls)
	assert.Equal(t, http.StatusUnauthorized, result.Status,
		"a second 401 is surfaced, not retried again")
}

func TestFetchActivity_RefreshFailureAfter401IsWrapped(t *testing.T) {
	f := newFakeStrava(t)
	f.resourceStatus = func(int) int { return http.StatusUnauthorized }
	f.refreshStatus = http.StatusBadRequest
	f.refreshBody = `{"message": "Bad Request"}`
	c := f.client(fullConfig())

	_, err := c.FetchActivity(context.Background(), "4711")
	require.Error(t, err)

	var authErr *upstream.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, err.Error(), "refresh after 401")
	assert.Equal(t, 1, f.resourceCalls)
	assert.Equal(t, 1, f.refreshCalls)
}

func TestAuthCodeURL(t *testing.T) {
	u := AuthCodeURL("42")
	assert.True(t, strings.HasPrefix(u, BaseURL+"/oauth/authorize?"))
	assert.Contains(t, u, "client_id=42")
	assert.Contains(t, u, "scope=activity%3Aread_all")
	assert.Contains(t, u, "response_type=code")
}

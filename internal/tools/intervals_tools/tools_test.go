package intervals_tools

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/intervals-mcp/internal/config"
	"github.com/teemow/intervals-mcp/internal/intervals"
	"github.com/teemow/intervals-mcp/internal/server"
	"github.com/teemow/intervals-mcp/internal/upstream"
)

func testConfig() *config.Config {
	return &config.Config{AthleteID: "i12345", APIKey: "test-key"}
}

func newToolContext(t *testing.T, cfg *config.Config) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

// countingServer runs a test server that counts requests and answers every
// one of them with the given status and body.
func countingServer(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

// useIntervalsServer points the context's Intervals.icu client at srv.
func useIntervalsServer(sc *server.ServerContext, srv *httptest.Server, opts ...intervals.Option) {
	opts = append(opts, intervals.WithBaseURL(srv.URL))
	sc.SetIntervalsClient(intervals.New(sc.Config(), upstream.NewClient(srv.Client(), nil), opts...))
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("nil result")
	}
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("result content is %T, expected text", result.Content[0])
	}
	return text.Text
}

func TestMissingAPIKey(t *testing.T) {
	type handlerFunc func(context.Context, mcp.CallToolRequest, *server.ServerContext) (*mcp.CallToolResult, error)

	handlers := map[string]handlerFunc{
		"get_last4w_events":     handleLastFourWeeksEvents,
		"get_events":            handleGetEvents,
		"create_event":          handleCreateEvent,
		"get_wellness_records":  handleGetWellnessRecords,
		"get_activity":          handleGetActivity,
		"get_activity_comments": handleGetActivityComments,
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			sc := newToolContext(t, &config.Config{AthleteID: "i12345"})
			srv, calls := countingServer(t, http.StatusOK, `{}`)
			useIntervalsServer(sc, srv)

			result, err := handler(context.Background(), callRequest(name, map[string]interface{}{
				"oldest":           "2024-05-01",
				"newest":           "2024-06-01",
				"category":         "WORKOUT",
				"start_date_local": "2024-06-20T10:00:00",
				"type":             "Ride",
				"name":             "Test",
				"activity_id":      "123",
			}), sc)
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if !result.IsError {
				t.Error("expected error result")
			}
			if got := resultText(t, result); got != "Missing INTERVALS_API_KEY env var" {
				t.Errorf("unexpected message: %q", got)
			}
			if *calls != 0 {
				t.Errorf("expected no HTTP requests, got %d", *calls)
			}
		})
	}
}

func TestHandleGetEvents_DateValidation(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			name: "malformed oldest",
			args: map[string]interface{}{"oldest": "2024-6-01", "newest": "2024-06-15"},
		},
		{
			name: "malformed newest",
			args: map[string]interface{}{"oldest": "2024-06-01", "newest": "15.06.2024"},
		},
		{
			name: "datetime instead of date",
			args: map[string]interface{}{"oldest": "2024-06-01T00:00:00", "newest": "2024-06-15"},
		},
		{
			name: "missing arguments",
			args: map[string]interface{}{},
		},
		{
			name: "wrong argument type",
			args: map[string]interface{}{"oldest": 20240601, "newest": "2024-06-15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newToolContext(t, testConfig())
			srv, calls := countingServer(t, http.StatusOK, `[]`)
			useIntervalsServer(sc, srv)

			result, err := handleGetEvents(context.Background(), callRequest("get_events", tt.args), sc)
			if err != nil {
				t.Fatalf("handleGetEvents() error = %v", err)
			}
			if !result.IsError {
				t.Error("expected error result")
			}
			if got := resultText(t, result); got != intervals.ErrDateFormat {
				t.Errorf("unexpected message: %q", got)
			}
			if *calls != 0 {
				t.Errorf("expected no HTTP requests, got %d", *calls)
			}
		})
	}
}

func TestHandleGetEvents_Success(t *testing.T) {
	sc := newToolContext(t, testConfig())

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[{"id": 1, "name": "Morning Ride"}]`)
	}))
	t.Cleanup(srv.Close)
	useIntervalsServer(sc, srv)

	result, err := handleGetEvents(context.Background(), callRequest("get_events", map[string]interface{}{
		"oldest": "2024-05-01",
		"newest": "2024-06-01",
	}), sc)
	if err != nil {
		t.Fatalf("handleGetEvents() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	if !strings.Contains(gotQuery, "oldest=2024-05-01") || !strings.Contains(gotQuery, "newest=2024-06-01") {
		t.Errorf("unexpected query: %q", gotQuery)
	}

	text := resultText(t, result)
	if !strings.Contains(text, `"status": 200`) {
		t.Errorf("envelope missing status: %s", text)
	}
	if !strings.Contains(text, "Morning Ride") {
		t.Errorf("envelope missing body data: %s", text)
	}
}

func TestHandleGetEvents_UpstreamErrorPassthrough(t *testing.T) {
	sc := newToolContext(t, testConfig())
	srv, _ := countingServer(t, http.StatusNotFound, `{"error": "not found"}`)
	useIntervalsServer(sc, srv)

	result, err := handleGetEvents(context.Background(), callRequest("get_events", map[string]interface{}{
		"oldest": "2024-05-01",
		"newest": "2024-06-01",
	}), sc)
	if err != nil {
		t.Fatalf("handleGetEvents() error = %v", err)
	}

	// Upstream failures travel inside the envelope, not as tool errors.
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	text := resultText(t, result)
	if !strings.Contains(text, `"status": 404`) {
		t.Errorf("envelope missing upstream status: %s", text)
	}
}

func TestHandleLastFourWeeksEvents_Window(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("Failed to load location: %v", err)
	}
	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, loc)

	sc := newToolContext(t, testConfig())

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)
	useIntervalsServer(sc, srv, intervals.WithClock(func() time.Time { return fixed }))

	result, err := handleLastFourWeeksEvents(context.Background(),
		callRequest("get_last4w_events", nil), sc)
	if err != nil {
		t.Fatalf("handleLastFourWeeksEvents() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	if !strings.Contains(gotQuery, "oldest=2024-05-18") || !strings.Contains(gotQuery, "newest=2024-06-15") {
		t.Errorf("unexpected window query: %q", gotQuery)
	}
}

func TestHandleCreateEvent_DatetimeValidation(t *testing.T) {
	tests := []struct {
		name           string
		startDateLocal interface{}
	}{
		{name: "date only", startDateLocal: "2024-06-20"},
		{name: "timezone offset", startDateLocal: "2024-06-20T10:00:00+02:00"},
		{name: "missing seconds", startDateLocal: "2024-06-20T10:00"},
		{name: "empty", startDateLocal: ""},
		{name: "wrong type", startDateLocal: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newToolContext(t, testConfig())
			srv, calls := countingServer(t, http.StatusOK, `{}`)
			useIntervalsServer(sc, srv)

			result, err := handleCreateEvent(context.Background(), callRequest("create_event", map[string]interface{}{
				"category":         "WORKOUT",
				"start_date_local": tt.startDateLocal,
				"type":             "Ride",
				"name":             "Threshold intervals",
			}), sc)
			if err != nil {
				t.Fatalf("handleCreateEvent() error = %v", err)
			}
			if !result.IsError {
				t.Error("expected error result")
			}
			if got := resultText(t, result); got != intervals.ErrDatetimeFormat {
				t.Errorf("unexpected message: %q", got)
			}
			if *calls != 0 {
				t.Errorf("expected no HTTP requests, got %d", *calls)
			}
		})
	}
}

func TestHandleCreateEvent_Success(t *testing.T) {
	sc := newToolContext(t, testConfig())

	var gotMethod, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"id": 42}`)
	}))
	t.Cleanup(srv.Close)
	useIntervalsServer(sc, srv)

	result, err := handleCreateEvent(context.Background(), callRequest("create_event", map[string]interface{}{
		"category":         "WORKOUT",
		"start_date_local": "2024-06-20T10:00:00",
		"type":             "Ride",
		"name":             "Threshold intervals",
		"description":      "- 15m Z2\n\n3x\n- 10m Z4\n- 5m Z1",
	}), sc)
	if err != nil {
		t.Fatalf("handleCreateEvent() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if !strings.Contains(gotBody, `"start_date_local":"2024-06-20T10:00:00"`) {
		t.Errorf("unexpected request body: %s", gotBody)
	}

	text := resultText(t, result)
	// The envelope echoes the payload so the caller can see what was sent.
	if !strings.Contains(text, `"category": "WORKOUT"`) {
		t.Errorf("envelope missing payload: %s", text)
	}
	if !strings.Contains(text, `"id": 42`) {
		t.Errorf("envelope missing response data: %s", text)
	}
}

func TestHandleGetWellnessRecords_DateValidation(t *testing.T) {
	sc := newToolContext(t, testConfig())
	srv, calls := countingServer(t, http.StatusOK, `[]`)
	useIntervalsServer(sc, srv)

	result, err := handleGetWellnessRecords(context.Background(), callRequest("get_wellness_records", map[string]interface{}{
		"oldest": "01-06-2024",
		"newest": "2024-06-15",
	}), sc)
	if err != nil {
		t.Fatalf("handleGetWellnessRecords() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result")
	}
	if got := resultText(t, result); got != intervals.ErrDateFormat {
		t.Errorf("unexpected message: %q", got)
	}
	if *calls != 0 {
		t.Errorf("expected no HTTP requests, got %d", *calls)
	}
}

func TestHandleGetWellnessRecords_Success(t *testing.T) {
	sc := newToolContext(t, testConfig())

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `[{"id": "2024-06-01", "restingHR": 48}]`)
	}))
	t.Cleanup(srv.Close)
	useIntervalsServer(sc, srv)

	result, err := handleGetWellnessRecords(context.Background(), callRequest("get_wellness_records", map[string]interface{}{
		"oldest": "2024-06-01",
		"newest": "2024-06-15",
	}), sc)
	if err != nil {
		t.Fatalf("handleGetWellnessRecords() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	if gotPath != "/api/v1/athlete/i12345/wellness" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if !strings.Contains(resultText(t, result), "restingHR") {
		t.Errorf("envelope missing wellness data: %s", resultText(t, result))
	}
}

func TestRegisterIntervalsTools(t *testing.T) {
	sc := newToolContext(t, testConfig())

	s := newTestMCPServer()
	if err := RegisterIntervalsTools(s, sc); err != nil {
		t.Fatalf("RegisterIntervalsTools() error = %v", err)
	}
}

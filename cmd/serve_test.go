package cmd

import (
	"testing"
)

func TestResolveHTTPAddr(t *testing.T) {
	tests := []struct {
		name     string
		flagSet  bool
		flagAddr string
		envPort  string
		expected string
	}{
		{
			name:     "flag default, no env",
			flagSet:  false,
			flagAddr: ":8000",
			envPort:  "",
			expected: ":8000",
		},
		{
			name:     "flag default, PORT set",
			flagSet:  false,
			flagAddr: ":8000",
			envPort:  "9000",
			expected: ":9000",
		},
		{
			name:     "explicit flag wins over PORT",
			flagSet:  true,
			flagAddr: ":8080",
			envPort:  "9000",
			expected: ":8080",
		},
		{
			name:     "explicit flag, no env",
			flagSet:  true,
			flagAddr: "127.0.0.1:8000",
			envPort:  "",
			expected: "127.0.0.1:8000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolveHTTPAddr(tt.flagSet, tt.flagAddr, tt.envPort)
			if result != tt.expected {
				t.Errorf("resolveHTTPAddr(%v, %q, %q) = %q, want %q",
					tt.flagSet, tt.flagAddr, tt.envPort, result, tt.expected)
			}
		})
	}
}

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "get_last4w_events", expected: "Calendar Tools"},
		{name: "get_events", expected: "Calendar Tools"},
		{name: "create_event", expected: "Calendar Tools"},
		{name: "get_wellness_records", expected: "Wellness Tools"},
		{name: "get_activity", expected: "Activity Tools"},
		{name: "get_activity_comments", expected: "Activity Tools"},
		{name: "something_else", expected: "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getCategoryFromToolName(tt.name)
			if result != tt.expected {
				t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.name, result, tt.expected)
			}
		})
	}
}

package intervals

import "regexp"

// EventSpec describes a planned calendar entry. It is constructed per call,
// sent once, and discarded.
type EventSpec struct {
	Category       string `json:"category"`
	StartDateLocal string `json:"start_date_local"`
	Type           string `json:"type"`
	Name           string `json:"name"`
	Description    string `json:"description"`
}

// Validation grammars and the exact messages returned for a mismatch.
// Ordering of a date range (oldest <= newest) is not checked locally; the
// remote API owns that decision.
const (
	ErrDateFormat     = "Dates must be in YYYY-MM-DD format"
	ErrDatetimeFormat = "start_date_local must be YYYY-MM-DDTHH:MM:SS"
)

var (
	dateRE     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	datetimeRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)
)

// ValidDate reports whether s is a calendar date of the form YYYY-MM-DD.
func ValidDate(s string) bool {
	return dateRE.MatchString(s)
}

// ValidDatetime reports whether s is a local datetime of the form
// YYYY-MM-DDTHH:MM:SS, with no timezone offset and no sub-second precision.
func ValidDatetime(s string) bool {
	return datetimeRE.MatchString(s)
}

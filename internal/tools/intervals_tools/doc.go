// Package intervals_tools exposes the Intervals.icu proxy operations as MCP
// tools: calendar events (listing and creation), wellness records, and
// activities with their comments.
//
// Every handler follows the same shape: check that the Intervals.icu
// credentials are configured, validate the arguments locally, then proxy the
// call and return the response envelope as JSON. Validation failures and
// missing configuration are reported as tool error results before any HTTP
// request is made; upstream non-2xx statuses are passed through inside the
// envelope, not converted into errors.
//
// get_activity additionally consults Strava: when the Intervals.icu response
// is a stub marking the activity as hosted on Strava, the handler fetches the
// activity from the Strava API as well and attaches it under a separate
// "strava" key, keeping the primary response intact.
package intervals_tools

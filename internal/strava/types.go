package strava

import "encoding/json"

// TokenTriple is the result of a token refresh. It has no lifecycle beyond
// the response it is returned in; callers that want persistence must store
// it themselves.
type TokenTriple struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"`
}

// ActivityResult is the accessor's return shape: the Strava status and body,
// plus the refreshed token triple when a refresh happened anywhere in the
// flow, so the caller has the opportunity to persist it.
type ActivityResult struct {
	Status int         `json:"status"`
	Data   interface{} `json:"data"`

	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresAt    int64  `json:"expiresAt,omitempty"`
}

// tripleFromBody extracts a TokenTriple from a parsed token-endpoint
// response. Absent or mistyped fields yield zero values rather than errors;
// the upstream contract is loose enough that failing here would only turn a
// diagnosable empty token into an opaque parse error.
func tripleFromBody(body interface{}) TokenTriple {
	var t TokenTriple
	obj, ok := body.(map[string]interface{})
	if !ok {
		return t
	}
	t.AccessToken, _ = obj["access_token"].(string)
	t.RefreshToken, _ = obj["refresh_token"].(string)
	if n, ok := obj["expires_at"].(json.Number); ok {
		t.ExpiresAt, _ = n.Int64()
	}
	return t
}

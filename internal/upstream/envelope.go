package upstream

import (
	"bytes"
	"encoding/json"
)

// Envelope is the uniform shape every proxied call produces: the request
// that was made, the upstream status code, and the response body. Non-2xx
// statuses are passed through transparently so the caller can make policy
// decisions; they are never converted into failures here.
type Envelope struct {
	URL     string            `json:"url,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
	Payload interface{}       `json:"payload,omitempty"`
	Status  int               `json:"status"`
	Data    interface{}       `json:"data"`
}

// ParseBody decodes a response body as JSON, falling back to
// {"raw": <body text>} when the body is not valid JSON. Numbers are decoded
// as json.Number so bodies round-trip without precision loss.
func ParseBody(body []byte) interface{} {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return map[string]interface{}{"raw": string(body)}
	}
	// Trailing garbage after a valid JSON document is still not JSON.
	if dec.More() {
		return map[string]interface{}{"raw": string(body)}
	}
	return data
}

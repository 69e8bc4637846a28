package core

// CachedField is the key injected into successful payloads to indicate
// cache provenance.
const CachedField = "cached"

// RateLimitField is the key under which surfaced rate-limit headers are
// merged into successful payloads.
const RateLimitField = "ratelimit"

// RateLimit carries the rate-limit headers returned by exchanges that
// expose them. Values are the verbatim header strings.
type RateLimit struct {
	Limit     string `json:"limit"`
	Remaining string `json:"remaining"`
	Reset     string `json:"reset"`
}

// Result is the normalized outcome of one logical call. Exactly one of the
// two shapes is populated: a success payload (decoded JSON, decorated with
// cache provenance) or a terminal failure (the raw response body verbatim).
type Result struct {
	// Payload is the decoded JSON value on success: map[string]any for
	// objects, []any for arrays. Nil when Terminal.
	Payload any `json:"payload,omitempty"`
	// Raw is the unparsed response body of a terminal failure.
	Raw string `json:"raw,omitempty"`
	// StatusCode is the HTTP status of the response that produced this result.
	StatusCode int `json:"status_code"`
	// Terminal marks a non-retryable HTTP failure returned as a value.
	Terminal bool `json:"terminal"`
	// Cached is true when the response was served from the local cache.
	// Always false in async mode.
	Cached bool `json:"cached"`
	// RateLimit holds surfaced rate-limit headers, when the exchange
	// returns them.
	RateLimit *RateLimit `json:"ratelimit,omitempty"`
}

// OK returns true for a success result.
func (r *Result) OK() bool {
	return !r.Terminal
}

// Object returns the payload as a JSON object, or nil if the payload has a
// different shape.
func (r *Result) Object() map[string]any {
	obj, _ := r.Payload.(map[string]any)
	return obj
}

// Array returns the payload as a JSON array, or nil if the payload has a
// different shape.
func (r *Result) Array() []any {
	arr, _ := r.Payload.([]any)
	return arr
}

// terminalStatuses is the denylist of statuses classified as terminal:
// client-input errors, auth failures, rate limiting, and plain 500s are
// returned as values rather than retried.
var terminalStatuses = map[int]struct{}{
	400: {},
	401: {},
	403: {},
	404: {},
	429: {},
	500: {},
}

// IsTerminalStatus reports whether an HTTP status is in the terminal denylist.
func IsTerminalStatus(status int) bool {
	_, ok := terminalStatuses[status]
	return ok
}

package client

import (
	"fmt"

	"github.com/bytedance/sonic"

	"cryptowrap/internal/transport"
	"cryptowrap/pkg/core"
)

// normalize classifies one raw response. 2xx becomes a decorated success
// payload, a status from the terminal denylist becomes a terminal Result
// carrying the verbatim body, anything else is a retryable failure.
func (c *Client) normalize(resp *transport.Response) (*core.Result, error) {
	if resp.IsSuccess() {
		var payload any
		if err := sonic.Unmarshal(resp.Body, &payload); err != nil {
			return nil, core.WrapExchangeError(c.profile.ID, core.ErrorTypeDecode,
				fmt.Errorf("decode response: %w", err))
		}

		if c.profile.WrapPayload {
			payload = map[string]any{"response": payload}
		}

		cached := resp.FromCache
		var rl *core.RateLimit
		if c.profile.SurfaceRateLimit {
			rl = rateLimitFromHeaders(resp.Headers)
		}
		decorate(payload, cached, rl)

		return &core.Result{
			Payload:    payload,
			StatusCode: resp.StatusCode,
			Cached:     cached,
			RateLimit:  rl,
		}, nil
	}

	if core.IsTerminalStatus(resp.StatusCode) {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Msg("terminal response")
		return &core.Result{
			Raw:        string(resp.Body),
			StatusCode: resp.StatusCode,
			Terminal:   true,
		}, nil
	}

	return nil, core.NewExchangeError(c.profile.ID, core.ErrorTypeHTTP, resp.StatusCode,
		fmt.Sprintf("unexpected status %d", resp.StatusCode))
}

// decorate injects the cache-provenance flag into the payload: objects get
// it directly, arrays element-wise. Surfaced rate-limit headers are merged
// into object payloads.
func decorate(payload any, cached bool, rl *core.RateLimit) {
	switch v := payload.(type) {
	case map[string]any:
		v[core.CachedField] = cached
		if rl != nil {
			v[core.RateLimitField] = map[string]any{
				"limit":     rl.Limit,
				"remaining": rl.Remaining,
				"reset":     rl.Reset,
			}
		}
	case []any:
		for _, el := range v {
			if obj, ok := el.(map[string]any); ok {
				obj[core.CachedField] = cached
			}
		}
	}
}

// rateLimitFromHeaders lifts the venue's x-ratelimit-* headers, when present.
func rateLimitFromHeaders(headers map[string]string) *core.RateLimit {
	limit, ok := headers["x-ratelimit-limit"]
	if !ok {
		return nil
	}
	return &core.RateLimit{
		Limit:     limit,
		Remaining: headers["x-ratelimit-remaining"],
		Reset:     headers["x-ratelimit-reset"],
	}
}

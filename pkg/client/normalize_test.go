package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptowrap/internal/transport"
	"cryptowrap/pkg/core"
)

func newTestClient(t *testing.T, exchange string) *Client {
	t.Helper()
	c, err := New(exchange, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNormalize_ObjectPayload(t *testing.T) {
	c := newTestClient(t, "binance")

	result, err := c.normalize(&transport.Response{
		StatusCode: 200,
		Body:       []byte(`{"serverTime":1}`),
	})

	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, float64(1), result.Object()["serverTime"])
	assert.Equal(t, false, result.Object()[core.CachedField])
}

func TestNormalize_CachedProvenance(t *testing.T) {
	c := newTestClient(t, "binance")

	result, err := c.normalize(&transport.Response{
		StatusCode: 200,
		Body:       []byte(`{"serverTime":1}`),
		FromCache:  true,
	})

	require.NoError(t, err)
	assert.True(t, result.Cached)
	assert.Equal(t, true, result.Object()[core.CachedField])
}

func TestNormalize_ArrayElementsDecorated(t *testing.T) {
	c := newTestClient(t, "binance")

	result, err := c.normalize(&transport.Response{
		StatusCode: 200,
		Body:       []byte(`[{"a":1},{"b":2},"scalar"]`),
	})

	require.NoError(t, err)
	arr := result.Array()
	require.Len(t, arr, 3)
	assert.Equal(t, false, arr[0].(map[string]any)[core.CachedField])
	assert.Equal(t, false, arr[1].(map[string]any)[core.CachedField])
	assert.Equal(t, "scalar", arr[2])
}

func TestNormalize_ScalarPayloadUndecorated(t *testing.T) {
	c := newTestClient(t, "binance")

	result, err := c.normalize(&transport.Response{
		StatusCode: 200,
		Body:       []byte(`"pong"`),
	})

	require.NoError(t, err)
	assert.Equal(t, "pong", result.Payload)
}

func TestNormalize_WrappedPayload(t *testing.T) {
	c := newTestClient(t, "bitfinex")

	result, err := c.normalize(&transport.Response{
		StatusCode: 200,
		Body:       []byte(`[[1,2],[3,4]]`),
	})

	require.NoError(t, err)
	obj := result.Object()
	require.NotNil(t, obj)
	assert.Len(t, obj["response"], 2)
	assert.Equal(t, false, obj[core.CachedField])
}

func TestNormalize_RateLimitMerged(t *testing.T) {
	c := newTestClient(t, "bitmex")

	result, err := c.normalize(&transport.Response{
		StatusCode: 200,
		Body:       []byte(`{"symbol":"XBTUSD"}`),
		Headers: map[string]string{
			"x-ratelimit-limit":     "60",
			"x-ratelimit-remaining": "59",
			"x-ratelimit-reset":     "1700000000",
		},
	})

	require.NoError(t, err)
	require.NotNil(t, result.RateLimit)
	assert.Equal(t, "60", result.RateLimit.Limit)

	rl := result.Object()[core.RateLimitField].(map[string]any)
	assert.Equal(t, "59", rl["remaining"])
	assert.Equal(t, "1700000000", rl["reset"])
}

func TestNormalize_RateLimitHeadersAbsent(t *testing.T) {
	c := newTestClient(t, "bitmex")

	result, err := c.normalize(&transport.Response{
		StatusCode: 200,
		Body:       []byte(`{"symbol":"XBTUSD"}`),
	})

	require.NoError(t, err)
	assert.Nil(t, result.RateLimit)
	assert.NotContains(t, result.Object(), core.RateLimitField)
}

func TestNormalize_TerminalStatuses(t *testing.T) {
	c := newTestClient(t, "binance")

	for _, status := range []int{400, 401, 403, 404, 429, 500} {
		result, err := c.normalize(&transport.Response{
			StatusCode: status,
			Body:       []byte("denied"),
		})

		require.NoError(t, err, "status %d", status)
		assert.True(t, result.Terminal)
		assert.Equal(t, status, result.StatusCode)
		assert.Equal(t, "denied", result.Raw)
	}
}

func TestNormalize_RetryableStatus(t *testing.T) {
	c := newTestClient(t, "binance")

	result, err := c.normalize(&transport.Response{StatusCode: 503})

	assert.Nil(t, result)
	assert.True(t, core.IsRetryable(err))
}

func TestNormalize_MalformedBody(t *testing.T) {
	c := newTestClient(t, "binance")

	result, err := c.normalize(&transport.Response{
		StatusCode: 200,
		Body:       []byte(`{"truncated":`),
	})

	assert.Nil(t, result)
	assert.True(t, core.IsRetryable(err))
}

package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptowrap/pkg/core"
)

func testConfig(exchange, baseURL string) *core.Config {
	cfg := core.DefaultConfig(exchange)
	cfg.BaseURL = baseURL
	cfg.CacheTTL = 0
	return cfg
}

func TestNew_UnsupportedExchange(t *testing.T) {
	c, err := New("FooEx", nil)

	assert.Nil(t, c)
	assert.ErrorIs(t, err, core.ErrUnsupportedExchange)
}

func TestNew_CaseInsensitiveExchange(t *testing.T) {
	c, err := New("Binance", nil)

	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "binance", c.Exchange())
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := core.DefaultConfig("binance")
	cfg.Timeout = 0

	c, err := New("binance", cfg)

	assert.Nil(t, c)
	assert.True(t, core.IsConfigError(err))
}

func TestClient_Do_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/v1/time", r.URL.Path)
		w.Write([]byte(`{"serverTime":1499827319559}`))
	}))
	defer server.Close()

	c, err := New("binance", testConfig("binance", server.URL))
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "time", nil)

	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, 200, result.StatusCode)
	assert.False(t, result.Cached)
	assert.Equal(t, float64(1499827319559), result.Object()["serverTime"])
	assert.Equal(t, false, result.Object()[core.CachedField])
}

func TestClient_Do_UnknownOperation(t *testing.T) {
	c, err := New("binance", nil)
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "no_such_operation", nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, core.ErrUnknownOperation)
}

func TestClient_Do_ArrayDecoration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"symbol":"BTCUSDT"},{"symbol":"ETHUSDT"},42]`))
	}))
	defer server.Close()

	c, err := New("binance", testConfig("binance", server.URL))
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "ticker_price", nil)

	require.NoError(t, err)
	arr := result.Array()
	require.Len(t, arr, 3)
	assert.Equal(t, false, arr[0].(map[string]any)[core.CachedField])
	assert.Equal(t, false, arr[1].(map[string]any)[core.CachedField])
	assert.Equal(t, float64(42), arr[2])
}

func TestClient_Do_TerminalStatusReturnsValue(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer server.Close()

	cfg := testConfig("binance", server.URL).WithRetries(3, time.Millisecond)
	c, err := New("binance", cfg)
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "time", nil)

	require.NoError(t, err)
	assert.True(t, result.Terminal)
	assert.False(t, result.OK())
	assert.Equal(t, 404, result.StatusCode)
	assert.Equal(t, "not found", result.Raw)
	assert.Nil(t, result.Payload)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Do_RetriesThenExhausts(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	const interval = 20 * time.Millisecond
	cfg := testConfig("binance", server.URL).WithRetries(2, interval)
	c, err := New("binance", cfg)
	require.NoError(t, err)
	defer c.Close()

	start := time.Now()
	result, err := c.Do(context.Background(), "time", nil)

	assert.Nil(t, result)
	assert.True(t, core.IsRetryExhausted(err))
	assert.ErrorIs(t, err, core.ErrRetryExhausted)
	assert.Equal(t, int32(3), hits.Load())
	assert.GreaterOrEqual(t, time.Since(start), 2*interval)
}

func TestClient_Do_ZeroRetriesSingleAttempt(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c, err := New("binance", testConfig("binance", server.URL))
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "time", nil)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.False(t, core.IsRetryExhausted(err))
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Do_RecoversWithinRetryBudget(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"a":1}`))
	}))
	defer server.Close()

	cfg := testConfig("binance", server.URL).WithRetries(3, time.Millisecond)
	c, err := New("binance", cfg)
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "time", nil)

	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, float64(1), result.Object()["a"])
	assert.Equal(t, false, result.Object()[core.CachedField])
	assert.False(t, result.Cached)
}

func TestClient_Do_ConfigErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	cfg := testConfig("binance", server.URL).
		WithRetries(5, time.Millisecond).
		WithCredentials(&core.Credentials{APIKey: "key-only"})
	c, err := New("binance", cfg)
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "account", core.Params{"timestamp": "1"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, core.ErrMissingSecret)
	assert.True(t, core.IsConfigError(err))
	assert.False(t, core.IsRetryExhausted(err))
	assert.Equal(t, int32(0), hits.Load())
}

func TestClient_Do_CacheHitOnSecondCall(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"serverTime":1}`))
	}))
	defer server.Close()

	cfg := testConfig("binance", server.URL).WithCacheTTL(time.Minute)
	c, err := New("binance", cfg)
	require.NoError(t, err)
	defer c.Close()

	first, err := c.Do(context.Background(), "time", nil)
	require.NoError(t, err)
	second, err := c.Do(context.Background(), "time", nil)
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.Equal(t, false, first.Object()[core.CachedField])
	assert.True(t, second.Cached)
	assert.Equal(t, true, second.Object()[core.CachedField])
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Do_AsyncModeNeverCaches(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"serverTime":1}`))
	}))
	defer server.Close()

	cfg := testConfig("binance", server.URL).WithAsync(true).WithCacheTTL(time.Minute)
	c, err := New("binance", cfg)
	require.NoError(t, err)
	defer c.Close()

	for i := 0; i < 2; i++ {
		outcome := <-c.Go(context.Background(), "time", nil)
		require.NoError(t, outcome.Err)
		assert.False(t, outcome.Result.Cached)
		assert.Equal(t, false, outcome.Result.Object()[core.CachedField])
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_Do_SignedQuery(t *testing.T) {
	const (
		key    = "test-key"
		secret = "test-secret"
	)
	wantSig := func(query string) string {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(query))
		return hex.EncodeToString(mac.Sum(nil))
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/account", r.URL.Path)
		assert.Equal(t, key, r.Header.Get("X-MBX-APIKEY"))
		q := r.URL.Query()
		assert.Equal(t, "1499827319559", q.Get("timestamp"))
		assert.Equal(t, "5000", q.Get("recvWindow"))
		assert.Equal(t, wantSig("recvWindow=5000&timestamp=1499827319559"), q.Get("signature"))
		w.Write([]byte(`{"balances":[]}`))
	}))
	defer server.Close()

	cfg := testConfig("binance", server.URL).
		WithCredentials(&core.Credentials{APIKey: key, APISecret: secret})
	c, err := New("binance", cfg)
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "account", core.Params{
		"timestamp":  "1499827319559",
		"recvWindow": 5000,
	})

	require.NoError(t, err)
	assert.True(t, result.OK())
}

func TestClient_Do_PublicEndpointKeyHeaderOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-MBX-APIKEY"))
		assert.Empty(t, r.URL.Query().Get("signature"))
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"1.0"}`))
	}))
	defer server.Close()

	cfg := testConfig("binance", server.URL).
		WithCredentials(&core.Credentials{APIKey: "test-key", APISecret: "test-secret"})
	c, err := New("binance", cfg)
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "ticker_price", core.Params{"symbol": "BTCUSDT"})

	require.NoError(t, err)
	assert.True(t, result.OK())
}

func TestClient_Do_PathPlaceholders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/account/bnb1abc", r.URL.Path)
		assert.Equal(t, "", r.URL.Query().Get("address"))
		w.Write([]byte(`{"address":"bnb1abc"}`))
	}))
	defer server.Close()

	c, err := New("binancedex", testConfig("binancedex", server.URL))
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "account", core.Params{"address": "bnb1abc"})

	require.NoError(t, err)
	assert.True(t, result.OK())
}

func TestClient_Do_MissingPathPlaceholder(t *testing.T) {
	c, err := New("binancedex", nil)
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "account", nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, core.ErrMissingPathParam)
}

func TestClient_Do_RateLimitHeadersSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "59")
		w.Header().Set("X-RateLimit-Reset", "1499827319559")
		w.Write([]byte(`{"timestamp":"now"}`))
	}))
	defer server.Close()

	c, err := New("bitmex", testConfig("bitmex", server.URL))
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "announcement", nil)

	require.NoError(t, err)
	require.NotNil(t, result.RateLimit)
	assert.Equal(t, "60", result.RateLimit.Limit)
	assert.Equal(t, "59", result.RateLimit.Remaining)

	rl, ok := result.Object()[core.RateLimitField].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "60", rl["limit"])
	assert.Equal(t, "59", rl["remaining"])
	assert.Equal(t, "1499827319559", rl["reset"])
}

func TestClient_Do_WrappedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/tickers", r.URL.Path)
		w.Write([]byte(`[["tBTCUSD",1.0]]`))
	}))
	defer server.Close()

	c, err := New("bitfinex", testConfig("bitfinex", server.URL))
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "tickers", core.Params{"symbols": "tBTCUSD"})

	require.NoError(t, err)
	obj := result.Object()
	require.NotNil(t, obj)
	assert.Equal(t, false, obj[core.CachedField])
	assert.Len(t, obj["response"], 1)
}

func TestClient_Do_BodyParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v2/calc/trade/avg", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"symbol":"tBTCUSD","amount":"100"}`, string(body))
		w.Write([]byte(`[1.0,100.0]`))
	}))
	defer server.Close()

	c, err := New("bitfinex", testConfig("bitfinex", server.URL))
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "market_average_price", core.Params{
		"symbol": "tBTCUSD",
		"amount": "100",
	})

	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Len(t, result.Object()["response"], 2)
}

func TestClient_Do_EmptyBodyIsJSONObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(body))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c, err := New("bitfinex", testConfig("bitfinex", server.URL))
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "foreign_exchange_rate", nil)

	require.NoError(t, err)
	assert.True(t, result.OK())
}

func TestClient_Do_ExplicitRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"ccy":"BTC"}`, string(body))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c, err := New("bitfinex", testConfig("bitfinex", server.URL))
	require.NoError(t, err)
	defer c.Close()

	result, err := c.Do(context.Background(), "alert_list", core.Params{
		"body": `{"ccy":"BTC"}`,
	})

	require.NoError(t, err)
	assert.True(t, result.OK())
}

func TestClient_Do_AfterClose(t *testing.T) {
	c, err := New("binance", nil)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	result, err := c.Do(context.Background(), "time", nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, core.ErrClientClosed)
}

func TestClient_SetBaseURL(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, err := New("bitmex", testConfig("bitmex", "https://example.invalid"))
	require.NoError(t, err)
	defer c.Close()

	c.SetBaseURL(server.URL)
	result, err := c.Do(context.Background(), "announcement", nil)

	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, int32(1), hits.Load())
	assert.NotEmpty(t, c.AlternateBaseURL())
}

func TestClient_Operations(t *testing.T) {
	c, err := New("binance", nil)
	require.NoError(t, err)
	defer c.Close()

	ops := c.Operations()

	assert.NotEmpty(t, ops)
	assert.Contains(t, ops, "time")
	assert.Contains(t, ops, "account")
}

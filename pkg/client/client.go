// Package client implements the generic exchange client engine: one
// dispatch loop parameterized by an exchange profile, with signing,
// normalization, and retry handled uniformly for every venue.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/avast/retry-go"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"cryptowrap/internal/cache"
	"cryptowrap/internal/circuitbreaker"
	"cryptowrap/internal/ratelimit"
	"cryptowrap/internal/sign"
	"cryptowrap/internal/transport"
	"cryptowrap/pkg/core"
	"cryptowrap/pkg/exchange"
)

// Client is the single entry point for one exchange. It exposes every
// operation in the exchange's endpoint registry through Do and Go.
// Safe for concurrent use; retry state is local to each call.
type Client struct {
	config     *core.Config
	profile    *exchange.Profile
	dispatcher *transport.Dispatcher
	limiter    *ratelimit.Limiter
	breaker    *circuitbreaker.Breaker
	logger     zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// Option is a functional option for configuring the Client.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger sets the logger for the client.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a client for the identified exchange. An unsupported
// identifier or invalid configuration fails here, before any network call.
// A nil config uses DefaultConfig for the exchange.
func New(exchangeID string, config *core.Config, opts ...Option) (*Client, error) {
	profile, err := exchange.Lookup(exchangeID)
	if err != nil {
		return nil, err
	}

	if config == nil {
		config = core.DefaultConfig(profile.ID)
	}
	config.Exchange = profile.ID
	if err := config.Validate(); err != nil {
		return nil, core.WrapExchangeError(profile.ID, core.ErrorTypeConfig, err)
	}

	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	baseURL := profile.BaseURL
	if config.BaseURL != "" {
		baseURL = config.BaseURL
	}

	var respCache *cache.Cache
	if !config.Async && config.CacheTTL > 0 {
		respCache = cache.New(config.CacheTTL)
	}

	dispatcher := transport.New(transport.Config{
		BaseURL: baseURL,
		Timeout: config.Timeout,
		Headers: profile.Headers,
	}, respCache, o.logger)

	var limiter *ratelimit.Limiter
	if config.RateLimitRequests > 0 {
		limiter = ratelimit.New(config.RateLimitRequests, config.RateLimitPeriod)
	}

	var breaker *circuitbreaker.Breaker
	if config.CircuitBreakerEnabled {
		breaker = circuitbreaker.New(circuitbreaker.Config{
			FailThreshold:    config.CircuitBreakerFailThreshold,
			SuccessThreshold: config.CircuitBreakerSuccessThreshold,
			Timeout:          config.CircuitBreakerTimeout,
		})
	}

	return &Client{
		config:     config,
		profile:    profile,
		dispatcher: dispatcher,
		limiter:    limiter,
		breaker:    breaker,
		logger:     o.logger,
	}, nil
}

// Exchange returns the exchange identifier this client targets.
func (c *Client) Exchange() string {
	return c.profile.ID
}

// Operations returns the operation names in registry order.
func (c *Client) Operations() []string {
	return c.profile.Registry.Names()
}

// SetBaseURL switches the base URL, the documented mutation point for
// moving between mainnet and testnet.
func (c *Client) SetBaseURL(baseURL string) {
	c.dispatcher.SetBaseURL(baseURL)
}

// AlternateBaseURL returns the exchange's alternate network base URL, or
// "" when the venue has a single network.
func (c *Client) AlternateBaseURL() string {
	return c.profile.AltURL
}

// Close releases the transport session. Subsequent calls fail with
// ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.dispatcher.Close()
}

// Do invokes a named operation and returns its normalized result. Path
// placeholders and query/body fields are both taken from params. Retryable
// failures are reattempted per the configured retry budget; terminal HTTP
// failures come back as a Result value, not an error.
func (c *Client) Do(ctx context.Context, operation string, params core.Params) (*core.Result, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return nil, core.ErrClientClosed
	}

	descriptor, err := c.profile.Lookup(operation)
	if err != nil {
		return nil, core.WrapExchangeError(c.profile.ID, core.ErrorTypeConfig, err)
	}

	if c.config.MaxRetries <= 0 {
		return c.attempt(ctx, descriptor, params)
	}

	delayType := retry.FixedDelay
	if c.config.RetryBackoff {
		delayType = retry.BackOffDelay
	}

	var result *core.Result
	err = retry.Do(
		func() error {
			r, err := c.attempt(ctx, descriptor, params)
			if err != nil {
				return err
			}
			result = r
			return nil
		},
		retry.Attempts(uint(c.config.MaxRetries+1)),
		retry.Delay(c.config.RetryInterval),
		retry.DelayType(delayType),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.RetryIf(core.IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn().
				Uint("attempt", n+1).
				Str("operation", operation).
				Err(err).
				Msg("retrying request")
		}),
	)
	if err != nil {
		if core.IsRetryable(err) {
			return nil, core.WrapExchangeError(c.profile.ID, core.ErrorTypeRetryExhausted,
				fmt.Errorf("%w after %d attempts: %v", core.ErrRetryExhausted, c.config.MaxRetries+1, err))
		}
		return nil, err
	}
	return result, nil
}

// attempt performs exactly one dispatch: no retries at this layer.
func (c *Client) attempt(ctx context.Context, d core.Descriptor, callParams core.Params) (*core.Result, error) {
	params := callParams.Clone()

	path, err := core.ResolvePath(d.Path, params)
	if err != nil {
		return nil, core.WrapExchangeError(c.profile.ID, core.ErrorTypeConfig, err)
	}

	body, err := c.splitBody(d, params)
	if err != nil {
		return nil, err
	}
	encodedQuery := encodeQuery(params)

	headers := make(map[string]string)
	if c.config.Credentials.Configured() && c.profile.Signer != nil {
		signPath := c.signPath(d, path)
		if c.profile.SignWhen == nil || c.profile.SignWhen(signPath) {
			material, err := c.profile.Signer.Sign(*c.config.Credentials, sign.Request{
				Method: d.Method,
				Path:   signPath,
				Query:  encodedQuery,
				Body:   string(body),
			})
			if err != nil {
				return nil, core.WrapExchangeError(c.profile.ID, core.ErrorTypeSigning, err)
			}
			for k, v := range material.Headers {
				headers[k] = v
			}
			// signature params go last, after the signed query string
			for k, v := range material.Query {
				pair := k + "=" + url.QueryEscape(v)
				if encodedQuery == "" {
					encodedQuery = pair
				} else {
					encodedQuery += "&" + pair
				}
			}
		} else {
			// key header still accompanies conventionally public endpoints
			if kh, ok := c.profile.Signer.(*sign.SignedQuery); ok {
				headers[kh.KeyHeader] = c.config.Credentials.APIKey
			}
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, core.WrapExchangeError(c.profile.ID, core.ErrorTypeNetwork, err)
		}
	}
	if c.breaker != nil && !c.breaker.Allow() {
		return nil, core.WrapExchangeError(c.profile.ID, core.ErrorTypeNetwork, core.ErrCircuitBreakerOpen)
	}

	reqPath := path
	if host := c.hostOverride(d); host != "" {
		reqPath = host + path
	}

	resp, err := c.dispatcher.Do(ctx, &transport.Request{
		Method:  d.Method,
		Path:    reqPath,
		Query:   encodedQuery,
		Body:    body,
		Headers: headers,
	})

	if c.breaker != nil {
		c.breaker.Record(err == nil && resp != nil && resp.StatusCode < 500)
	}

	if err != nil {
		errType := core.ErrorTypeNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			errType = core.ErrorTypeTimeout
		}
		return nil, core.WrapExchangeError(c.profile.ID, errType, err)
	}

	return c.normalize(resp)
}

// splitBody extracts the request body from params. Profiles that carry
// every parameter in the query never produce a body. For the others,
// POST/PUT parameters become a JSON object body ({} when there are none),
// unless a reserved "body" parameter overrides it with a raw payload.
func (c *Client) splitBody(d core.Descriptor, params core.Params) ([]byte, error) {
	if c.profile.ParamsInQuery || d.Method == "GET" || d.Method == "DELETE" {
		return nil, nil
	}

	if raw, ok := params["body"]; ok {
		delete(params, "body")
		switch v := raw.(type) {
		case nil:
			return nil, nil
		case string:
			return []byte(v), nil
		case []byte:
			return v, nil
		default:
			b, err := sonic.Marshal(v)
			if err != nil {
				return nil, core.WrapExchangeError(c.profile.ID, core.ErrorTypeConfig,
					fmt.Errorf("encode body: %w", err))
			}
			return b, nil
		}
	}

	b, err := sonic.Marshal(map[string]any(params))
	if err != nil {
		return nil, core.WrapExchangeError(c.profile.ID, core.ErrorTypeConfig,
			fmt.Errorf("encode body: %w", err))
	}
	for k := range params {
		delete(params, k)
	}
	return b, nil
}

// hostOverride returns the scheme and host the request must target when the
// venue routes operations across hosts. An explicit base URL override wins,
// so testnets and local servers keep working.
func (c *Client) hostOverride(d core.Descriptor) string {
	if c.profile.HostFor == nil || c.dispatcher.BaseURL() != c.profile.BaseURL {
		return ""
	}
	return c.profile.HostFor(d)
}

// signPath returns the path as the server sees it: host override path for
// split-host venues, base URL path prefix included otherwise.
func (c *Client) signPath(d core.Descriptor, path string) string {
	if c.hostOverride(d) != "" {
		return path
	}
	return c.dispatcher.FullPath(path)
}

// encodeQuery stringifies params and encodes them deterministically
// (sorted by key).
func encodeQuery(params core.Params) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range params {
		values.Set(k, paramString(v))
	}
	return values.Encode()
}

func paramString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

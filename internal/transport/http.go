// Package transport provides the HTTP dispatch layer shared by all
// exchange clients: a lazily created resty session with default headers,
// optional response caching, and no retry logic of its own.
package transport

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"cryptowrap/internal/cache"
)

// Config holds the transport settings for one exchange client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Headers are the session default headers (Accept, Accept-Encoding,
	// Content-Type where the exchange requires one).
	Headers map[string]string
}

// Request is a fully prepared outgoing request. Query is the final encoded
// query string, exactly as it will appear on the wire.
type Request struct {
	Method  string
	Path    string
	Query   string
	Body    []byte
	Headers map[string]string
}

// Response is the raw transport outcome.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
	// FromCache is true when the response was served without network I/O.
	FromCache bool
}

// IsSuccess returns true for a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Dispatcher sends prepared requests over a shared resty session. The
// session is created on first use and is safe for concurrent reuse.
type Dispatcher struct {
	mu      sync.Mutex
	config  Config
	client  *resty.Client
	cache   *cache.Cache
	logger  zerolog.Logger
	closed  bool
}

// New creates a Dispatcher. A nil cache disables response caching.
func New(config Config, respCache *cache.Cache, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		config: config,
		cache:  respCache,
		logger: logger,
	}
}

// session returns the shared resty client, creating it on first use.
func (d *Dispatcher) session() (*resty.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, fmt.Errorf("transport is closed")
	}
	if d.client == nil {
		client := resty.New()
		client.SetBaseURL(d.config.BaseURL)
		client.SetTimeout(d.config.Timeout)
		for k, v := range d.config.Headers {
			client.SetHeader(k, v)
		}
		d.client = client
		d.logger.Debug().Str("base_url", d.config.BaseURL).Msg("transport session created")
	}
	return d.client, nil
}

// SetBaseURL switches the session base URL, the documented mutation point
// for mainnet/testnet switching.
func (d *Dispatcher) SetBaseURL(baseURL string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.config.BaseURL = baseURL
	if d.client != nil {
		d.client.SetBaseURL(baseURL)
	}
}

// BaseURL returns the current base URL.
func (d *Dispatcher) BaseURL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.config.BaseURL
}

// FullPath joins the base URL's path with an endpoint path. Signing schemes
// operate on this, the path as seen by the server.
func (d *Dispatcher) FullPath(endpoint string) string {
	base := d.BaseURL()
	u, err := url.Parse(base)
	if err != nil || u.Path == "" || u.Path == "/" {
		return endpoint
	}
	return strings.TrimSuffix(u.Path, "/") + endpoint
}

// Close shuts the session down. Subsequent dispatches fail.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}

// Do sends one request and returns the raw response. Cached responses are
// returned without network I/O and marked FromCache.
func (d *Dispatcher) Do(ctx context.Context, req *Request) (*Response, error) {
	var cacheKey string
	if d.cache != nil {
		cacheKey = cache.Key(req.Method, d.BaseURL()+req.Path, req.Query, string(req.Body))
		if entry, ok := d.cache.Get(cacheKey); ok {
			d.logger.Debug().
				Str("method", req.Method).
				Str("path", req.Path).
				Msg("cache hit")
			return &Response{
				StatusCode: entry.StatusCode,
				Body:       entry.Body,
				Headers:    entry.Headers,
				FromCache:  true,
			}, nil
		}
	}

	client, err := d.session()
	if err != nil {
		return nil, err
	}

	r := client.R().SetContext(ctx)
	for k, v := range req.Headers {
		r.SetHeader(k, v)
	}
	if req.Query != "" {
		r.SetQueryString(req.Query)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	d.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Msg("sending request")

	var resp *resty.Response
	switch req.Method {
	case "GET":
		resp, err = r.Get(req.Path)
	case "POST":
		resp, err = r.Post(req.Path)
	case "PUT":
		resp, err = r.Put(req.Path)
	case "DELETE":
		resp, err = r.Delete(req.Path)
	default:
		return nil, fmt.Errorf("unsupported http method: %s", req.Method)
	}
	if err != nil {
		d.logger.Debug().Err(err).
			Str("method", req.Method).
			Str("path", req.Path).
			Msg("request failed")
		return nil, err
	}

	headers := make(map[string]string, len(resp.Header()))
	for k, v := range resp.Header() {
		if len(v) > 0 {
			headers[strings.ToLower(k)] = v[0]
		}
	}

	out := &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
		Headers:    headers,
	}

	d.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", out.StatusCode).
		Int("size", len(out.Body)).
		Msg("response received")

	if cacheKey != "" && out.IsSuccess() {
		d.cache.Set(cacheKey, cache.Entry{
			StatusCode: out.StatusCode,
			Body:       out.Body,
			Headers:    headers,
		})
	}

	return out, nil
}

// Package sign implements the per-exchange request signing schemes.
//
// Every signer is a pure function of the request material, the credentials,
// and an injected clock/nonce source, so signatures are byte-for-byte
// reproducible under test.
package sign

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
	"time"

	"cryptowrap/pkg/core"
)

// Request is the material a signer operates on. Path is the full URL path
// of the outgoing request (base path included); Query is the encoded query
// string, empty when there is none.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// requestPath returns path?query, or just the path when the query is empty.
func (r Request) requestPath() string {
	if r.Query == "" {
		return r.Path
	}
	return r.Path + "?" + r.Query
}

// Material carries the auth artifacts to inject before dispatch.
type Material struct {
	Headers map[string]string
	Query   map[string]string
}

// Signer derives signature headers/params for one exchange's scheme.
// Implementations never mutate the request material.
type Signer interface {
	Sign(creds core.Credentials, req Request) (*Material, error)
}

func hmacHex(h func() hash.Hash, secret, message string) string {
	mac := hmac.New(h, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func requireSecret(creds core.Credentials) error {
	if creds.APISecret == "" {
		return fmt.Errorf("%w (key %q)", core.ErrMissingSecret, creds.APIKey)
	}
	return nil
}

func defaultNow(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}

func ensureSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// randomNonce returns a 32-character hex nonce.
func randomNonce() string {
	var b [16]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// KeyHeader authenticates with a bare API key header and no signature.
// Used by CoinMarketCap (X-CMC_PRO_API_KEY) and CryptoCompare
// (authorization: Apikey <key>).
type KeyHeader struct {
	Header string
	Prefix string
}

func (s *KeyHeader) Sign(creds core.Credentials, _ Request) (*Material, error) {
	return &Material{
		Headers: map[string]string{s.Header: s.Prefix + creds.APIKey},
	}, nil
}

// ExpiryHeader signs HMAC-SHA256 over verb + path[?query] + expires + body
// and injects api-key/api-expires/api-signature headers. The expiry window
// is short, five seconds in production use.
type ExpiryHeader struct {
	Window time.Duration
	Now    func() time.Time
}

func (s *ExpiryHeader) Sign(creds core.Credentials, req Request) (*Material, error) {
	if err := requireSecret(creds); err != nil {
		return nil, err
	}

	expires := defaultNow(s.Now).Add(s.Window).Unix()
	message := fmt.Sprintf("%s%s%d%s", req.Method, req.requestPath(), expires, req.Body)
	signature := hmacHex(sha256.New, creds.APISecret, message)

	return &Material{
		Headers: map[string]string{
			"api-key":       creds.APIKey,
			"api-expires":   fmt.Sprintf("%d", expires),
			"api-signature": signature,
		},
	}, nil
}

// SignedQuery signs HMAC-SHA256 over the encoded query string and appends
// it as a signature query parameter alongside an API key header.
type SignedQuery struct {
	KeyHeader string
}

func (s *SignedQuery) Sign(creds core.Credentials, req Request) (*Material, error) {
	if err := requireSecret(creds); err != nil {
		return nil, err
	}

	signature := hmacHex(sha256.New, creds.APISecret, req.Query)

	return &Material{
		Headers: map[string]string{s.KeyHeader: creds.APIKey},
		Query:   map[string]string{"signature": signature},
	}, nil
}

// NonceHeader384 signs HMAC-SHA384 over "/api" + path[?query] + nonce +
// body and injects bfx-apikey/bfx-nonce/bfx-signature headers. The nonce is
// a forward millisecond epoch timestamp.
type NonceHeader384 struct {
	Window time.Duration
	Now    func() time.Time
}

func (s *NonceHeader384) Sign(creds core.Credentials, req Request) (*Material, error) {
	if err := requireSecret(creds); err != nil {
		return nil, err
	}

	nonce := defaultNow(s.Now).Add(s.Window).UnixMilli()
	message := fmt.Sprintf("/api%s%d%s", ensureSlash(req.requestPath()), nonce, req.Body)
	signature := hmacHex(sha512.New384, creds.APISecret, message)

	return &Material{
		Headers: map[string]string{
			"bfx-apikey":    creds.APIKey,
			"bfx-nonce":     fmt.Sprintf("%d", nonce),
			"bfx-signature": signature,
		},
	}, nil
}

// CompositeAuth signs the newline-composed message
// "ts\nnonce\nverb\npath\nbody\n" with HMAC-SHA256 and assembles the whole
// thing into one structured Authorization header value.
type CompositeAuth struct {
	Scheme string
	Now    func() time.Time
	Nonce  func() string
}

func (s *CompositeAuth) Sign(creds core.Credentials, req Request) (*Material, error) {
	if err := requireSecret(creds); err != nil {
		return nil, err
	}

	ts := defaultNow(s.Now).UnixMilli()
	nonce := randomNonce()
	if s.Nonce != nil {
		nonce = s.Nonce()
	}

	message := fmt.Sprintf("%d\n%s\n%s\n%s\n%s\n", ts, nonce, req.Method, req.requestPath(), req.Body)
	signature := hmacHex(sha256.New, creds.APISecret, message)

	auth := fmt.Sprintf("%s id=%s,ts=%d,nonce=%s,sig=%s", s.Scheme, creds.APIKey, ts, nonce, signature)

	return &Material{
		Headers: map[string]string{"Authorization": auth},
	}, nil
}

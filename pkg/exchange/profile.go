// Package exchange defines the per-exchange profiles: one data table plus
// dispatch rules per venue, consumed by the generic client engine.
package exchange

import (
	"fmt"
	"sort"
	"strings"

	"cryptowrap/internal/sign"
	"cryptowrap/pkg/core"
)

// Profile consolidates one exchange's base URL, endpoint registry, auth
// strategy, and dispatch rules. Profiles are immutable program data.
type Profile struct {
	// ID is the lowercase exchange identifier used at client construction.
	ID string
	// Name is the display name.
	Name string
	// BaseURL is the default production base URL.
	BaseURL string
	// AltURL is the alternate network base URL (testnet counterpart, or
	// mainnet for venues whose default is a testnet). Empty when the venue
	// has a single network.
	AltURL string
	// Registry is the ordered endpoint table.
	Registry *core.Registry
	// Signer is the auth scheme. Nil means the exchange takes no
	// authentication at all.
	Signer sign.Signer
	// SignWhen restricts signing to matching request paths. Nil signs
	// every request once credentials are configured.
	SignWhen func(path string) bool
	// ParamsInQuery forces all parameters into the query string
	// regardless of HTTP verb, the convention of most wrapped APIs.
	// When false, POST/PUT parameters travel in a JSON body.
	ParamsInQuery bool
	// Headers are the transport session default headers.
	Headers map[string]string
	// SurfaceRateLimit merges x-ratelimit-* response headers into
	// successful payloads.
	SurfaceRateLimit bool
	// WrapPayload nests decoded payloads under a "response" key before
	// decoration. Used by Bitfinex, whose v2 API returns bare arrays.
	WrapPayload bool
	// HostFor returns a scheme+host override for an operation, or "" to
	// use the client base URL. Used by Bitfinex's split public/auth hosts.
	HostFor func(d core.Descriptor) string
}

// Lookup returns the descriptor for the named operation.
func (p *Profile) Lookup(name string) (core.Descriptor, error) {
	return p.Registry.Lookup(name)
}

// profiles is the fixed set of supported exchanges.
var profiles = map[string]*Profile{}

func register(p *Profile) *Profile {
	if _, exists := profiles[p.ID]; exists {
		panic(fmt.Sprintf("duplicate exchange profile %q", p.ID))
	}
	profiles[p.ID] = p
	return p
}

// Lookup returns the profile for an exchange identifier. Matching is
// case-insensitive.
func Lookup(id string) (*Profile, error) {
	p, ok := profiles[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedExchange, id)
	}
	return p, nil
}

// IDs returns the supported exchange identifiers, sorted.
func IDs() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// jsonHeaders are the default session headers shared by most profiles.
func jsonHeaders() map[string]string {
	return map[string]string{
		"Accept":          "application/json",
		"Accept-Encoding": "deflate, gzip",
	}
}

// withContentTypeJSON adds the JSON content type for venues that take
// POST bodies.
func withContentTypeJSON(h map[string]string) map[string]string {
	h["Content-Type"] = "application/json"
	return h
}

func get(name, path string) core.Descriptor {
	return core.Descriptor{Name: name, Method: "GET", Path: path}
}

func post(name, path string) core.Descriptor {
	return core.Descriptor{Name: name, Method: "POST", Path: path}
}

func put(name, path string) core.Descriptor {
	return core.Descriptor{Name: name, Method: "PUT", Path: path}
}

func del(name, path string) core.Descriptor {
	return core.Descriptor{Name: name, Method: "DELETE", Path: path}
}

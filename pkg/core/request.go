package core

import (
	"maps"
)

// Params carries the call parameters of one operation. Path placeholders,
// query fields, and the reserved "body" payload all come from the same map.
type Params map[string]any

// Clone returns a shallow copy so path resolution can consume keys without
// mutating the caller's map.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

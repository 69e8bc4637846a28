package core

import (
	"fmt"
	"regexp"
	"strings"
)

// Descriptor is the static record of one API operation: its symbolic name,
// HTTP method, and path template. Path templates may contain {placeholder}
// segments resolved from call parameters.
type Descriptor struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Registry is an ordered mapping from operation name to Descriptor.
// Registries are built once at startup and never mutated afterwards.
type Registry struct {
	order  []string
	byName map[string]Descriptor
}

// NewRegistry builds a Registry from descriptors, preserving declaration
// order. Duplicate names panic: registries are static program data and a
// duplicate is a programming error.
func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{
		order:  make([]string, 0, len(descriptors)),
		byName: make(map[string]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, exists := r.byName[d.Name]; exists {
			panic(fmt.Sprintf("duplicate operation %q", d.Name))
		}
		r.order = append(r.order, d.Name)
		r.byName[d.Name] = d
	}
	return r
}

// Lookup returns the descriptor for the named operation.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return d, nil
}

// Names returns the operation names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return len(r.order)
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// ResolvePath substitutes {placeholder} segments in a path template using
// params, removing consumed keys from the map. A placeholder with no
// matching parameter is an error.
func ResolvePath(template string, params Params) (string, error) {
	if !strings.Contains(template, "{") {
		return template, nil
	}

	var missing string
	resolved := placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := params[key]
		if !ok {
			if missing == "" {
				missing = key
			}
			return m
		}
		delete(params, key)
		return fmt.Sprintf("%v", v)
	})
	if missing != "" {
		return "", fmt.Errorf("%w: %q in %q", ErrMissingPathParam, missing, template)
	}
	return resolved, nil
}

// Package resolver turns a catalog entry plus user parameters into a
// concrete upstream URL.
package resolver

import (
	"fmt"
	"strings"

	"keneviz-panel-go/internal/domain/catalog"
)

// UnknownEndpointError reports a lookup name that matches no catalog entry.
type UnknownEndpointError struct {
	Name string
}

func (e *UnknownEndpointError) Error() string {
	return fmt.Sprintf("unknown endpoint %q", e.Name)
}

// MissingParameterError reports the first template placeholder that the
// caller supplied no value for.
type MissingParameterError struct {
	Endpoint  string
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("endpoint %q requires parameter %q", e.Endpoint, e.Parameter)
}

// Resolver resolves endpoint names against a fixed catalog.
type Resolver struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Resolve substitutes params into the named endpoint's URL template.
// Placeholders are scanned left to right; the first one with no value
// supplied yields a MissingParameterError. Values are spliced in as-is,
// without percent encoding, because the upstream endpoints expect raw
// Turkish text in the query string. Extra params are ignored.
func (r *Resolver) Resolve(name string, params map[string]string) (string, error) {
	desc, ok := r.catalog.Lookup(name)
	if !ok {
		return "", &UnknownEndpointError{Name: name}
	}

	var b strings.Builder
	rest := desc.URLTemplate
	for {
		open := strings.Index(rest, "{")
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.Index(rest[open:], "}")
		if end < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end += open

		b.WriteString(rest[:open])
		param := rest[open+1 : end]
		value, ok := params[param]
		if !ok || value == "" {
			return "", &MissingParameterError{Endpoint: desc.Name, Parameter: param}
		}
		b.WriteString(value)
		rest = rest[end+1:]
	}
}

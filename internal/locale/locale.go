// Package locale resolves the active locale for a request path. Paths are
// always locale-prefixed (e.g. /ro/contact); the first segment selects the
// locale and anything outside the supported set falls back to the default.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Resolver holds the closed set of supported locales. It is immutable after
// construction and safe for concurrent use.
type Resolver struct {
	supported []string
	def       string
	// ordered is the default-first ordering the matcher indexes into.
	ordered []string
	matcher language.Matcher
}

// New builds a Resolver from locale segment names. The default must be one of
// the supported locales.
func New(supported []string, def string) (*Resolver, error) {
	if len(supported) == 0 {
		return nil, fmt.Errorf("locale: empty supported set")
	}

	tags := make([]language.Tag, 0, len(supported))
	found := false
	for _, s := range supported {
		tag, err := language.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("locale: parse %q: %w", s, err)
		}
		tags = append(tags, tag)
		if s == def {
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("locale: default %q not in supported set", def)
	}

	// The matcher prefers earlier tags on ties, so the default goes first.
	ordered := append([]string{def}, without(supported, def)...)
	orderedTags := make([]language.Tag, 0, len(ordered))
	for _, s := range ordered {
		orderedTags = append(orderedTags, tags[indexOf(supported, s)])
	}

	return &Resolver{
		supported: supported,
		def:       def,
		ordered:   ordered,
		matcher:   language.NewMatcher(orderedTags),
	}, nil
}

func indexOf(values []string, want string) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return -1
}

// Default returns the default locale segment.
func (r *Resolver) Default() string {
	return r.def
}

// Supported reports whether seg is a supported locale segment.
func (r *Resolver) Supported(seg string) bool {
	return indexOf(r.supported, seg) >= 0
}

// FromPath returns the locale named by the path's first segment, or the
// default when the segment is not a supported locale. Pure and total: any
// string input yields a supported locale.
func (r *Resolver) FromPath(path string) string {
	seg := firstSegment(path)
	if r.Supported(seg) {
		return seg
	}
	return r.def
}

// HasPrefix reports whether the path already carries a supported locale
// prefix.
func (r *Resolver) HasPrefix(path string) bool {
	return r.Supported(firstSegment(path))
}

// Negotiate picks the best supported locale for an Accept-Language header.
// An empty or malformed header yields the default.
func (r *Resolver) Negotiate(acceptLanguage string) string {
	accept := strings.TrimSpace(acceptLanguage)
	if accept == "" {
		return r.def
	}
	wanted, _, err := language.ParseAcceptLanguage(accept)
	if err != nil {
		return r.def
	}
	_, index, conf := r.matcher.Match(wanted...)
	if conf == language.No || index < 0 || index >= len(r.ordered) {
		return r.def
	}
	return r.ordered[index]
}

func without(values []string, drop string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}

func firstSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Vars is a key/value store used for templating and runtime variable resolution.
type Vars map[string]string

// Target names the server a suite runs against (dev/stg/prod).
// Secrets may be merged on top by infrastructure implementations.
type Target struct {
	Name    string
	BaseURL string
	Vars    Vars
}

// Get returns a value for the given key and a boolean indicating if it exists.
func Get(vars Vars, key string) (string, bool) {
	if vars == nil {
		return "", false
	}
	val, ok := vars[key]
	return val, ok
}

// Set sets a key/value in the map, initializing it if needed.
func Set(vars Vars, key, value string) Vars {
	if vars == nil {
		vars = Vars{}
	}
	vars[key] = value
	return vars
}

// Merge merges base and override vars (override wins) and returns a new map.
func Merge(base Vars, override Vars) Vars {
	out := Vars{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// ValidateBaseURL checks that a base URL is usable before any check runs.
// A bad base URL is a configuration error and aborts the whole run.
func ValidateBaseURL(base string) error {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return &OpError{
			Op:   "target.validate",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("base URL is empty: %w", ErrInvalidConfig),
		}
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return &OpError{
			Op:   "target.validate",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("invalid base URL %q: %w", base, err),
		}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &OpError{
			Op:   "target.validate",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("base URL %q must be http(s)://host[:port]: %w", base, ErrInvalidConfig),
		}
	}
	return nil
}

// JoinURL joins a base URL and a check path. The path keeps its trailing
// slash, which matters for directory-style routes.
func JoinURL(base string, path string) string {
	b := strings.TrimRight(strings.TrimSpace(base), "/")
	p := strings.TrimSpace(path)
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return b + p
}

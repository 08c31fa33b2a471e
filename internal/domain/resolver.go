package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// VarResolver resolves {{var}} placeholders in check paths and header values.
// It supports built-ins: {{$timestamp}} and {{$uuid}}.
//
// This lives in domain because it does not depend on YAML/FS/HTTP. Only stdlib.
type VarResolver struct {
	now    func() time.Time
	uuidV4 func() (string, error)
}

// VarResolverOption configures VarResolver.
type VarResolverOption func(*VarResolver)

// WithNow overrides the clock (useful for tests).
func WithNow(now func() time.Time) VarResolverOption {
	return func(r *VarResolver) { r.now = now }
}

// WithUUID overrides UUID generation (useful for tests).
func WithUUID(gen func() (string, error)) VarResolverOption {
	return func(r *VarResolver) { r.uuidV4 = gen }
}

func NewVarResolver(opts ...VarResolverOption) *VarResolver {
	r := &VarResolver{
		now:    time.Now,
		uuidV4: uuidV4,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RuntimeResolver caches built-ins for a single resolution session (one check run)
// so repeated {{$uuid}} inside multiple fields stays consistent.
type RuntimeResolver struct {
	base     Vars
	builtins Vars
}

func (r *VarResolver) NewRuntime(vars Vars) (*RuntimeResolver, error) {
	ts := strconv.FormatInt(r.now().Unix(), 10)

	u, err := r.uuidV4()
	if err != nil {
		return nil, &OpError{
			Op:   "vars.builtins.uuid",
			Kind: KindExecution,
			Err:  err,
		}
	}

	baseCopy := Vars{}
	for k, v := range vars {
		baseCopy[k] = v
	}

	return &RuntimeResolver{
		base: baseCopy,
		builtins: Vars{
			"$timestamp": ts,
			"$uuid":      u,
		},
	}, nil
}

var placeholderRe = regexp.MustCompile(`\{\{\s*(\$?[A-Za-z0-9_.-]+)\s*\}\}`)

// ResolveString resolves placeholders in a string.
// Unknown variables are an error so typos fail before any request is sent.
func (rr *RuntimeResolver) ResolveString(s string) (string, error) {
	var resolveErr error

	out := placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := rr.builtins[name]; ok {
			return v
		}
		if v, ok := rr.base[name]; ok {
			return v
		}
		if resolveErr == nil {
			resolveErr = &OpError{
				Op:   "vars.resolve",
				Kind: KindMissingVar,
				Err:  fmt.Errorf("variable %q: %w", name, ErrMissingVar),
			}
		}
		return m
	})

	if resolveErr != nil {
		return "", resolveErr
	}
	return out, nil
}

// ResolveHeaders resolves placeholders in header values.
func (rr *RuntimeResolver) ResolveHeaders(h Headers) (Headers, error) {
	out := Headers{}
	for k, v := range h {
		rv, err := rr.ResolveString(v)
		if err != nil {
			return nil, err
		}
		out[k] = rv
	}
	return out, nil
}

// ResolveCheck returns a copy of the check with its path and header values resolved.
func (rr *RuntimeResolver) ResolveCheck(c CheckSpec) (CheckSpec, error) {
	out := c

	p, err := rr.ResolveString(c.Path)
	if err != nil {
		return CheckSpec{}, err
	}
	out.Path = p

	h, err := rr.ResolveHeaders(c.Headers)
	if err != nil {
		return CheckSpec{}, err
	}
	out.Headers = h

	return out, nil
}

func uuidV4() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80

	dst := make([]byte, 32)
	hex.Encode(dst, b[:])
	return fmt.Sprintf("%s-%s-%s-%s-%s", dst[0:8], dst[8:12], dst[12:16], dst[16:20], dst[20:32]), nil
}

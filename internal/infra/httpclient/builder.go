package httpclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/acuetara/humo/internal/domain"
)

// BuildRequest builds an HTTP request for a resolved check. Smoke checks
// are body-less GET/HEAD requests.
func BuildRequest(ctx context.Context, check domain.CheckSpec, url string) (*http.Request, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidCheck,
		}
	}

	method := check.Method
	if method == "" {
		method = domain.MethodGet
	}
	switch method {
	case domain.MethodGet, domain.MethodHead:
	default:
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidCheck,
		}
	}

	req, err := http.NewRequestWithContext(ctx, string(method), url, nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	for k, v := range check.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

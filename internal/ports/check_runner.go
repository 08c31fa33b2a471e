package ports

import (
	"context"

	"github.com/acuetara/humo/internal/domain"
)

// CheckRunner executes a single check against a base URL with a resolved
// variable set.
type CheckRunner interface {
	Run(ctx context.Context, check domain.CheckSpec, baseURL string, vars domain.Vars) (domain.CheckResult, error)
}

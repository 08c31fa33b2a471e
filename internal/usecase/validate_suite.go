package usecase

import (
	"context"
	"fmt"

	"github.com/acuetara/humo/internal/domain"
	"github.com/acuetara/humo/internal/ports"
)

type ValidateSuite struct {
	suites   ports.SuiteLoader
	targets  ports.TargetLoader
	resolver *domain.VarResolver
}

type ValidateOption func(*ValidateSuite)

func WithVarResolver(vr *domain.VarResolver) ValidateOption {
	return func(uc *ValidateSuite) {
		if vr != nil {
			uc.resolver = vr
		}
	}
}

func NewValidateSuite(sl ports.SuiteLoader, tl ports.TargetLoader, opts ...ValidateOption) *ValidateSuite {
	uc := &ValidateSuite{
		suites:   sl,
		targets:  tl,
		resolver: domain.NewVarResolver(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute validates a suite + target pair without performing HTTP calls:
// the target base URL must be usable and every templated field must
// resolve from the merged vars.
func (uc *ValidateSuite) Execute(ctx context.Context, suitePath string, targetNameOrPath string) error {
	suite, err := uc.suites.LoadSuite(suitePath)
	if err != nil {
		return err
	}

	target, err := uc.targets.LoadTarget(targetNameOrPath)
	if err != nil {
		return err
	}
	if err := domain.ValidateBaseURL(target.BaseURL); err != nil {
		return err
	}

	vars := domain.Merge(suite.Vars, target.Vars)

	for _, chk := range suite.Checks {
		if err := ctx.Err(); err != nil {
			return err
		}

		rt, err := uc.resolver.NewRuntime(vars)
		if err != nil {
			return err
		}

		if _, err := rt.ResolveCheck(chk); err != nil {
			return fmt.Errorf("check %q: %w", chk.Name, err)
		}
	}

	return nil
}

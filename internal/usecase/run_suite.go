package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/acuetara/humo/internal/domain"
	"github.com/acuetara/humo/internal/ports"
	ucassert "github.com/acuetara/humo/internal/usecase/assert"
)

// RunSuite executes every check of a suite against a target and produces
// a report. Checks are independent: a network failure or failed assertion
// marks its own check and never aborts the siblings.
type RunSuite struct {
	suites  ports.SuiteLoader
	targets ports.TargetLoader
	runner  ports.CheckRunner
	store   ports.ArtifactStore

	concurrency int
}

type RunSuiteOption func(*RunSuite)

// WithConcurrency bounds how many checks are in flight at once.
// The report order stays the declaration order either way.
func WithConcurrency(n int) RunSuiteOption {
	return func(uc *RunSuite) {
		if n > 0 {
			uc.concurrency = n
		}
	}
}

func NewRunSuite(sl ports.SuiteLoader, tl ports.TargetLoader, cr ports.CheckRunner, store ports.ArtifactStore, opts ...RunSuiteOption) *RunSuite {
	uc := &RunSuite{
		suites:      sl,
		targets:     tl,
		runner:      cr,
		store:       store,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs the suite and returns the report plus the stored run ID
// (empty when no store is configured). Loading and base-URL validation
// errors are configuration errors and abort before any request is sent.
func (uc *RunSuite) Execute(ctx context.Context, suitePath string, targetNameOrPath string) (domain.Report, string, error) {
	suite, err := uc.suites.LoadSuite(suitePath)
	if err != nil {
		return domain.Report{}, "", err
	}

	target, err := uc.targets.LoadTarget(targetNameOrPath)
	if err != nil {
		return domain.Report{}, "", err
	}
	if err := domain.ValidateBaseURL(target.BaseURL); err != nil {
		return domain.Report{}, "", err
	}

	// suite vars < target vars
	vars := domain.Merge(suite.Vars, target.Vars)

	report := domain.Report{
		SuiteName:  suite.Name,
		SuitePath:  suitePath,
		TargetName: target.Name,
		BaseURL:    target.BaseURL,
		StartedAt:  time.Now(),
		Results:    make([]domain.CheckResult, len(suite.Checks)),
	}

	if err := uc.runChecks(ctx, suite.Checks, target.BaseURL, vars, report.Results); err != nil {
		return domain.Report{}, "", err
	}

	report.EndedAt = time.Now()
	report.Summarize()

	runID := ""
	if uc.store != nil {
		id, saveErr := uc.store.SaveReport(report)
		if saveErr != nil {
			return report, "", saveErr
		}
		runID = id
	}

	return report, runID, nil
}

// runChecks fills results[i] with the outcome of checks[i]. Indexed writes
// keep the report in declaration order no matter how the pool schedules.
func (uc *RunSuite) runChecks(ctx context.Context, checks []domain.CheckSpec, baseURL string, vars domain.Vars, results []domain.CheckResult) error {
	if uc.concurrency <= 1 {
		for i, chk := range checks {
			results[i] = uc.runOne(ctx, chk, baseURL, vars)
		}
		return nil
	}

	pool, err := ants.NewPool(uc.concurrency)
	if err != nil {
		return &domain.OpError{
			Op:   "runsuite.pool",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, chk := range checks {
		i, chk := i, chk
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			results[i] = uc.runOne(ctx, chk, baseURL, vars)
		})
		if submitErr != nil {
			wg.Done()
			results[i] = failedResult(chk, baseURL, submitErr)
		}
	}
	wg.Wait()
	return nil
}

func (uc *RunSuite) runOne(ctx context.Context, chk domain.CheckSpec, baseURL string, vars domain.Vars) domain.CheckResult {
	rr, err := uc.runner.Run(ctx, chk, baseURL, vars)
	if err != nil {
		// Runner error (config-level): mark the check as failed, keep going.
		return failedResult(chk, baseURL, err)
	}

	// Assertions are evaluated only when a response arrived; a transport
	// error already failed the check on its own.
	if rr.Error == nil {
		rr.Assertions = ucassert.Evaluate(chk.Assert, rr.StatusCode, rr.LatencyMS, rr.Response.Headers, rr.Response.Body)
	}
	return rr
}

func failedResult(chk domain.CheckSpec, baseURL string, err error) domain.CheckResult {
	return domain.CheckResult{
		Name:       chk.Name,
		Method:     chk.Method,
		URL:        domain.JoinURL(baseURL, chk.Path),
		Assertions: []domain.AssertionResult{},
		Response: domain.ResponseSnapshot{
			Headers: map[string][]string{},
		},
		Error: domain.NewRunError(err),
	}
}

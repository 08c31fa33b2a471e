package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/acuetara/humo/internal/domain"
	"github.com/acuetara/humo/internal/infra/logger"
	"github.com/acuetara/humo/internal/infra/xlsxreport"
	"github.com/acuetara/humo/internal/usecase"
)

func runCmd() *cobra.Command {
	var workspace string
	var suite string
	var target string
	var baseURL string
	var timeoutMS int
	var concurrency int
	var noSave bool
	var format string
	var reportPath string

	c := &cobra.Command{
		Use:   "run",
		Short: "Run a smoke suite against a target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace, timeoutMS)
			if err != nil {
				return err
			}

			suitePath, err := resolveSuitePath(ws, suite)
			if err != nil {
				return err
			}

			targets := ws.targets
			targetArg := ""
			if baseURL != "" {
				// An explicit base URL replaces the target file entirely.
				if err := domain.ValidateBaseURL(baseURL); err != nil {
					return err
				}
				targets = inlineTarget{t: domain.Target{Name: "cli", BaseURL: baseURL, Vars: domain.Vars{}}}
			} else {
				targetArg, err = resolveTargetArg(ws, target)
				if err != nil {
					return err
				}
			}

			store := ws.store
			if noSave {
				store = nil
			}

			n := concurrency
			if n <= 0 {
				n = ws.cfg.HTTP.Concurrency
			}

			uc := usecase.NewRunSuite(ws.suites, targets, ws.runner, store, usecase.WithConcurrency(n))

			report, runID, err := uc.Execute(cmd.Context(), suitePath, targetArg)
			if err != nil {
				// If save fails we still print whatever we have before returning.
				_ = printReport(os.Stdout, report, runID, format)
				return err
			}

			if err := printReport(os.Stdout, report, runID, format); err != nil {
				return err
			}

			if reportPath != "" {
				p := reportPath
				if !filepath.IsAbs(p) && !looksLikePath(p) {
					p = filepath.Join(ws.root, ws.cfg.Paths.ReportsDir, p)
				}
				if err := xlsxreport.NewWriter().WriteReport(p, report); err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "report written to %s\n", p)
			}

			logger.L().Info("run.finished",
				"suite", report.SuiteName,
				"target", report.TargetName,
				"total", report.Total,
				"passed", report.Passed,
				"failed", report.Failed,
			)

			if report.Failed > 0 {
				return fmt.Errorf("run failed (%d failed check(s))", report.Failed)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&suite, "suite", "s", "", "Suite name or path (required)")
	c.Flags().StringVarP(&target, "target", "t", "", "Target name or path (optional; defaults to workspace default target)")
	c.Flags().StringVar(&baseURL, "base-url", "", "Base URL override; skips target files entirely")
	c.Flags().IntVar(&timeoutMS, "timeout", 0, "Per-check timeout in milliseconds (overrides humo.yaml)")
	c.Flags().IntVarP(&concurrency, "concurrency", "n", 0, "Checks in flight at once (overrides humo.yaml)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save a run artifact under runs/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().StringVar(&reportPath, "report", "", "Also write an Excel report to this path (bare names land in reports/)")

	_ = c.MarkFlagRequired("suite")
	return c
}

// inlineTarget satisfies ports.TargetLoader for a --base-url override.
type inlineTarget struct {
	t domain.Target
}

func (l inlineTarget) LoadTarget(_ string) (domain.Target, error) {
	return l.t, nil
}

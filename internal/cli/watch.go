package cli

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/acuetara/humo/internal/infra/logger"
	"github.com/acuetara/humo/internal/usecase"
)

func watchCmd() *cobra.Command {
	var workspace string
	var suite string
	var target string
	var schedule string
	var concurrency int

	c := &cobra.Command{
		Use:   "watch",
		Short: "Run a suite on a cron schedule until interrupted",
		Long:  "Repeats a smoke run on a standard 5-field cron schedule (or @every syntax). The exit code reflects the last completed run.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace, 0)
			if err != nil {
				return err
			}

			suitePath, err := resolveSuitePath(ws, suite)
			if err != nil {
				return err
			}
			targetArg, err := resolveTargetArg(ws, target)
			if err != nil {
				return err
			}

			n := concurrency
			if n <= 0 {
				n = ws.cfg.HTTP.Concurrency
			}
			uc := usecase.NewRunSuite(ws.suites, ws.targets, ws.runner, ws.store, usecase.WithConcurrency(n))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var mu sync.Mutex
			lastFailed := 0

			job := func() {
				report, runID, runErr := uc.Execute(ctx, suitePath, targetArg)
				if runErr != nil {
					logger.L().Error("watch.run_error", "err", runErr.Error())
					fmt.Fprintf(os.Stderr, "run error: %v\n", runErr)
					return
				}
				_ = printReport(os.Stdout, report, runID, "pretty")
				logger.L().Info("watch.run_finished",
					"suite", report.SuiteName,
					"total", report.Total,
					"passed", report.Passed,
					"failed", report.Failed,
				)
				mu.Lock()
				lastFailed = report.Failed
				mu.Unlock()
			}

			cr := cron.New()
			if _, err := cr.AddFunc(schedule, job); err != nil {
				return fmt.Errorf("invalid schedule %q: %w", schedule, err)
			}

			// First run immediately; the schedule only governs repeats.
			job()

			cr.Start()
			<-ctx.Done()
			<-cr.Stop().Done()

			mu.Lock()
			failed := lastFailed
			mu.Unlock()
			if failed > 0 {
				return fmt.Errorf("last run failed (%d failed check(s))", failed)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&suite, "suite", "s", "", "Suite name or path (required)")
	c.Flags().StringVarP(&target, "target", "t", "", "Target name or path (optional)")
	c.Flags().StringVar(&schedule, "schedule", "@every 5m", "Cron schedule (5-field or @every syntax)")
	c.Flags().IntVarP(&concurrency, "concurrency", "n", 0, "Checks in flight at once")

	_ = c.MarkFlagRequired("suite")
	return c
}

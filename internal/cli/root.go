package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/acuetara/humo/internal/infra/logger"
	"github.com/acuetara/humo/internal/infra/workspacefinder"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cleanup func() error

	cmd := &cobra.Command{
		Use:           "humo",
		Short:         "Humo — HTTP smoke-check runner",
		Long:          "Humo runs declarative smoke checks (status + header assertions) against a target base URL and exits non-zero when anything fails.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logRoot := "."
			if wd, err := os.Getwd(); err == nil {
				logRoot = wd
				if root, ferr := workspacefinder.NewFinder().FindRoot(wd); ferr == nil && root != "" {
					logRoot = root
				}
			}
			cleanup, _ = logger.Setup(logger.Config{Root: logRoot, Debug: debug})
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if cleanup != nil {
				_ = cleanup()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .humo/logs/humo.log")

	cmd.AddCommand(
		runCmd(),
		validateCmd(),
		suitesCmd(),
		targetsCmd(),
		initCmd(),
		watchCmd(),
		versionCmd(),
	)
	return cmd
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acuetara/humo/internal/usecase"
)

func validateCmd() *cobra.Command {
	var workspace string
	var suite string
	var target string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a suite + target pair without sending requests",
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

			uc := usecase.NewValidateSuite(ws.suites, ws.targets)
			if err := uc.Execute(cmd.Context(), suitePath, targetArg); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "ok: %s validates against %s\n", suitePath, targetArg)
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&suite, "suite", "s", "", "Suite name or path (required)")
	c.Flags().StringVarP(&target, "target", "t", "", "Target name or path (optional)")

	_ = c.MarkFlagRequired("suite")
	return c
}

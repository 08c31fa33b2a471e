package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/acuetara/humo/internal/domain"
	"github.com/acuetara/humo/internal/infra/fsworkspace"
)

func initCmd() *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a Humo workspace (humo.yaml, starter suite and target)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			abs, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("invalid directory: %w", err)
			}

			init := fsworkspace.NewInitializer()
			if err := init.Init(domain.WorkspaceSpec{Root: abs}, force); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "workspace ready at %s\n", abs)
			fmt.Fprintln(os.Stdout, "try: humo run -s smoke")
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return c
}

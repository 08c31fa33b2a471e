package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func targetsCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "targets",
		Short: "List the targets in the workspace",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace, 0)
			if err != nil {
				return err
			}

			names, err := ws.targetCatalog.ListTargets()
			if err != nil {
				return err
			}

			if len(names) == 0 {
				fmt.Fprintln(os.Stdout, "no targets found")
				return nil
			}
			for _, n := range names {
				marker := ""
				if n == ws.cfg.Defaults.Target {
					marker = " (default)"
				}
				fmt.Fprintf(os.Stdout, "%s%s\n", n, marker)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return c
}

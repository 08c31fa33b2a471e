package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func suitesCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "suites",
		Short: "List the suites in the workspace",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace, 0)
			if err != nil {
				return err
			}

			refs, err := ws.suites.ListSuites(ws.root)
			if err != nil {
				return err
			}

			if len(refs) == 0 {
				fmt.Fprintln(os.Stdout, "no suites found")
				return nil
			}
			for _, r := range refs {
				fmt.Fprintf(os.Stdout, "%s\t%s\n", r.Name, r.Path)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return c
}

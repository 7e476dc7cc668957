package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Zachkp/showcase/internal/projects"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Validate and list the project data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := projects.Resolve(appConfig.ProjectsFile)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tDEMO\tCODE")
		for _, e := range entries {
			demo := e.DemoLink
			if !e.HasDemo() {
				demo = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Title, demo, e.CodeLink)
		}
		return w.Flush()
	},
}

func init() {
	projectsCmd.Flags().String("file", "", "project data file (.yaml or .toml)")
	rootCmd.AddCommand(projectsCmd)
}

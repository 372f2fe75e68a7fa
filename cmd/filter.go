package cmd

import (
	"github.com/mj1618/winswitch/internal/output"
	"github.com/mj1618/winswitch/internal/pipeline"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter [query]",
	Short: "Rank open windows against a query",
	Long: `Rank open windows (or workspaces) against a query, most relevant first.

An empty query lists every window, the active one first, with the previously
active window selected. Titles, custom names, classes, instances and
workspace numbers are searched.`,
	Example: `  winswitch filter
  winswitch filter term
  winswitch filter --tab workspaces code
  winswitch filter --format table fire`,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().String("tab", "windows", "What to list: windows, workspaces")
	filterCmd.Flags().Bool("command-mode", false, "Do not preselect the previous window")
}

func runFilter(cmd *cobra.Command, args []string) error {
	tabFlag, _ := cmd.Flags().GetString("tab")
	tab, err := pipeline.ParseTab(tabFlag)
	if err != nil {
		return err
	}
	commandMode, _ := cmd.Flags().GetBool("command-mode")

	s, err := openSession(commandContext(cmd))
	if err != nil {
		return err
	}
	s.pipe.SetTab(tab)
	s.pipe.SetCommandMode(commandMode)
	return output.Print(output.NewFilterResult(s.pipe.Filter(queryArg(args))))
}

package cmd

import (
	"strings"

	"github.com/mj1618/winswitch/internal/output"
	"github.com/mj1618/winswitch/internal/platform"
	"github.com/spf13/cobra"
)

var nameCmd = &cobra.Command{
	Use:   "name",
	Short: "Manage custom window names",
	Long: `Custom names are searchable alongside the window title and survive
application restarts: a window of the same application whose title matches
the stored title picks the name up again.`,
}

var nameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List named windows, including ones whose window is gone",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(commandContext(cmd))
		if err != nil {
			return err
		}
		return output.Print(output.NewNameList(s.pipe.Names().Entries()))
	},
}

var nameSetCmd = &cobra.Command{
	Use:     "set <window-id> <name>",
	Short:   "Give a window a custom name",
	Example: `  winswitch name set 0x3a00007 "release notes"`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(commandContext(cmd))
		if err != nil {
			return err
		}
		w, err := s.window(args[0])
		if err != nil {
			return err
		}
		name := strings.Join(args[1:], " ")
		if err := s.pipe.Names().Assign(w, name); err != nil {
			return err
		}
		return output.Print(output.ActionResult{OK: true, Action: "name_set", Name: name, Window: output.WindowOf(w)})
	},
}

var nameClearCmd = &cobra.Command{
	Use:   "clear <window-id>",
	Short: "Remove a window's custom name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := platform.ParseWindowID(args[0])
		if err != nil {
			return err
		}
		removed := newPipeline().Names().Unassign(id)
		res := output.ActionResult{OK: removed, Action: "name_clear"}
		if !removed {
			res.Message = "window has no custom name"
		}
		return output.Print(res)
	},
}

func init() {
	rootCmd.AddCommand(nameCmd)
	nameCmd.AddCommand(nameListCmd, nameSetCmd, nameClearCmd)
}

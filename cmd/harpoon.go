package cmd

import (
	"github.com/mj1618/winswitch/internal/output"
	"github.com/mj1618/winswitch/internal/registry"
	"github.com/spf13/cobra"
)

var harpoonCmd = &cobra.Command{
	Use:   "harpoon",
	Short: "Manage harpoon bookmarks",
	Long: `Harpoon binds up to 36 windows to the keys 0-9 and a-z. A bookmark follows
its window across application restarts: when the window is gone, a window of
the same application with the same (or a related) title takes its place.`,
}

var harpoonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the assigned harpoon slots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(commandContext(cmd))
		if err != nil {
			return err
		}
		return output.Print(output.NewHarpoonList(s.pipe.Harpoon().Slots(), s.pipe.Snapshot()))
	},
}

var harpoonAssignCmd = &cobra.Command{
	Use:     "assign <key> <window-id>",
	Short:   "Bookmark a window under a key",
	Example: "  winswitch harpoon assign 1 0x3a00007",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := registry.ParseSlotKey(args[0])
		if err != nil {
			return err
		}
		s, err := openSession(commandContext(cmd))
		if err != nil {
			return err
		}
		w, err := s.window(args[1])
		if err != nil {
			return err
		}
		if err := s.pipe.Harpoon().Assign(key, w); err != nil {
			return err
		}
		return output.Print(output.ActionResult{OK: true, Action: "harpoon_assign", Key: string(key), Window: output.WindowOf(w)})
	},
}

var harpoonUnassignCmd = &cobra.Command{
	Use:   "unassign <key>",
	Short: "Clear a harpoon slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := registry.ParseSlotKey(args[0])
		if err != nil {
			return err
		}
		if err := newPipeline().Harpoon().Unassign(key); err != nil {
			return err
		}
		return output.Print(output.ActionResult{OK: true, Action: "harpoon_unassign", Key: string(key)})
	},
}

func init() {
	rootCmd.AddCommand(harpoonCmd)
	harpoonCmd.AddCommand(harpoonListCmd, harpoonAssignCmd, harpoonUnassignCmd)
}

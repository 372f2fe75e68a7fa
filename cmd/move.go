package cmd

import (
	"fmt"

	"github.com/mj1618/winswitch/internal/output"
	"github.com/mj1618/winswitch/internal/platform"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move <window-id> <workspace>",
	Short: "Move a window to another workspace",
	Long:  `Move a window to a 1-based workspace, or to "sticky" to show it on all workspaces.`,
	Example: `  winswitch move 0x3a00007 2
  winswitch move 0x3a00007 sticky`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	desktop, err := platform.ParseDesktop(args[1])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	if s.provider.WindowManager == nil {
		return fmt.Errorf("window management not available on this platform")
	}
	w, err := s.window(args[0])
	if err != nil {
		return err
	}
	if err := s.provider.WindowManager.MoveToDesktop(ctx, w.ID, desktop); err != nil {
		return err
	}
	w.Desktop = desktop
	return output.Print(output.ActionResult{OK: true, Action: "move", Window: output.WindowOf(w)})
}

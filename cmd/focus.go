package cmd

import (
	"errors"
	"fmt"

	"github.com/mj1618/winswitch/internal/logging"
	"github.com/mj1618/winswitch/internal/model"
	"github.com/mj1618/winswitch/internal/output"
	"github.com/mj1618/winswitch/internal/pipeline"
	"github.com/mj1618/winswitch/internal/registry"
	"github.com/spf13/cobra"
)

var focusCmd = &cobra.Command{
	Use:   "focus [query]",
	Short: "Bring a window to the foreground",
	Long: `Activate a window: the one bound to a harpoon slot (--slot), a window by id
(--window-id), or the selected result of a query. With no arguments the
previously active window is activated, like alt-tab.

When there is nothing to activate the result reports ok: false.`,
	Example: `  winswitch focus
  winswitch focus firefox
  winswitch focus --slot 1
  winswitch focus --window-id 0x3a00007`,
	RunE: runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.Flags().String("slot", "", "Harpoon key (0-9, a-z)")
	focusCmd.Flags().String("window-id", "", "Window id, decimal or 0x hex")
}

func runFocus(cmd *cobra.Command, args []string) error {
	slot, _ := cmd.Flags().GetString("slot")
	windowID, _ := cmd.Flags().GetString("window-id")

	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	if s.provider.WindowManager == nil {
		return fmt.Errorf("window management not available on this platform")
	}

	target, err := focusTarget(s, slot, windowID, queryArg(args))
	if errors.Is(err, pipeline.ErrNoTarget) {
		logging.ForComponent(logging.CompCLI).Info("focus without target", "error", err)
		return output.Print(output.ActionResult{OK: false, Action: "focus", Message: err.Error()})
	}
	if err != nil {
		return err
	}

	if err := s.provider.WindowManager.Activate(ctx, target.ID); err != nil {
		return err
	}
	return output.Print(output.ActionResult{OK: true, Action: "focus", Window: output.WindowOf(target)})
}

func focusTarget(s *session, slot, windowID, query string) (model.Window, error) {
	switch {
	case slot != "":
		key, err := registry.ParseSlotKey(slot)
		if err != nil {
			return model.Window{}, err
		}
		return s.pipe.HarpoonTarget(key)
	case windowID != "":
		return s.window(windowID)
	default:
		s.pipe.Filter(query)
		item, err := s.pipe.Selected()
		if err != nil {
			return model.Window{}, fmt.Errorf("%w: nothing matches %q", err, query)
		}
		return item.Window, nil
	}
}

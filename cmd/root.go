package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/winswitch/internal/config"
	"github.com/mj1618/winswitch/internal/logging"
	"github.com/mj1618/winswitch/internal/output"
	"github.com/spf13/cobra"
)

// Set via -ldflags "-X github.com/mj1618/winswitch/cmd.version=...".
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// cfg is the configuration resolved by the root command before any
// subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "winswitch",
	Short: "Rank, bookmark and switch between open windows",
	Long: `winswitch ranks the windows of an X11 session against a query, keeps a
most-recently-used history for alt-tab style switching, and remembers harpoon
bookmarks and custom window names across application restarts.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json, table")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (default: search $WINSWITCH_CONFIG_PATH, ~/.config/winswitch, .)")
	rootCmd.PersistentFlags().String("snapshot", "", "Read windows from a YAML/JSON snapshot file instead of the window system")
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to the data directory")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		configPath, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if debug, _ := rootCmd.PersistentFlags().GetBool("debug"); debug {
			loaded.Debug = true
		}
		cfg = loaded

		logging.Init(logging.Config{
			Dir:      cfg.Log.Dir,
			Fallback: cfg.DataDir,
			Level:    cfg.Log.Level,
			Format:   cfg.Log.Format,
			Debug:    cfg.Debug,
		})

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		logging.Shutdown()
	}
}

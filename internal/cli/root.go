// Package cli implements the touchgrass commands.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KayraNafi/TouchGrass/internal/app"
	"github.com/KayraNafi/TouchGrass/internal/config"
)

var (
	configDir  string
	idlePoll   time.Duration
	noJournal  bool
	autostart  bool
	formatFlag string
)

// RootCmd runs the desktop app; its subcommands drive a running instance.
var RootCmd = &cobra.Command{
	Use:   "touchgrass",
	Short: "Gentle break reminders",
	Long:  "TouchGrass lives in the system tray and reminds you to step away from the screen.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		options, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		options.Autostart = autostart
		return app.Run(options)
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (default: $"+config.EnvConfigDir+" or the OS config dir)")
	RootCmd.PersistentFlags().DurationVar(&idlePoll, "idle-poll", config.DefaultIdlePollInterval, "How often to sample user activity")
	RootCmd.PersistentFlags().BoolVar(&noJournal, "no-journal", false, "Do not record reminders in the journal")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	RootCmd.Flags().BoolVar(&autostart, "autostart", false, "Start hidden in the tray (used by the login entry)")
}

// loadOptions resolves config from env and applies flags the user set.
func loadOptions(cmd *cobra.Command) (*config.Options, error) {
	if configDir != "" {
		if err := os.Setenv(config.EnvConfigDir, configDir); err != nil {
			return nil, fmt.Errorf("set config dir: %w", err)
		}
	}
	options, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("idle-poll") {
		options.IdlePollInterval = idlePoll
	}
	if flags.Changed("no-journal") {
		options.JournalEnabled = !noJournal
	}
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return options, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

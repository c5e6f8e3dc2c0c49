package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KayraNafi/TouchGrass/internal/control"
	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences of the running instance",
		Args:  cobra.NoArgs,
		Run:   runSet,
	}

	addSetFlags(cmd.Flags())
	RootCmd.AddCommand(cmd)
}

func addSetFlags(flags *pflag.FlagSet) {
	flags.Uint64("interval", model.DefaultIntervalMinutes, "Minutes between reminders (2-240)")
	flags.Uint64("idle-threshold", model.DefaultIdleThresholdMinutes, "Minutes without input before you count as away (1-30)")
	flags.Bool("activity-detection", true, "Hold reminders while you are away")
	flags.Bool("sound", true, "Play a sound with reminders")
	flags.Bool("start-at-login", true, "Start TouchGrass at login")
	flags.String("theme", string(model.ThemeDark), "UI theme: dark or light")
}

func runSet(cmd *cobra.Command, args []string) {
	update, err := updateFromFlags(cmd.Flags())
	if err != nil {
		exitErr("set", err)
	}
	runRequest(cmd, control.Request{Command: control.CommandSet, Update: &update})
}

// updateFromFlags builds an update from the flags the user actually set.
func updateFromFlags(flags *pflag.FlagSet) (model.PreferencesUpdate, error) {
	var update model.PreferencesUpdate

	if flags.Changed("interval") {
		value, _ := flags.GetUint64("interval")
		update.IntervalMinutes = &value
	}
	if flags.Changed("idle-threshold") {
		value, _ := flags.GetUint64("idle-threshold")
		update.IdleThresholdMinutes = &value
	}
	if flags.Changed("activity-detection") {
		value, _ := flags.GetBool("activity-detection")
		update.ActivityDetection = &value
	}
	if flags.Changed("sound") {
		value, _ := flags.GetBool("sound")
		update.SoundEnabled = &value
	}
	if flags.Changed("start-at-login") {
		value, _ := flags.GetBool("start-at-login")
		update.AutostartEnabled = &value
	}
	if flags.Changed("theme") {
		raw, _ := flags.GetString("theme")
		theme := model.Theme(raw)
		if !theme.Valid() {
			return update, fmt.Errorf("unknown theme %q (use dark or light)", raw)
		}
		update.Theme = &theme
	}

	if update.IsEmpty() {
		return update, errors.New("nothing to change; pass at least one flag")
	}
	return update, nil
}

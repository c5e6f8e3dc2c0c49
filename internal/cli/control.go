package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/KayraNafi/TouchGrass/internal/control"
	"github.com/KayraNafi/TouchGrass/internal/core/model"
	"github.com/KayraNafi/TouchGrass/internal/platform"
	"github.com/KayraNafi/TouchGrass/internal/ui/tray"
)

const requestTimeout = 5 * time.Second

func init() {
	simple := []struct {
		use     string
		short   string
		command string
	}{
		{"status", "Show the reminder status", control.CommandStatus},
		{"pause", "Pause reminders", control.CommandPause},
		{"resume", "Resume reminders", control.CommandResume},
		{"clear-snooze", "Cancel an active snooze", control.CommandClearSnooze},
		{"skip", "Skip the current break and start a fresh interval", control.CommandSkip},
		{"trigger", "Send a reminder right now", control.CommandTrigger},
		{"preferences", "Show the preferences in use", control.CommandPreferences},
	}
	for _, def := range simple {
		command := def.command
		RootCmd.AddCommand(&cobra.Command{
			Use:   def.use,
			Short: def.short,
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				runRequest(cmd, control.Request{Command: command})
			},
		})
	}

	RootCmd.AddCommand(&cobra.Command{
		Use:   "snooze [minutes]",
		Short: "Snooze reminders (default 5 minutes)",
		Args:  cobra.MaximumNArgs(1),
		Run:   runSnooze,
	})
}

func runSnooze(cmd *cobra.Command, args []string) {
	minutes := uint64(5)
	if len(args) == 1 {
		parsed, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil || parsed == 0 {
			exitErr("snooze", fmt.Errorf("minutes must be a positive number, got %q", args[0]))
		}
		minutes = parsed
	}
	runRequest(cmd, control.Request{Command: control.CommandSnooze, Minutes: minutes})
}

func runRequest(cmd *cobra.Command, request control.Request) {
	options, err := loadOptions(cmd)
	if err != nil {
		exitErr("config", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	client, err := control.Dial(ctx, platform.InstanceAddress(options.AppName))
	if err != nil {
		exitErr("connect", err)
	}
	defer client.Close()

	response, err := client.Do(ctx, request)
	if err != nil {
		exitErr(request.Command, err)
	}
	if err := printResponse(cmd.OutOrStdout(), response, formatFlag, time.Now()); err != nil {
		exitErr("print", err)
	}
}

func printResponse(out io.Writer, response control.Response, format string, now time.Time) error {
	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	}

	if response.Status != nil {
		fmt.Fprintln(out, tray.StatusLine(*response.Status, now))
		if last := response.Status.LastNotificationAt; last != nil {
			fmt.Fprintf(out, "Last reminder: %s\n", last.Local().Format("15:04"))
		}
	}
	if response.Preferences != nil {
		printPreferences(out, *response.Preferences)
	}
	return nil
}

func printPreferences(out io.Writer, prefs model.Preferences) {
	fmt.Fprintf(out, "Interval:           %d min\n", prefs.IntervalMinutes)
	fmt.Fprintf(out, "Activity detection: %s\n", onOff(prefs.ActivityDetection))
	fmt.Fprintf(out, "Idle threshold:     %d min\n", prefs.IdleThresholdMinutes)
	fmt.Fprintf(out, "Sound:              %s\n", onOff(prefs.SoundEnabled))
	fmt.Fprintf(out, "Start at login:     %s\n", onOff(prefs.AutostartEnabled))
	fmt.Fprintf(out, "Theme:              %s\n", prefs.Theme)
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}

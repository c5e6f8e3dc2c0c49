package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KayraNafi/TouchGrass/internal/journal"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent reminders and actions",
		Args:  cobra.NoArgs,
		Run:   runHistory,
	}
	cmd.Flags().IntP("limit", "l", 20, "Number of entries to show")
	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	options, err := loadOptions(cmd)
	if err != nil {
		exitErr("config", err)
	}
	if _, err := os.Stat(options.JournalPath()); os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
		return
	}

	store, err := journal.Open(options.JournalPath())
	if err != nil {
		exitErr("open journal", err)
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		exitErr("history", err)
	}
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := store.CountSince(cmd.Context(), journal.KindReminder, midnight)
	if err != nil {
		exitErr("history", err)
	}

	if formatFlag == "json" {
		b, _ := json.MarshalIndent(struct {
			RemindersToday int             `json:"reminders_today"`
			Entries        []journal.Entry `json:"entries"`
		}{today, entries}, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Reminders today: %d\n", today)
	for _, entry := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %s\n", entry.At.Local().Format("Jan 02 15:04"), entry.Kind, entry.Detail)
	}
}

package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"io"
	"livechat/infrastructure/storage"
	"log/slog"
	"strconv"
	"time"
)

// Same defaults as the server environment.
var defaultSettings = storage.QueueSettings{UseQueue: true, MaxQueueWaitTime: 5 * time.Minute}

func buildSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the stored queue settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(dbPath, false)
			if err != nil {
				return fmt.Errorf("open badger: %w", err)
			}
			defer db.Close()
			printSettings(storage.NewQueueConfigRepository(db, quietLogger(), defaultSettings).Settings(cmd.Context()))
			return nil
		},
	}
	cmd.AddCommand(buildSettingsSetCmd())
	return cmd
}

// The server holds the badger lock, so set only works while it is stopped.
func buildSettingsSetCmd() *cobra.Command {
	var (
		useQueue     bool
		maxWait      time.Duration
		urgentBypass bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Overwrite the queue settings (server must be stopped)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(dbPath, true)
			if err != nil {
				return fmt.Errorf("open badger: %w", err)
			}
			defer db.Close()

			repository := storage.NewQueueConfigRepository(db, quietLogger(), defaultSettings)
			settings := repository.Settings(cmd.Context())
			flags := cmd.Flags()
			if flags.Changed("use-queue") {
				settings.UseQueue = useQueue
			}
			if flags.Changed("max-wait") {
				settings.MaxQueueWaitTime = maxWait
			}
			if flags.Changed("urgent-bypass") {
				settings.UrgentBypassQueue = urgentBypass
			}
			if err := repository.SaveSettings(cmd.Context(), settings); err != nil {
				return err
			}
			printSettings(settings)
			return nil
		},
	}
	cmd.Flags().BoolVar(&useQueue, "use-queue", true, "Queue new chats instead of assigning them at once")
	cmd.Flags().DurationVar(&maxWait, "max-wait", 5*time.Minute, "Max queue wait time reported to visitors")
	cmd.Flags().BoolVar(&urgentBypass, "urgent-bypass", false, "Urgent chats skip the queue")
	return cmd
}

func printSettings(settings storage.QueueSettings) {
	table := newTable("Setting", "Value")
	table.Append([]string{"use_queue", strconv.FormatBool(settings.UseQueue)})
	table.Append([]string{"max_queue_wait_time", settings.MaxQueueWaitTime.String()})
	table.Append([]string{"urgent_bypass_queue", strconv.FormatBool(settings.UrgentBypassQueue)})
	table.Render()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

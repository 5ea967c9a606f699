package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plexnote/internal/delivery"
	"plexnote/internal/embedmsg"
	"plexnote/internal/logging"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test embed to the configured webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return err
			}

			sender := delivery.New(cfg.Webhook.URL, cfg.Webhook.RetryAttempts,
				time.Duration(cfg.Webhook.RetryAfterDefault)*time.Second,
				time.Duration(cfg.Webhook.RequestTimeout)*time.Second, logger)

			embed := &embedmsg.Embed{
				Title:       "🔔 Plexnote Test",
				Description: "Testbenachrichtigung erfolgreich zugestellt.",
				Color:       embedmsg.ColorShow,
				Footer:      &embedmsg.Footer{Text: time.Now().Format("02.01.2006, 15:04")},
			}
			if err := sender.Send(cmd.Context(), embed); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}

package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"plexnote/internal/logging"
	"plexnote/internal/pipeline"
)

func newNotifyCommand(ctx *commandContext) *cobra.Command {
	var ratingKey string

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send a Discord notification for a library item",
		Long: "Resolves the rating key from the --rating-key flag, the environment, or a\n" +
			"stdin payload, enriches the item with TMDB and TVDB metadata, and posts the\n" +
			"composed embed to the configured webhook. Without a key the most recently\n" +
			"added library item is used.",
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

			p, err := pipeline.New(cfg, logger)
			if err != nil {
				return err
			}

			var stdin io.Reader
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				stdin = os.Stdin
			}
			key := resolveRatingKey(ratingKey, os.Getenv, stdin)

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return p.Run(runCtx, key)
		},
	}

	cmd.Flags().StringVar(&ratingKey, "rating-key", "", "Rating key of the library item to announce")
	return cmd
}

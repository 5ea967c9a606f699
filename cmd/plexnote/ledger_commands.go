package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plexnote/internal/config"
	"plexnote/internal/ledger"
)

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and edit the posted-items ledger",
	}

	ledgerCmd.AddCommand(newLedgerListCommand(ctx))
	ledgerCmd.AddCommand(newLedgerRemoveCommand(ctx))
	ledgerCmd.AddCommand(newLedgerPathCommand(ctx))

	return ledgerCmd
}

func openLedger(cfg *config.Config) *ledger.Ledger {
	return ledger.New(cfg.Ledger.Path, cfg.Ledger.MaxRecords, nil)
}

func newLedgerListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ledger records, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			records, err := openLedger(cfg).List()
			if err != nil {
				return fmt.Errorf("read ledger: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "Ledger is empty")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.RatingKey,
					rec.Signature,
					string(rec.Status),
					time.Unix(rec.Timestamp, 0).Format("02.01.2006 15:04"),
				})
			}
			fmt.Fprintln(out, renderLedgerTable(rows))
			return nil
		},
	}
}

func newLedgerRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <rating-key-or-signature>",
		Short: "Remove records so an item can be announced again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			removed, err := openLedger(cfg).Remove(args[0])
			if err != nil {
				return fmt.Errorf("update ledger: %w", err)
			}
			if removed == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No ledger record matches %q\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d record(s)\n", removed)
			return nil
		},
	}
}

func newLedgerPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the ledger file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Ledger.Path)
			return nil
		},
	}
}

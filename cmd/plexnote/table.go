package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderLedgerTable renders ledger records as a rounded table. The rating key
// column is right-aligned so numeric keys line up.
func renderLedgerTable(rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Rating Key", "Signature", "Status", "Posted"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1], row[2], row[3]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the pages the audit covers",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Audit plan: %d pages\n", appCtx.Services.Registry.Len())

		tbl := table.NewWriter()
		tbl.SetOutputMirror(out)
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"#", "Key", "Name", "URL", "Category", "Risk"})
		for i, page := range appCtx.Services.Registry.Pages() {
			tbl.AppendRow(table.Row{i + 1, page.Key, page.Name, page.URL(appCtx.BaseURL), page.Category, page.Risk})
		}
		tbl.Render()
		return nil
	},
}

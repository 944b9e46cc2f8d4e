package commands

import (
	"martinotron/internal/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(urlsCmd)
}

var urlsCmd = &cobra.Command{
	Use:   "urls",
	Short: "Prints the urls of the stored columns.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sqlite, err := openStore()
		if err != nil {
			return err
		}
		defer sqlite.Close()

		urls, err := db.New(sqlite).ListArticleUrls(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable(cmd)
		t.AppendHeader(table.Row{"URL"})
		for _, u := range urls {
			t.AppendRow(table.Row{u})
		}
		t.AppendFooter(table.Row{len(urls)})
		t.Render()
		return nil
	},
}

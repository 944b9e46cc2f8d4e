package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"martinotron/internal/scrapers/journal"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

var extractUrl string

func init() {
	extractCmd.Flags().StringVar(&extractUrl, "url", "", "The url the page was downloaded from.")
	extractCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <page.html> --url <url>",
	Short: "Extracts the record of a saved column page and prints it as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := html.Parse(f)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		article, err := journal.NewExtractor().Extract(doc, extractUrl)
		if err != nil {
			return err
		}

		out := json.NewEncoder(cmd.OutOrStdout())
		out.SetEscapeHTML(false)
		out.SetIndent("", "  ")
		return out.Encode(article)
	},
}

package commands

import (
	"fmt"
	"strings"

	"martinotron/internal/analysis"
	"martinotron/internal/db"

	"github.com/spf13/cobra"
)

var analyzeCsv bool

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeCsv, "csv", false, "Prints csv instead of a table.")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:       fmt.Sprintf("analyze <%s> [--csv]", strings.Join(analysis.MetricNames(), "|")),
	Short:     "Counts something in every stored column.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: analysis.MetricNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric := analysis.Metrics[args[0]]

		_, sqlite, err := openStore()
		if err != nil {
			return err
		}
		defer sqlite.Close()

		articles, err := analysis.LoadArticles(cmd.Context(), db.New(sqlite))
		if err != nil {
			return err
		}
		points := analysis.Analyze(articles, metric)

		if analyzeCsv {
			return analysis.WriteCSV(cmd.OutOrStdout(), args[0], points)
		}
		t := newTable(cmd)
		analysis.FillTable(t, args[0], points)
		t.Render()
		return nil
	},
}

package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

const dateLayout = "2006-01-02"

// FillTable appends one row per point and a footer with the summary.
func FillTable(t table.Writer, metric string, points []Point) {
	t.AppendHeader(table.Row{"Date", "Title", "URL", metric})
	for _, p := range points {
		t.AppendRow(table.Row{p.Date.Format(dateLayout), p.Title, p.URL, p.Count})
	}

	summary := Summarize(points)
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d articles", summary.Articles),
		fmt.Sprintf("mean %.2f", summary.Mean),
		summary.MaxURL,
		summary.Total,
	})
}

// WriteCSV writes points as csv with a header row.
func WriteCSV(w io.Writer, metric string, points []Point) error {
	out := csv.NewWriter(w)
	err := out.Write([]string{"date", "title", "url", metric})
	if err != nil {
		return err
	}
	for _, p := range points {
		err = out.Write([]string{
			p.Date.Format(dateLayout),
			p.Title,
			p.URL,
			strconv.Itoa(p.Count),
		})
		if err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

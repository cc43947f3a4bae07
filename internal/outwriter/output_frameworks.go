package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter/tw"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/internal/parquet"
	"github.com/qlinetech/qgit/schema"
)

// PrintFrameworks outputs detected frameworks and the marker files behind them.
func PrintFrameworks(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	rows := parquet.ConvertFrameworks(report.Frameworks)

	csvRows := make([][]string, len(rows))
	for i, r := range rows {
		csvRows[i] = []string{r.Framework, r.Marker}
	}

	return printView(view{
		title: func(l Labels) string { return l.Frameworks },
		markdown: func(w io.Writer, l Labels) error {
			return writeFrameworksMarkdown(w, report.Frameworks, l)
		},
		text: func(w io.Writer, l Labels) error {
			if len(rows) == 0 {
				_, err := fmt.Fprintln(w, l.NoFrameworks)
				return err
			}
			return writeTextTable(w, []string{l.Framework, l.Marker}, csvRows, nil, tw.AlignLeft)
		},
		json:      report.Frameworks,
		csvHeader: []string{"framework", "marker"},
		csvRows:   csvRows,
		parquet: func(outputFile string) error {
			return writeParquetFile(outputFile, rows)
		},
	}, cfg, duration)
}

// writeFrameworksMarkdown writes the framework table, or a notice when nothing matched.
func writeFrameworksMarkdown(w io.Writer, detected schema.FrameworkDetection, l Labels) error {
	if len(detected) == 0 {
		_, err := fmt.Fprintln(w, l.NoFrameworks)
		return err
	}
	var rows [][]string
	for _, name := range detected.SortedNames() {
		rows = append(rows, []string{name, "`" + detected[name] + "`"})
	}
	return writeMarkdownTable(w, []string{l.Framework, l.Marker}, rows)
}

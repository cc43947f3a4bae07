package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter/tw"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/internal/parquet"
	"github.com/qlinetech/qgit/schema"
)

// PrintLanguages outputs the per-language line breakdown in the configured format.
func PrintLanguages(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	shares := report.Languages.Sorted()
	share := shareFormatter(cfg.Precision)

	csvRows := make([][]string, len(shares))
	for i, s := range shares {
		csvRows[i] = []string{s.Language, strconv.Itoa(s.Lines), share(s.Percentage)}
	}

	return printView(view{
		title: func(l Labels) string { return l.Languages },
		markdown: func(w io.Writer, l Labels) error {
			return writeLanguagesMarkdown(w, report.Languages, l)
		},
		text: func(w io.Writer, l Labels) error {
			var data [][]string
			for _, s := range limitRows(shares, cfg.ResultLimit) {
				data = append(data, []string{s.Language, formatCount(s.Lines), share(s.Percentage) + "%"})
			}
			footer := []string{l.Total, formatCount(report.Languages.Total), share(totalShare(report.Languages)) + "%"}
			return writeTextTable(w, []string{l.Language, l.Lines, l.Share}, data, footer, tw.AlignRight)
		},
		json:      shares,
		csvHeader: []string{"language", "lines", "percentage"},
		csvRows:   csvRows,
		parquet: func(outputFile string) error {
			return writeParquetFile(outputFile, parquet.ConvertLanguageShares(shares))
		},
	}, cfg, duration)
}

// writeLanguagesMarkdown writes the language table with two-decimal percentages and a total row.
func writeLanguagesMarkdown(w io.Writer, tally schema.LanguageTally, l Labels) error {
	var rows [][]string
	for _, s := range tally.Sorted() {
		rows = append(rows, []string{s.Language, formatCount(s.Lines), fmt.Sprintf("%.2f%%", s.Percentage)})
	}
	rows = append(rows, []string{
		"**" + l.Total + "**",
		"**" + formatCount(tally.Total) + "**",
		fmt.Sprintf("**%.2f%%**", totalShare(tally)),
	})
	return writeMarkdownTable(w, []string{l.Language, l.Lines, l.Share}, rows)
}

// totalShare is 100 when any lines were counted, otherwise 0.
func totalShare(tally schema.LanguageTally) float64 {
	if tally.Total == 0 {
		return 0
	}
	return 100
}

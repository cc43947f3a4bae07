package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
)

// view is one report rendered in every supported output format.
type view struct {
	title     func(l Labels) string
	markdown  func(w io.Writer, l Labels) error
	text      func(w io.Writer, l Labels) error
	json      any
	csvHeader []string
	csvRows   [][]string
	parquet   func(outputFile string) error
}

// printView dispatches v based on the output format configured.
func printView(v view, cfg *contract.Config, duration time.Duration) error {
	l := LabelsFor(cfg.LabelLang)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, v.json)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, v.csvHeader, v.csvRows)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if v.parquet == nil {
			return fmt.Errorf("parquet output is not supported for this report")
		}
		if err := v.parquet(cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.MarkdownOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMarkdownDocument(w, v.title(l), v.markdown, l, cfg.Signature)
		}, "Wrote Markdown"); err != nil {
			return fmt.Errorf("error writing Markdown output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := v.text(w, l); err != nil {
				return err
			}
			printCompletion(w, cfg, duration)
			return nil
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// writeMarkdownDocument writes a titled Markdown document with an optional signature footer.
func writeMarkdownDocument(w io.Writer, title string, body func(io.Writer, Labels) error, l Labels, signature bool) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", title); err != nil {
		return err
	}
	if err := body(w, l); err != nil {
		return err
	}
	if signature {
		return writeSignature(w, l)
	}
	return nil
}

// writeSignature appends the horizontal rule and the generation line.
func writeSignature(w io.Writer, l Labels) error {
	_, err := fmt.Fprintf(w, "\n---\n"+l.Signature+"\n", now().Format(schema.DateLayout))
	return err
}

// writeMarkdownTable renders a left-aligned GitHub flavored Markdown table.
// Pipes inside cells are escaped so they cannot split a column.
func writeMarkdownTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Header.Alignment.Global = tw.AlignLeft
		cfg.Row.Formatting.AutoWrap = tw.WrapNone
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	table.Header(escapeMarkdownCells(header))
	escaped := make([][]string, len(rows))
	for i, row := range rows {
		escaped[i] = escapeMarkdownCells(row)
	}
	if err := table.Bulk(escaped); err != nil {
		return err
	}
	return table.Render()
}

func escapeMarkdownCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}

// writeTextTable renders a console table with an optional footer row.
func writeTextTable(w io.Writer, header []string, rows [][]string, footer []string, align tw.Align) error {
	table := tablewriter.NewWriter(w)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = align
	})
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if footer != nil {
		table.Footer(footer)
	}
	return table.Render()
}

package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter/tw"
	"github.com/qlinetech/qgit/core/rollup"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/internal/parquet"
	"github.com/qlinetech/qgit/schema"
	"github.com/samber/lo"
)

// PrintContributors outputs the per-author rollup, most active authors first.
func PrintContributors(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	rows := rollup.Rows(report.Contributors)

	return printView(view{
		title: func(l Labels) string { return l.Contributors },
		markdown: func(w io.Writer, l Labels) error {
			return writeContributorsMarkdown(w, report.Contributors, l)
		},
		text: func(w io.Writer, l Labels) error {
			data := lo.Map(limitRows(rows, cfg.ResultLimit), func(r schema.ContributorRow, _ int) []string {
				return contributorCells(r)
			})
			header := []string{l.Author, l.Commits, l.Added, l.Removed, l.Net}
			return writeTextTable(w, header, data, nil, tw.AlignRight)
		},
		json:      rollup.Ranked(report.Contributors),
		csvHeader: []string{"author", "commits", "lines_added", "lines_removed", "net_lines"},
		csvRows:   contributorCSVRows(rows),
		parquet: func(outputFile string) error {
			return writeParquetFile(outputFile, parquet.ConvertContributorRows(rows))
		},
	}, cfg, duration)
}

// writeContributorsMarkdown writes the summary table followed by each author's commits in date order.
func writeContributorsMarkdown(w io.Writer, records map[string]*schema.ContributorRecord, l Labels) error {
	rows := lo.Map(rollup.Rows(records), func(r schema.ContributorRow, _ int) []string {
		return contributorCells(r)
	})
	if err := writeMarkdownTable(w, []string{l.Author, l.Commits, l.Added, l.Removed, l.Net}, rows); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\n## %s\n", l.CommitHistory); err != nil {
		return err
	}
	for _, rec := range rollup.Ranked(records) {
		if err := writeCommitList(w, rec); err != nil {
			return err
		}
	}
	return nil
}

// writeCommitList writes one author heading and their commits.
func writeCommitList(w io.Writer, rec *schema.ContributorRecord) error {
	if _, err := fmt.Fprintf(w, "\n### %s\n\n", rec.Name); err != nil {
		return err
	}
	for _, c := range rec.Commits {
		if _, err := fmt.Fprintf(w, "- %s `%s` %s (+%s, -%s)\n",
			formatDate(c.Date), shortHash(c.Hash), contract.TruncateMessage(c.Message, timelineMessageLimit),
			formatCount(c.LinesAdded), formatCount(c.LinesRemoved)); err != nil {
			return err
		}
	}
	return nil
}

func contributorCells(r schema.ContributorRow) []string {
	return []string{r.Author, formatCount(r.Commits), formatCount(r.LinesAdded), formatCount(r.LinesRemoved), formatCount(r.NetLines)}
}

func contributorCSVRows(rows []schema.ContributorRow) [][]string {
	return lo.Map(rows, func(r schema.ContributorRow, _ int) []string {
		return []string{r.Author, strconv.Itoa(r.Commits), strconv.Itoa(r.LinesAdded), strconv.Itoa(r.LinesRemoved), strconv.Itoa(r.NetLines)}
	})
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

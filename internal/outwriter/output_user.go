package outwriter

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter/tw"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
)

// PrintUserReport outputs one author's merged rollup and the per-repository breakdown.
func PrintUserReport(ur *schema.UserReport, cfg *contract.Config, duration time.Duration) error {
	repos := append([]string(nil), ur.Repos...)
	sort.Strings(repos)

	row := func(repo string, rec *schema.ContributorRecord) []string {
		if rec == nil {
			rec = &schema.ContributorRecord{}
		}
		return []string{repo, formatCount(len(rec.Commits)), formatCount(rec.LinesAdded), formatCount(rec.LinesRemoved), formatCount(rec.NetLines())}
	}

	var cells, csvRows [][]string
	for _, repo := range repos {
		rec := ur.PerRepo[repo]
		cells = append(cells, row(repo, rec))
		if rec == nil {
			rec = &schema.ContributorRecord{}
		}
		csvRows = append(csvRows, []string{ur.Author, repo, strconv.Itoa(len(rec.Commits)),
			strconv.Itoa(rec.LinesAdded), strconv.Itoa(rec.LinesRemoved), strconv.Itoa(rec.NetLines())})
	}

	return printView(view{
		title: func(l Labels) string { return fmt.Sprintf("%s: %s", l.Author, ur.Author) },
		markdown: func(w io.Writer, l Labels) error {
			header := []string{l.Repo, l.Commits, l.Added, l.Removed, l.Net}
			all := append(slices.Clone(cells), row("**"+l.Total+"**", ur.Record))
			if err := writeMarkdownTable(w, header, all); err != nil {
				return err
			}
			if ur.Record == nil || len(ur.Record.Commits) == 0 {
				return nil
			}
			if _, err := fmt.Fprintf(w, "\n## %s\n", l.CommitHistory); err != nil {
				return err
			}
			return writeCommitList(w, ur.Record)
		},
		text: func(w io.Writer, l Labels) error {
			if _, err := fmt.Fprintf(w, "%s: %s\n", l.Author, ur.Author); err != nil {
				return err
			}
			header := []string{l.Repo, l.Commits, l.Added, l.Removed, l.Net}
			return writeTextTable(w, header, cells, row(l.Total, ur.Record), tw.AlignRight)
		},
		json:      ur,
		csvHeader: []string{"author", "repo", "commits", "lines_added", "lines_removed", "net_lines"},
		csvRows:   csvRows,
	}, cfg, duration)
}

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
	"github.com/samber/lo"
)

// timelineMessageLimit is the number of message runes kept before "..." is appended.
const timelineMessageLimit = 50

// PrintTimeline outputs the commit history, oldest first.
func PrintTimeline(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	commits := report.Commits

	return printView(view{
		title: func(l Labels) string { return l.Timeline },
		markdown: func(w io.Writer, l Labels) error {
			return writeTimelineMarkdown(w, commits, l)
		},
		text: func(w io.Writer, l Labels) error {
			data := lo.Map(limitRows(commits, cfg.ResultLimit), func(c schema.Commit, _ int) []string {
				return timelineCells(c)
			})
			return writeTextTable(w, []string{l.Date, l.Author, l.Message, l.Changes}, data, nil, tw.AlignLeft)
		},
		json:      commits,
		csvHeader: []string{"hash", "author", "committed_at", "message", "insertions", "deletions"},
		csvRows: lo.Map(commits, func(c schema.Commit, _ int) []string {
			return []string{c.Hash, c.AuthorName, c.CommittedAt, c.Message, strconv.Itoa(c.Insertions), strconv.Itoa(c.Deletions)}
		}),
		parquet: func(outputFile string) error {
			return writeParquetFile(outputFile, parquet.ConvertCommits(commits))
		},
	}, cfg, duration)
}

// writeTimelineMarkdown writes one table row per commit.
func writeTimelineMarkdown(w io.Writer, commits []schema.Commit, l Labels) error {
	rows := lo.Map(commits, func(c schema.Commit, _ int) []string {
		return timelineCells(c)
	})
	return writeMarkdownTable(w, []string{l.Date, l.Author, l.Message, l.Changes}, rows)
}

func timelineCells(c schema.Commit) []string {
	return []string{
		formatDate(c.CommittedAt),
		c.AuthorName,
		contract.TruncateMessage(c.Message, timelineMessageLimit),
		fmt.Sprintf("+%s, -%s", formatCount(c.Insertions), formatCount(c.Deletions)),
	}
}

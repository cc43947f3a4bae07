package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter/tw"
	"github.com/qlinetech/qgit/core/tree"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/internal/parquet"
	"github.com/qlinetech/qgit/schema"
)

// PrintTree outputs the aggregated folder structure in the configured format.
func PrintTree(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	rows := tree.Rows(report.Tree)
	return printView(view{
		title: func(l Labels) string { return l.FolderStructure },
		markdown: func(w io.Writer, l Labels) error {
			return writeFolderMarkdown(w, report.Tree, l)
		},
		text: func(w io.Writer, l Labels) error {
			return writeFolderTable(w, rows, report.Tree, cfg, l)
		},
		json:      rows,
		csvHeader: []string{"path", "depth", "is_dir", "lines", "commits"},
		csvRows:   folderCSVRows(rows),
		parquet: func(outputFile string) error {
			return writeParquetFile(outputFile, parquet.ConvertFolderRows(rows))
		},
	}, cfg, duration)
}

// writeFolderMarkdown writes the tree as a nested list, two spaces of indent per level.
func writeFolderMarkdown(w io.Writer, root *schema.TreeNode, l Labels) error {
	var b strings.Builder
	b.WriteString("```markdown\n")
	tree.Walk(root, func(path string, depth int, isDir bool, node *schema.TreeNode, file schema.FileMetric) {
		indent := strings.Repeat("  ", depth)
		name := path[strings.LastIndex(path, "/")+1:]
		if isDir {
			fmt.Fprintf(&b, "%s- **%s/** (%s: %s, %s: %s)\n", indent, name,
				l.Lines, formatCount(node.AggregatedLines), l.Commits, formatCount(node.AggregatedCommits.Len()))
			return
		}
		fmt.Fprintf(&b, "%s- `%s` (%s: %s, %s: %s)\n", indent, name,
			l.Lines, formatCount(file.LineCount), l.Commits, formatCount(file.CommitIDs.Len()))
	})
	b.WriteString("```\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// writeFolderTable prints the tree as an indented table with a root total.
func writeFolderTable(w io.Writer, rows []schema.FolderRow, root *schema.TreeNode, cfg *contract.Config, l Labels) error {
	maxWidth := GetMaxTablePathWidth(cfg, 2)
	var data [][]string
	for _, r := range limitRows(rows, cfg.ResultLimit) {
		name := r.Path[strings.LastIndex(r.Path, "/")+1:]
		if r.IsDir {
			name += "/"
		}
		label := contract.TruncatePath(strings.Repeat("  ", r.Depth)+name, maxWidth)
		if r.IsDir && cfg.UseColors {
			label = contract.DirColor.Sprint(label)
		}
		data = append(data, []string{label, formatCount(r.Lines), formatCount(r.Commits)})
	}
	footer := []string{l.Total, formatCount(root.AggregatedLines), formatCount(root.AggregatedCommits.Len())}
	return writeTextTable(w, []string{l.Path, l.Lines, l.Commits}, data, footer, tw.AlignLeft)
}

func folderCSVRows(rows []schema.FolderRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Path, strconv.Itoa(r.Depth), strconv.FormatBool(r.IsDir), strconv.Itoa(r.Lines), strconv.Itoa(r.Commits)}
	}
	return out
}

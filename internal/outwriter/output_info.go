package outwriter

import (
	"io"

	"github.com/qlinetech/qgit/schema"
)

// writeRepoInfoMarkdown writes the repository summary table.
func writeRepoInfoMarkdown(w io.Writer, info schema.RepoInfo, l Labels) error {
	return writeMarkdownTable(w, []string{l.Metric, l.Value}, repoInfoCells(info, l))
}

func repoInfoCells(info schema.RepoInfo, l Labels) [][]string {
	return [][]string{
		{l.Name, info.Name},
		{l.Head, shortHash(info.HeadHash)},
		{l.TotalFiles, formatCount(info.TotalFiles)},
		{l.TotalLines, formatCount(info.TotalLines)},
		{l.TotalCommits, formatCount(info.TotalCommits)},
		{l.Authors, formatCount(info.Contributors)},
		{l.CreatedAt, formatDate(info.CreatedAt)},
		{l.UpdatedAt, formatDate(info.UpdatedAt)},
	}
}

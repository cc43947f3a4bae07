// Package rollup groups commits by author name.
package rollup

import (
	"sort"

	"github.com/qlinetech/qgit/schema"
	"github.com/samber/lo"
)

// Contributors folds commits in the order supplied, grouping by the exact author
// name. Each author's commit list is then stably sorted by date string ascending.
func Contributors(commits []schema.Commit) map[string]*schema.ContributorRecord {
	records := make(map[string]*schema.ContributorRecord)
	for _, c := range commits {
		rec, ok := records[c.AuthorName]
		if !ok {
			rec = &schema.ContributorRecord{Name: c.AuthorName}
			records[c.AuthorName] = rec
		}
		rec.Commits = append(rec.Commits, schema.ContributorCommit{
			Hash:         c.Hash,
			Date:         c.CommittedAt,
			Message:      c.Message,
			LinesAdded:   c.Insertions,
			LinesRemoved: c.Deletions,
		})
		rec.LinesAdded += c.Insertions
		rec.LinesRemoved += c.Deletions
	}
	for _, rec := range records {
		sortByDate(rec.Commits)
	}
	return records
}

// Merge folds src into dst. Records for the same author are combined and re-sorted.
func Merge(dst, src map[string]*schema.ContributorRecord) {
	for name, s := range src {
		d, ok := dst[name]
		if !ok {
			d = &schema.ContributorRecord{Name: name}
			dst[name] = d
		}
		d.Commits = append(d.Commits, s.Commits...)
		d.LinesAdded += s.LinesAdded
		d.LinesRemoved += s.LinesRemoved
		sortByDate(d.Commits)
	}
}

// Ranked orders records by commit count descending, then by name.
func Ranked(records map[string]*schema.ContributorRecord) []*schema.ContributorRecord {
	ranked := lo.Values(records)
	sort.Slice(ranked, func(i, j int) bool {
		if len(ranked[i].Commits) != len(ranked[j].Commits) {
			return len(ranked[i].Commits) > len(ranked[j].Commits)
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// Rows converts ranked records into flat summary rows.
func Rows(records map[string]*schema.ContributorRecord) []schema.ContributorRow {
	return lo.Map(Ranked(records), func(r *schema.ContributorRecord, _ int) schema.ContributorRow {
		return schema.ContributorRow{
			Author:       r.Name,
			Commits:      len(r.Commits),
			LinesAdded:   r.LinesAdded,
			LinesRemoved: r.LinesRemoved,
			NetLines:     r.NetLines(),
		}
	})
}

// DateRange returns the earliest and latest commit dates, or empty strings.
func DateRange(commits []schema.Commit) (first, last string) {
	if len(commits) == 0 {
		return "", ""
	}
	dates := lo.Map(commits, func(c schema.Commit, _ int) string { return c.CommittedAt })
	return lo.Min(dates), lo.Max(dates)
}

func sortByDate(commits []schema.ContributorCommit) {
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Date < commits[j].Date
	})
}

// Package schema has configs, models and global variables for all parts of qgit.
package schema

import "sort"

// FileMetric represents the line count and commit attribution for a single tracked file.
type FileMetric struct {
	Path      string    `json:"path"`
	LineCount int       `json:"line_count"`
	CommitIDs CommitSet `json:"commit_ids"`
}

// TreeNode is a directory (or the root) in the path tree.
// AggregatedCommits is nil until the tree has been aggregated.
type TreeNode struct {
	Dirs              map[string]*TreeNode  `json:"dirs"`
	Files             map[string]FileMetric `json:"files"`
	AggregatedLines   int                   `json:"aggregated_lines"`
	AggregatedCommits CommitSet             `json:"aggregated_commits"`
}

// NewTreeNode creates an empty directory node.
func NewTreeNode() *TreeNode {
	return &TreeNode{
		Dirs:  make(map[string]*TreeNode),
		Files: make(map[string]FileMetric),
	}
}

// IsAggregated reports whether aggregated totals have been computed for this node.
func (n *TreeNode) IsAggregated() bool {
	return n.AggregatedCommits != nil
}

// SortedDirNames returns child directory names in lexicographic order.
func (n *TreeNode) SortedDirNames() []string {
	names := make([]string, 0, len(n.Dirs))
	for name := range n.Dirs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedFileNames returns file names in lexicographic order.
func (n *TreeNode) SortedFileNames() []string {
	names := make([]string, 0, len(n.Files))
	for name := range n.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commit is a single commit as supplied by the repository data source.
type Commit struct {
	Hash        string `json:"hash"`
	AuthorName  string `json:"author_name"`
	CommittedAt string `json:"committed_at"` // DateLayout
	Message     string `json:"message"`
	Insertions  int    `json:"insertions"`
	Deletions   int    `json:"deletions"`
}

// RepoSnapshot is everything the data source collects for one analysis run.
// Commits are ordered oldest first.
type RepoSnapshot struct {
	Name         string                `json:"name"`
	HeadHash     string                `json:"head_hash"`
	TrackedPaths []string              `json:"tracked_paths"`
	Files        map[string]FileMetric `json:"files"`
	Commits      []Commit              `json:"commits"`
}

// LanguageTally maps language label to the accumulated line count.
type LanguageTally struct {
	Lines map[string]int `json:"lines"`
	Total int            `json:"total"`
}

// LanguageShare is a single language row with its share of the total.
type LanguageShare struct {
	Language   string  `json:"language"`
	Lines      int     `json:"lines"`
	Percentage float64 `json:"percentage"`
}

// Percentage returns the share of lines for the language. It is 0 when the total is 0.
func (t LanguageTally) Percentage(lang string) float64 {
	if t.Total == 0 {
		return 0
	}
	return 100 * float64(t.Lines[lang]) / float64(t.Total)
}

// Sorted returns language shares ordered by lines descending, then by name.
func (t LanguageTally) Sorted() []LanguageShare {
	shares := make([]LanguageShare, 0, len(t.Lines))
	for lang, lines := range t.Lines {
		shares = append(shares, LanguageShare{Language: lang, Lines: lines, Percentage: t.Percentage(lang)})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Lines != shares[j].Lines {
			return shares[i].Lines > shares[j].Lines
		}
		return shares[i].Language < shares[j].Language
	})
	return shares
}

// FrameworkDetection maps framework label to the marker path that triggered it.
type FrameworkDetection map[string]string

// SortedNames returns detected framework labels in lexicographic order.
func (d FrameworkDetection) SortedNames() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContributorCommit is one commit in an author's history.
type ContributorCommit struct {
	Hash         string `json:"hash"`
	Date         string `json:"date"`
	Message      string `json:"message"`
	LinesAdded   int    `json:"lines_added"`
	LinesRemoved int    `json:"lines_removed"`
}

// ContributorRecord holds the rollup for a single author name.
type ContributorRecord struct {
	Name         string              `json:"name"`
	Commits      []ContributorCommit `json:"commits"`
	LinesAdded   int                 `json:"lines_added"`
	LinesRemoved int                 `json:"lines_removed"`
}

// NetLines returns lines added minus lines removed. It may be negative.
func (r *ContributorRecord) NetLines() int {
	return r.LinesAdded - r.LinesRemoved
}

// Package tree builds the directory tree from flat file metrics and aggregates it bottom-up.
package tree

import (
	"strings"

	"github.com/qlinetech/qgit/schema"
)

// Build turns a flat path -> metric mapping into a nested directory tree.
// Paths are split on '/' with no normalization. Directory nodes are created
// once per distinct prefix; the last segment becomes a file entry.
func Build(files map[string]schema.FileMetric) *schema.TreeNode {
	root := schema.NewTreeNode()
	for path, metric := range files {
		segments := strings.Split(path, "/")
		node := root
		for _, dir := range segments[:len(segments)-1] {
			child, ok := node.Dirs[dir]
			if !ok {
				child = schema.NewTreeNode()
				node.Dirs[dir] = child
			}
			node = child
		}
		node.Files[segments[len(segments)-1]] = metric
	}
	return root
}

// Aggregate computes, in post-order, the total line count and the union of commit
// ids for every directory node, stores them on the node and returns the totals of
// node. The tree must be fully built first. Running it again recomputes from the
// files and child directories only, so repeated calls yield identical totals.
func Aggregate(node *schema.TreeNode) (int, schema.CommitSet) {
	lines := 0
	commits := schema.NewCommitSet()

	for _, f := range node.Files {
		lines += f.LineCount
		commits.Union(f.CommitIDs)
	}
	for _, child := range node.Dirs {
		childLines, childCommits := Aggregate(child)
		lines += childLines
		commits.Union(childCommits)
	}

	node.AggregatedLines = lines
	node.AggregatedCommits = commits
	return lines, commits
}

// Lookup returns the directory node at the slash-separated path, or nil.
// An empty path returns root.
func Lookup(root *schema.TreeNode, path string) *schema.TreeNode {
	path = strings.Trim(path, "/")
	if path == "" {
		return root
	}
	node := root
	for _, seg := range strings.Split(path, "/") {
		child, ok := node.Dirs[seg]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// WalkFunc is called for every directory (isDir true) and file entry during Walk.
// path is the full slash-separated path and depth is 0 for direct children of the root.
type WalkFunc func(path string, depth int, isDir bool, node *schema.TreeNode, file schema.FileMetric)

// Walk visits the tree depth-first. Within a directory, subdirectories are visited
// before files and both are sorted by name.
func Walk(root *schema.TreeNode, fn WalkFunc) {
	walk(root, "", 0, fn)
}

func walk(node *schema.TreeNode, prefix string, depth int, fn WalkFunc) {
	for _, name := range node.SortedDirNames() {
		child := node.Dirs[name]
		p := prefix + name
		fn(p, depth, true, child, schema.FileMetric{})
		walk(child, p+"/", depth+1, fn)
	}
	for _, name := range node.SortedFileNames() {
		fn(prefix+name, depth, false, nil, node.Files[name])
	}
}

// Rows flattens the aggregated tree into folder rows in Walk order.
func Rows(root *schema.TreeNode) []schema.FolderRow {
	var rows []schema.FolderRow
	Walk(root, func(path string, depth int, isDir bool, node *schema.TreeNode, file schema.FileMetric) {
		row := schema.FolderRow{Path: path, Depth: depth, IsDir: isDir}
		if isDir {
			row.Lines = node.AggregatedLines
			row.Commits = node.AggregatedCommits.Len()
		} else {
			row.Lines = file.LineCount
			row.Commits = file.CommitIDs.Len()
		}
		rows = append(rows, row)
	})
	return rows
}

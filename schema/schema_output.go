package schema

// RepoInfo is the repository summary rendered at the top of every report.
type RepoInfo struct {
	Name         string `json:"name"`
	HeadHash     string `json:"head_hash"`
	TotalFiles   int    `json:"total_files"`
	TotalLines   int    `json:"total_lines"`
	TotalCommits int    `json:"total_commits"`
	Contributors int    `json:"contributors"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Report bundles the four independent analysis outputs for one repository.
type Report struct {
	Info         RepoInfo                      `json:"info"`
	Tree         *TreeNode                     `json:"tree"`
	Languages    LanguageTally                 `json:"languages"`
	Frameworks   FrameworkDetection            `json:"frameworks"`
	Contributors map[string]*ContributorRecord `json:"contributors"`
	Commits      []Commit                      `json:"commits"`
}

// UserReport is the contributor rollup for one author across local repositories.
type UserReport struct {
	Author  string                        `json:"author"`
	Repos   []string                      `json:"repos"`
	Record  *ContributorRecord            `json:"record"`
	PerRepo map[string]*ContributorRecord `json:"per_repo"`
}

// FolderRow is a flattened directory entry used by tabular outputs.
type FolderRow struct {
	Path    string `json:"path"`
	Depth   int    `json:"depth"`
	IsDir   bool   `json:"is_dir"`
	Lines   int    `json:"lines"`
	Commits int    `json:"commits"`
}

// ContributorRow is a flattened contributor summary used by tabular outputs.
type ContributorRow struct {
	Author       string `json:"author"`
	Commits      int    `json:"commits"`
	LinesAdded   int    `json:"lines_added"`
	LinesRemoved int    `json:"lines_removed"`
	NetLines     int    `json:"net_lines"`
}

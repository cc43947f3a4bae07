package outwriter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
)

// reportSection is one Markdown file of the report set.
type reportSection struct {
	file  string
	title func(l Labels) string
	body  func(w io.Writer, r *schema.Report, l Labels) error
}

var reportSections = []reportSection{
	{"repo_info.md", func(l Labels) string { return l.RepoInfo }, func(w io.Writer, r *schema.Report, l Labels) error {
		return writeRepoInfoMarkdown(w, r.Info, l)
	}},
	{"folder_structure.md", func(l Labels) string { return l.FolderStructure }, func(w io.Writer, r *schema.Report, l Labels) error {
		return writeFolderMarkdown(w, r.Tree, l)
	}},
	{"timeline.md", func(l Labels) string { return l.Timeline }, func(w io.Writer, r *schema.Report, l Labels) error {
		return writeTimelineMarkdown(w, r.Commits, l)
	}},
	{"contributors.md", func(l Labels) string { return l.Contributors }, func(w io.Writer, r *schema.Report, l Labels) error {
		return writeContributorsMarkdown(w, r.Contributors, l)
	}},
	{"languages.md", func(l Labels) string { return l.Languages }, func(w io.Writer, r *schema.Report, l Labels) error {
		return writeLanguagesMarkdown(w, r.Languages, l)
	}},
	{"frameworks.md", func(l Labels) string { return l.Frameworks }, func(w io.Writer, r *schema.Report, l Labels) error {
		return writeFrameworksMarkdown(w, r.Frameworks, l)
	}},
}

// fullReportFile combines every section without their individual signatures.
const fullReportFile = "full_report.md"

// PrintReportSet writes the Markdown report set into <report-dir>/<repo-name>/.
func PrintReportSet(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	dir := filepath.Join(cfg.ReportDir, report.Info.Name)
	written, err := WriteReportSet(dir, report, LabelsFor(cfg.LabelLang), cfg.Signature)
	if err != nil {
		return err
	}
	if cfg.UseEmojis {
		fmt.Fprintf(os.Stdout, "📝 Wrote %d reports to %s\n", len(written), dir)
	} else {
		fmt.Fprintf(os.Stdout, "Wrote %d reports to %s\n", len(written), dir)
	}
	printCompletion(os.Stdout, cfg, duration)
	return nil
}

// WriteReportSet renders every section and the full report into dir and returns the written paths.
func WriteReportSet(dir string, report *schema.Report, l Labels, signature bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	var full bytes.Buffer
	fmt.Fprintf(&full, "# %s\n", l.FullReport)

	written := make([]string, 0, len(reportSections)+1)
	for _, s := range reportSections {
		var body bytes.Buffer
		if err := s.body(&body, report, l); err != nil {
			return written, fmt.Errorf("failed to render %s: %w", s.file, err)
		}
		fmt.Fprintf(&full, "\n## %s\n\n%s", s.title(l), body.String())

		var doc bytes.Buffer
		fmt.Fprintf(&doc, "# %s\n\n%s", s.title(l), body.String())
		if signature {
			if err := writeSignature(&doc, l); err != nil {
				return written, err
			}
		}
		p := filepath.Join(dir, s.file)
		if err := os.WriteFile(p, doc.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", p, err)
		}
		written = append(written, p)
	}

	if signature {
		if err := writeSignature(&full, l); err != nil {
			return written, err
		}
	}
	p := filepath.Join(dir, fullReportFile)
	if err := os.WriteFile(p, full.Bytes(), 0o644); err != nil {
		return written, fmt.Errorf("failed to write %s: %w", p, err)
	}
	return append(written, p), nil
}

// Package classify detects languages by file extension and frameworks by marker files.
package classify

import (
	"path"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/qlinetech/qgit/schema"
)

// DefaultLanguages is the extension -> language policy table.
var DefaultLanguages = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".java":  "Java",
	".cpp":   "C++",
	".c":     "C",
	".cs":    "C#",
	".rb":    "Ruby",
	".php":   "PHP",
	".go":    "Go",
	".rs":    "Rust",
	".ts":    "TypeScript",
	".html":  "HTML",
	".css":   "CSS",
	".swift": "Swift",
}

// FrameworkMarker binds a marker file name to the framework it indicates.
type FrameworkMarker struct {
	File      string
	Framework string
}

// DefaultFrameworkMarkers is the ordered marker table. Each framework appears once.
var DefaultFrameworkMarkers = []FrameworkMarker{
	{File: "package.json", Framework: "Node.js"},
	{File: "requirements.txt", Framework: "Python (pip)"},
	{File: "pom.xml", Framework: "Java (Maven)"},
	{File: "Gemfile", Framework: "Ruby (Bundler)"},
	{File: "Cargo.toml", Framework: "Rust (Cargo)"},
	{File: "go.mod", Framework: "Go Modules"},
	{File: "composer.json", Framework: "PHP (Composer)"},
	{File: "build.gradle", Framework: "Java (Gradle)"},
}

// Resolver names the language for a path whose extension is missing from the table.
type Resolver func(path string) (string, bool)

// EnryResolver resolves languages through go-enry's extension index.
func EnryResolver(p string) (string, bool) {
	lang, _ := enry.GetLanguageByExtension(path.Base(p))
	if lang == "" {
		return "", false
	}
	return lang, true
}

// Extension returns the substring after the last '.' of the basename, dot included.
// It is empty when the basename has no dot.
func Extension(p string) string {
	base := path.Base(p)
	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return ""
	}
	return base[idx:]
}

// Language returns the language label for one path.
func Language(p string, fallback Resolver) string {
	if lang, ok := DefaultLanguages[Extension(p)]; ok {
		return lang
	}
	if fallback != nil {
		if lang, ok := fallback(p); ok {
			return lang
		}
	}
	return schema.UnknownLanguage
}

// Languages sums line counts per language over all files.
func Languages(files map[string]schema.FileMetric, fallback Resolver) schema.LanguageTally {
	tally := schema.LanguageTally{Lines: make(map[string]int)}
	for p, f := range files {
		lang := Language(p, fallback)
		tally.Lines[lang] += f.LineCount
		tally.Total += f.LineCount
	}
	return tally
}

// Frameworks scans tracked paths for marker files. By default a marker only matches
// when the whole tracked path equals the marker name, i.e. at the repository root.
// With nested set, the basename is compared so markers match at any depth; the
// first occurrence in path order wins.
func Frameworks(paths []string, nested bool) schema.FrameworkDetection {
	byFile := make(map[string]string, len(DefaultFrameworkMarkers))
	for _, m := range DefaultFrameworkMarkers {
		byFile[m.File] = m.Framework
	}

	detected := make(schema.FrameworkDetection)
	for _, p := range paths {
		key := p
		if nested {
			key = path.Base(p)
		}
		framework, ok := byFile[key]
		if !ok {
			continue
		}
		if _, seen := detected[framework]; seen && nested {
			continue
		}
		detected[framework] = p
	}
	return detected
}

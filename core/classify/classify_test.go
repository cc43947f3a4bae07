package classify

import (
	"testing"

	"github.com/qlinetech/qgit/schema"
	"github.com/stretchr/testify/assert"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", ".go"},
		{"src/lib/b.py", ".py"},
		{"archive.tar.gz", ".gz"},
		{"Makefile", ""},
		{"dir.d/Makefile", ""},
		{".gitignore", ".gitignore"},
		{"trailing.", "."},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.path))
		})
	}
}

func TestLanguages(t *testing.T) {
	files := map[string]schema.FileMetric{
		"a.py":       {LineCount: 10},
		"b/c.py":     {LineCount: 5},
		"main.go":    {LineCount: 7},
		"README.md":  {LineCount: 3},
		"Makefile":   {LineCount: 2},
		"web/app.ts": {LineCount: 4},
	}

	tally := Languages(files, nil)
	assert.Equal(t, 31, tally.Total)
	assert.Equal(t, 15, tally.Lines["Python"])
	assert.Equal(t, 7, tally.Lines["Go"])
	assert.Equal(t, 4, tally.Lines["TypeScript"])
	assert.Equal(t, 5, tally.Lines[schema.UnknownLanguage])

	sum := 0.0
	for _, share := range tally.Sorted() {
		sum += share.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.01)
}

func TestLanguagesEmpty(t *testing.T) {
	tally := Languages(map[string]schema.FileMetric{"empty.go": {LineCount: 0}}, nil)
	assert.Equal(t, 0, tally.Total)
	assert.Equal(t, 0.0, tally.Percentage("Go"))
}

func TestLanguagesFallback(t *testing.T) {
	files := map[string]schema.FileMetric{
		"README.md": {LineCount: 3},
		"a.go":      {LineCount: 1},
		"noext":     {LineCount: 2},
	}
	fallback := func(p string) (string, bool) {
		if p == "README.md" {
			return "Markdown", true
		}
		return "", false
	}

	tally := Languages(files, fallback)
	assert.Equal(t, 3, tally.Lines["Markdown"])
	assert.Equal(t, 1, tally.Lines["Go"], "table entries win over the fallback")
	assert.Equal(t, 2, tally.Lines[schema.UnknownLanguage])
}

func TestEnryResolver(t *testing.T) {
	lang, ok := EnryResolver("app/src/Main.kt")
	assert.True(t, ok)
	assert.Equal(t, "Kotlin", lang)

	_, ok = EnryResolver("no_extension_here")
	assert.False(t, ok)
}

func TestFrameworks(t *testing.T) {
	t.Run("no markers", func(t *testing.T) {
		assert.Empty(t, Frameworks([]string{"main.go", "src/a.py"}, false))
	})

	t.Run("root only", func(t *testing.T) {
		got := Frameworks([]string{"package.json", "src/package.json"}, false)
		assert.Equal(t, schema.FrameworkDetection{"Node.js": "package.json"}, got)
	})

	t.Run("nested marker ignored by default", func(t *testing.T) {
		assert.Empty(t, Frameworks([]string{"service/Cargo.toml"}, false))
	})

	t.Run("one entry per match", func(t *testing.T) {
		got := Frameworks([]string{"Gemfile", "Cargo.toml", "go.mod", "lib/x.rb"}, false)
		assert.Equal(t, schema.FrameworkDetection{
			"Ruby (Bundler)": "Gemfile",
			"Rust (Cargo)":   "Cargo.toml",
			"Go Modules":     "go.mod",
		}, got)
	})

	t.Run("nested opt in", func(t *testing.T) {
		got := Frameworks([]string{"api/requirements.txt", "web/package.json", "tools/package.json"}, true)
		assert.Equal(t, schema.FrameworkDetection{
			"Python (pip)": "api/requirements.txt",
			"Node.js":      "web/package.json",
		}, got)
	})
}

func TestMarkerTableIsOneToOne(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range DefaultFrameworkMarkers {
		assert.False(t, seen[m.Framework], "duplicate framework %s", m.Framework)
		seen[m.Framework] = true
	}
}

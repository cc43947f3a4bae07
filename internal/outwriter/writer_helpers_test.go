package outwriter

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/qlinetech/qgit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareFormatter(t *testing.T) {
	tests := []struct {
		precision int
		value     float64
		want      string
	}{
		{2, 99.1935, "99.19"},
		{0, 0.8064, "1"},
		{4, 0.8064516, "0.8065"},
		{2, 100, "100.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shareFormatter(tt.precision)(tt.value))
	}
}

func TestWriteJSONFolderRows(t *testing.T) {
	rows := []schema.FolderRow{
		{Path: "pkg", Depth: 0, IsDir: true, Lines: 12, Commits: 3},
		{Path: "pkg/util.go", Depth: 1, Lines: 12, Commits: 3},
	}
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, rows))

	assert.Contains(t, buf.String(), "\n  {\n    \"path\": \"pkg\"")

	var decoded []schema.FolderRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rows, decoded)
}

func TestWriteJSONError(t *testing.T) {
	err := writeJSON(io.Discard, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		rows   [][]string
		want   string
	}{
		{
			name:   "contributors",
			header: []string{"author", "commits"},
			rows:   [][]string{{"Alice", "2"}, {"Bob", "1"}},
			want:   "author,commits\nAlice,2\nBob,1\n",
		},
		{
			name:   "header only",
			header: []string{"framework", "marker"},
			want:   "framework,marker\n",
		},
		{
			name:   "quoted commit message",
			header: []string{"hash", "message"},
			rows:   [][]string{{"c1", "fix: parse a, b"}},
			want:   "hash,message\nc1,\"fix: parse a, b\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeCSVWithHeader(&buf, tt.header, tt.rows))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteCSVWithHeaderError(t *testing.T) {
	err := writeCSVWithHeader(failingWriter{}, []string{"col"}, [][]string{{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write CSV")
}

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestWriteWithFile(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "tree.csv")
		err := writeWithFile(out, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"path"}, [][]string{{"main.go"}})
		}, "Wrote CSV")
		require.NoError(t, err)

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "path\nmain.go\n", string(content))
	})

	t.Run("writer error propagates", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "tree.csv")
		err := writeWithFile(out, func(io.Writer) error { return assert.AnError }, "Wrote CSV")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("missing directory", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "missing", "tree.csv")
		err := writeWithFile(out, func(io.Writer) error { return nil }, "Wrote CSV")
		assert.Error(t, err)
	})
}

func TestWriteParquetFile(t *testing.T) {
	err := writeParquetFile("", []schema.FolderRow{{Path: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file")
}

func TestLimitRows(t *testing.T) {
	rows := []int{1, 2, 3}
	assert.Equal(t, rows, limitRows(rows, 0))
	assert.Equal(t, []int{1, 2}, limitRows(rows, 2))
	assert.Equal(t, rows, limitRows(rows, 10))
}

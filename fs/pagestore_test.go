package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFileStore_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")

	err := store.Save(context.Background(), &sitepdf.PageRecord{
		URL:   "https://example.com/docs/api",
		Title: "API Reference",
		Text:  "Welcome to the API.",
	})

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output.tmp", "docs", "api.txt"))
	require.NoError(t, err, "file should exist in temp directory")
	_, err = os.Stat(filepath.Join(base, "output", "docs", "api.txt"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestFileStore_CommitMovesFromTempToFinal(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "output"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "output", "stale.txt"), []byte("old"), 0644))
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &sitepdf.PageRecord{URL: "https://example.com/a", Title: "A"}))

	err := store.Commit()

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output", "a.txt"))
	require.NoError(t, err, "file should exist in final directory after commit")
	_, err = os.Stat(filepath.Join(base, "output", "stale.txt"))
	assert.True(t, os.IsNotExist(err), "previous snapshot should be replaced")
	_, err = os.Stat(filepath.Join(base, "output.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestFileStore_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &sitepdf.PageRecord{URL: "https://example.com/a", Title: "A"}))

	err := store.Abort()

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after abort")
	_, err = os.Stat(filepath.Join(base, "output"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist after abort")
}

func TestFileStore_IncludesFrontMatter(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	store.Now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	require.NoError(t, store.Save(context.Background(), &sitepdf.PageRecord{
		URL:   "https://example.com/intro",
		Title: "Intro: the basics",
		Text:  "Welcome\n\nRead on.",
	}))
	require.NoError(t, store.Commit())

	content, err := os.ReadFile(filepath.Join(base, "output", "intro.txt"))
	require.NoError(t, err)

	header, body, ok := strings.Cut(strings.TrimPrefix(string(content), "---\n"), "---\n\n")
	require.True(t, ok, "front matter should be closed")
	assert.True(t, strings.HasPrefix(string(content), "---\n"))
	assert.Equal(t, "Welcome\n\nRead on.", body)

	var meta map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(header), &meta))
	assert.Equal(t, map[string]string{
		"source":  "https://example.com/intro",
		"title":   "Intro: the basics",
		"crawled": "2026-10-19",
	}, meta)
}

func TestFileStore_KeepsPagesThatDifferOnlyByQuery(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "example.com")
	require.NoError(t, store.Save(context.Background(), &sitepdf.PageRecord{
		URL: "https://example.com/item?id=1", Title: "One", Text: "first page",
	}))
	require.NoError(t, store.Save(context.Background(), &sitepdf.PageRecord{
		URL: "https://example.com/item?id=2", Title: "Two", Text: "second page",
	}))
	require.NoError(t, store.Commit())

	files, err := filepath.Glob(filepath.Join(base, "example.com", "item*.txt"))
	require.NoError(t, err)
	require.Len(t, files, 2)

	first, err := os.ReadFile(filepath.Join(base, "example.com", "item_id=1.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(first), "first page")
	second, err := os.ReadFile(filepath.Join(base, "example.com", "item_id=2.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(second), "second page")
}

func TestFileStore_DoesNotOverwriteCollidingPaths(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &sitepdf.PageRecord{
		URL: "https://example.com/docs/", Title: "Docs", Text: "directory page",
	}))
	require.NoError(t, store.Save(context.Background(), &sitepdf.PageRecord{
		URL: "https://example.com/docs/index", Title: "Index", Text: "index page",
	}))
	require.NoError(t, store.Commit())

	first, err := os.ReadFile(filepath.Join(base, "output", "docs", "index.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(first), "directory page")
	second, err := os.ReadFile(filepath.Join(base, "output", "docs", "index-2.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(second), "index page")
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	store := fs.NewFileStore(t.TempDir(), "output")

	err := store.Save(context.Background(), &sitepdf.PageRecord{
		URL:   "https://example.com/../../../etc/passwd",
		Title: "Malicious",
	})

	require.Error(t, err)
	assert.Equal(t, sitepdf.EINVALID, sitepdf.ErrorCode(err))
	assert.Contains(t, err.Error(), "path traversal")
}

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com", "index.txt"},
		{"https://example.com/", "index.txt"},
		{"https://example.com/docs/", "docs/index.txt"},
		{"https://example.com/docs/api/users", "docs/api/users.txt"},
		{"https://example.com//double//slash", "double/slash.txt"},
		{"https://example.com/page?tab=2", "page_tab=2.txt"},
		{"https://example.com/?q=go", "index_q=go.txt"},
		{"https://example.com/docs/?v=1&lang=en", "docs/index_v=1_lang=en.txt"},
		{"https://example.com/search?q=a/b", "search_q=a_b.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

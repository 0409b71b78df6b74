package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/sitepdf"
	main "github.com/fwojciec/sitepdf/cmd/sitepdf"
	"github.com/fwojciec/sitepdf/crawl"
	"github.com/fwojciec/sitepdf/fpdf"
	"github.com/fwojciec/sitepdf/fs"
	"github.com/fwojciec/sitepdf/goquery"
	sitepdfhttp "github.com/fwojciec/sitepdf/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSiteServer serves a home page linking to two pages and a missing one.
func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()

	pages := map[string]string{
		"/":  `<html><head><title>Home</title></head><body><h1>Welcome</h1><p>Start here.</p><a href="/a">A</a><a href="/b">B</a><a href="/missing">gone</a></body></html>`,
		"/a": `<html><head><title>Page A</title></head><body><p>Alpha content.</p></body></html>`,
		"/b": `<html><head><title>Page B</title></head><body><p>Beta content.</p></body></html>`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves the crawl as a PDF and reports it", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t)
		out := t.TempDir()
		deps, stdout, stderr := newDeps(nil)
		deps.Exporter = &crawl.Exporter{
			Crawler: &crawl.Crawler{
				Fetcher: sitepdfhttp.NewFetcher(),
				Parser:  goquery.NewParser(),
			},
			NewPDF:     func() (sitepdf.PDF, error) { return fpdf.NewDocument(), nil },
			Downloader: fs.NewDownloader(out),
		}

		err := (&main.CrawlCmd{URL: srv.URL + "/", MaxPages: "20"}).Run(deps)

		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "Saved 3 pages to ")

		files, err := filepath.Glob(filepath.Join(out, "*.pdf"))
		require.NoError(t, err)
		require.Len(t, files, 1)
		data, err := os.ReadFile(files[0])
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run("non-numeric max pages falls back to the default", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t)
		deps, stdout, stderr := newDeps(nil)
		deps.Exporter = &crawl.Exporter{
			Crawler: &crawl.Crawler{
				Fetcher: sitepdfhttp.NewFetcher(),
				Parser:  goquery.NewParser(),
			},
			NewPDF:     func() (sitepdf.PDF, error) { return fpdf.NewDocument(), nil },
			Downloader: fs.NewDownloader(t.TempDir()),
		}

		err := (&main.CrawlCmd{URL: srv.URL + "/", MaxPages: "lots"}).Run(deps)

		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "Saved 3 pages")
	})

	t.Run("prints the error message on failure", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(nil)
		deps.Exporter = &crawl.Exporter{
			Crawler: &crawl.Crawler{
				Fetcher: sitepdfhttp.NewFetcher(),
				Parser:  goquery.NewParser(),
			},
		}

		err := (&main.CrawlCmd{URL: "ftp://example.com/", MaxPages: "20"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, sitepdf.EINVALID, sitepdf.ErrorCode(err))
		assert.True(t, strings.HasPrefix(stderr.String(), "error: "))
		assert.Empty(t, stdout.String())
	})

	t.Run("fails without a configured exporter", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(nil)

		err := (&main.CrawlCmd{URL: "https://example.com/"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestMain_Run_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("crawls, saves and records the export", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t)
		dir := t.TempDir()
		out := filepath.Join(dir, "out")
		textDir := filepath.Join(dir, "text")
		historyPath := filepath.Join(dir, "history.db")

		m := main.NewMain()
		m.HistoryPath = historyPath
		m.ConfigPath = ""

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{
			"crawl", srv.URL + "/",
			"--out", out,
			"--rate", "0",
			"--text-dir", textDir,
		}, stdout, stderr)
		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "Saved 3 pages to "+out)

		files, err := filepath.Glob(filepath.Join(out, "127.0.0.1-crawl-*.pdf"))
		require.NoError(t, err)
		assert.Len(t, files, 1)

		home, err := os.ReadFile(filepath.Join(textDir, "127.0.0.1", "index.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(home), "Welcome")
		assert.FileExists(t, filepath.Join(textDir, "127.0.0.1", "a.txt"))
		assert.FileExists(t, filepath.Join(textDir, "127.0.0.1", "b.txt"))

		history := main.NewMain()
		history.HistoryPath = historyPath
		history.ConfigPath = ""
		stdout.Reset()
		err = history.Run(context.Background(), []string{"history"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), srv.URL+"/")
	})

	t.Run("reports an empty crawl", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(srv.Close)
		dir := t.TempDir()

		m := main.NewMain()
		m.HistoryPath = filepath.Join(dir, "history.db")
		m.ConfigPath = ""

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{
			"crawl", srv.URL + "/", "--out", dir, "--rate", "0",
		}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, sitepdf.EEMPTY, sitepdf.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: no pages were successfully crawled")

		files, _ := filepath.Glob(filepath.Join(dir, "*.pdf"))
		assert.Empty(t, files)
	})

	t.Run("rejects a start URL outside the origin", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := main.NewMain()
		m.HistoryPath = filepath.Join(dir, "history.db")
		m.ConfigPath = ""

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{
			"crawl", "https://other.example/", "--origin", "https://example.com/", "--out", dir,
		}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, sitepdf.EINVALID, sitepdf.ErrorCode(err))
		assert.Contains(t, stderr.String(), "start URL must be on the current site")
	})

	t.Run("uses the start page markup from a file", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t)
		dir := t.TempDir()
		startFile := filepath.Join(dir, "start.html")
		require.NoError(t, os.WriteFile(startFile,
			[]byte(`<html><head><title>Saved</title></head><body><p>Logged in view.</p><a href="/a">A</a></body></html>`), 0o644))

		m := main.NewMain()
		m.HistoryPath = filepath.Join(dir, "history.db")
		m.ConfigPath = ""

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{
			"crawl", srv.URL + "/", "--start-html", startFile, "--out", dir, "--rate", "0",
		}, stdout, stderr)

		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "Saved 2 pages")
	})
}

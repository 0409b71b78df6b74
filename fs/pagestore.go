// Package fs provides file-system storage: the download service that saves
// finished PDFs and a plain-text snapshot of crawled pages.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/sitepdf"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements sitepdf.PageStore at compile time.
var _ sitepdf.PageStore = (*FileStore)(nil)

// FileStore implements sitepdf.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string

	// Now returns the crawl date written into each page. Defaults to time.Now.
	Now func() time.Time
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		Now:     time.Now,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes page as a text file under the temporary directory.
func (s *FileStore) Save(ctx context.Context, page *sitepdf.PageRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	fullPath, err = freePath(fullPath)
	if err != nil {
		return err
	}

	content, err := FormatPage(page, s.Now())
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, content, 0644)
}

// freePath returns p, or p with a numeric suffix when p is already taken by
// another page, such as /docs/ and /docs/index.
func freePath(p string) (string, error) {
	ext := filepath.Ext(p)
	stem := strings.TrimSuffix(p, ext)
	candidate := p
	for i := 2; ; i++ {
		_, err := os.Lstat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
}

// Commit replaces the output directory with the saved pages.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved pages.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// frontMatter is the YAML header of a saved page.
type frontMatter struct {
	Source  string `yaml:"source"`
	Title   string `yaml:"title"`
	Crawled string `yaml:"crawled"`
}

// FormatPage formats a page as its text preceded by YAML front matter.
func FormatPage(page *sitepdf.PageRecord, crawled time.Time) ([]byte, error) {
	header, err := yaml.Marshal(frontMatter{
		Source:  page.URL,
		Title:   page.Title,
		Crawled: crawled.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(page.Text)
	return b.Bytes(), nil
}

// URLToPath converts a page URL to a relative, slash-separated file path.
// Example: https://example.com/docs/api/users → docs/api/users.txt
// A query string becomes part of the file name, so /item?id=1 maps to
// item_id=1.txt.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sitepdf.Errorf(sitepdf.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}

	query := ""
	if u.RawQuery != "" {
		query = "_" + sanitizeQuery(u.RawQuery)
	}

	p := u.Path
	if p == "" || p == "/" {
		return "index" + query + ".txt", nil
	}

	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", sitepdf.Errorf(sitepdf.EINVALID, "path traversal in page URL %q", rawURL)
		}
	}

	trailing := strings.HasSuffix(p, "/")
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "index" + query + ".txt", nil
	}
	if trailing {
		return p + "/index" + query + ".txt", nil
	}
	return p + query + ".txt", nil
}

// sanitizeQuery keeps letters, digits and "._=-" of a raw query and replaces
// every other byte with '_'.
func sanitizeQuery(q string) string {
	b := []byte(q)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '=' || c == '-':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

package crawl_test

import (
	"testing"

	"github.com/fwojciec/sitepdf/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{"shorter than max", "https://x.com", 50, "https://x.com"},
		{"exactly max", "https://x.com", 13, "https://x.com"},
		{"keeps the tail", "https://example.com/very/long/path/to/guide", 16, "...path/to/guide"},
		{"zero", "https://example.com", 0, ""},
		{"negative", "https://example.com", -1, ""},
		{"too short for ellipsis", "https://example.com", 3, "htt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := crawl.TruncateURL(tt.url, tt.maxLen)
			assert.Equal(t, tt.want, got)
			if tt.maxLen > 0 {
				assert.LessOrEqual(t, len(got), tt.maxLen)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", crawl.FormatBytes(512))
	assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	a := crawl.ContentHash([]byte("%PDF-1.3 a"))
	b := crawl.ContentHash([]byte("%PDF-1.3 b"))

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, crawl.ContentHash([]byte("%PDF-1.3 a")))
}

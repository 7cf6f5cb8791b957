package html

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractSkipsScriptsAndCollapsesWhitespace(t *testing.T) {
	page := `<!doctype html>
<html><head><title>Quarterly report</title><style>p { color: red }</style></head>
<body>
  <h1>Revenue</h1>
  <p>Up   12%
     this quarter.</p>
  <script>var secret = "ignore me";</script>
</body></html>`
	path := filepath.Join(t.TempDir(), "report.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	text, err := NewExtractor().Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "Quarterly report Revenue Up 12% this quarter." {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := NewExtractor().Extract(context.Background(), filepath.Join(t.TempDir(), "none.html")); err == nil {
		t.Fatalf("expected error")
	}
}

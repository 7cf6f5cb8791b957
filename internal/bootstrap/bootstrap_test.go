package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kirillkom/documinds/internal/config"
)

func TestNewWiresWorkflowAgainstClassifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predicted_category":"Private"}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "lease.txt")
	if err := os.WriteFile(path, []byte("rent contract"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	app := New(config.Config{ClassifierURL: server.URL}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer app.Close()

	if _, err := app.Workflow.LoadDocument(context.Background(), path); err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	category, err := app.Workflow.Classify(context.Background())
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if category != "Private" {
		t.Fatalf("expected Private, got %q", category)
	}
}

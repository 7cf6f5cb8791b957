package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kirillkom/documinds/internal/infrastructure/extractor/docx"
	"github.com/kirillkom/documinds/internal/infrastructure/extractor/html"
	"github.com/kirillkom/documinds/internal/infrastructure/extractor/pdf"
	"github.com/kirillkom/documinds/internal/infrastructure/extractor/plaintext"
	"github.com/kirillkom/documinds/internal/infrastructure/extractor/xlsx"
)

type formatExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Router dispatches to a format extractor by file extension.
type Router struct {
	byExt map[string]formatExtractor
}

func NewRouter() *Router {
	return &Router{byExt: map[string]formatExtractor{
		".txt":  plaintext.NewExtractor(),
		".pdf":  pdf.NewExtractor(),
		".docx": docx.NewExtractor(),
		".xlsx": xlsx.NewExtractor(),
		".html": html.NewExtractor(),
		".htm":  html.NewExtractor(),
	}}
}

func (r *Router) Supports(path string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

func (r *Router) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return "", fmt.Errorf("unsupported document type %q", ext)
	}
	return e.Extract(ctx, path)
}

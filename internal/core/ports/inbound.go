package ports

import (
	"context"

	"github.com/kirillkom/documinds/internal/core/domain"
)

// ClassificationWorkflow is the inbound contract driven by the presentation layer.
type ClassificationWorkflow interface {
	LoadDocument(ctx context.Context, path string) (string, error)
	SetText(text string)
	Classify(ctx context.Context) (string, error)
	SubmitFeedback(ctx context.Context, correctedCategory string) error
	Session() domain.Session
}

// DocumentSorter is the inbound contract for batch folder sorting.
type DocumentSorter interface {
	Sort(ctx context.Context, opts domain.SortOptions) (*domain.SortReport, error)
}

package ports

import (
	"context"

	"github.com/kirillkom/documinds/internal/core/domain"
)

// ClassificationService is the remote classifier reachable over HTTP.
type ClassificationService interface {
	Classify(ctx context.Context, req domain.ClassifyRequest) (string, error)
	SubmitFeedback(ctx context.Context, req domain.FeedbackRequest) error
}

// DocumentStore gives access to user-chosen files.
type DocumentStore interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	List(ctx context.Context, dir string) ([]string, error)
	Move(ctx context.Context, src, dstDir string) (string, error)
}

// TextExtractor extracts plain text from a document on disk.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
	Supports(path string) bool
}

// SortObserver receives per-file sorter outcomes.
type SortObserver interface {
	ObserveSort(outcome domain.SortOutcome)
}

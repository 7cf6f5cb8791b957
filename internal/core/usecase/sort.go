package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kirillkom/documinds/internal/core/domain"
	"github.com/kirillkom/documinds/internal/core/ports"
)

// Limiter paces remote calls; *rate.Limiter satisfies it.
type Limiter interface {
	Wait(ctx context.Context) error
}

type SortUseCase struct {
	store      ports.DocumentStore
	extractor  ports.TextExtractor
	classifier ports.ClassificationService
	limiter    Limiter
	observer   ports.SortObserver
	fallback   string
}

func NewSortUseCase(
	store ports.DocumentStore,
	extractor ports.TextExtractor,
	classifier ports.ClassificationService,
	limiter Limiter,
	observer ports.SortObserver,
	fallbackCategory string,
) *SortUseCase {
	if strings.TrimSpace(fallbackCategory) == "" {
		fallbackCategory = "Unsorted"
	}
	return &SortUseCase{
		store:      store,
		extractor:  extractor,
		classifier: classifier,
		limiter:    limiter,
		observer:   observer,
		fallback:   fallbackCategory,
	}
}

func (uc *SortUseCase) Sort(ctx context.Context, opts domain.SortOptions) (*domain.SortReport, error) {
	if strings.TrimSpace(opts.SourceDir) == "" || strings.TrimSpace(opts.TargetDir) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "sort documents", errors.New("source and target folders are required"))
	}

	files, err := uc.store.List(ctx, opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("list source folder: %w", err)
	}

	report := &domain.SortReport{
		RunID:     uuid.NewString(),
		SourceDir: opts.SourceDir,
		TargetDir: opts.TargetDir,
		DryRun:    opts.DryRun,
		Entries:   []domain.SortEntry{},
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !uc.extractor.Supports(path) {
			continue
		}

		entry := uc.sortOne(ctx, path, opts)
		report.Entries = append(report.Entries, entry)
		if uc.observer != nil {
			uc.observer.ObserveSort(entry.Outcome)
		}
	}
	return report, nil
}

func (uc *SortUseCase) sortOne(ctx context.Context, path string, opts domain.SortOptions) domain.SortEntry {
	entry := domain.SortEntry{Filename: filepath.Base(path)}

	category, err := uc.categorize(ctx, path)
	if err != nil {
		entry.Outcome = domain.SortFailed
		entry.Error = err.Error()
		return entry
	}
	entry.Category = category

	dstDir := filepath.Join(opts.TargetDir, categoryDir(category, uc.fallback))
	if opts.DryRun {
		entry.Destination = filepath.Join(dstDir, entry.Filename)
		entry.Outcome = domain.SortPlanned
		return entry
	}

	dst, err := uc.store.Move(ctx, path, dstDir)
	if err != nil {
		entry.Outcome = domain.SortFailed
		entry.Error = fmt.Sprintf("move file: %v", err)
		return entry
	}
	entry.Destination = dst
	entry.Outcome = domain.SortMoved
	return entry
}

func (uc *SortUseCase) categorize(ctx context.Context, path string) (string, error) {
	text, err := uc.extractor.Extract(ctx, path)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return uc.fallback, nil
	}

	if uc.limiter != nil {
		if err := uc.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("wait for rate limiter: %w", err)
		}
	}
	category, err := uc.classifier.Classify(ctx, domain.ClassifyRequest{
		Filename: filepath.Base(path),
		Text:     text,
	})
	if err != nil {
		return "", fmt.Errorf("classify document: %w", err)
	}
	return category, nil
}

// categoryDir turns a remote category label into a single safe path segment.
// Labels with nothing usable left go to fallback.
func categoryDir(category, fallback string) string {
	name := strings.TrimSpace(category)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return fallback
	}
	return name
}

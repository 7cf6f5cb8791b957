package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/kirillkom/documinds/internal/core/domain"
	"github.com/kirillkom/documinds/internal/core/ports"
)

// SessionUseCase owns the single interactive session. Every operation holds
// the lock for its full duration.
type SessionUseCase struct {
	store        ports.DocumentStore
	classifier   ports.ClassificationService
	excerptChars int

	mu      sync.Mutex
	session domain.Session
}

func NewSessionUseCase(
	store ports.DocumentStore,
	classifier ports.ClassificationService,
	excerptChars int,
) *SessionUseCase {
	if excerptChars <= 0 {
		excerptChars = domain.DefaultExcerptChars
	}
	return &SessionUseCase{
		store:        store,
		classifier:   classifier,
		excerptChars: excerptChars,
		session:      domain.NewSession(),
	}
}

func (uc *SessionUseCase) Session() domain.Session {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session
}

func (uc *SessionUseCase) LoadDocument(ctx context.Context, path string) (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if strings.TrimSpace(path) == "" {
		return "", domain.WrapError(domain.ErrFile, "load document", errors.New("no file selected"))
	}
	raw, err := uc.store.ReadFile(ctx, path)
	if err != nil {
		return "", domain.WrapError(domain.ErrFile, "load document", err)
	}
	if !utf8.Valid(raw) {
		return "", domain.WrapError(domain.ErrFile, "load document", fmt.Errorf("%s: input is not valid UTF-8 text", filepath.Base(path)))
	}

	text := string(raw)
	uc.session = domain.Session{
		SelectedFile: path,
		DocumentText: text,
		State:        domain.StateFileLoaded,
	}
	return text, nil
}

func (uc *SessionUseCase) SetText(text string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.session.DocumentText = text
}

func (uc *SessionUseCase) Classify(ctx context.Context) (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.session.CanClassify() {
		return "", domain.InvalidState("classify", domain.MsgNoDocument)
	}

	category, err := uc.classifier.Classify(ctx, domain.ClassifyRequest{
		Filename: uc.session.Filename(),
		Text:     uc.session.DocumentText,
	})
	if err != nil {
		return "", fmt.Errorf("classify document: %w", err)
	}

	uc.session.LastPrediction = category
	uc.session.State = domain.StateClassified
	return category, nil
}

func (uc *SessionUseCase) SubmitFeedback(ctx context.Context, correctedCategory string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.session.CanSubmitFeedback() {
		return domain.InvalidState("feedback", domain.MsgNoPrediction)
	}

	correct := correctedCategory
	if correct == "" {
		correct = uc.session.LastPrediction
	}

	err := uc.classifier.SubmitFeedback(ctx, domain.FeedbackRequest{
		Filename:          uc.session.Filename(),
		PredictedCategory: uc.session.LastPrediction,
		CorrectCategory:   correct,
		TextExcerpt:       domain.Excerpt(uc.session.DocumentText, uc.excerptChars),
	})
	if err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}

	uc.session.State = domain.StateFeedbackSubmitted
	return nil
}

package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/kirillkom/documinds/internal/core/domain"
)

type storeFake struct {
	files   map[string][]byte
	listErr error
	moveErr error
	moved   map[string]string
}

func newStoreFake(files map[string][]byte) *storeFake {
	return &storeFake{files: files, moved: map[string]string{}}
}

func (f *storeFake) ReadFile(_ context.Context, path string) ([]byte, error) {
	raw, ok := f.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return raw, nil
}

func (f *storeFake) List(_ context.Context, dir string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []string
	for path := range f.files {
		if filepath.Dir(path) == dir {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *storeFake) Move(_ context.Context, src, dstDir string) (string, error) {
	if f.moveErr != nil {
		return "", f.moveErr
	}
	dst := filepath.Join(dstDir, filepath.Base(src))
	f.moved[src] = dst
	return dst, nil
}

type classifierFake struct {
	category    string
	classifyErr error
	feedbackErr error

	classifyCalls int
	feedbackCalls int
	lastClassify  domain.ClassifyRequest
	lastFeedback  domain.FeedbackRequest
}

func (f *classifierFake) Classify(_ context.Context, req domain.ClassifyRequest) (string, error) {
	f.classifyCalls++
	f.lastClassify = req
	if f.classifyErr != nil {
		return "", f.classifyErr
	}
	return f.category, nil
}

func (f *classifierFake) SubmitFeedback(_ context.Context, req domain.FeedbackRequest) error {
	f.feedbackCalls++
	f.lastFeedback = req
	return f.feedbackErr
}

func networkErr() error {
	return domain.WrapError(domain.ErrNetwork, "classify", errors.New("dial tcp 127.0.0.1:5000: connection refused"))
}

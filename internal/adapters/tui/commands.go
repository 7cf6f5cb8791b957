package tui

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kirillkom/documinds/internal/core/ports"
)

type loadedMsg struct {
	file string
	text string
	err  error
}

type classifiedMsg struct {
	category string
	err      error
}

type feedbackMsg struct {
	err error
}

func loadCmd(ctx context.Context, wf ports.ClassificationWorkflow, path string) tea.Cmd {
	return func() tea.Msg {
		text, err := wf.LoadDocument(ctx, path)
		return loadedMsg{file: filepath.Base(path), text: text, err: err}
	}
}

func classifyCmd(ctx context.Context, wf ports.ClassificationWorkflow) tea.Cmd {
	return func() tea.Msg {
		category, err := wf.Classify(ctx)
		return classifiedMsg{category: category, err: err}
	}
}

func feedbackCmd(ctx context.Context, wf ports.ClassificationWorkflow, corrected string) tea.Cmd {
	return func() tea.Msg {
		return feedbackMsg{err: wf.SubmitFeedback(ctx, corrected)}
	}
}

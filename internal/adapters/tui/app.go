package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kirillkom/documinds/internal/adapters/presenter"
	"github.com/kirillkom/documinds/internal/core/domain"
	"github.com/kirillkom/documinds/internal/core/ports"
)

type mode int

const (
	modeEdit mode = iota
	modeOpen
	modeFeedback
)

// Model is the interactive document classification screen. Remote calls run
// as commands; while one is pending every key except quit is ignored.
type Model struct {
	ctx      context.Context
	workflow ports.ClassificationWorkflow

	mode          mode
	editor        textarea.Model
	pathInput     textinput.Model
	feedbackInput textinput.Model

	file     string
	status   string
	failed   bool
	busy     bool
	width    int
	height   int
	quitting bool
}

func NewModel(ctx context.Context, workflow ports.ClassificationWorkflow, initialPath string) Model {
	ed := textarea.New()
	ed.Placeholder = "Open a document with ctrl+o"
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.MaxWidth = 0
	ed.Focus()

	pi := textinput.New()
	pi.Placeholder = "path/to/document.txt"
	pi.CharLimit = 1024
	pi.SetValue(initialPath)

	fi := textinput.New()
	fi.CharLimit = 200

	m := Model{
		ctx:           ctx,
		workflow:      workflow,
		editor:        ed,
		pathInput:     pi,
		feedbackInput: fi,
		status:        presenter.Prediction(""),
		width:         100,
		height:        30,
	}
	m.resize()
	return m
}

func (m Model) Init() tea.Cmd {
	if strings.TrimSpace(m.pathInput.Value()) != "" {
		return loadCmd(m.ctx, m.workflow, m.pathInput.Value())
	}
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(presenter.LoadError(msg.err), true)
			return m, nil
		}
		m.file = msg.file
		m.editor.SetValue(msg.text)
		m.setStatus(presenter.Prediction(""), false)
		return m, nil

	case classifiedMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(presenter.ClassifyError(msg.err), true)
			return m, nil
		}
		m.setStatus(presenter.Prediction(msg.category), false)
		return m, nil

	case feedbackMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(presenter.FeedbackError(msg.err), true)
			return m, nil
		}
		m.setStatus(presenter.FeedbackSent, false)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.mode {
		case modeOpen:
			return m.updateOpen(msg)
		case modeFeedback:
			return m.updateFeedback(msg)
		default:
			return m.updateEdit(msg)
		}
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+o":
		m.editor.Blur()
		m.pathInput.Focus()
		m.pathInput.CursorEnd()
		m.mode = modeOpen
		return m, textinput.Blink

	case "ctrl+r":
		m.workflow.SetText(m.editor.Value())
		m.busy = true
		m.setStatus("Classifying...", false)
		return m, classifyCmd(m.ctx, m.workflow)

	case "ctrl+f":
		m.workflow.SetText(m.editor.Value())
		session := m.workflow.Session()
		if !session.CanSubmitFeedback() {
			m.setStatus(domain.MsgNoPrediction, true)
			return m, nil
		}
		m.editor.Blur()
		m.feedbackInput.SetValue(session.LastPrediction)
		m.feedbackInput.Focus()
		m.feedbackInput.CursorEnd()
		m.mode = modeFeedback
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) updateOpen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leavePrompt()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		m.leavePrompt()
		if path == "" {
			return m, nil
		}
		m.busy = true
		m.setStatus("Loading...", false)
		return m, loadCmd(m.ctx, m.workflow, path)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) updateFeedback(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leavePrompt()
		return m, nil
	case "enter":
		corrected := m.feedbackInput.Value()
		m.leavePrompt()
		m.busy = true
		m.setStatus("Sending feedback...", false)
		return m, feedbackCmd(m.ctx, m.workflow, corrected)
	}

	var cmd tea.Cmd
	m.feedbackInput, cmd = m.feedbackInput.Update(msg)
	return m, cmd
}

func (m *Model) leavePrompt() {
	m.pathInput.Blur()
	m.feedbackInput.Blur()
	m.editor.Focus()
	m.mode = modeEdit
}

func (m *Model) setStatus(text string, failed bool) {
	m.status = text
	m.failed = failed
}

func (m *Model) resize() {
	m.editor.SetWidth(max(20, m.width-2))
	m.editor.SetHeight(max(3, m.height-8))
	m.pathInput.Width = max(20, m.width-12)
	m.feedbackInput.Width = max(20, m.width-24)
}

func (m Model) Status() string {
	return m.status
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	file := m.file
	if file == "" {
		file = "no document"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("DocuMinds"),
		fileStyle.Render(file),
	)

	var prompt string
	switch m.mode {
	case modeOpen:
		prompt = promptBoxStyle.Render("Open: " + m.pathInput.View())
	case modeFeedback:
		prompt = promptBoxStyle.Render("Correct category: " + m.feedbackInput.View())
	}

	status := statusStyle.Render(m.status)
	if m.failed {
		status = errorStyle.Render(m.status)
	}

	help := helpStyle.Render("ctrl+o: open  ctrl+r: classify  ctrl+f: feedback  esc: cancel  ctrl+c: quit")

	parts := []string{header, m.editor.View()}
	if prompt != "" {
		parts = append(parts, prompt)
	}
	parts = append(parts, status, help)
	return fmt.Sprintln(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

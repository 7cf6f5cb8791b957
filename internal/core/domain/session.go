package domain

import "path/filepath"

type SessionState string

const (
	StateIdle              SessionState = "idle"
	StateFileLoaded        SessionState = "file_loaded"
	StateClassified        SessionState = "classified"
	StateFeedbackSubmitted SessionState = "feedback_submitted"
)

// Session is the client's in-memory state for the current run.
type Session struct {
	SelectedFile   string
	DocumentText   string
	LastPrediction string
	State          SessionState
}

func NewSession() Session {
	return Session{State: StateIdle}
}

func (s Session) Filename() string {
	if s.SelectedFile == "" {
		return ""
	}
	return filepath.Base(s.SelectedFile)
}

func (s Session) CanClassify() bool {
	return s.SelectedFile != "" && s.DocumentText != ""
}

func (s Session) CanSubmitFeedback() bool {
	return s.LastPrediction != ""
}

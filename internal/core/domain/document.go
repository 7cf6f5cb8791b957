package domain

import "unicode/utf8"

// DefaultExcerptChars is the feedback excerpt length used by the reference service.
const DefaultExcerptChars = 150

type ClassifyRequest struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

type ClassifyResponse struct {
	Filename          string `json:"filename,omitempty"`
	PredictedCategory string `json:"predicted_category"`
}

type FeedbackRequest struct {
	Filename          string `json:"filename"`
	PredictedCategory string `json:"predicted_category"`
	CorrectCategory   string `json:"correct_category"`
	TextExcerpt       string `json:"text_excerpt"`
}

// Excerpt returns the first limit characters (runes) of text.
func Excerpt(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}

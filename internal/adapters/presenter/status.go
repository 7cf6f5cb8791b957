// Package presenter turns workflow results into the status line shown to the user.
package presenter

import (
	"github.com/kirillkom/documinds/internal/core/domain"
)

const FeedbackSent = "Feedback sent!"

func Prediction(category string) string {
	return "Prediction: " + category
}

func LoadError(err error) string {
	return "Failed to read file: " + domain.Cause(err)
}

func ClassifyError(err error) string {
	if domain.IsKind(err, domain.ErrInvalidState) {
		return domain.Cause(err)
	}
	return "Error: " + domain.Cause(err)
}

func FeedbackError(err error) string {
	if domain.IsKind(err, domain.ErrInvalidState) {
		return domain.Cause(err)
	}
	return "Feedback error: " + domain.Cause(err)
}

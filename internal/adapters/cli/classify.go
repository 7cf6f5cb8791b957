package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kirillkom/documinds/internal/adapters/presenter"
	"github.com/kirillkom/documinds/internal/core/ports"
)

func (rt *runtime) newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>",
		Short: "Classify a document and print the prediction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := rt.app(cmd.ErrOrStderr())
			defer app.Close()

			category, err := loadAndClassify(cmd.Context(), app.Workflow, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), presenter.Prediction(category))
			return nil
		},
	}
}

func (rt *runtime) newFeedbackCommand() *cobra.Command {
	var correct string
	cmd := &cobra.Command{
		Use:   "feedback <file>",
		Short: "Classify a document and send the correct category back",
		Long: `Classify a document, then report the correct category to the service.
Without --correct the prediction itself is confirmed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := rt.app(cmd.ErrOrStderr())
			defer app.Close()

			out := cmd.OutOrStdout()
			category, err := loadAndClassify(cmd.Context(), app.Workflow, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, presenter.Prediction(category))

			if err := app.Workflow.SubmitFeedback(cmd.Context(), correct); err != nil {
				return &statusError{status: presenter.FeedbackError(err), err: err}
			}
			fmt.Fprintln(out, presenter.FeedbackSent)
			return nil
		},
	}
	cmd.Flags().StringVar(&correct, "correct", "", "Correct category (defaults to the prediction)")
	return cmd
}

func loadAndClassify(ctx context.Context, wf ports.ClassificationWorkflow, path string) (string, error) {
	if _, err := wf.LoadDocument(ctx, path); err != nil {
		return "", &statusError{status: presenter.LoadError(err), err: err}
	}
	category, err := wf.Classify(ctx)
	if err != nil {
		return "", &statusError{status: presenter.ClassifyError(err), err: err}
	}
	return category, nil
}

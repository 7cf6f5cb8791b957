package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kirillkom/documinds/internal/core/domain"
)

func (rt *runtime) newSortCommand() *cobra.Command {
	var (
		source     string
		target     string
		dryRun     bool
		reportPath string
	)
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Classify every document in a folder and move it into category folders",
		Long: `Classify every .txt, .pdf, .docx, .xlsx and .html file directly inside the source
folder and move it to <target>/<category>/. Files that fail stay in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := rt.app(cmd.ErrOrStderr())
			defer app.Close()

			report, err := app.Sorter.Sort(cmd.Context(), domain.SortOptions{
				SourceDir: source,
				TargetDir: target,
				DryRun:    dryRun,
			})
			if report != nil {
				for _, entry := range report.Entries {
					app.Logger.Info("sort_document",
						"run_id", report.RunID,
						"filename", entry.Filename,
						"category", entry.Category,
						"outcome", string(entry.Outcome),
						"error", entry.Error,
					)
				}
				printSortSummary(cmd.OutOrStdout(), report)
				if reportPath != "" {
					if werr := writeReport(reportPath, report); werr != nil {
						return werr
					}
				}
			}
			if err != nil {
				return fmt.Errorf("sort documents: %w", err)
			}
			if failed := report.Count(domain.SortFailed); failed > 0 {
				return fmt.Errorf("%d document(s) could not be sorted", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", rt.cfg.SortSourceDir, "Folder with documents to sort")
	cmd.Flags().StringVar(&target, "target", rt.cfg.SortTargetDir, "Folder that receives category folders")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Classify only, do not move files")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a report (.yaml, .yml or .json)")
	return cmd
}

func printSortSummary(w io.Writer, report *domain.SortReport) {
	for _, entry := range report.Entries {
		switch entry.Outcome {
		case domain.SortFailed:
			fmt.Fprintf(w, "Failed: %s: %s\n", entry.Filename, entry.Error)
		case domain.SortPlanned:
			fmt.Fprintf(w, "Would move %s to %s\n", entry.Filename, entry.Category)
		default:
			fmt.Fprintf(w, "Moved %s to %s\n", entry.Filename, entry.Category)
		}
	}
	fmt.Fprintf(w, "%d moved, %d planned, %d failed\n",
		report.Count(domain.SortMoved), report.Count(domain.SortPlanned), report.Count(domain.SortFailed))
}

func writeReport(path string, report *domain.SortReport) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(report)
	case ".json":
		data, err = json.MarshalIndent(report, "", "  ")
	default:
		return fmt.Errorf("unsupported report format %q (use .yaml, .yml or .json)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kirillkom/documinds/internal/adapters/tui"
	"github.com/kirillkom/documinds/internal/observability/logging"
)

func (rt *runtime) newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [file]",
		Short: "Open the interactive classification screen",
		Args:  cobra.MaximumNArgs(1),
		RunE:  rt.runTUI,
	}
}

func (rt *runtime) runTUI(cmd *cobra.Command, args []string) error {
	// Logs would tear the alternate screen, so they go to LOG_FILE or nowhere.
	logOut, err := logging.OpenLogFile(rt.cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logOut.Close()

	app := rt.app(logOut)
	defer app.Close()

	var initialPath string
	if len(args) > 0 {
		initialPath = args[0]
	}
	model := tui.NewModel(cmd.Context(), app.Workflow, initialPath)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run interactive screen: %w", err)
	}
	return nil
}

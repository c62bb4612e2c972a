package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msto63/chainlib/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Starts the terminal UI",
	Long: `Starts the terminal UI with live completions below the input.

Navigation:
  Tab       - apply the selected completion
  Up/Down   - select a completion
  Enter     - execute
  Ctrl+L    - clear the transcript
  Ctrl+C    - quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// log lines would tear the alternate screen
	var logOutput io.Writer = io.Discard
	if verbose {
		logOutput = cmd.ErrOrStderr()
	}
	h, err := newHost(true, logOutput)
	if err != nil {
		return err
	}
	defer h.close()

	p := tea.NewProgram(
		tui.NewModel(h.engine, h.session, "chainsh"),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

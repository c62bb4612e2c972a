package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/chainlib/internal/shell"
	"github.com/msto63/chainlib/pkg/core/version"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Starts the interactive line shell",
	Long: `Starts a line shell with tab completion and history.

Keys:
  Tab       - complete the current word
  ?         - list completions at the cursor
  Ctrl+D    - exit`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	h, err := newHost(true, nil)
	if err != nil {
		return err
	}
	defer h.close()

	sh := shell.New(h.engine, h.session, shell.Config{
		Prompt:       h.cfg.Shell.Prompt,
		HistoryFile:  h.cfg.Shell.HistoryFile,
		HistoryLimit: h.cfg.Shell.HistoryLimit,
		Quiet:        func() bool { return h.session.Mode() == "quiet" },
		Banner:       version.String("chainsh") + "\ntype 'help' for commands, 'exit' to quit",
	}, h.logger)
	return sh.Run()
}

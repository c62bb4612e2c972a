package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/chainlib/internal/shell"
)

var keepGoing bool

var execCmd = &cobra.Command{
	Use:   "exec <command> [args...]",
	Short: "Executes a single command",
	Long: `Executes one command of the demo grammar. The arguments are joined
with single spaces, quote them to keep spacing intact:

  chainsh exec sum 1 2 3
  chainsh exec 'set greeting "hello world"'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Executes the commands of a script file",
	Long: `Executes a file line by line. Empty lines and lines starting
with # are skipped. Execution stops at the first failing line unless
--keep-going is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "continue after failing lines")
	rootCmd.AddCommand(execCmd, runCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	h, err := newHost(false, nil)
	if err != nil {
		return err
	}
	defer h.close()

	result, err := h.engine.Execute(h.session, strings.Join(args, " "))
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), shell.FormatError(err))
		return errReported
	}
	if out := shell.FormatResult(result); out != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := newHost(false, nil)
	if err != nil {
		return err
	}
	defer h.close()

	sh := shell.New(h.engine, h.session, shell.Config{
		Quiet: func() bool { return h.session.Mode() == "quiet" },
	}, h.logger)

	failed := 0
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if h.session.Mode() == "verbose" {
			fmt.Fprintf(cmd.OutOrStdout(), "%d> %s\n", lineNo, line)
		}
		if err := sh.Eval(cmd.OutOrStdout(), line); err != nil {
			failed++
			if !keepGoing {
				return fmt.Errorf("%s:%d: %w", args[0], lineNo, errReported)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d failing lines: %w", failed, errReported)
	}
	return nil
}

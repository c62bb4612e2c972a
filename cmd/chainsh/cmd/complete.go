package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/chainlib/internal/shell"
)

var completeJSON bool

var completeCmd = &cobra.Command{
	Use:   "complete [text]",
	Short: "Lists completions for partial input",
	Long: `Lists the completions for the given text, one per line with the
byte offset the completion replaces from. Trailing spaces are
significant:

  chainsh complete 'get '`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().BoolVar(&completeJSON, "json", false, "print completions as JSON")
	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	h, err := newHost(false, nil)
	if err != nil {
		return err
	}
	defer h.close()

	text := ""
	if len(args) == 1 {
		text = args[0]
	}
	completions := h.engine.Complete(h.session, text)

	if completeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(completions)
	}
	if len(completions) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), shell.FormatCompletions(completions))
	}
	return nil
}

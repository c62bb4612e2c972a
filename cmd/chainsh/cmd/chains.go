package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showRedirects bool

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "Lists all compiled command chains",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHost(false, nil)
		if err != nil {
			return err
		}
		defer h.close()

		for _, c := range h.engine.Chains() {
			fmt.Fprintln(cmd.OutOrStdout(), c.Format(!showRedirects))
		}
		return nil
	},
}

func init() {
	chainsCmd.Flags().BoolVar(&showRedirects, "redirects", true, "show redirect markers")
	rootCmd.AddCommand(chainsCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/wikicorpus/core"
)

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List the supported wiki locales",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(core.Locales, " "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(localesCmd)
}

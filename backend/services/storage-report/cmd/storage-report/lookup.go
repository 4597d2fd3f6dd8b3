package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mspbackup/backend/services/storage-report/internal/lookup"
)

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <table> <code>",
		Short: "Translates an API status code into its label",
		Long:  "Translates an API status code into its label.\n\nTables: " + strings.Join(lookup.Tables(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := lookup.Lookup(args[0], args[1])
			if err != nil {
				cmd.PrintErrln(err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}

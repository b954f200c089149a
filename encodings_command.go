package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greatbody/charset-convertor/internal/transcoder"
)

func newEncodingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encodings",
		Short: "List built-in encoding names",
		Long: "List built-in encoding names. Any IANA or WHATWG charset label " +
			"(for example ISO-8859-2, Shift_JIS or windows-1250) is accepted as well.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range transcoder.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "charset-convertor",
		Short:         "Convert text files between EBCDIC and host encodings",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&ctx.logFormat, "log-format", "", "Log format (console, json)")

	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newDirectionCommand(ctx, "to-ascii", "Convert an EBCDIC tree to the host encoding", "cp1047", "utf-8"))
	rootCmd.AddCommand(newDirectionCommand(ctx, "to-ebcdic", "Convert a host encoded tree to EBCDIC", "utf-8", "cp1047"))
	rootCmd.AddCommand(newFileCommand(ctx))
	rootCmd.AddCommand(newEncodingsCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

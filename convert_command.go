package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greatbody/charset-convertor/internal/batch"
	"github.com/greatbody/charset-convertor/internal/config"
	"github.com/greatbody/charset-convertor/internal/converter"
	"github.com/greatbody/charset-convertor/internal/logging"
	"github.com/greatbody/charset-convertor/internal/tree"
)

type convertFlags struct {
	from          string
	to            string
	fold          int
	workers       int
	includeHidden bool
	extensions    []string
	stopOnError   bool
	noLock        bool
	summary       bool
}

func (f *convertFlags) register(cmd *cobra.Command, withEncodings bool) {
	flags := cmd.Flags()
	if withEncodings {
		flags.StringVarP(&f.from, "from", "f", "", "Source encoding (default from config, cp1047)")
		flags.StringVarP(&f.to, "to", "t", "", "Target encoding (default from config, utf-8)")
	}
	flags.IntVar(&f.fold, "fold", 0, "Insert a line break every N characters (0 disables)")
	flags.IntVarP(&f.workers, "workers", "P", 0, "Files converted in parallel")
	flags.BoolVar(&f.includeHidden, "include-hidden", false, "Also convert hidden files and directories")
	flags.StringSliceVar(&f.extensions, "ext", nil, "Only convert files with these extensions")
	flags.BoolVar(&f.stopOnError, "stop-on-error", false, "Stop at the first failing file")
	flags.BoolVar(&f.noLock, "no-lock", false, "Do not lock the destination directory")
	flags.BoolVar(&f.summary, "summary", true, "Print a summary table")
}

// apply layers the flags that were set on top of the loaded config.
func (f *convertFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("from") {
		cfg.Convert.SourceEncoding = f.from
	}
	if flags.Changed("to") {
		cfg.Convert.TargetEncoding = f.to
	}
	if flags.Changed("fold") {
		cfg.Convert.FoldWidth = f.fold
	}
	if flags.Changed("workers") {
		cfg.Batch.Workers = f.workers
	}
	if flags.Changed("include-hidden") {
		cfg.Batch.IncludeHidden = f.includeHidden
	}
	if flags.Changed("ext") {
		cfg.Batch.Extensions = f.extensions
	}
	if flags.Changed("stop-on-error") {
		cfg.Batch.StopOnError = f.stopOnError
	}
	if f.noLock {
		cfg.Batch.Lock = false
	}
	return cfg.Validate()
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags
	cmd := &cobra.Command{
		Use:   "convert [source-dir destination-dir]",
		Short: "Convert every file of a directory tree",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, ctx, &flags, args, nil)
		},
	}
	flags.register(cmd, true)
	return cmd
}

// newDirectionCommand builds the fixed-direction shortcuts.
func newDirectionCommand(ctx *commandContext, use, short, from, to string) *cobra.Command {
	var flags convertFlags
	cmd := &cobra.Command{
		Use:   use + " [source-dir destination-dir]",
		Short: short,
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, ctx, &flags, args, func(cfg *config.Config) {
				cfg.Convert.SourceEncoding = from
				cfg.Convert.TargetEncoding = to
			})
		},
	}
	flags.register(cmd, false)
	return cmd
}

func runBatch(cmd *cobra.Command, ctx *commandContext, flags *convertFlags, args []string, override func(*config.Config)) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if override != nil {
		override(cfg)
	}
	if err := flags.apply(cmd, cfg); err != nil {
		return err
	}
	switch len(args) {
	case 2:
		cfg.Batch.SourceDir, cfg.Batch.DestinationDir = args[0], args[1]
	case 1:
		return errors.New("both a source and a destination directory are required")
	}
	if cfg.Batch.SourceDir == "" || cfg.Batch.DestinationDir == "" {
		return errors.New("source and destination directories are required (arguments or [batch] config)")
	}

	logger, err := ctx.logger()
	if err != nil {
		return err
	}
	report, err := batch.Run(cmd.Context(), batch.Options{
		SourceDir:      cfg.Batch.SourceDir,
		DestinationDir: cfg.Batch.DestinationDir,
		Convert: converter.Options{
			SourceEncoding: cfg.Convert.SourceEncoding,
			TargetEncoding: cfg.Convert.TargetEncoding,
			FoldWidth:      cfg.Convert.FoldWidth,
		},
		Filter:      tree.NewFilter(cfg.Batch.IncludeHidden, cfg.Batch.Extensions),
		Workers:     cfg.Batch.Workers,
		StopOnError: cfg.Batch.StopOnError,
		Lock:        cfg.Batch.Lock,
		Logger:      logger,
	})
	if flags.summary && report != nil && report.Files > 0 {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, report.Table(logging.IsTerminal(out)))
	}
	if err != nil {
		return fmt.Errorf("unable to convert files: %w", err)
	}
	return nil
}

func newFileCommand(ctx *commandContext) *cobra.Command {
	var from, to string
	var fold int
	cmd := &cobra.Command{
		Use:   "file <source> <destination>",
		Short: "Convert a single file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("from") {
				cfg.Convert.SourceEncoding = from
			}
			if cmd.Flags().Changed("to") {
				cfg.Convert.TargetEncoding = to
			}
			if cmd.Flags().Changed("fold") {
				cfg.Convert.FoldWidth = fold
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			res, err := converter.ConvertFile(converter.Job{
				Source:      args[0],
				Destination: args[1],
				Options: converter.Options{
					SourceEncoding: cfg.Convert.SourceEncoding,
					TargetEncoding: cfg.Convert.TargetEncoding,
					FoldWidth:      cfg.Convert.FoldWidth,
				},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d characters, %d bytes written\n", args[0], args[1], res.Chars, res.BytesOut)
			return nil
		},
	}
	cmd.Flags().StringVarP(&from, "from", "f", "", "Source encoding")
	cmd.Flags().StringVarP(&to, "to", "t", "", "Target encoding")
	cmd.Flags().IntVar(&fold, "fold", 0, "Insert a line break every N characters (0 disables)")
	return cmd
}

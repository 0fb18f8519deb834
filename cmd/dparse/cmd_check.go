package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/dparse/letlang"
	"github.com/dhamidi/dparse/parse"
)

func newCheckCmd(verbose *int) *cobra.Command {
	var colorMode string
	var maxDepth int
	var trace bool

	cmd := &cobra.Command{
		Use:          "check <file>...",
		Short:        "Parse letlang files and report syntax errors",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newStyles(colorMode)
			if err != nil {
				return err
			}

			log := commonlog.GetLogger("dparse.check")
			opts := []parse.Option{parse.WithMaxDepth(maxDepth)}
			if trace {
				opts = append(opts, parse.WithTrace())
			}
			if *verbose >= 2 {
				opts = append(opts, parse.WithLogger(commonlog.GetLogger("dparse.parse")))
			}

			failed := 0
			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read %s: %w", filename, err)
				}
				source := string(data)

				prog, err := letlang.Parse(filename, source, opts...)
				if err != nil {
					failed++
					pe, ok := parse.AsError(err)
					if !ok {
						return fmt.Errorf("parse %s: %w", filename, err)
					}
					printParseError(cmd.ErrOrStderr(), st, filename, source, pe)
					if trace && pe.Trace() != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", pe.Trace())
					}
					continue
				}
				log.Infof("%s: %d statements", filename, len(prog.Statements))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to parse", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&colorMode, "color", "auto", "colorize output (auto, always, never)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", parse.DefaultMaxDepth, "maximum rule nesting depth (0 disables the limit)")
	cmd.Flags().BoolVar(&trace, "trace", false, "print the parser stack captured with each error")

	return cmd
}

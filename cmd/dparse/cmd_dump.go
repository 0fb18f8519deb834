package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/dparse/letlang"
	"github.com/dhamidi/dparse/parse"
)

func newDumpCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Parse a letlang file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}
			source := string(data)

			prog, err := letlang.Parse(filename, source)
			if err != nil {
				if pe, ok := parse.AsError(err); ok {
					return fmt.Errorf("parse %s:\n%s", filename, pe.Render(source))
				}
				return fmt.Errorf("parse %s: %w", filename, err)
			}
			tree := prog.Tree(source)

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(tree); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(tree); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				return nil
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "output format (yaml, json)")

	return cmd
}

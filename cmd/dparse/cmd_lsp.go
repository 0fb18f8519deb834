package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/dparse/lsp"
)

func newLSPCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Serve letlang parse diagnostics over stdio",
		Long: `Run a Language Server Protocol server on stdin and stdout.

Every opened, changed or saved document is parsed as a whole and its parse
error, if any, is published as a single diagnostic. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.GetLogger("dparse.lsp").Infof("starting dparse %s language server", version)
			return lsp.NewServer(version).RunStdio()
		},
	}
}

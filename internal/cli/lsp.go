package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/emblem/internal/logging"
	"github.com/yaklabco/emblem/internal/lsp"
	"github.com/yaklabco/emblem/pkg/config"
)

func newLSPCommand(info BuildInfo) *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdio",
		Long: `Run a Language Server Protocol server on standard input and output.

Open documents are compiled on every change; parse errors and lint findings
are published as diagnostics. Configuration is loaded once, from the
directory the server starts in.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := loadSession(cmd, &config.Config{})
			if err != nil {
				return err
			}
			logger := logging.FromContext(sess.ctx)
			logger.Debug("starting language server", logging.FieldVersion, info.Version)

			return lsp.New(info.Version, sess.compiler(false), logger).RunStdio(verbosity)
		},
	}

	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 0, "protocol log verbosity")

	return cmd
}

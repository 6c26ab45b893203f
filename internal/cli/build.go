package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/emblem/internal/logging"
	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/runner"
)

type buildFlags struct {
	runFlags
	outDir string
	ext    string
	stdout bool
}

func newBuildCommand() *cobra.Command {
	var cfg config.Config
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Render emblem documents to HTML",
		Long: `Lint emblem documents and render each one to HTML.

Each source is written to <out-dir>/<name>.html, or next to the source when
no output directory is configured. Files are replaced atomically and only
when their content changes. Diagnostics are printed to stderr.

Examples:
  em build                       # Render every .em file below here
  em build --out-dir public      # Collect renderings in public/
  em build --stdout intro.em     # Print the rendering instead`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, &cfg, flags)
		},
	}

	addRunFlags(cmd, &cfg, &flags.runFlags)
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "directory receiving rendered files")
	cmd.Flags().StringVar(&flags.ext, "out-ext", "", "extension of rendered files (default .html)")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print renderings to stdout instead of writing files")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string, cfg *config.Config, flags *buildFlags) error {
	cfg.Output = config.OutputConfig{Dir: flags.outDir, Ext: flags.ext}

	sess, err := flags.load(cmd, cfg)
	if err != nil {
		return err
	}
	logger := logging.FromContext(sess.ctx)

	var output *runner.OutputOptions
	if !flags.stdout {
		output = &runner.OutputOptions{Dir: sess.cfg.Output.Dir, Ext: sess.cfg.Output.Ext}
	}

	result, err := sess.run(args, output, true)
	if err != nil {
		return errors.Join(errors.New("build failed"), err)
	}

	if flags.stdout {
		if err := writeRenderings(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	}

	// Diagnostics go to stderr so renderings on stdout stay clean.
	if err := flags.report(cmd, cmd.ErrOrStderr(), sess, result); err != nil {
		return err
	}

	for _, outcome := range result.Files {
		if outcome.Skipped {
			logger.Warn("output not written", logging.FieldPath, outcome.Path, logging.FieldReason, outcome.SkipReason)
		}
	}
	logger.Debug("build complete", logging.FieldFilesWritten, result.Stats.FilesWritten)

	if ExitCodeFromResult(result, sess.cfg.Strict) != ExitSuccess {
		return ErrLintIssuesFound
	}
	return nil
}

// writeRenderings prints the HTML of every compiled file in discovery order.
func writeRenderings(w io.Writer, result *runner.Result) error {
	for _, outcome := range result.Files {
		if outcome.Result == nil {
			continue
		}
		if _, err := io.WriteString(w, outcome.Result.HTML); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

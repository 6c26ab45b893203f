package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/emblem/internal/logging"
	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/reporter"
	"github.com/yaklabco/emblem/pkg/runner"
)

// runFlags are the flags shared by lint and build.
type runFlags struct {
	format     string
	ignore     []string
	extensions []string
	enable     []string
	disable    []string
	noContext  bool
	compact    bool
}

type lintFlags struct {
	runFlags
}

func newLintCommand() *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint emblem documents",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags)
		},
	}

	addRunFlags(cmd, &cfg, &flags.runFlags)

	return cmd
}

const lintLongDescription = `Parse and lint emblem documents.

By default, lints all .em files in the current directory and
subdirectories. Specify paths to lint specific files or directories.
A file that fails to parse is reported with the location of the error
and makes the command fail; lint findings only fail it with --strict.

Examples:
  em lint                    # Lint current directory
  em lint docs/              # Lint docs directory
  em lint intro.em           # Lint single file
  em lint --format json      # Output as JSON for CI
  em lint --strict           # Treat warnings as errors
  em lint --disable empty-attrs`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags) error {
	sess, err := flags.load(cmd, cfg)
	if err != nil {
		return err
	}

	result, err := sess.run(args, nil, false)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}

	if err := flags.report(cmd, cmd.OutOrStdout(), sess, result); err != nil {
		return err
	}

	if ExitCodeFromResult(result, sess.cfg.Strict) != ExitSuccess {
		return ErrLintIssuesFound
	}
	return nil
}

func addRunFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&cfg.MaxDepth, "max-depth", 0, "nesting limit for parsed documents (0 = configured default)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "source file extensions (default .em)")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "lint IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "lint IDs to disable")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}

// load validates the flags and loads configuration with them applied.
func (f *runFlags) load(cmd *cobra.Command, cfg *config.Config) (*session, error) {
	if _, err := reporter.ParseFormat(f.format); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	// Only flags that were given override configuration.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	cfg.Ignore = f.ignore
	cfg.Extensions = f.extensions
	cfg.EnableLints = f.enable
	cfg.DisableLints = f.disable

	return loadSession(cmd, cfg)
}

// report writes the result to w in the configured format.
func (f *runFlags) report(cmd *cobra.Command, w io.Writer, sess *session, result *runner.Result) error {
	opts, err := sess.reporterOptions(cmd, sess.cfg.Format)
	if err != nil {
		return err
	}
	opts.Writer = w
	opts.ShowContext = !f.noContext
	opts.Compact = f.compact

	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(sess.ctx, result); err != nil {
		logging.FromContext(sess.ctx).Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

// run compiles the files under paths. Output, when set, writes renderings.
func (s *session) run(paths []string, output *runner.OutputOptions, render bool) (*runner.Result, error) {
	logger := logging.FromContext(s.ctx)

	runOpts := runner.OptionsFromConfig(s.cfg, paths)
	runOpts.WorkingDir = s.workDir
	runOpts.Output = output

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	return runner.New(s.compiler(render || output != nil)).Run(s.ctx, runOpts)
}

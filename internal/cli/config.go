package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/emblem/internal/configloader"
	"github.com/yaklabco/emblem/internal/logging"
	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/frontend"
	"github.com/yaklabco/emblem/pkg/lint"
	"github.com/yaklabco/emblem/pkg/reporter"
)

// session is the state a command needs once configuration is loaded.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	workDir string
	color   string
}

// loadSession loads configuration for cmd, with cliCfg holding the values
// set by flags.
func loadSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	color, err := cmd.Flags().GetString("color")
	if err != nil {
		color = string(config.ColorAuto)
	}
	if cmd.Flags().Changed("color") {
		cliCfg.Color = config.ColorMode(color)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
		Registry:     lint.DefaultRegistry,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, cfg.Format,
		logging.FieldWorkingDir, workDir,
	)

	return &session{
		ctx:     ctx,
		cfg:     cfg,
		workDir: workDir,
		color:   string(cfg.Color),
	}, nil
}

// compiler builds a compiler for the session's configuration.
func (s *session) compiler(render bool) *frontend.Compiler {
	return frontend.NewCompiler(frontend.Options{
		Config: s.cfg,
		Render: render,
	})
}

// reporterOptions fills the parts of reporter.Options every command shares.
func (s *session) reporterOptions(cmd *cobra.Command, format config.OutputFormat) (reporter.Options, error) {
	parsed, err := reporter.ParseFormat(string(format))
	if err != nil {
		return reporter.Options{}, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	opts := reporter.DefaultOptions()
	opts.Writer = cmd.OutOrStdout()
	opts.Format = parsed
	opts.Color = s.color
	opts.WorkingDir = s.workDir
	opts.Lints = lint.DefaultRegistry.Infos()
	opts.ToolVersion = toolVersion(cmd)
	return opts, nil
}

// toolVersion returns the version the root command was built with.
func toolVersion(cmd *cobra.Command) string {
	if v := cmd.Root().Annotations[annotationVersion]; v != "" {
		return v
	}
	return "dev"
}

const annotationVersion = "version"

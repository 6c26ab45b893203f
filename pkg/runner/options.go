// Package runner compiles many emblem files concurrently.
package runner

import "github.com/yaklabco/emblem/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to process. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths and globs. Empty means the process
	// working directory.
	WorkingDir string

	// Extensions are the file extensions (with leading dot) treated as
	// emblem sources. Empty means DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs bounds concurrent workers; 0 or negative means runtime.NumCPU().
	Jobs int

	// Output, when set, writes each file's rendering to disk.
	Output *OutputOptions
}

// OutputOptions controls where renderings are written.
type OutputOptions struct {
	// Dir receives the outputs; empty writes next to each source.
	Dir string

	// Ext is the output extension; empty means config.DefaultOutputExt.
	Ext string
}

// DefaultExtensions returns the default source extensions.
func DefaultExtensions() []string {
	return []string{config.DefaultExtension}
}

// OptionsFromConfig derives discovery options from configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths}
	if cfg == nil {
		return opts
	}
	opts.Extensions = cfg.Extensions
	opts.ExcludeGlobs = cfg.Ignore
	opts.Jobs = cfg.Jobs
	return opts
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
